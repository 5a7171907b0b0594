package model

// Enrollment links one student to one advised course. Only used to derive clashes.
type Enrollment struct {
	StudentID string `csv:"StudentNo" validate:"required"`
	CourseID  string `csv:"CourseNo" validate:"required"`
}
