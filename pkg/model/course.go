package model

// Course is one catalog entry. Sessions and sections are derived from it; it is
// never mutated once loaded.
type Course struct {
	ID              string `csv:"CourseNo" validate:"required"`
	Name            string `csv:"CourseName"`
	RoomType        string `csv:"RoomType" validate:"required"`
	ContactHours    int    `csv:"ContactHours" validate:"gt=0"`
	Sections        int    `csv:"NumberOfSections" validate:"gte=0"`
	AdvisedStudents int    `csv:"NumberOfAdvisedStudents" validate:"gte=0"`
}

// SessionLengths splits weekly contact hours into session blocks.
func SessionLengths(contactHours int) []int {
	switch contactHours {
	case 3:
		return []int{2, 1}
	case 4:
		return []int{2, 2}
	case 5:
		return []int{2, 2, 1}
	case 6:
		return []int{2, 2, 2}
	default:
		return []int{contactHours}
	}
}

// SessionLengths returns the block lengths of every section of the course.
func (c *Course) SessionLengths() []int {
	return SessionLengths(c.ContactHours)
}

// RequiredSessions is the number of sessions each section must end up with.
func (c *Course) RequiredSessions() int {
	return len(SessionLengths(c.ContactHours))
}

// StudentsPerSection spreads advised students evenly over the sections.
func (c *Course) StudentsPerSection() int {
	if c.Sections <= 0 {
		return c.AdvisedStudents
	}
	return (c.AdvisedStudents + c.Sections - 1) / c.Sections
}
