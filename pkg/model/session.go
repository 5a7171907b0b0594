package model

// Placement fixes a session to a starting slot, a room and a lecturer.
// Index is the starting slot's position in the slot universe.
type Placement struct {
	Start      TimeSlot
	Index      int
	RoomID     string
	LecturerID string
}

// Session is one contiguous meeting of a course section. A session without a
// placement is a placeholder and carries the reason it could not be placed.
type Session struct {
	CourseID  string
	Section   int
	Number    int
	Duration  int
	Placement *Placement
	Reason    string
}

func (s *Session) Placed() bool {
	return s != nil && s.Placement != nil
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	if s.Placement != nil {
		p := *s.Placement
		c.Placement = &p
	}
	return &c
}

// ManualResolution is a session the engine gave up on.
type ManualResolution struct {
	CourseID string `csv:"course_id" yaml:"course_id"`
	Section  int    `csv:"section" yaml:"section"`
	Session  int    `csv:"session" yaml:"session"`
	Reason   string `csv:"reason" yaml:"reason"`
}
