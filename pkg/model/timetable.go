package model

// SectionKey identifies one section of one course.
type SectionKey struct {
	CourseID string
	Section  int
}

// Timetable maps every section to its ordered sessions. Keys keep insertion order
// so exports are reproducible.
type Timetable struct {
	sections map[SectionKey][]*Session
	order    []SectionKey
}

type TimetableRow struct {
	CourseID string `csv:"course_id" yaml:"course_id"`
	Section  int    `csv:"section" yaml:"section"`
	Session  int    `csv:"session" yaml:"session"`
	Day      string `csv:"day" yaml:"day,omitempty"`
	Start    string `csv:"start" yaml:"start,omitempty"`
	Duration int    `csv:"duration" yaml:"duration"`
	Room     string `csv:"room" yaml:"room,omitempty"`
	Lecturer string `csv:"lecturer" yaml:"lecturer,omitempty"`
	Reason   string `csv:"reason" yaml:"reason,omitempty"`
}

/* NewTimetable creates an empty timetable. */
func NewTimetable() *Timetable {
	return &Timetable{sections: make(map[SectionKey][]*Session)}
}

// Set replaces the sessions of a section.
func (t *Timetable) Set(key SectionKey, sessions []*Session) {
	if _, ok := t.sections[key]; !ok {
		t.order = append(t.order, key)
	}
	t.sections[key] = sessions
}

func (t *Timetable) Get(key SectionKey) ([]*Session, bool) {
	s, ok := t.sections[key]
	return s, ok
}

// Keys returns section keys in insertion order.
func (t *Timetable) Keys() []SectionKey {
	keys := make([]SectionKey, len(t.order))
	copy(keys, t.order)
	return keys
}

func (t *Timetable) Len() int {
	return len(t.order)
}

// PlacedCount counts sessions of a section that have a placement.
func (t *Timetable) PlacedCount(key SectionKey) int {
	n := 0
	for _, s := range t.sections[key] {
		if s.Placed() {
			n++
		}
	}
	return n
}

// Sessions walks every session in key order.
func (t *Timetable) Sessions() []*Session {
	var all []*Session
	for _, k := range t.order {
		all = append(all, t.sections[k]...)
	}
	return all
}

// Clone deep-copies the timetable.
func (t *Timetable) Clone() *Timetable {
	c := NewTimetable()
	for _, k := range t.order {
		src := t.sections[k]
		dst := make([]*Session, len(src))
		for i, s := range src {
			dst[i] = s.Clone()
		}
		c.Set(k, dst)
	}
	return c
}

// Rows flattens the timetable into one row per session.
func (t *Timetable) Rows() []*TimetableRow {
	var rows []*TimetableRow
	for _, k := range t.order {
		for _, s := range t.sections[k] {
			row := &TimetableRow{
				CourseID: k.CourseID,
				Section:  k.Section,
				Session:  s.Number,
				Duration: s.Duration,
				Reason:   s.Reason,
			}
			if s.Placement != nil {
				row.Day = s.Placement.Start.Day.String()
				row.Start = s.Placement.Start.Clock()
				row.Room = s.Placement.RoomID
				row.Lecturer = s.Placement.LecturerID
			}
			rows = append(rows, row)
		}
	}
	return rows
}
