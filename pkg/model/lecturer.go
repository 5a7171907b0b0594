package model

import "strings"

// MaxPreferences is the number of ranked course preferences a lecturer may list.
const MaxPreferences = 5

type LecturerCSV struct {
	ID      string `csv:"FacultyID" validate:"required"`
	Name    string `csv:"FacultyName"`
	MaxLoad int    `csv:"MaxLoad" validate:"gte=0"`
	Pref1   string `csv:"Pref1"`
	Pref2   string `csv:"Pref2"`
	Pref3   string `csv:"Pref3"`
	Pref4   string `csv:"Pref4"`
	Pref5   string `csv:"Pref5"`
}

// Lecturer carries ranked course preferences, rank 1 first. MaxLoad is loaded but
// not consulted when placing sessions.
type Lecturer struct {
	ID          string
	Name        string
	MaxLoad     int
	Preferences []string
}

// ToLecturer drops empty preference columns and keeps the remaining order.
func (l *LecturerCSV) ToLecturer() *Lecturer {
	lecturer := &Lecturer{ID: l.ID, Name: l.Name, MaxLoad: l.MaxLoad}
	for _, p := range []string{l.Pref1, l.Pref2, l.Pref3, l.Pref4, l.Pref5} {
		p = strings.TrimSpace(p)
		if p != "" {
			lecturer.Preferences = append(lecturer.Preferences, p)
		}
	}
	return lecturer
}

// Rank returns the 1-based preference rank of a course, or 0 if not preferred.
func (l *Lecturer) Rank(courseID string) int {
	for i, p := range l.Preferences {
		if i >= MaxPreferences {
			break
		}
		if p == courseID {
			return i + 1
		}
	}
	return 0
}

func (l *Lecturer) Prefers(courseID string) bool {
	return l.Rank(courseID) > 0
}
