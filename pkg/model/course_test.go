package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseSessions(t *testing.T) {
	tests := []struct {
		hours    int
		sections int
		students int
		lengths  []int
		perSec   int
	}{
		{hours: 3, sections: 2, students: 81, lengths: []int{2, 1}, perSec: 41},
		{hours: 4, sections: 1, students: 30, lengths: []int{2, 2}, perSec: 30},
		{hours: 5, sections: 3, students: 90, lengths: []int{2, 2, 1}, perSec: 30},
		{hours: 6, sections: 0, students: 12, lengths: []int{2, 2, 2}, perSec: 12},
		{hours: 2, sections: 4, students: 0, lengths: []int{2}, perSec: 0},
	}
	for _, tc := range tests {
		c := &Course{ID: "C", ContactHours: tc.hours, Sections: tc.sections, AdvisedStudents: tc.students}
		assert.Equal(t, tc.lengths, c.SessionLengths())
		assert.Equal(t, len(tc.lengths), c.RequiredSessions())
		assert.Equal(t, tc.perSec, c.StudentsPerSection())
	}
}

func TestLecturerPreferences(t *testing.T) {
	row := &LecturerCSV{ID: "F1", Name: "Ada", MaxLoad: 9, Pref1: "CENG101", Pref2: " ", Pref3: " MATH101 ", Pref5: "PHYS101"}
	l := row.ToLecturer()

	assert.Equal(t, []string{"CENG101", "MATH101", "PHYS101"}, l.Preferences)
	assert.Equal(t, 9, l.MaxLoad)
	assert.Equal(t, 1, l.Rank("CENG101"))
	assert.Equal(t, 3, l.Rank("PHYS101"))
	assert.Equal(t, 0, l.Rank("HIST101"))
	assert.True(t, l.Prefers("MATH101"))
	assert.False(t, l.Prefers(""))

	none := (&LecturerCSV{ID: "F2"}).ToLecturer()
	assert.Empty(t, none.Preferences)
	assert.False(t, none.Prefers("CENG101"))
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]Weekday{
		"Sunday":   Sunday,
		"tuesday":  Tuesday,
		" THU ":    Thursday,
		"wed":      Wednesday,
		"Monday\n": Monday,
	} {
		got, err := ParseWeekday(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeekday("Friday")
	assert.Error(t, err)
	assert.Equal(t, "Weekday(9)", Weekday(9).String())
}

func TestTimeSlot(t *testing.T) {
	s := TimeSlot{Day: Tuesday, Hour: 9}
	assert.Equal(t, "Tuesday 09:00", s.String())
	assert.True(t, s.Before(TimeSlot{Day: Tuesday, Hour: 12}))
	assert.True(t, s.Before(TimeSlot{Day: Wednesday, Hour: 8}))
	assert.False(t, s.Before(TimeSlot{Day: Monday, Hour: 16}))
	assert.False(t, s.Before(s))
}
