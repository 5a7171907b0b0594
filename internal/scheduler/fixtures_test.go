package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func course(id string, roomType string, hours int, sections int, students int) *model.Course {
	return &model.Course{ID: id, Name: id, RoomType: roomType, ContactHours: hours, Sections: sections, AdvisedStudents: students}
}

func room(id string, roomType string, capacity int) *model.Room {
	return &model.Room{ID: id, Type: roomType, Capacity: capacity}
}

func lecturer(id string, prefs ...string) *model.Lecturer {
	return &model.Lecturer{ID: id, Name: id, MaxLoad: 12, Preferences: prefs}
}

func enroll(student string, courses ...string) []*model.Enrollment {
	out := make([]*model.Enrollment, len(courses))
	for i, c := range courses {
		out[i] = &model.Enrollment{StudentID: student, CourseID: c}
	}
	return out
}

type fixture struct {
	sched *Scheduler
	index *Index
	grid  *Grid
	cfg   *Configuration
}

func newFixture(t *testing.T, cfg *Configuration, in Input) *fixture {
	t.Helper()
	if cfg == nil {
		cfg = NewDefaultConfiguration()
	}
	idx, err := NewIndex(in)
	require.NoError(t, err)
	grid, err := NewGrid(cfg)
	require.NoError(t, err)
	return &fixture{
		sched: NewScheduler(cfg, grid, idx, zap.NewNop()),
		index: idx,
		grid:  grid,
		cfg:   cfg,
	}
}

// at builds a placement on the fixture's grid.
func (f *fixture) at(t *testing.T, day model.Weekday, hour int, roomID string, lecturerID string) *model.Placement {
	t.Helper()
	i, ok := f.grid.Index(day, hour)
	require.True(t, ok, "no slot %s %d", day, hour)
	return &model.Placement{Start: f.grid.Slot(i), Index: i, RoomID: roomID, LecturerID: lecturerID}
}

// requireInvariants checks non-overlap, same-day containment and the contact
// hour bound on every placed session.
func requireInvariants(t *testing.T, grid *Grid, courses []*model.Course, tt *model.Timetable) {
	t.Helper()
	type cell struct {
		id   string
		slot int
	}
	rooms := make(map[cell]string)
	lecturers := make(map[cell]string)
	byID := make(map[string]*model.Course)
	for _, c := range courses {
		byID[c.ID] = c
	}

	for _, key := range tt.Keys() {
		sessions, _ := tt.Get(key)
		hours := 0
		for _, s := range sessions {
			if !s.Placed() {
				require.NotEmpty(t, s.Reason, "placeholder without reason in %v", key)
				continue
			}
			p := s.Placement
			require.True(t, grid.Fits(p.Index, s.Duration), "%v session at %s runs off its day", key, p.Start)
			for h := 0; h < s.Duration; h++ {
				require.False(t, grid.InBlackout(p.Start.Day, p.Start.Hour+h), "%v session touches blackout", key)
				rc := cell{p.RoomID, p.Index + h}
				lc := cell{p.LecturerID, p.Index + h}
				require.Empty(t, rooms[rc], "room %s double booked by %v and %s", p.RoomID, key, rooms[rc])
				require.Empty(t, lecturers[lc], "lecturer %s double booked by %v and %s", p.LecturerID, key, lecturers[lc])
				rooms[rc] = key.CourseID
				lecturers[lc] = key.CourseID
			}
			hours += s.Duration
		}
		require.LessOrEqual(t, hours, byID[key.CourseID].ContactHours, "%v exceeds contact hours", key)
	}
}
