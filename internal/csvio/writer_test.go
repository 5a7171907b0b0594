package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func sampleTimetable() *model.Timetable {
	tt := model.NewTimetable()
	tt.Set(model.SectionKey{CourseID: "MATH101"}, []*model.Session{
		{CourseID: "MATH101", Number: 0, Duration: 2, Placement: &model.Placement{Start: model.TimeSlot{Day: model.Wednesday, Hour: 8}, Index: 25, RoomID: "A101", LecturerID: "F2"}},
		{CourseID: "MATH101", Number: 1, Duration: 2, Placement: &model.Placement{Start: model.TimeSlot{Day: model.Monday, Hour: 8}, Index: 9, RoomID: "A101", LecturerID: "F2"}},
		{CourseID: "MATH101", Number: 2, Duration: 1, Reason: "no suitable time slot"},
	})
	tt.Set(model.SectionKey{CourseID: "CENG101"}, []*model.Session{
		{CourseID: "CENG101", Number: 0, Duration: 2, Placement: &model.Placement{Start: model.TimeSlot{Day: model.Sunday, Hour: 8}, Index: 0, RoomID: "A101", LecturerID: "F1"}},
	})
	return tt
}

func TestExportTimetable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final_timetable.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the export\n"+strings.Repeat("x", 512)), 0o644))

	got, err := ExportTimetable(sampleTimetable().Rows(), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "course_id,section,session,day,start,duration,room,lecturer,reason", lines[0])
	assert.Equal(t, "MATH101,0,0,Wednesday,08:00,2,A101,F2,", lines[1])
	assert.Equal(t, "MATH101,0,2,,,1,,,no suitable time slot", lines[3])

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := ReadTimetable(f, ',')
	require.NoError(t, err)
	assert.Equal(t, sampleTimetable().Rows(), rows)
}

func TestExportTimetableString(t *testing.T) {
	rows := sampleTimetable().Rows()
	s, err := ExportTimetableString(rows)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTimetable(&buf, rows))
	assert.Equal(t, s, buf.String())
	assert.Contains(t, s, "CENG101,0,0,Sunday,08:00,2,A101,F1,")
}

func TestExportManual(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual.csv")
	_, err := ExportManual([]model.ManualResolution{{CourseID: "PHYS101", Section: 1, Session: 0, Reason: "unable to find suitable time slot, room, or lecturer"}}, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "course_id,section,session,reason\nPHYS101,1,0,\"unable to find suitable time slot, room, or lecturer\"\n", string(data))
}

func TestPrintTimetable(t *testing.T) {
	var buf bytes.Buffer
	PrintTimetable(&buf, sampleTimetable())
	out := buf.String()

	assert.Less(t, strings.Index(out, " CENG101 "), strings.Index(out, " MATH101 "))
	assert.Less(t, strings.Index(out, "Monday"), strings.Index(out, "Wednesday"))
	assert.Less(t, strings.Index(out, "Wednesday"), strings.Index(out, "unplaced"))
	assert.Contains(t, out, "no suitable time slot")
	assert.Contains(t, out, "Printed rows: 4")
}
