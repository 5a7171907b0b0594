package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/rhyrak/go-timetable/pkg/config"
	"github.com/rhyrak/go-timetable/pkg/model"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

const (
	enrollmentsCSV = `StudentNo,CourseNo
1001,CENG101
1001,MATH101
1002, CENG101
`
	coursesCSV = `CourseNo,CourseName,RoomType,ContactHours,NumberOfSections,NumberOfAdvisedStudents
CENG101,"Intro to Programming, I",Lecture,3,2,120
MATH101,Calculus,Lecture,5,1,90
`
	roomsCSV = `RoomNo,Type,Capacity
A101,Lecture,120
LAB1,Lab,30
`
	lecturersCSV = `FacultyID,FacultyName,MaxLoad,Pref1,Pref2,Pref3,Pref4,Pref5
F1,Ada,9,CENG101,,MATH101,,
F2,Alan,6,MATH101,,,,
`
)

func TestReadInput(t *testing.T) {
	in, err := ReadInput(Sources{
		Enrollments: strings.NewReader(enrollmentsCSV),
		Courses:     strings.NewReader(coursesCSV),
		Rooms:       strings.NewReader(roomsCSV),
		Lecturers:   strings.NewReader(lecturersCSV),
	}, ',')
	require.NoError(t, err)

	require.Len(t, in.Enrollments, 3)
	assert.Equal(t, &model.Enrollment{StudentID: "1002", CourseID: "CENG101"}, in.Enrollments[2])

	require.Len(t, in.Courses, 2)
	assert.Equal(t, &model.Course{
		ID:              "CENG101",
		Name:            "Intro to Programming, I",
		RoomType:        "Lecture",
		ContactHours:    3,
		Sections:        2,
		AdvisedStudents: 120,
	}, in.Courses[0])

	require.Len(t, in.Rooms, 2)
	assert.Equal(t, 30, in.Rooms[1].Capacity)

	require.Len(t, in.Lecturers, 2)
	assert.Equal(t, []string{"CENG101", "MATH101"}, in.Lecturers[0].Preferences)
	assert.Equal(t, 6, in.Lecturers[1].MaxLoad)
}

func TestReadWithDelimiter(t *testing.T) {
	rooms, err := ReadRooms(strings.NewReader("RoomNo;Type;Capacity\nB201;Lab;24\n"), ';')
	require.NoError(t, err)
	assert.Equal(t, []*model.Room{{ID: "B201", Type: "Lab", Capacity: 24}}, rooms)
}

func TestReadValidatesRows(t *testing.T) {
	courses, err := ReadCourses(strings.NewReader(`CourseNo,CourseName,RoomType,ContactHours,NumberOfSections,NumberOfAdvisedStudents
CENG101,Intro,Lecture,0,1,10
,Nameless,Lecture,3,1,10
PHYS101,Physics,Lab,2,1,10
`), ',')
	require.Error(t, err)
	assert.Len(t, courses, 3)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], appErrors.ErrValidation)
	assert.Contains(t, errs[0].Error(), "courses line 2")
	assert.Contains(t, errs[1].Error(), "courses line 3")
}

func TestReadRejectsMalformedCSV(t *testing.T) {
	_, err := ReadRooms(strings.NewReader("RoomNo,Type,Capacity\nA1,Lecture,many\n"), ',')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse rooms")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = ReadRooms(nil, ',')
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	cfg := config.InputConfig{
		Enrollments: write("AdvisedCourses.csv", enrollmentsCSV),
		Courses:     write("CourseDetails.csv", coursesCSV),
		Rooms:       write("Rooms.csv", roomsCSV),
		Lecturers:   write("LecturerPreferences.csv", lecturersCSV),
		Delimiter:   ',',
	}

	in, err := LoadInput(cfg)
	require.NoError(t, err)
	assert.Len(t, in.Courses, 2)

	cfg.Rooms = filepath.Join(dir, "missing.csv")
	cfg.Lecturers = filepath.Join(dir, "gone.csv")
	_, err = LoadInput(cfg)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "missing.csv")
}
