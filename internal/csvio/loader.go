package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"go.uber.org/multierr"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/config"
	"github.com/rhyrak/go-timetable/pkg/model"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

var validate = validator.New()

// Sources bundles one reader per input table.
type Sources struct {
	Enrollments io.Reader
	Courses     io.Reader
	Rooms       io.Reader
	Lecturers   io.Reader
}

// ReadInput parses and validates all four tables. Problems from every table are
// reported together.
func ReadInput(src Sources, delim rune) (scheduler.Input, error) {
	var in scheduler.Input
	var errs, err error

	in.Enrollments, err = ReadEnrollments(src.Enrollments, delim)
	errs = multierr.Append(errs, err)
	in.Courses, err = ReadCourses(src.Courses, delim)
	errs = multierr.Append(errs, err)
	in.Rooms, err = ReadRooms(src.Rooms, delim)
	errs = multierr.Append(errs, err)
	in.Lecturers, err = ReadLecturers(src.Lecturers, delim)
	errs = multierr.Append(errs, err)

	return in, errs
}

// LoadInput opens the files named in the input config and reads them.
func LoadInput(cfg config.InputConfig) (scheduler.Input, error) {
	paths := []string{cfg.Enrollments, cfg.Courses, cfg.Rooms, cfg.Lecturers}
	files := make([]*os.File, len(paths))
	var errs error
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to open %s, please make sure the file exists: %w", path, err))
			continue
		}
		defer f.Close()
		files[i] = f
	}
	if errs != nil {
		return scheduler.Input{}, errs
	}
	return ReadInput(Sources{
		Enrollments: files[0],
		Courses:     files[1],
		Rooms:       files[2],
		Lecturers:   files[3],
	}, cfg.Delimiter)
}

func ReadEnrollments(r io.Reader, delim rune) ([]*model.Enrollment, error) {
	rows, err := read[model.Enrollment](r, delim, "enrollments")
	for _, e := range rows {
		e.StudentID = strings.TrimSpace(e.StudentID)
		e.CourseID = strings.TrimSpace(e.CourseID)
	}
	return rows, err
}

func ReadCourses(r io.Reader, delim rune) ([]*model.Course, error) {
	rows, err := read[model.Course](r, delim, "courses")
	for _, c := range rows {
		c.ID = strings.TrimSpace(c.ID)
		c.RoomType = strings.TrimSpace(c.RoomType)
	}
	return rows, err
}

func ReadRooms(r io.Reader, delim rune) ([]*model.Room, error) {
	rows, err := read[model.Room](r, delim, "rooms")
	for _, room := range rows {
		room.ID = strings.TrimSpace(room.ID)
		room.Type = strings.TrimSpace(room.Type)
	}
	return rows, err
}

// ReadLecturers reads the wide preference table and folds Pref1..Pref5 into an
// ordered list.
func ReadLecturers(r io.Reader, delim rune) ([]*model.Lecturer, error) {
	rows, err := read[model.LecturerCSV](r, delim, "lecturers")
	lecturers := make([]*model.Lecturer, len(rows))
	for i, row := range rows {
		row.ID = strings.TrimSpace(row.ID)
		lecturers[i] = row.ToLecturer()
	}
	return lecturers, err
}

// read unmarshals one table and validates every row. Rows that fail validation
// are still returned so the caller can report all of them.
func read[T any](r io.Reader, delim rune, table string) ([]*T, error) {
	if r == nil {
		return nil, appErrors.Clonef(appErrors.ErrValidation, "%s table is missing", table)
	}
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.TrimLeadingSpace = true

	rows := []*T{}
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, fmt.Sprintf("failed to parse %s, please check the data integrity and format", table))
	}

	var errs error
	for i, row := range rows {
		if err := validate.Struct(row); err != nil {
			// Header is line 1.
			errs = multierr.Append(errs, appErrors.Wrap(err, appErrors.ErrValidation.Code, fmt.Sprintf("%s line %d", table, i+2)))
		}
	}
	return rows, errs
}
