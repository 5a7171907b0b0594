package scheduler

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/rhyrak/go-timetable/pkg/model"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

// Input is the set of normalized tables handed over by the loader.
type Input struct {
	Enrollments []*model.Enrollment
	Courses     []*model.Course
	Rooms       []*model.Room
	Lecturers   []*model.Lecturer
}

// Index holds the lookups the scheduler needs, built once before placement.
type Index struct {
	Courses     []*model.Course
	Rooms       []*model.Room
	Lecturers   []*model.Lecturer
	Enrollments []*model.Enrollment

	courses           map[string]*model.Course
	rooms             map[string]*model.Room
	lecturers         map[string]*model.Lecturer
	roomsByType       map[string][]*model.Room
	lecturersByCourse map[string][]*model.Lecturer
}

// NewIndex validates cross references and builds the lookups. Every missing or
// duplicated identifier is reported together as a data inconsistency.
func NewIndex(in Input) (*Index, error) {
	idx := &Index{
		Courses:           in.Courses,
		Rooms:             in.Rooms,
		Lecturers:         in.Lecturers,
		Enrollments:       in.Enrollments,
		courses:           make(map[string]*model.Course, len(in.Courses)),
		rooms:             make(map[string]*model.Room, len(in.Rooms)),
		lecturers:         make(map[string]*model.Lecturer, len(in.Lecturers)),
		roomsByType:       make(map[string][]*model.Room),
		lecturersByCourse: make(map[string][]*model.Lecturer),
	}

	var errs error
	for _, c := range in.Courses {
		if _, dup := idx.courses[c.ID]; dup {
			errs = multierr.Append(errs, appErrors.Clonef(appErrors.ErrDataInconsistency, "duplicate course %q", c.ID))
			continue
		}
		idx.courses[c.ID] = c
	}

	for _, r := range in.Rooms {
		if _, dup := idx.rooms[r.ID]; dup {
			errs = multierr.Append(errs, appErrors.Clonef(appErrors.ErrDataInconsistency, "duplicate room %q", r.ID))
			continue
		}
		idx.rooms[r.ID] = r
		idx.roomsByType[r.Type] = append(idx.roomsByType[r.Type], r)
	}
	// Smallest fitting room first.
	for _, rooms := range idx.roomsByType {
		slices.SortStableFunc(rooms, func(a, b *model.Room) int {
			if c := cmp.Compare(a.Capacity, b.Capacity); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	}

	for _, l := range in.Lecturers {
		if _, dup := idx.lecturers[l.ID]; dup {
			errs = multierr.Append(errs, appErrors.Clonef(appErrors.ErrDataInconsistency, "duplicate lecturer %q", l.ID))
			continue
		}
		idx.lecturers[l.ID] = l
		for _, courseID := range l.Preferences {
			if _, ok := idx.courses[courseID]; !ok {
				errs = multierr.Append(errs, appErrors.Clonef(appErrors.ErrDataInconsistency, "lecturer %q prefers unknown course %q", l.ID, courseID))
				continue
			}
			if !slices.Contains(idx.lecturersByCourse[courseID], l) {
				idx.lecturersByCourse[courseID] = append(idx.lecturersByCourse[courseID], l)
			}
		}
	}
	for courseID, lecturers := range idx.lecturersByCourse {
		slices.SortStableFunc(lecturers, func(a, b *model.Lecturer) int {
			return cmp.Compare(a.Rank(courseID), b.Rank(courseID))
		})
	}

	unknown := lo.Uniq(lo.FilterMap(in.Enrollments, func(e *model.Enrollment, _ int) (string, bool) {
		_, ok := idx.courses[e.CourseID]
		return e.CourseID, !ok
	}))
	for _, courseID := range unknown {
		errs = multierr.Append(errs, appErrors.Clonef(appErrors.ErrDataInconsistency, "enrollment references unknown course %q", courseID))
	}

	if errs != nil {
		return nil, errs
	}
	return idx, nil
}

func (idx *Index) Course(id string) (*model.Course, bool) {
	c, ok := idx.courses[id]
	return c, ok
}

// AdvisedStudents returns the advised-student count of a course, 0 if unknown.
func (idx *Index) AdvisedStudents(id string) int {
	if c, ok := idx.courses[id]; ok {
		return c.AdvisedStudents
	}
	return 0
}

// RoomsOfType lists rooms of one type, smallest capacity first.
func (idx *Index) RoomsOfType(roomType string) []*model.Room {
	return idx.roomsByType[roomType]
}

// LecturersFor lists lecturers preferring a course, highest rank first.
func (idx *Index) LecturersFor(courseID string) []*model.Lecturer {
	return idx.lecturersByCourse[courseID]
}

func (idx *Index) Room(id string) (*model.Room, bool) {
	r, ok := idx.rooms[id]
	return r, ok
}

func (idx *Index) Lecturer(id string) (*model.Lecturer, bool) {
	l, ok := idx.lecturers[id]
	return l, ok
}
