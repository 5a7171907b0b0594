package scheduler

import (
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

// Scheduler places sessions against a single Tracker. Each placement reads the
// tracker and books the result before the next search starts.
type Scheduler struct {
	cfg     *Configuration
	grid    *Grid
	index   *Index
	tracker *Tracker
	logger  *zap.Logger
}

func NewScheduler(cfg *Configuration, grid *Grid, index *Index, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cfg:     cfg,
		grid:    grid,
		index:   index,
		tracker: NewTracker(index.Rooms, index.Lecturers, grid.Len()),
		logger:  logger,
	}
}

func (s *Scheduler) Tracker() *Tracker {
	return s.tracker
}

// ScheduleSection tries each preferred weekday distribution in order and returns
// one session per block. When no distribution places every block the unplaced
// blocks come back as placeholders. The error is only ever an invariant
// violation from the tracker.
func (s *Scheduler) ScheduleSection(course *model.Course, section int) ([]*model.Session, error) {
	lengths := course.SessionLengths()
	var last []*model.Session
	for _, dist := range PreferredDistributions(len(lengths)) {
		sessions, complete, err := s.tryDistribution(course, section, lengths, dist)
		if err != nil {
			return nil, err
		}
		if complete {
			s.logger.Debug("section placed",
				zap.String("course", course.ID),
				zap.Int("section", section),
				zap.Stringers("days", dist))
			return sessions, nil
		}
		if !s.cfg.PartialCommit {
			if err := s.rollback(sessions); err != nil {
				return nil, err
			}
		}
		last = sessions
	}

	out := make([]*model.Session, len(lengths))
	for i, d := range lengths {
		if s.cfg.PartialCommit && last != nil && last[i].Placed() {
			out[i] = last[i]
			continue
		}
		out[i] = &model.Session{
			CourseID: course.ID,
			Section:  section,
			Number:   i,
			Duration: d,
			Reason:   ReasonNoPlacement,
		}
	}
	s.logger.Warn("section not fully placed",
		zap.String("course", course.ID),
		zap.Int("section", section),
		zap.Error(appErrors.ErrPlacementExhausted))
	return out, nil
}

// tryDistribution places block i on dist[i] and stops at the first block that
// cannot be placed. Unplaced blocks are returned as sessions without placement.
func (s *Scheduler) tryDistribution(course *model.Course, section int, lengths []int, dist Distribution) ([]*model.Session, bool, error) {
	sessions := make([]*model.Session, len(lengths))
	complete := true
	for i, d := range lengths {
		sessions[i] = &model.Session{CourseID: course.ID, Section: section, Number: i, Duration: d}
		if !complete {
			continue
		}
		p := s.findOnDay(s.tracker, course, d, dist[i])
		if p == nil {
			complete = false
			continue
		}
		if err := s.tracker.Book(p.RoomID, p.LecturerID, p.Index, d); err != nil {
			return nil, false, err
		}
		sessions[i].Placement = p
	}
	return sessions, complete, nil
}

func (s *Scheduler) rollback(sessions []*model.Session) error {
	for _, sess := range sessions {
		if !sess.Placed() {
			continue
		}
		p := sess.Placement
		if err := s.tracker.Unbook(p.RoomID, p.LecturerID, p.Index, sess.Duration); err != nil {
			return err
		}
		sess.Placement = nil
	}
	return nil
}

// findOnDay scans one weekday chronologically for the first usable start.
func (s *Scheduler) findOnDay(t *Tracker, course *model.Course, duration int, day model.Weekday) *model.Placement {
	for _, start := range s.grid.DaySlots(day) {
		if p := s.placeAt(t, course, start, duration); p != nil {
			return p
		}
	}
	return nil
}

// findAnywhere scans the whole universe, every weekday included.
func (s *Scheduler) findAnywhere(t *Tracker, course *model.Course, duration int) *model.Placement {
	for start := 0; start < s.grid.Len(); start++ {
		if p := s.placeAt(t, course, start, duration); p != nil {
			return p
		}
	}
	return nil
}

// placeAt finds the first room, then the first lecturer, free for the whole run.
func (s *Scheduler) placeAt(t *Tracker, course *model.Course, start int, duration int) *model.Placement {
	if !s.grid.Fits(start, duration) {
		return nil
	}
	for _, room := range s.roomsFor(course) {
		if !t.Rooms.RunFree(room.ID, start, duration) {
			continue
		}
		for _, lecturer := range s.index.LecturersFor(course.ID) {
			if t.Lecturers.RunFree(lecturer.ID, start, duration) {
				return &model.Placement{
					Start:      s.grid.Slot(start),
					Index:      start,
					RoomID:     room.ID,
					LecturerID: lecturer.ID,
				}
			}
		}
	}
	return nil
}

// roomsFor lists rooms of the course's type, honouring the capacity factor.
func (s *Scheduler) roomsFor(course *model.Course) []*model.Room {
	rooms := s.index.RoomsOfType(course.RoomType)
	if s.cfg.CapacityFactor <= 0 {
		return rooms
	}
	expected := float64(course.StudentsPerSection()) * s.cfg.CapacityFactor
	var fitting []*model.Room
	for _, r := range rooms {
		if float64(r.Capacity) >= expected {
			fitting = append(fitting, r)
		}
	}
	return fitting
}
