package scheduler

import (
	"slices"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Repair visits every section of every catalog course and reschedules the ones
// with fewer placed sessions than required. Fresh sessions fill placeholders in
// order, matched by block number when possible. Surplus fresh sessions are
// appended only while the section stays within its contact hours; the rest are
// released. Returns the number of sections rescheduled.
func (s *Scheduler) Repair(tt *model.Timetable) (int, error) {
	touched := 0
	for _, course := range s.index.Courses {
		required := course.RequiredSessions()
		for section := 0; section < course.Sections; section++ {
			key := model.SectionKey{CourseID: course.ID, Section: section}
			existing, ok := tt.Get(key)
			if ok && tt.PlacedCount(key) >= required {
				continue
			}

			fresh, err := s.ScheduleSection(course, section)
			if err != nil {
				return touched, err
			}
			touched++

			if !ok {
				tt.Set(key, fresh)
				continue
			}
			merged, err := s.merge(course, existing, fresh)
			if err != nil {
				return touched, err
			}
			tt.Set(key, merged)

			s.logger.Debug("section repaired",
				zap.String("course", course.ID),
				zap.Int("section", section),
				zap.Int("placed", tt.PlacedCount(key)),
				zap.Int("required", required))
		}
	}
	return touched, nil
}

func (s *Scheduler) merge(course *model.Course, existing []*model.Session, fresh []*model.Session) ([]*model.Session, error) {
	used := make([]bool, len(fresh))
	take := func(number int) *model.Session {
		if number >= 0 && number < len(fresh) && !used[number] {
			used[number] = true
			return fresh[number]
		}
		for i := range fresh {
			if !used[i] {
				used[i] = true
				return fresh[i]
			}
		}
		return nil
	}

	merged := slices.Clone(existing)
	for i, sess := range merged {
		if sess.Placed() {
			continue
		}
		if f := take(sess.Number); f != nil {
			merged[i] = f
		}
	}

	budget := course.ContactHours
	for _, sess := range merged {
		if sess.Placed() {
			budget -= sess.Duration
		}
	}
	for i, f := range fresh {
		if used[i] || !f.Placed() {
			continue
		}
		if f.Duration <= budget {
			merged = append(merged, f)
			budget -= f.Duration
			continue
		}
		p := f.Placement
		if err := s.tracker.Unbook(p.RoomID, p.LecturerID, p.Index, f.Duration); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
