package scheduler

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Conflict dimensions.
const (
	DimensionRoom        = "ROOM"
	DimensionLecturer    = "LECTURER"
	DimensionBoundary    = "BOUNDARY"
	DimensionEligibility = "ELIGIBILITY"
	DimensionDuration    = "DURATION"
)

// Conflict points at one placed session that breaks an invariant.
type Conflict struct {
	Key       model.SectionKey
	Session   int
	Dimension string
	Reason    string
}

// DetectConflicts replays every placed session into an empty tracker in
// timetable order. Sessions that collide with an earlier one, leave their
// weekday, do not match their block length, or no longer match room type and
// lecturer preference are reported and left out of the replay. The replay tracker is returned for Resolve.
func (s *Scheduler) DetectConflicts(tt *model.Timetable) ([]Conflict, *Tracker) {
	replay := NewTracker(s.index.Rooms, s.index.Lecturers, s.grid.Len())
	var conflicts []Conflict
	for _, key := range tt.Keys() {
		sessions, _ := tt.Get(key)
		course, known := s.index.Course(key.CourseID)
		for i, sess := range sessions {
			if !sess.Placed() {
				continue
			}
			dim, reason := s.check(replay, course, known, sess)
			if dim != "" {
				conflicts = append(conflicts, Conflict{Key: key, Session: i, Dimension: dim, Reason: reason})
				continue
			}
			p := sess.Placement
			if err := replay.Book(p.RoomID, p.LecturerID, p.Index, sess.Duration); err != nil {
				conflicts = append(conflicts, Conflict{Key: key, Session: i, Dimension: DimensionBoundary, Reason: err.Error()})
			}
		}
	}
	return conflicts, replay
}

func (s *Scheduler) check(t *Tracker, course *model.Course, known bool, sess *model.Session) (string, string) {
	p := sess.Placement
	if !known {
		return DimensionEligibility, fmt.Sprintf("unknown course %q", sess.CourseID)
	}
	if want := SessionLength(course.ContactHours, sess.Number); sess.Duration != want {
		return DimensionDuration, fmt.Sprintf("session %d of %s lasts %dh, block length is %dh", sess.Number, course.ID, sess.Duration, want)
	}
	idx, ok := s.grid.Index(p.Start.Day, p.Start.Hour)
	if !ok || idx != p.Index || !s.grid.Fits(idx, sess.Duration) {
		return DimensionBoundary, fmt.Sprintf("%s for %dh leaves the day or crosses the blackout", p.Start, sess.Duration)
	}
	room, ok := s.index.Room(p.RoomID)
	if !ok || room.Type != course.RoomType {
		return DimensionEligibility, fmt.Sprintf("room %q is not a %s room", p.RoomID, course.RoomType)
	}
	lecturer, ok := s.index.Lecturer(p.LecturerID)
	if !ok || !lecturer.Prefers(course.ID) {
		return DimensionEligibility, fmt.Sprintf("lecturer %q does not prefer %s", p.LecturerID, course.ID)
	}
	if !t.Rooms.RunFree(p.RoomID, p.Index, sess.Duration) {
		return DimensionRoom, fmt.Sprintf("room %s double booked at %s", p.RoomID, p.Start)
	}
	if !t.Lecturers.RunFree(p.LecturerID, p.Index, sess.Duration) {
		return DimensionLecturer, fmt.Sprintf("lecturer %s double booked at %s", p.LecturerID, p.Start)
	}
	return "", ""
}

// Resolve moves every conflicting session to the first free (slot, room,
// lecturer) anywhere in the week, using the replay tracker from DetectConflicts.
// Sessions that cannot be moved become placeholders and are returned for manual
// resolution. The scheduler adopts the replay tracker.
func (s *Scheduler) Resolve(tt *model.Timetable, conflicts []Conflict, replay *Tracker) ([]model.ManualResolution, error) {
	var manual []model.ManualResolution
	for _, c := range conflicts {
		sessions, _ := tt.Get(c.Key)
		sess := sessions[c.Session]
		course, ok := s.index.Course(c.Key.CourseID)

		var p *model.Placement
		duration := sess.Duration
		if ok {
			if d := SessionLength(course.ContactHours, sess.Number); d > 0 {
				duration = d
			}
			p = s.findAnywhere(replay, course, duration)
		}
		if p == nil {
			sess.Placement = nil
			sess.Reason = ReasonUnresolved
			manual = append(manual, model.ManualResolution{
				CourseID: c.Key.CourseID,
				Section:  c.Key.Section,
				Session:  sess.Number,
				Reason:   ReasonUnresolved,
			})
			s.logger.Warn("conflict needs manual resolution",
				zap.String("course", c.Key.CourseID),
				zap.Int("section", c.Key.Section),
				zap.Int("session", c.Session),
				zap.String("dimension", c.Dimension))
			continue
		}
		if err := replay.Book(p.RoomID, p.LecturerID, p.Index, duration); err != nil {
			return manual, err
		}
		sess.Placement = p
		sess.Duration = duration
		sess.Reason = ""
		s.logger.Info("conflict resolved",
			zap.String("course", c.Key.CourseID),
			zap.Int("section", c.Key.Section),
			zap.Int("session", c.Session),
			zap.Stringer("slot", p.Start))
	}
	s.tracker = replay
	return manual, nil
}

// Validate checks the timetable for incomplete sections and collisions.
// Returns false and a message for invalid timetables.
func Validate(courses []*model.Course, tt *model.Timetable) (bool, string) {
	var message string
	valid := true

	var incomplete []string
	for _, c := range courses {
		required := c.RequiredSessions()
		for section := 0; section < c.Sections; section++ {
			key := model.SectionKey{CourseID: c.ID, Section: section}
			sessions, _ := tt.Get(key)
			placed := tt.PlacedCount(key)
			hours := placedHours(sessions)
			if len(sessions) < required || placed < len(sessions) || hours != c.ContactHours {
				incomplete = append(incomplete, fmt.Sprintf("    %s section %d: %d/%d sessions placed, %d/%d hours\n", c.ID, section, placed, required, hours, c.ContactHours))
			}
		}
	}
	if len(incomplete) > 0 {
		valid = false
		message += fmt.Sprintf("- There are %d incomplete sections:\n", len(incomplete))
		message += strings.Join(incomplete, "")
	}

	roomCollisions := collisions(tt, func(p *model.Placement) string { return p.RoomID })
	lecturerCollisions := collisions(tt, func(p *model.Placement) string { return p.LecturerID })
	for _, c := range roomCollisions {
		message += "- Room " + c + " assigned multiple times\n"
	}
	for _, c := range lecturerCollisions {
		message += "- Lecturer " + c + " assigned multiple times\n"
	}
	if len(roomCollisions) > 0 || len(lecturerCollisions) > 0 {
		valid = false
	}

	header := statusLine(len(incomplete) == 0, "Section completeness check.") +
		statusLine(len(roomCollisions) == 0, "Room collision check.") +
		statusLine(len(lecturerCollisions) == 0, "Lecturer collision check.")
	return valid, header + message
}

func placedHours(sessions []*model.Session) int {
	return lo.SumBy(sessions, func(s *model.Session) int {
		if !s.Placed() {
			return 0
		}
		return s.Duration
	})
}

func statusLine(ok bool, check string) string {
	if ok {
		return "[  OK]: " + check + "\n"
	}
	return "[FAIL]: " + check + "\n"
}

// collisions lists "<resource> at slot <n>" for every slot a resource holds twice.
// Sessions off the grid are left to DetectConflicts.
func collisions(tt *model.Timetable, resource func(p *model.Placement) string) []string {
	type cell struct {
		id   string
		slot int
	}
	used := make(map[cell]bool)
	var out []string
	placed := lo.Filter(tt.Sessions(), func(sess *model.Session, _ int) bool {
		return sess.Placed() && sess.Placement.Index >= 0
	})
	for _, sess := range placed {
		for i := 0; i < sess.Duration; i++ {
			c := cell{id: resource(sess.Placement), slot: sess.Placement.Index + i}
			if used[c] {
				out = append(out, fmt.Sprintf("%s at slot %d", c.id, c.slot))
				continue
			}
			used[c] = true
		}
	}
	return out
}
