package scheduler

import (
	"strconv"
	"strings"

	"github.com/rhyrak/go-timetable/pkg/model"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

// Restore rebuilds a timetable from exported rows. Rows without a day become
// placeholders. A start that is not in the grid keeps Index -1 so that conflict
// detection reports it as a boundary problem.
func (g *Grid) Restore(rows []*model.TimetableRow) (*model.Timetable, error) {
	tt := model.NewTimetable()
	for i, row := range rows {
		key := model.SectionKey{CourseID: row.CourseID, Section: row.Section}
		sess := &model.Session{
			CourseID: row.CourseID,
			Section:  row.Section,
			Number:   row.Session,
			Duration: row.Duration,
			Reason:   row.Reason,
		}
		if row.Day != "" {
			p, err := g.placement(row)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "row "+strconv.Itoa(i+1))
			}
			sess.Placement = p
		}
		sessions, _ := tt.Get(key)
		tt.Set(key, append(sessions, sess))
	}
	return tt, nil
}

func (g *Grid) placement(row *model.TimetableRow) (*model.Placement, error) {
	day, err := model.ParseWeekday(row.Day)
	if err != nil {
		return nil, err
	}
	hh, _, _ := strings.Cut(row.Start, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return nil, err
	}
	slot := model.TimeSlot{Day: day, Hour: hour}
	index, ok := g.Index(day, hour)
	if !ok {
		index = -1
	}
	return &model.Placement{Start: slot, Index: index, RoomID: row.Room, LecturerID: row.Lecturer}, nil
}
