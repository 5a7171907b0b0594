package scheduler

import (
	"github.com/rhyrak/go-timetable/pkg/model"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

// Occupancy records, per resource, which slots of the universe are taken.
type Occupancy struct {
	kind  string
	slots int
	busy  map[string][]bool
}

// NewOccupancy creates an all-free grid for the given resource ids.
func NewOccupancy(kind string, ids []string, slots int) *Occupancy {
	o := &Occupancy{kind: kind, slots: slots, busy: make(map[string][]bool, len(ids))}
	for _, id := range ids {
		o.busy[id] = make([]bool, slots)
	}
	return o
}

// IsFree checks if the resource is unoccupied at slot.
// Unknown resources and slots outside the universe are never free.
func (o *Occupancy) IsFree(id string, slot int) bool {
	row, ok := o.busy[id]
	if !ok || slot < 0 || slot >= o.slots {
		return false
	}
	return !row[slot]
}

// RunFree checks n consecutive slots starting at start.
func (o *Occupancy) RunFree(id string, start int, n int) bool {
	if n < 1 {
		return false
	}
	for i := start; i < start+n; i++ {
		if !o.IsFree(id, i) {
			return false
		}
	}
	return true
}

// Reserve marks n consecutive slots occupied. Nothing is marked unless the whole
// run is free.
func (o *Occupancy) Reserve(id string, start int, n int) error {
	if err := o.check(id, start, n); err != nil {
		return err
	}
	row := o.busy[id]
	for i := start; i < start+n; i++ {
		if row[i] {
			return appErrors.Clonef(appErrors.ErrDoubleBooking, "%s %s already booked at slot %d", o.kind, id, i)
		}
	}
	for i := start; i < start+n; i++ {
		row[i] = true
	}
	return nil
}

// Release frees a previously reserved run.
func (o *Occupancy) Release(id string, start int, n int) error {
	if err := o.check(id, start, n); err != nil {
		return err
	}
	row := o.busy[id]
	for i := start; i < start+n; i++ {
		row[i] = false
	}
	return nil
}

// Busy returns the occupied slot positions of a resource.
func (o *Occupancy) Busy(id string) []int {
	var out []int
	for i, taken := range o.busy[id] {
		if taken {
			out = append(out, i)
		}
	}
	return out
}

func (o *Occupancy) check(id string, start int, n int) error {
	if _, ok := o.busy[id]; !ok {
		return appErrors.Clonef(appErrors.ErrDataInconsistency, "unknown %s %q", o.kind, id)
	}
	if n < 1 || start < 0 || start+n > o.slots {
		return appErrors.Clonef(appErrors.ErrOutOfRange, "%s %s: run [%d,%d) outside %d slots", o.kind, id, start, start+n, o.slots)
	}
	return nil
}

// Tracker holds room and lecturer occupancy side by side. It is the only place
// that decides whether a resource is free; it has no locks because the engine
// runs sequentially.
type Tracker struct {
	Rooms     *Occupancy
	Lecturers *Occupancy
}

func NewTracker(rooms []*model.Room, lecturers []*model.Lecturer, slots int) *Tracker {
	roomIDs := make([]string, len(rooms))
	for i, r := range rooms {
		roomIDs[i] = r.ID
	}
	lecturerIDs := make([]string, len(lecturers))
	for i, l := range lecturers {
		lecturerIDs[i] = l.ID
	}
	return &Tracker{
		Rooms:     NewOccupancy("room", roomIDs, slots),
		Lecturers: NewOccupancy("lecturer", lecturerIDs, slots),
	}
}

// Book reserves the run for both the room and the lecturer, or for neither.
func (t *Tracker) Book(roomID string, lecturerID string, start int, n int) error {
	if err := t.Rooms.Reserve(roomID, start, n); err != nil {
		return err
	}
	if err := t.Lecturers.Reserve(lecturerID, start, n); err != nil {
		_ = t.Rooms.Release(roomID, start, n)
		return err
	}
	return nil
}

// Unbook clears a booking made with Book.
func (t *Tracker) Unbook(roomID string, lecturerID string, start int, n int) error {
	if err := t.Rooms.Release(roomID, start, n); err != nil {
		return err
	}
	return t.Lecturers.Release(lecturerID, start, n)
}
