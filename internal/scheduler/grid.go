package scheduler

import (
	"slices"

	"github.com/rhyrak/go-timetable/pkg/model"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

// Grid is the ordered universe of schedulable hourly slots. Blackout hours have
// no slot at all.
type Grid struct {
	slots []model.TimeSlot
	index map[model.TimeSlot]int
	days  map[model.Weekday][]int
	cfg   *Configuration
}

// NewGrid generates every slot from the opening through the closing hour on each
// configured day in week order, skipping the blackout window.
func NewGrid(cfg *Configuration) (*Grid, error) {
	if cfg.OpeningHour < 0 || cfg.ClosingHour > 23 || cfg.OpeningHour > cfg.ClosingHour {
		return nil, appErrors.Clonef(appErrors.ErrValidation, "invalid opening hours %d-%d", cfg.OpeningHour, cfg.ClosingHour)
	}
	if len(cfg.Days) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grid needs at least one day")
	}
	g := &Grid{
		index: make(map[model.TimeSlot]int),
		days:  make(map[model.Weekday][]int),
		cfg:   cfg,
	}
	for _, day := range model.Weekdays {
		if !slices.Contains(cfg.Days, day) {
			continue
		}
		g.days[day] = []int{}
		for hour := cfg.OpeningHour; hour <= cfg.ClosingHour; hour++ {
			if g.InBlackout(day, hour) {
				continue
			}
			slot := model.TimeSlot{Day: day, Hour: hour}
			g.index[slot] = len(g.slots)
			g.days[day] = append(g.days[day], len(g.slots))
			g.slots = append(g.slots, slot)
		}
	}
	return g, nil
}

// InBlackout reports whether the hour falls inside the kept-free window.
func (g *Grid) InBlackout(day model.Weekday, hour int) bool {
	return day == g.cfg.BlackoutDay && hour >= g.cfg.BlackoutStart && hour < g.cfg.BlackoutEnd
}

func (g *Grid) Len() int {
	return len(g.slots)
}

// Slots returns a copy of the ordered slot universe.
func (g *Grid) Slots() []model.TimeSlot {
	out := make([]model.TimeSlot, len(g.slots))
	copy(out, g.slots)
	return out
}

func (g *Grid) Slot(i int) model.TimeSlot {
	return g.slots[i]
}

// Index returns the position of (day, hour) in the universe.
func (g *Grid) Index(day model.Weekday, hour int) (int, bool) {
	i, ok := g.index[model.TimeSlot{Day: day, Hour: hour}]
	return i, ok
}

// DaySlots returns the slot positions of one weekday in chronological order.
func (g *Grid) DaySlots(day model.Weekday) []int {
	return g.days[day]
}

// Days returns the configured weekdays in week order.
func (g *Grid) Days() []model.Weekday {
	var days []model.Weekday
	for _, d := range model.Weekdays {
		if _, ok := g.days[d]; ok {
			days = append(days, d)
		}
	}
	return days
}

// Fits reports whether n slots starting at start form one contiguous block on a
// single weekday. A run across the blackout window fails because its hours are
// not consecutive.
func (g *Grid) Fits(start int, n int) bool {
	if n < 1 || start < 0 || start+n > len(g.slots) {
		return false
	}
	first := g.slots[start]
	for i := 1; i < n; i++ {
		s := g.slots[start+i]
		if s.Day != first.Day || s.Hour != first.Hour+i {
			return false
		}
	}
	return true
}
