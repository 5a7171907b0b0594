package scheduler

import (
	"github.com/rhyrak/go-timetable/pkg/model"
)

type Configuration struct {
	Days          []model.Weekday
	OpeningHour   int
	ClosingHour   int
	BlackoutDay   model.Weekday
	BlackoutStart int
	BlackoutEnd   int
	// PartialCommit keeps bookings made by an abandoned weekday distribution
	// instead of rolling them back.
	PartialCommit bool
	// CapacityFactor > 0 requires room capacity >= factor * students per section.
	CapacityFactor float64
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		Days:          model.Weekdays,
		OpeningHour:   8,
		ClosingHour:   16,
		BlackoutDay:   model.Tuesday,
		BlackoutStart: 10, // Tuesday 10:00-12:00 is kept free
		BlackoutEnd:   12,
		PartialCommit: false,
	}
}

// Reasons attached to placeholder sessions.
const (
	ReasonNoPlacement = "no suitable time slot, room, or lecturer found on a preferred day"
	ReasonUnresolved  = "unable to find suitable time slot, room, or lecturer"
)
