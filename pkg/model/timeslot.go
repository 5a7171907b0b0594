package model

import (
	"fmt"
	"strings"
)

type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
)

// Weekdays lists the teaching days in week order.
var Weekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}

func (d Weekday) String() string {
	if d < 0 || int(d) >= len(weekdayNames) {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts full or three-letter day names, case insensitive.
func ParseWeekday(name string) (Weekday, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		lower := strings.ToLower(n)
		if name == lower || name == lower[:3] {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// TimeSlot is one schedulable hour, ordered by (day, hour).
type TimeSlot struct {
	Day  Weekday
	Hour int
}

func (t TimeSlot) String() string {
	return fmt.Sprintf("%s %s", t.Day, t.Clock())
}

// Clock renders the starting hour as "15:04".
func (t TimeSlot) Clock() string {
	return fmt.Sprintf("%02d:00", t.Hour)
}

// Before reports whether t comes strictly earlier in the week than o.
func (t TimeSlot) Before(o TimeSlot) bool {
	if t.Day != o.Day {
		return t.Day < o.Day
	}
	return t.Hour < o.Hour
}
