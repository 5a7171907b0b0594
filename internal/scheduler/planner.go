package scheduler

import (
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Distribution assigns one weekday to each session block, in block order.
type Distribution []model.Weekday

var preferredDistributions = map[int][]Distribution{
	1: {
		{model.Sunday},
		{model.Monday},
		{model.Tuesday},
		{model.Wednesday},
		{model.Thursday},
	},
	2: {
		{model.Sunday, model.Tuesday},
		{model.Monday, model.Wednesday},
		{model.Monday, model.Thursday},
		{model.Tuesday, model.Thursday},
	},
	3: {
		{model.Sunday, model.Tuesday, model.Thursday},
		{model.Monday, model.Wednesday, model.Thursday},
	},
}

// PreferredDistributions returns the weekday combinations to try, in order, for a
// course split into the given number of blocks. Other block counts get none.
func PreferredDistributions(blocks int) []Distribution {
	return preferredDistributions[blocks]
}

// SessionLength is the duration of the n-th (0-based) block of a course.
func SessionLength(contactHours int, n int) int {
	lengths := model.SessionLengths(contactHours)
	if n < 0 || n >= len(lengths) {
		return 0
	}
	return lengths[n]
}
