package scheduler

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// OrderCliques sorts cliques by total advised students, largest first, and the
// members of each clique by advised students, smallest first. Both sorts are
// stable so ties keep discovery order.
func OrderCliques(cliques []Clique, students func(courseID string) int) []Clique {
	ordered := make([]Clique, len(cliques))
	for i, c := range cliques {
		members := slices.Clone(c)
		slices.SortStableFunc(members, func(a, b string) int {
			return cmp.Compare(students(a), students(b))
		})
		ordered[i] = members
	}
	slices.SortStableFunc(ordered, func(a, b Clique) int {
		return cmp.Compare(CliqueSize(b, students), CliqueSize(a, students))
	})
	return ordered
}

// CliqueSize sums the advised students of every member.
func CliqueSize(c Clique, students func(courseID string) int) int {
	return lo.SumBy(c, students)
}
