package scheduler

import (
	"slices"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Clique is a set of courses that pairwise share at least one student.
type Clique []string

// Graph is the undirected clash graph. Vertices are sorted by course id so that
// every traversal is reproducible.
type Graph struct {
	nodes []string
	index map[string]int
	adj   []map[int]int
}

// BuildConflictGraph weighs every pair of courses by the number of students
// enrolled in both. Only positive weights become edges.
func BuildConflictGraph(enrollments []*model.Enrollment) *Graph {
	students := make(map[string]map[string]struct{})
	for _, e := range enrollments {
		courses, ok := students[e.StudentID]
		if !ok {
			courses = make(map[string]struct{})
			students[e.StudentID] = courses
		}
		courses[e.CourseID] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, e := range enrollments {
		seen[e.CourseID] = struct{}{}
	}
	g := &Graph{index: make(map[string]int, len(seen))}
	for id := range seen {
		g.nodes = append(g.nodes, id)
	}
	slices.Sort(g.nodes)
	g.adj = make([]map[int]int, len(g.nodes))
	for i, id := range g.nodes {
		g.index[id] = i
		g.adj[i] = make(map[int]int)
	}

	// Counting pairs per student equals the size of each pairwise intersection.
	for _, courses := range students {
		ids := make([]int, 0, len(courses))
		for c := range courses {
			ids = append(ids, g.index[c])
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				g.adj[ids[i]][ids[j]]++
				g.adj[ids[j]][ids[i]]++
			}
		}
	}
	return g
}

// Nodes returns every course present in the enrollment data, sorted.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.nodes)
}

func (g *Graph) HasEdge(a string, b string) bool {
	return g.Weight(a, b) > 0
}

// Weight is the clash count between two courses.
func (g *Graph) Weight(a string, b string) int {
	i, ok := g.index[a]
	if !ok {
		return 0
	}
	j, ok := g.index[b]
	if !ok || i == j {
		return 0
	}
	return g.adj[i][j]
}

// Neighbors lists the courses clashing with id, sorted.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.adj[i]))
	for j := range g.adj[i] {
		out = append(out, g.nodes[j])
	}
	slices.Sort(out)
	return out
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, nb := range g.adj {
		n += len(nb)
	}
	return n / 2
}

// MaximalCliques enumerates every maximal clique with Bron-Kerbosch and Tomita
// pivoting. Isolated courses come out as singleton cliques.
func (g *Graph) MaximalCliques() []Clique {
	if len(g.nodes) == 0 {
		return nil
	}
	p := make([]int, len(g.nodes))
	for i := range p {
		p[i] = i
	}
	var found [][]int
	g.bronKerbosch(nil, p, nil, &found)

	cliques := make([]Clique, len(found))
	for i, members := range found {
		c := make(Clique, len(members))
		for j, v := range members {
			c[j] = g.nodes[v]
		}
		slices.Sort(c)
		cliques[i] = c
	}
	return cliques
}

func (g *Graph) bronKerbosch(r []int, p []int, x []int, found *[][]int) {
	if len(p) == 0 && len(x) == 0 {
		*found = append(*found, slices.Clone(r))
		return
	}

	pivot, best := -1, -1
	for _, set := range [][]int{p, x} {
		for _, u := range set {
			if n := g.countNeighbors(u, p); n > best {
				pivot, best = u, n
			}
		}
	}

	candidates := make([]int, 0, len(p))
	for _, v := range p {
		if _, adjacent := g.adj[pivot][v]; !adjacent {
			candidates = append(candidates, v)
		}
	}

	for _, v := range candidates {
		g.bronKerbosch(append(slices.Clone(r), v), g.restrict(p, v), g.restrict(x, v), found)
		p = slices.DeleteFunc(slices.Clone(p), func(w int) bool { return w == v })
		i, _ := slices.BinarySearch(x, v)
		x = slices.Insert(slices.Clone(x), i, v)
	}
}

// restrict keeps the members of set adjacent to v; set order is preserved.
func (g *Graph) restrict(set []int, v int) []int {
	out := make([]int, 0, len(set))
	for _, w := range set {
		if _, ok := g.adj[v][w]; ok {
			out = append(out, w)
		}
	}
	return out
}

func (g *Graph) countNeighbors(u int, set []int) int {
	n := 0
	for _, w := range set {
		if _, ok := g.adj[u][w]; ok {
			n++
		}
	}
	return n
}
