package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Stats summarises one run.
type Stats struct {
	Courses           int
	Sections          int
	Cliques           int
	Edges             int
	SessionsPlaced    int
	Placeholders      int
	Repaired          int
	Conflicts         int
	ManualResolutions int
}

// Recorder receives the outcome of every run, e.g. for metrics.
type Recorder interface {
	Record(stats Stats, elapsed time.Duration, valid bool)
}

// Result is everything a run produces.
type Result struct {
	Timetable *model.Timetable
	Cliques   []Clique
	Conflicts []Conflict
	Manual    []model.ManualResolution
	Valid     bool
	Report    string
	Stats     Stats
}

type Engine struct {
	cfg      *Configuration
	logger   *zap.Logger
	recorder Recorder
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

func NewEngine(cfg *Configuration, opts ...Option) *Engine {
	if cfg == nil {
		cfg = NewDefaultConfiguration()
	}
	e := &Engine{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the whole pipeline: index, clash graph, clique ordering, greedy
// placement, repair, conflict resolution and validation. Only structural data
// problems and tracker invariant violations are returned as errors; sessions
// that cannot be placed end up as placeholders in the timetable. ctx is checked
// between courses.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()

	idx, err := NewIndex(in)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(e.cfg)
	if err != nil {
		return nil, err
	}

	graph := BuildConflictGraph(idx.Enrollments)
	cliques := OrderCliques(graph.MaximalCliques(), idx.AdvisedStudents)
	e.logger.Info("conflict graph built",
		zap.Int("courses", len(graph.Nodes())),
		zap.Int("edges", graph.EdgeCount()),
		zap.Int("cliques", len(cliques)))

	sched := NewScheduler(e.cfg, grid, idx, e.logger)
	tt := model.NewTimetable()
	visited := make(map[string]bool)
	for _, clique := range cliques {
		for _, id := range clique {
			if visited[id] {
				continue
			}
			visited[id] = true
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			course, _ := idx.Course(id)
			for section := 0; section < course.Sections; section++ {
				sessions, err := sched.ScheduleSection(course, section)
				if err != nil {
					return nil, err
				}
				tt.Set(model.SectionKey{CourseID: id, Section: section}, sessions)
			}
		}
	}

	repaired, err := sched.Repair(tt)
	if err != nil {
		return nil, err
	}

	conflicts, replay := sched.DetectConflicts(tt)
	var manual []model.ManualResolution
	if len(conflicts) > 0 {
		manual, err = sched.Resolve(tt, conflicts, replay)
		if err != nil {
			return nil, err
		}
	}

	valid, report := Validate(idx.Courses, tt)
	res := &Result{
		Timetable: tt,
		Cliques:   cliques,
		Conflicts: conflicts,
		Manual:    manual,
		Valid:     valid,
		Report:    report,
		Stats: Stats{
			Courses:           len(idx.Courses),
			Sections:          tt.Len(),
			Cliques:           len(cliques),
			Edges:             graph.EdgeCount(),
			Repaired:          repaired,
			Conflicts:         len(conflicts),
			ManualResolutions: len(manual),
		},
	}
	for _, s := range tt.Sessions() {
		if s.Placed() {
			res.Stats.SessionsPlaced++
		} else {
			res.Stats.Placeholders++
		}
	}

	elapsed := time.Since(start)
	if e.recorder != nil {
		e.recorder.Record(res.Stats, elapsed, valid)
	}
	e.logger.Info("timetable generated",
		zap.Bool("valid", valid),
		zap.Int("sessions_placed", res.Stats.SessionsPlaced),
		zap.Int("placeholders", res.Stats.Placeholders),
		zap.Int("repaired", repaired),
		zap.Duration("elapsed", elapsed))
	return res, nil
}

// Check validates an existing timetable against the input tables without
// changing it. Conflicts are reported, not resolved.
func (e *Engine) Check(in Input, rows []*model.TimetableRow) (*Result, error) {
	idx, err := NewIndex(in)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(e.cfg)
	if err != nil {
		return nil, err
	}
	tt, err := grid.Restore(rows)
	if err != nil {
		return nil, err
	}

	sched := NewScheduler(e.cfg, grid, idx, e.logger)
	conflicts, _ := sched.DetectConflicts(tt)
	valid, report := Validate(idx.Courses, tt)
	for _, c := range conflicts {
		report += fmt.Sprintf("- %s %s section %d session %d: %s\n", c.Dimension, c.Key.CourseID, c.Key.Section, c.Session, c.Reason)
	}
	return &Result{
		Timetable: tt,
		Conflicts: conflicts,
		Valid:     valid && len(conflicts) == 0,
		Report:    report,
		Stats: Stats{
			Courses:   len(idx.Courses),
			Sections:  tt.Len(),
			Conflicts: len(conflicts),
		},
	}, nil
}
