package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/internal/yamlio"
	"github.com/rhyrak/go-timetable/pkg/config"
	"github.com/rhyrak/go-timetable/pkg/logger"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// options holds flags shared by every command. Empty values fall back to config.
type options struct {
	configPath  string
	enrollments string
	courses     string
	rooms       string
	lecturers   string
	output      string
	format      string
	manual      string
	timetable   string
	print       bool
	partial     bool
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	cmdRoot := &cobra.Command{
		Use:          "timetable",
		Short:        "Greedy university course timetabler",
		Long:         "Places course sessions into weekly slots, rooms and lecturers\nusing clash cliques built from advised enrollments.",
		SilenceUsage: true,
	}
	cmdRoot.SetOut(out)
	cmdRoot.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (yaml, json or toml)")
	cmdRoot.PersistentFlags().StringVar(&opts.enrollments, "enrollments", "", "advised enrollments csv")
	cmdRoot.PersistentFlags().StringVar(&opts.courses, "courses", "", "course details csv")
	cmdRoot.PersistentFlags().StringVar(&opts.rooms, "rooms", "", "rooms csv")
	cmdRoot.PersistentFlags().StringVar(&opts.lecturers, "lecturers", "", "lecturer preferences csv")

	cmdGenerate := &cobra.Command{
		Use:   "generate",
		Short: "generate a timetable and export it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), opts, cmd.Flags().Changed("partial-commit"))
		},
	}
	cmdGenerate.Flags().StringVarP(&opts.output, "output", "o", "", "export path")
	cmdGenerate.Flags().StringVarP(&opts.format, "format", "f", "", "export format: csv or yaml")
	cmdGenerate.Flags().StringVar(&opts.manual, "manual", "", "csv path for sessions needing manual resolution")
	cmdGenerate.Flags().BoolVarP(&opts.print, "print", "p", false, "print the timetable grouped by course")
	cmdGenerate.Flags().BoolVar(&opts.partial, "partial-commit", false, "keep bookings of abandoned weekday distributions")
	cmdRoot.AddCommand(cmdGenerate)

	cmdCliques := &cobra.Command{
		Use:   "cliques",
		Short: "print clash cliques in processing order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCliques(cmd.OutOrStdout(), opts)
		},
	}
	cmdRoot.AddCommand(cmdCliques)

	cmdValidate := &cobra.Command{
		Use:   "validate",
		Short: "check an exported timetable against the input tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), opts)
		},
	}
	cmdValidate.Flags().StringVarP(&opts.timetable, "timetable", "t", "", "timetable csv or yaml to check (defaults to the configured output path)")
	cmdRoot.AddCommand(cmdValidate)

	return cmdRoot
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(opts *options) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.Input.Enrollments, opts.enrollments)
	override(&cfg.Input.Courses, opts.courses)
	override(&cfg.Input.Rooms, opts.rooms)
	override(&cfg.Input.Lecturers, opts.lecturers)
	override(&cfg.Output.Path, opts.output)
	override(&cfg.Output.Format, opts.format)

	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runGenerate(ctx context.Context, out io.Writer, opts *options, partialSet bool) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()
	if partialSet {
		cfg.Scheduler.PartialCommit = opts.partial
	}

	in, err := csvio.LoadInput(cfg.Input)
	if err != nil {
		log.Error("failed to load input", zap.Error(err))
		return err
	}
	sc, err := cfg.SchedulerConfiguration()
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := scheduler.NewEngine(sc, scheduler.WithLogger(log)).Run(ctx, in)
	if err != nil {
		log.Error("timetable generation failed", zap.Error(err))
		return err
	}
	elapsed := time.Since(start)

	var outPath string
	switch cfg.Output.Format {
	case "yaml", "yml":
		outPath, err = yamlio.Export(&yamlio.Document{
			Valid:    res.Valid,
			Report:   res.Report,
			Sessions: res.Timetable.Rows(),
			Manual:   res.Manual,
		}, cfg.Output.Path)
	case "", "csv":
		outPath, err = csvio.ExportTimetable(res.Timetable.Rows(), cfg.Output.Path)
	default:
		err = fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
	if err != nil {
		return err
	}
	if opts.manual != "" && len(res.Manual) > 0 {
		if _, err := csvio.ExportManual(res.Manual, opts.manual); err != nil {
			return err
		}
	}

	if opts.print {
		csvio.PrintTimetable(out, res.Timetable)
	}
	if res.Valid {
		fmt.Fprintln(out, "Passed all tests")
	} else {
		fmt.Fprintln(out, "Invalid timetable:")
	}
	fmt.Fprint(out, res.Report)
	for _, m := range res.Manual {
		fmt.Fprintf(out, "Manual resolution needed: %s section %d session %d: %s\n", m.CourseID, m.Section, m.Session, m.Reason)
	}
	fmt.Fprintf(out, "Cliques: %d\n", res.Stats.Cliques)
	fmt.Fprintf(out, "Sessions placed: %d\n", res.Stats.SessionsPlaced)
	fmt.Fprintf(out, "Placeholders: %d\n", res.Stats.Placeholders)
	fmt.Fprintf(out, "Timer: %f ms\n", float64(elapsed.Nanoseconds())/1000000.0)
	fmt.Fprintln(out, "Exported output to: "+outPath)
	return nil
}

func runCliques(out io.Writer, opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	in, err := csvio.LoadInput(cfg.Input)
	if err != nil {
		return err
	}
	idx, err := scheduler.NewIndex(in)
	if err != nil {
		return err
	}
	graph := scheduler.BuildConflictGraph(idx.Enrollments)
	cliques := scheduler.OrderCliques(graph.MaximalCliques(), idx.AdvisedStudents)
	for i, c := range cliques {
		fmt.Fprintf(out, "%3d %6d  %v\n", i+1, scheduler.CliqueSize(c, idx.AdvisedStudents), []string(c))
	}
	fmt.Fprintf(out, "Courses: %d, clashes: %d, cliques: %d\n", len(graph.Nodes()), graph.EdgeCount(), len(cliques))
	return nil
}

func runValidate(out io.Writer, opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Sync()

	path := opts.timetable
	if path == "" {
		path = cfg.Output.Path
	}
	rows, err := readTimetable(path)
	if err != nil {
		return err
	}

	in, err := csvio.LoadInput(cfg.Input)
	if err != nil {
		return err
	}
	sc, err := cfg.SchedulerConfiguration()
	if err != nil {
		return err
	}
	res, err := scheduler.NewEngine(sc, scheduler.WithLogger(log)).Check(in, rows)
	if err != nil {
		return err
	}
	fmt.Fprint(out, res.Report)
	if !res.Valid {
		return fmt.Errorf("timetable %s is invalid", path)
	}
	fmt.Fprintln(out, "Passed all tests")
	return nil
}

// readTimetable loads a CSV or YAML export, picked by file extension.
func readTimetable(path string) ([]*model.TimetableRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err := yamlio.Load(path)
		if err != nil {
			return nil, err
		}
		return doc.Sessions, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s, please make sure the file exists: %w", path, err)
	}
	defer f.Close()
	return csvio.ReadTimetable(f, ',')
}
