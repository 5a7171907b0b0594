package csvio

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// ExportTimetable writes one row per session to the CSV file at path,
// replacing any existing file, and returns the path.
func ExportTimetable(rows []*model.TimetableRow, path string) (string, error) {
	return path, exportFile(&rows, path)
}

// ExportManual writes the sessions left for manual resolution.
func ExportManual(manual []model.ManualResolution, path string) (string, error) {
	return path, exportFile(&manual, path)
}

func exportFile(rows any, path string) error {
	// Remove file if exists
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(rows, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ExportTimetableString renders the rows as CSV text.
func ExportTimetableString(rows []*model.TimetableRow) (string, error) {
	return gocsv.MarshalString(&rows)
}

// WriteTimetable streams the rows as CSV.
func WriteTimetable(w io.Writer, rows []*model.TimetableRow) error {
	return gocsv.Marshal(&rows, w)
}

// ReadTimetable parses a previously exported timetable.
func ReadTimetable(r io.Reader, delim rune) ([]*model.TimetableRow, error) {
	return read[model.TimetableRow](r, delim, "timetable")
}

// PrintTimetable prints the weekly timetable grouped by course, placed sessions
// in week order, then every placeholder with its reason.
func PrintTimetable(w io.Writer, tt *model.Timetable) {
	type line struct {
		key  model.SectionKey
		sess *model.Session
	}
	var lines []line
	for _, key := range tt.Keys() {
		sessions, _ := tt.Get(key)
		for _, s := range sessions {
			lines = append(lines, line{key, s})
		}
	}
	slices.SortStableFunc(lines, func(a, b line) int {
		if c := strings.Compare(a.key.CourseID, b.key.CourseID); c != 0 {
			return c
		}
		if c := cmp.Compare(a.key.Section, b.key.Section); c != 0 {
			return c
		}
		switch {
		case a.sess.Placed() && b.sess.Placed():
			pa, pb := a.sess.Placement.Start, b.sess.Placement.Start
			if pa.Before(pb) {
				return -1
			}
			if pb.Before(pa) {
				return 1
			}
			return 0
		case a.sess.Placed():
			return -1
		case b.sess.Placed():
			return 1
		}
		return 0
	})

	seen := make(map[string]bool)
	for _, l := range lines {
		if !seen[l.key.CourseID] {
			seen[l.key.CourseID] = true
			id := l.key.CourseID
			fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", max(0, 32-len(id))/2), id, strings.Repeat("-", (max(0, 32-len(id))+1)/2))
		}
		if !l.sess.Placed() {
			fmt.Fprintf(w, "  s%-3d %-12s %-6s %dh  %s\n", l.key.Section, "unplaced", "", l.sess.Duration, l.sess.Reason)
			continue
		}
		p := l.sess.Placement
		fmt.Fprintf(w, "  s%-3d %-12s %-6s %dh  %-10s %s\n", l.key.Section, p.Start.Day, p.Start.Clock(), l.sess.Duration, p.RoomID, p.LecturerID)
	}
	fmt.Fprintf(w, "Printed rows: %d\n", len(lines))
}
