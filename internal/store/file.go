package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

const (
	timetableSuffix = "-timetable.csv"
	metaSuffix      = "-meta.yaml"
)

// FileStore writes <id>-timetable.csv plus a YAML sidecar with the report.
type FileStore struct {
	dir   string
	mutex sync.RWMutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Save(_ context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	meta, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode timetable meta: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := os.WriteFile(s.path(rec.ID, timetableSuffix), []byte(rec.Data), 0o644); err != nil {
		return fmt.Errorf("write timetable: %w", err)
	}
	if err := os.WriteFile(s.path(rec.ID, metaSuffix), meta, 0o644); err != nil {
		return fmt.Errorf("write timetable meta: %w", err)
	}
	return nil
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}
	type entry struct {
		id  string
		mod time.Time
	}
	var entries []entry
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		id, ok := strings.CutSuffix(file.Name(), timetableSuffix)
		if !ok {
			continue
		}
		info, err := file.Info()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{id, info.ModTime()})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		if c := b.mod.Compare(a.mod); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})

	ids := []string{}
	for _, e := range entries {
		ids = append(ids, e.id)
	}
	return ids, nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Record, error) {
	if !validID(id) {
		return nil, appErrors.Clonef(appErrors.ErrNotFound, "timetable %q not found", id)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, err := os.ReadFile(s.path(id, timetableSuffix))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, appErrors.Clonef(appErrors.ErrNotFound, "timetable %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("read timetable: %w", err)
	}

	rec := &Record{}
	meta, err := os.ReadFile(s.path(id, metaSuffix))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(meta, rec); err != nil {
			return nil, fmt.Errorf("parse timetable meta: %w", err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read timetable meta: %w", err)
	}
	rec.ID = id
	rec.Data = string(data)
	return rec, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if !validID(id) {
		return appErrors.Clonef(appErrors.ErrNotFound, "timetable %q not found", id)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := os.Remove(s.path(id, timetableSuffix))
	if errors.Is(err, fs.ErrNotExist) {
		return appErrors.Clonef(appErrors.ErrNotFound, "timetable %q not found", id)
	}
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	if err := os.Remove(s.path(id, metaSuffix)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete timetable meta: %w", err)
	}
	return nil
}

// ids are path components.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

func (s *FileStore) path(id string, suffix string) string {
	return filepath.Join(s.dir, id+suffix)
}
