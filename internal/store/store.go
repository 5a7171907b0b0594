package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/rhyrak/go-timetable/pkg/config"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Record is one generated timetable.
type Record struct {
	ID        string    `db:"id" json:"id" yaml:"id"`
	Valid     bool      `db:"valid" json:"valid" yaml:"valid"`
	Report    string    `db:"report" json:"report" yaml:"report"`
	Data      string    `db:"data" json:"data" yaml:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt" yaml:"created_at"`
}

// Store keeps generated timetables addressable by id.
type Store interface {
	// Save assigns an id and creation time when missing.
	Save(ctx context.Context, rec *Record) error
	// List returns stored ids, newest first.
	List(ctx context.Context) ([]string, error)
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*Record, error)
	// Delete returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}

// New opens the store selected by cfg. File stores live under dataDir.
func New(ctx context.Context, cfg config.StoreConfig, dataDir string) (Store, error) {
	switch cfg.Driver {
	case "", DriverFile:
		return NewFileStore(filepath.Join(dataDir, "generated"))
	case DriverPostgres:
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s := NewPostgresStore(db)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
