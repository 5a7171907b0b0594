package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

// PostgresStore persists timetables in a single table.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the timetables table when missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS timetables (
	id TEXT PRIMARY KEY,
	valid BOOLEAN NOT NULL,
	report TEXT NOT NULL,
	data TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migrate timetables: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	const query = `
INSERT INTO timetables (id, valid, report, data, created_at)
VALUES (:id, :valid, :report, :data, :created_at)`
	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("insert timetable: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM timetables ORDER BY created_at DESC, id ASC`
	ids := []string{}
	if err := s.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}
	return ids, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	const query = `SELECT id, valid, report, data, created_at FROM timetables WHERE id = $1`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clonef(appErrors.ErrNotFound, "timetable %q not found", id)
		}
		return nil, fmt.Errorf("get timetable: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM timetables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	if n == 0 {
		return appErrors.Clonef(appErrors.ErrNotFound, "timetable %q not found", id)
	}
	return nil
}
