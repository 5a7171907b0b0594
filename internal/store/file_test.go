package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/config"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "generated")
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	first := &Record{Valid: true, Report: "[  OK]: Section completeness check.\n", Data: "course_id,section\nA,0\n"}
	require.NoError(t, s.Save(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.FileExists(t, filepath.Join(dir, first.ID+"-timetable.csv"))

	second := &Record{ID: "manual-id", Data: "course_id,section\n"}
	require.NoError(t, s.Save(ctx, second))
	// Make ordering independent of filesystem timestamp resolution.
	older := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, first.ID+"-timetable.csv"), older, older))

	ids, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"manual-id", first.ID}, ids)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Data, got.Data)
	assert.Equal(t, first.Report, got.Report)
	assert.True(t, got.Valid)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))
}

func TestFileStoreNotFound(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"missing", "../etc/passwd", "", ".."} {
		_, err := s.Get(context.Background(), id)
		assert.ErrorIs(t, err, appErrors.ErrNotFound, id)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	rec := &Record{Data: "x"}
	require.NoError(t, s.Save(ctx, rec))
	require.NoError(t, s.Delete(ctx, rec.ID))
	assert.NoFileExists(t, filepath.Join(dir, rec.ID+"-timetable.csv"))
	assert.NoFileExists(t, filepath.Join(dir, rec.ID+"-meta.yaml"))

	assert.ErrorIs(t, s.Delete(ctx, rec.ID), appErrors.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "../x"), appErrors.ErrNotFound)
}

func TestFileStoreWithoutMeta(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1700000000-timetable.csv"), []byte("x"), 0o644))
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	got, err := s.Get(context.Background(), "1700000000")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Data)
	assert.Equal(t, "1700000000", got.ID)
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	s, err := New(context.Background(), config.StoreConfig{Driver: DriverFile}, dir)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	assert.DirExists(t, filepath.Join(dir, "generated"))

	_, err = New(context.Background(), config.StoreConfig{Driver: "mongo"}, dir)
	assert.Error(t, err)
}
