package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8, cfg.Grid.OpeningHour)
	assert.Equal(t, 16, cfg.Grid.ClosingHour)
	assert.Equal(t, "Tuesday", cfg.Grid.BlackoutDay)
	assert.Equal(t, ',', cfg.Input.Delimiter)
	assert.False(t, cfg.Scheduler.PartialCommit)
	assert.Equal(t, "file", cfg.Store.Driver)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timetable.yaml")
	content := []byte(`
input:
  delimiter: ";"
grid:
  closing_hour: 17
scheduler:
  partial_commit: true
output:
  format: YAML
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("TIMETABLE_SERVER_PORT", "9000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ';', cfg.Input.Delimiter)
	assert.Equal(t, 17, cfg.Grid.ClosingHour)
	assert.True(t, cfg.Scheduler.PartialCommit)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSchedulerConfiguration(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Grid.BlackoutDay = "wed"
	cfg.Grid.ClosingHour = 17
	cfg.Scheduler.PartialCommit = true
	cfg.Scheduler.CapacityFactor = 0.8

	sc, err := cfg.SchedulerConfiguration()
	require.NoError(t, err)
	assert.Equal(t, model.Wednesday, sc.BlackoutDay)
	assert.Equal(t, 17, sc.ClosingHour)
	assert.Equal(t, 10, sc.BlackoutStart)
	assert.True(t, sc.PartialCommit)
	assert.InDelta(t, 0.8, sc.CapacityFactor, 1e-9)
	assert.Equal(t, model.Weekdays, sc.Days)

	cfg.Grid.BlackoutDay = "Friday"
	_, err = cfg.SchedulerConfiguration()
	assert.Error(t, err)
}
