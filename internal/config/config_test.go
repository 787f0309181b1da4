package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.True(t, c.Metrics.Enabled)
	assert.Equal(t, 3.0, c.Planner.DefaultHoursPerDay)
	assert.Equal(t, 0.5, c.Planner.MinHoursPerDay)
	assert.Equal(t, "study_plan.csv", c.Export.CSVFileName)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: dev
http:
  addr: ":9000"
planner:
  default_hours_per_day: 4.5
`), 0o644))
	t.Setenv("PLANNER_HTTP_ADDR", ":9100")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, ":9100", c.HTTP.Addr)
	assert.Equal(t, 4.5, c.Planner.DefaultHoursPerDay)
}

func TestLoadRejectsDefaultBelowMinimum(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PLANNER_PLANNER_DEFAULT_HOURS_PER_DAY", "0.25")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
