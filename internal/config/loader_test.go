package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agustinfitipaldi/blood/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
database: /tmp/test-blood.db
min_width: 100
min_height: 30
recent: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test-blood.db", cfg.Database)
	assert.Equal(t, 100, cfg.MinWidth)
	assert.Equal(t, 30, cfg.MinHeight)
	assert.Equal(t, 2, cfg.Recent)
}

func TestLoadMergesDefaults(t *testing.T) {
	path := writeConfig(t, `database: /tmp/only-db.db`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/only-db.db", cfg.Database)
	assert.Equal(t, DefaultMinWidth, cfg.MinWidth)
	assert.Equal(t, DefaultMinHeight, cfg.MinHeight)
	assert.Equal(t, DefaultRecent, cfg.Recent)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "database: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero min width", "min_width: 0"},
		{"negative min height", "min_height: -1"},
		{"zero recent", "recent: 0"},
		{"recent above card rows", "recent: 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestLoadExpandsHomeInDatabase(t *testing.T) {
	path := writeConfig(t, "database: ~/blood-test.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "blood-test.db"), cfg.Database)
}

func TestFindExplicitPath(t *testing.T) {
	path := writeConfig(t, "recent: 3")

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = Find(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefaultWithoutConfig(t *testing.T) {
	// Run from an isolated directory so no real config is picked up
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMinWidth, cfg.MinWidth)
	assert.NotEmpty(t, cfg.Database)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultMinWidth, cfg.MinWidth)
	assert.Equal(t, DefaultMinHeight, cfg.MinHeight)
	assert.Equal(t, DefaultRecent, cfg.Recent)
	assert.Contains(t, cfg.Database, "blood.db")
}
