package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agustinfitipaldi/blood/internal/store"
)

func TestCommandRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"component", "export", "init", "version"} {
		assert.True(t, names[want], "command %q must be registered", want)
	}
}

func TestComponentSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range componentCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"list", "add", "rm"} {
		assert.True(t, names[want], "subcommand %q must be registered", want)
	}
}

func TestPersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("db"))
}

func TestFormatRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		c    store.Component
		want string
	}{
		{"both bounds", store.Component{NormalMin: f(20), NormalMax: f(42)}, "20-42"},
		{"min only", store.Component{NormalMin: f(20)}, "≥ 20"},
		{"max only", store.Component{NormalMax: f(42)}, "≤ 42"},
		{"no bounds", store.Component{}, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRange(tt.c))
		})
	}
}

func TestLoadConfigAppliesDBOverride(t *testing.T) {
	t.Chdir(t.TempDir())

	origConfig, origDB := configFlag, dbFlag
	defer func() { configFlag, dbFlag = origConfig, origDB }()

	configFlag = ""
	dbFlag = "/tmp/override.db"

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.Database)
}
