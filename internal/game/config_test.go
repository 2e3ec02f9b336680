package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.Game.SmallBlind)
	assert.Equal(t, 20, cfg.Game.BigBlind)
	assert.Equal(t, 1000, cfg.Game.StartingChips)
	assert.Len(t, cfg.Seats, 4)
	assert.True(t, cfg.Seats[0].Human)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
game {
  small_blind = 25
  big_blind   = 50
  log_level   = "debug"
}

seat "Alice" {
  human = true
}
seat "Bot 1" {}
seat "Bot 2" {}
seat "Bot 3" {}
`
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 25, cfg.Game.SmallBlind)
	assert.Equal(t, 50, cfg.Game.BigBlind)
	assert.Equal(t, "debug", cfg.Game.LogLevel)

	// Unset values fall back to defaults.
	assert.Equal(t, 1000, cfg.Game.StartingChips)
	assert.Equal(t, 1500, cfg.Game.ThinkDelayMs)
	assert.Equal(t, 15, cfg.Game.LogLines)

	require.Len(t, cfg.Seats, 4)
	assert.Equal(t, "Alice", cfg.Seats[0].Name)
	assert.True(t, cfg.Seats[0].Human)
	assert.False(t, cfg.Seats[1].Human)
}

func TestLoadConfigBadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte("game {"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero small blind", func(c *Config) { c.Game.SmallBlind = 0 }},
		{"big blind below small blind", func(c *Config) { c.Game.BigBlind = 5 }},
		{"starting chips below big blind", func(c *Config) { c.Game.StartingChips = 10 }},
		{"three seats", func(c *Config) { c.Seats = c.Seats[:3] }},
		{"no human seat", func(c *Config) { c.Seats[0].Human = false }},
		{"two human seats", func(c *Config) { c.Seats[1].Human = true }},
		{"unnamed seat", func(c *Config) { c.Seats[2].Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
