package game

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete table configuration
type Config struct {
	Game  GameSettings `hcl:"game,block"`
	Seats []SeatConfig `hcl:"seat,block"`
}

// GameSettings contains table-level configuration
type GameSettings struct {
	SmallBlind      int    `hcl:"small_blind,optional"`
	BigBlind        int    `hcl:"big_blind,optional"`
	StartingChips   int    `hcl:"starting_chips,optional"`
	ThinkDelayMs    int    `hcl:"think_delay_ms,optional"`
	ThinkJitterMs   int    `hcl:"think_jitter_ms,optional"`
	ShowdownDelayMs int    `hcl:"showdown_delay_ms,optional"`
	FoldWinDelayMs  int    `hcl:"fold_win_delay_ms,optional"`
	LogLines        int    `hcl:"log_lines,optional"`
	LogLevel        string `hcl:"log_level,optional"`
}

// SeatConfig defines a seat at the table
type SeatConfig struct {
	Name  string `hcl:"name,label"`
	Human bool   `hcl:"human,optional"`
}

// DefaultConfig returns the default four-seat table configuration
func DefaultConfig() *Config {
	return &Config{
		Game: GameSettings{
			SmallBlind:      10,
			BigBlind:        20,
			StartingChips:   1000,
			ThinkDelayMs:    1500,
			ThinkJitterMs:   1000,
			ShowdownDelayMs: 5000,
			FoldWinDelayMs:  3000,
			LogLines:        15,
			LogLevel:        "info",
		},
		Seats: []SeatConfig{
			{Name: "You", Human: true},
			{Name: "AI 1"},
			{Name: "AI 2"},
			{Name: "AI 3"},
		},
	}
}

// LoadConfig loads table configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	def := DefaultConfig()
	if config.Game.SmallBlind == 0 {
		config.Game.SmallBlind = def.Game.SmallBlind
	}
	if config.Game.BigBlind == 0 {
		config.Game.BigBlind = def.Game.BigBlind
	}
	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = def.Game.StartingChips
	}
	if config.Game.ThinkDelayMs == 0 {
		config.Game.ThinkDelayMs = def.Game.ThinkDelayMs
	}
	if config.Game.ThinkJitterMs == 0 {
		config.Game.ThinkJitterMs = def.Game.ThinkJitterMs
	}
	if config.Game.ShowdownDelayMs == 0 {
		config.Game.ShowdownDelayMs = def.Game.ShowdownDelayMs
	}
	if config.Game.FoldWinDelayMs == 0 {
		config.Game.FoldWinDelayMs = def.Game.FoldWinDelayMs
	}
	if config.Game.LogLines == 0 {
		config.Game.LogLines = def.Game.LogLines
	}
	if config.Game.LogLevel == "" {
		config.Game.LogLevel = def.Game.LogLevel
	}
	if len(config.Seats) == 0 {
		config.Seats = def.Seats
	}

	return &config, nil
}

// Validate validates the table configuration
func (c *Config) Validate() error {
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Game.BigBlind <= c.Game.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Game.StartingChips < c.Game.BigBlind {
		return fmt.Errorf("starting chips must cover at least the big blind")
	}
	if len(c.Seats) != 4 {
		return fmt.Errorf("exactly 4 seats must be configured, got %d", len(c.Seats))
	}

	humans := 0
	for _, seat := range c.Seats {
		if seat.Name == "" {
			return fmt.Errorf("every seat needs a name")
		}
		if seat.Human {
			humans++
		}
	}
	if humans != 1 {
		return fmt.Errorf("exactly one seat must be human, got %d", humans)
	}

	return nil
}

// ThinkDelay returns the base delay before a non-human seat acts.
func (c *Config) ThinkDelay() time.Duration {
	return time.Duration(c.Game.ThinkDelayMs) * time.Millisecond
}

// ThinkJitter returns the maximum random addition to the think delay.
func (c *Config) ThinkJitter() time.Duration {
	return time.Duration(c.Game.ThinkJitterMs) * time.Millisecond
}

// ShowdownDelay returns the pause between showdown and the next hand.
func (c *Config) ShowdownDelay() time.Duration {
	return time.Duration(c.Game.ShowdownDelayMs) * time.Millisecond
}

// FoldWinDelay returns the pause after a hand won uncontested.
func (c *Config) FoldWinDelay() time.Duration {
	return time.Duration(c.Game.FoldWinDelayMs) * time.Millisecond
}
