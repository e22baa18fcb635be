package utils

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/sparse-gol/model"
)

// Duration is a time.Duration that decodes from "50ms" style strings or integer nanoseconds
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "[Duration.UnmarshalJSON] invalid duration %q", s)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "[Duration.UnmarshalJSON] invalid duration %s", data)
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds the configuration for the game
type Config struct {
	Width               int      `json:"width"`
	Height              int      `json:"height"`
	FitTerminal         bool     `json:"fit_terminal"`
	Pattern             string   `json:"pattern"`
	Seed                [][2]int `json:"seed"`
	TickInterval        Duration `json:"tick_interval"`
	MaxGenerations      int      `json:"max_generations"`
	AutoRestart         bool     `json:"auto_restart"`
	StagnationThreshold int      `json:"stagnation_threshold"`
	RandomDensity       float64  `json:"random_density"`
	InjectionCount      int      `json:"injection_count"`
	RandSeed            int64    `json:"rand_seed"`
	VerifyEvery         int      `json:"verify_every"`
	LogFile             string   `json:"log_file"`
	LogLevel            string   `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               80,
		Height:              24,
		FitTerminal:         true,
		Pattern:             "r-pentomino",
		TickInterval:        Duration(50 * time.Millisecond),
		MaxGenerations:      0, // run until interrupted
		AutoRestart:         false,
		StagnationThreshold: 5,
		RandomDensity:       0,
		InjectionCount:      0,
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks the configuration once at startup
func (c Config) Validate() error {
	if !c.FitTerminal && (c.Width <= 0 || c.Height <= 0) {
		return errors.Errorf("[Validate] grid dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.TickInterval < 0 {
		return errors.Errorf("[Validate] tick_interval must not be negative, got %v", time.Duration(c.TickInterval))
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	}
	if c.MaxGenerations < 0 || c.StagnationThreshold < 0 || c.InjectionCount < 0 || c.VerifyEvery < 0 {
		return errors.New("[Validate] max_generations, stagnation_threshold, injection_count and verify_every must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, err := c.SeedOffsets(); err != nil {
		return err
	}
	return nil
}

// SeedOffsets returns the explicit seed offsets, or the named pattern when none are given
func (c Config) SeedOffsets() ([]model.Position, error) {
	if len(c.Seed) > 0 {
		offsets := make([]model.Position, len(c.Seed))
		for i, s := range c.Seed {
			offsets[i] = model.Position{X: s[0], Y: s[1]}
		}
		return offsets, nil
	}

	pattern := c.Pattern
	if pattern == "" {
		pattern = model.DefaultPattern
	}
	offsets, err := model.LookupPattern(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "[SeedOffsets] invalid pattern")
	}
	return offsets, nil
}

// SlogLevel parses LogLevel
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return level, errors.Wrapf(err, "[SlogLevel] invalid log_level %q", c.LogLevel)
	}
	return level, nil
}
