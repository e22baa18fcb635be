package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sheikhrachel/sparse-gol/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"width": 40,
		"height": 20,
		"fit_terminal": false,
		"pattern": "acorn",
		"tick_interval": "120ms",
		"max_generations": 300
	}`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Width != 40 || config.Height != 20 || config.FitTerminal {
		t.Fatalf("dimensions not loaded: %+v", config)
	}
	if time.Duration(config.TickInterval) != 120*time.Millisecond {
		t.Fatalf("tick_interval = %v", time.Duration(config.TickInterval))
	}
	if config.MaxGenerations != 300 || config.Pattern != "acorn" {
		t.Fatalf("unexpected config %+v", config)
	}
	// unset keys keep their defaults
	if config.StagnationThreshold != DefaultConfig().StagnationThreshold {
		t.Fatalf("stagnation_threshold = %d", config.StagnationThreshold)
	}
}

func TestLoadConfigNumericInterval(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, `{"tick_interval": 1000000}`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if time.Duration(config.TickInterval) != time.Millisecond {
		t.Fatalf("tick_interval = %v", time.Duration(config.TickInterval))
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadConfig(writeConfig(t, `{"width": `)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := LoadConfig(writeConfig(t, `{"tick_interval": "soon"}`)); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero width", func(c *Config) { c.FitTerminal = false; c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.FitTerminal = false; c.Height = -2 }, false},
		{"fit terminal ignores size", func(c *Config) { c.Width = 0 }, true},
		{"negative interval", func(c *Config) { c.TickInterval = -1 }, false},
		{"density above one", func(c *Config) { c.RandomDensity = 1.5 }, false},
		{"negative injection", func(c *Config) { c.InjectionCount = -1 }, false},
		{"unknown pattern", func(c *Config) { c.Pattern = "spaceship" }, false},
		{"explicit seed ignores pattern", func(c *Config) { c.Pattern = "spaceship"; c.Seed = [][2]int{{0, 0}} }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"debug log level", func(c *Config) { c.LogLevel = "debug" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			if err := config.Validate(); (err == nil) != tt.ok {
				t.Fatalf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSeedOffsets(t *testing.T) {
	config := DefaultConfig()
	config.Seed = [][2]int{{1, 2}, {-3, 4}}

	offsets, err := config.SeedOffsets()
	if err != nil {
		t.Fatalf("SeedOffsets: %v", err)
	}
	if len(offsets) != 2 || offsets[1] != (model.Position{X: -3, Y: 4}) {
		t.Fatalf("offsets = %v", offsets)
	}

	config = DefaultConfig()
	config.Pattern = ""
	offsets, err = config.SeedOffsets()
	if err != nil {
		t.Fatalf("SeedOffsets: %v", err)
	}
	want, _ := model.LookupPattern(model.DefaultPattern)
	if len(offsets) != len(want) {
		t.Fatalf("empty pattern should fall back to %s", model.DefaultPattern)
	}
}
