package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
	if cfg.Analysis.MaxFiles != DefaultMaxSourceFiles {
		t.Errorf("Expected max files %d, got %d", DefaultMaxSourceFiles, cfg.Analysis.MaxFiles)
	}
	if len(cfg.Analysis.ExcludeDirs) == 0 {
		t.Error("Default config should exclude build directories")
	}
	if cfg.Coverage.LowThreshold != DefaultCoverageLowThreshold {
		t.Errorf("Expected low threshold %d, got %d", DefaultCoverageLowThreshold, cfg.Coverage.LowThreshold)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(c *Config) {}, true},
		{"zero max files", func(c *Config) { c.Analysis.MaxFiles = 0 }, false},
		{"negative low threshold", func(c *Config) { c.Coverage.LowThreshold = -1 }, false},
		{"low threshold over 100", func(c *Config) { c.Coverage.LowThreshold = 101 }, false},
		{"target below low", func(c *Config) {
			c.Coverage.LowThreshold = 60
			c.Coverage.TargetThreshold = 50
		}, false},
		{"zero long method lines", func(c *Config) { c.Refactor.LongMethodLines = 0 }, false},
		{"window of one", func(c *Config) { c.Refactor.DuplicateWindowLines = 1 }, false},
		{"medium below low staleness", func(c *Config) {
			c.Staleness.LowMajorsBehind = 3
			c.Staleness.MediumMajorsBehind = 1
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "javascan.config.json")
	content := `{
  "analysis": {
    "max_files": 123,
    "respect_gitignore": false
  },
  "refactor": {
    "long_method_lines": 75
  },
  "output": {
    "format": "json"
  }
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Analysis.MaxFiles != 123 {
		t.Errorf("Expected max files 123, got %d", cfg.Analysis.MaxFiles)
	}
	if cfg.Refactor.LongMethodLines != 75 {
		t.Errorf("Expected long method lines 75, got %d", cfg.Refactor.LongMethodLines)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected format json, got %q", cfg.Output.Format)
	}
	// Unspecified sections keep their defaults
	if cfg.Refactor.GodClassMethods != DefaultGodClassMethods {
		t.Errorf("Unset values should keep defaults, got %d", cfg.Refactor.GodClassMethods)
	}
}

func TestLoadConfig_InvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"analysis": {"max_files": -5}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for invalid configuration values")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestConfigTemplates_ValidJSON(t *testing.T) {
	for _, strictness := range []Strictness{StrictnessRelaxed, StrictnessStandard, StrictnessStrict} {
		content := GetFullConfigTemplate(strictness)
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(content), &parsed); err != nil {
			t.Errorf("Full template for %s is not valid JSON: %v", strictness, err)
		}
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(GetMinimalConfigTemplate()), &parsed); err != nil {
		t.Errorf("Minimal template is not valid JSON: %v", err)
	}
}

func TestConfigTemplates_LoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "javascan.config.json")
	if err := os.WriteFile(path, []byte(GetFullConfigTemplate(StrictnessStrict)), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Generated template should load: %v", err)
	}
	if cfg.Refactor.LongMethodLines != 30 {
		t.Errorf("Strict preset should set long_method_lines 30, got %d", cfg.Refactor.LongMethodLines)
	}
}
