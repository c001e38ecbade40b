package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default analysis bounds
const (
	// DefaultMaxSourceFiles caps how many source files a single scan reads.
	// Files beyond the cap are skipped, not sampled, to keep latency bounded
	// on very large repositories.
	DefaultMaxSourceFiles = 500

	// DefaultMaxManifests caps how many manifest files of each kind are
	// parsed under one root
	DefaultMaxManifests = 25

	// DefaultMaxWalkDepth bounds directory recursion while locating manifests
	DefaultMaxWalkDepth = 12
)

// Default coverage thresholds
const (
	// DefaultCoverageLowThreshold is the estimate below which coverage is
	// flagged as a high-severity gap
	DefaultCoverageLowThreshold = 50

	// DefaultCoverageTargetThreshold is the estimate below which coverage is
	// flagged as improvable
	DefaultCoverageTargetThreshold = 80
)

// Default refactoring thresholds
const (
	// DefaultLongMethodLines is the method body line count above which a
	// method is flagged as a long method
	DefaultLongMethodLines = 50

	// DefaultGodClassMethods is the public method count above which a class
	// is flagged as a god class
	DefaultGodClassMethods = 20

	// DefaultDuplicateWindowLines is the number of consecutive normalized
	// lines that must repeat before a duplicate-code group is reported
	DefaultDuplicateWindowLines = 6
)

// Default staleness thresholds (major versions behind the latest known)
const (
	DefaultStalenessLowMajors    = 1
	DefaultStalenessMediumMajors = 3
)

// Config represents the main configuration structure
type Config struct {
	// Analysis holds file collection configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Manifest holds build manifest discovery configuration
	Manifest ManifestConfig `json:"manifest" mapstructure:"manifest" yaml:"manifest"`

	// Coverage holds test coverage estimation configuration
	Coverage CoverageConfig `json:"coverage" mapstructure:"coverage" yaml:"coverage"`

	// Refactor holds structural smell detection configuration
	Refactor RefactorConfig `json:"refactor" mapstructure:"refactor" yaml:"refactor"`

	// Staleness holds dependency staleness thresholds
	Staleness StalenessConfig `json:"staleness" mapstructure:"staleness" yaml:"staleness"`

	// Rules optionally points at a TOML file overriding the built-in
	// vulnerability/detector tables
	Rules RulesConfig `json:"rules" mapstructure:"rules" yaml:"rules"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Performance holds parallel execution configuration
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// AnalysisConfig holds file collection configuration
type AnalysisConfig struct {
	// MaxFiles caps the number of source files scanned per run
	MaxFiles int `json:"max_files" mapstructure:"max_files" yaml:"max_files"`

	// ExcludeDirs are directory names skipped during the walk
	ExcludeDirs []string `json:"exclude_dirs" mapstructure:"exclude_dirs" yaml:"exclude_dirs"`

	// RespectGitignore controls whether .gitignore rules are applied when
	// collecting source files
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`

	// MaxReportedFindings caps the findings included in the report, kept in
	// severity order; 0 reports everything. Scoring always uses the full set.
	MaxReportedFindings int `json:"max_reported_findings" mapstructure:"max_reported_findings" yaml:"max_reported_findings"`
}

// ManifestConfig holds manifest discovery configuration
type ManifestConfig struct {
	MaxManifests int `json:"max_manifests" mapstructure:"max_manifests" yaml:"max_manifests"`
	MaxDepth     int `json:"max_depth" mapstructure:"max_depth" yaml:"max_depth"`
}

// CoverageConfig holds coverage estimation thresholds
type CoverageConfig struct {
	LowThreshold    int `json:"low_threshold" mapstructure:"low_threshold" yaml:"low_threshold"`
	TargetThreshold int `json:"target_threshold" mapstructure:"target_threshold" yaml:"target_threshold"`
}

// RefactorConfig holds structural smell thresholds
type RefactorConfig struct {
	LongMethodLines      int `json:"long_method_lines" mapstructure:"long_method_lines" yaml:"long_method_lines"`
	GodClassMethods      int `json:"god_class_methods" mapstructure:"god_class_methods" yaml:"god_class_methods"`
	DuplicateWindowLines int `json:"duplicate_window_lines" mapstructure:"duplicate_window_lines" yaml:"duplicate_window_lines"`
}

// StalenessConfig holds how many major versions behind the latest known
// reference trigger LOW and MEDIUM severity
type StalenessConfig struct {
	LowMajorsBehind    int `json:"low_majors_behind" mapstructure:"low_majors_behind" yaml:"low_majors_behind"`
	MediumMajorsBehind int `json:"medium_majors_behind" mapstructure:"medium_majors_behind" yaml:"medium_majors_behind"`
}

// RulesConfig points at an optional rules table override
type RulesConfig struct {
	// Path is a TOML file replacing the embedded rules table
	Path string `json:"path" mapstructure:"path" yaml:"path"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether per-finding detail is printed in text mode
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`
}

// PerformanceConfig holds parallel execution configuration
type PerformanceConfig struct {
	MaxGoroutines  int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MaxFiles: DefaultMaxSourceFiles,
			ExcludeDirs: []string{
				// Build outputs
				"target",
				"build",
				"out",
				// Dependency and tool caches
				".gradle",
				".mvn",
				"node_modules",
				// Version control
				".git",
			},
			RespectGitignore:    true,
			MaxReportedFindings: 0,
		},
		Manifest: ManifestConfig{
			MaxManifests: DefaultMaxManifests,
			MaxDepth:     DefaultMaxWalkDepth,
		},
		Coverage: CoverageConfig{
			LowThreshold:    DefaultCoverageLowThreshold,
			TargetThreshold: DefaultCoverageTargetThreshold,
		},
		Refactor: RefactorConfig{
			LongMethodLines:      DefaultLongMethodLines,
			GodClassMethods:      DefaultGodClassMethods,
			DuplicateWindowLines: DefaultDuplicateWindowLines,
		},
		Staleness: StalenessConfig{
			LowMajorsBehind:    DefaultStalenessLowMajors,
			MediumMajorsBehind: DefaultStalenessMediumMajors,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  4,
			TimeoutSeconds: 300,
		},
	}
}

// Validate checks the configuration for inconsistent values
func (c *Config) Validate() error {
	if c.Analysis.MaxFiles <= 0 {
		return fmt.Errorf("analysis.max_files must be greater than 0, got %d", c.Analysis.MaxFiles)
	}
	if c.Coverage.LowThreshold < 0 || c.Coverage.LowThreshold > 100 {
		return fmt.Errorf("coverage.low_threshold must be within [0,100], got %d", c.Coverage.LowThreshold)
	}
	if c.Coverage.TargetThreshold < c.Coverage.LowThreshold {
		return fmt.Errorf("coverage.target_threshold (%d) must be >= coverage.low_threshold (%d)",
			c.Coverage.TargetThreshold, c.Coverage.LowThreshold)
	}
	if c.Refactor.LongMethodLines <= 0 {
		return fmt.Errorf("refactor.long_method_lines must be greater than 0, got %d", c.Refactor.LongMethodLines)
	}
	if c.Refactor.GodClassMethods <= 0 {
		return fmt.Errorf("refactor.god_class_methods must be greater than 0, got %d", c.Refactor.GodClassMethods)
	}
	if c.Refactor.DuplicateWindowLines < 2 {
		return fmt.Errorf("refactor.duplicate_window_lines must be at least 2, got %d", c.Refactor.DuplicateWindowLines)
	}
	if c.Staleness.MediumMajorsBehind < c.Staleness.LowMajorsBehind {
		return fmt.Errorf("staleness.medium_majors_behind (%d) must be >= staleness.low_majors_behind (%d)",
			c.Staleness.MediumMajorsBehind, c.Staleness.LowMajorsBehind)
	}
	return nil
}

// LoadConfig loads configuration from file or returns the default config
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig()
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// New viper instance per load to avoid shared state
	v := viper.New()
	cfg := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ConfigFileNames lists recognized config file names in order of preference
var ConfigFileNames = []string{
	"javascan.config.json",
	".javascanrc.json",
	"javascan.yaml",
	"javascan.yml",
	".javascan.toml",
	"javascan.json",
}

// findDefaultConfig searches the working directory and its parents for a
// recognized config file
func findDefaultConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
