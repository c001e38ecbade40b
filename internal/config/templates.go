package config

import "fmt"

// Strictness selects a threshold preset for generated configuration
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// thresholdPreset holds the tunable thresholds a strictness level adjusts
type thresholdPreset struct {
	LongMethodLines int
	GodClassMethods int
	CoverageLow     int
	CoverageTarget  int
}

var presets = map[Strictness]thresholdPreset{
	StrictnessRelaxed: {
		LongMethodLines: 80,
		GodClassMethods: 30,
		CoverageLow:     30,
		CoverageTarget:  60,
	},
	StrictnessStandard: {
		LongMethodLines: DefaultLongMethodLines,
		GodClassMethods: DefaultGodClassMethods,
		CoverageLow:     DefaultCoverageLowThreshold,
		CoverageTarget:  DefaultCoverageTargetThreshold,
	},
	StrictnessStrict: {
		LongMethodLines: 30,
		GodClassMethods: 12,
		CoverageLow:     60,
		CoverageTarget:  90,
	},
}

// GetMinimalConfigTemplate returns a small config file with the options most
// projects end up changing
func GetMinimalConfigTemplate() string {
	return fmt.Sprintf(`{
  "analysis": {
    "max_files": %d,
    "respect_gitignore": true
  },
  "output": {
    "format": "text",
    "show_details": false
  }
}
`, DefaultMaxSourceFiles)
}

// GetFullConfigTemplate returns a complete config file for the given
// strictness preset
func GetFullConfigTemplate(strictness Strictness) string {
	preset, ok := presets[strictness]
	if !ok {
		preset = presets[StrictnessStandard]
	}

	return fmt.Sprintf(`{
  "analysis": {
    "max_files": %d,
    "exclude_dirs": ["target", "build", "out", ".gradle", ".mvn", "node_modules", ".git"],
    "respect_gitignore": true,
    "max_reported_findings": 0
  },
  "manifest": {
    "max_manifests": %d,
    "max_depth": %d
  },
  "coverage": {
    "low_threshold": %d,
    "target_threshold": %d
  },
  "refactor": {
    "long_method_lines": %d,
    "god_class_methods": %d,
    "duplicate_window_lines": %d
  },
  "staleness": {
    "low_majors_behind": %d,
    "medium_majors_behind": %d
  },
  "rules": {
    "path": ""
  },
  "output": {
    "format": "text",
    "show_details": false
  },
  "performance": {
    "max_goroutines": 4,
    "timeout_seconds": 300
  }
}
`,
		DefaultMaxSourceFiles,
		DefaultMaxManifests,
		DefaultMaxWalkDepth,
		preset.CoverageLow,
		preset.CoverageTarget,
		preset.LongMethodLines,
		preset.GodClassMethods,
		DefaultDuplicateWindowLines,
		DefaultStalenessLowMajors,
		DefaultStalenessMediumMajors,
	)
}
