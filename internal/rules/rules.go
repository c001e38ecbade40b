// Package rules holds the data-driven analysis tables: known-vulnerable
// artifacts, staleness references, and the source anti-pattern detectors.
// The tables ship embedded and can be replaced wholesale from a TOML file,
// so adding a rule never requires touching analyzer control flow.
package rules

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/javascan-dev/javascan/domain"
)

//go:embed rules.toml
var embeddedRules []byte

// MatcherKind selects how a detector pattern is applied to a line
type MatcherKind string

const (
	MatchSubstring MatcherKind = "substring"
	MatchRegex     MatcherKind = "regex"
)

// VulnerabilityRule maps an artifact-id substring to a known CVE
type VulnerabilityRule struct {
	Artifact    string `toml:"artifact"`
	CVE         string `toml:"cve"`
	Severity    string `toml:"severity"`
	Description string `toml:"description"`
}

// Matches reports whether the rule applies to the given artifact id.
// Matching is case-insensitive substring, favoring recall over precision.
func (r VulnerabilityRule) Matches(artifactID string) bool {
	return strings.Contains(strings.ToLower(artifactID), strings.ToLower(r.Artifact))
}

// Note returns the human-readable reason attached to matched dependencies
func (r VulnerabilityRule) Note() string {
	return fmt.Sprintf("%s: %s", r.CVE, r.Description)
}

// StalenessRule records the latest known major version for a coordinate
type StalenessRule struct {
	Coordinate  string `toml:"coordinate"`
	LatestMajor int    `toml:"latest_major"`
}

// DetectorRule is one source anti-pattern detector
type DetectorRule struct {
	Category   string `toml:"category"`
	Kind       string `toml:"kind"`
	Pattern    string `toml:"pattern"`
	Severity   string `toml:"severity"`
	Suggestion string `toml:"suggestion"`
}

// Table is the complete loaded rule set
type Table struct {
	Vulnerabilities []VulnerabilityRule `toml:"vulnerability"`
	Staleness       []StalenessRule     `toml:"staleness"`
	Detectors       []DetectorRule      `toml:"detector"`

	stalenessIndex map[string]int
}

// Default returns the embedded rule table
func Default() (*Table, error) {
	var table Table
	if err := toml.Unmarshal(embeddedRules, &table); err != nil {
		return nil, fmt.Errorf("failed to parse embedded rules: %w", err)
	}
	table.buildIndex()
	return &table, nil
}

// LoadFromFile loads a replacement rule table from a TOML file
func LoadFromFile(path string) (*Table, error) {
	var table Table
	if _, err := toml.DecodeFile(path, &table); err != nil {
		return nil, fmt.Errorf("failed to load rules from %s: %w", path, err)
	}
	table.buildIndex()
	return &table, nil
}

func (t *Table) buildIndex() {
	t.stalenessIndex = make(map[string]int, len(t.Staleness))
	for _, rule := range t.Staleness {
		t.stalenessIndex[strings.ToLower(rule.Coordinate)] = rule.LatestMajor
	}
}

// LatestKnownMajor returns the latest known major version for a
// group:artifact coordinate, or false if the library is not tracked
func (t *Table) LatestKnownMajor(coordinate string) (int, bool) {
	major, ok := t.stalenessIndex[strings.ToLower(coordinate)]
	return major, ok
}

// FindVulnerability returns the first vulnerability rule matching the
// artifact id, in table order
func (t *Table) FindVulnerability(artifactID string) (VulnerabilityRule, bool) {
	for _, rule := range t.Vulnerabilities {
		if rule.Matches(artifactID) {
			return rule, true
		}
	}
	return VulnerabilityRule{}, false
}

// CompiledDetector is a detector with its pattern ready to apply
type CompiledDetector struct {
	Category   domain.FindingCategory
	Severity   domain.Severity
	Suggestion string

	kind      MatcherKind
	substring string
	regex     *regexp.Regexp
}

// Match tests one line and returns the matched snippet
func (d *CompiledDetector) Match(line string) (string, bool) {
	switch d.kind {
	case MatchSubstring:
		if idx := strings.Index(line, d.substring); idx >= 0 {
			return line[idx:], true
		}
	case MatchRegex:
		if m := d.regex.FindString(line); m != "" {
			return m, true
		}
	}
	return "", false
}

// CompileDetectors compiles the detector table, preserving table order.
// An invalid regex invalidates only its own rule.
func (t *Table) CompileDetectors() ([]CompiledDetector, []error) {
	var compiled []CompiledDetector
	var errs []error

	for _, rule := range t.Detectors {
		det := CompiledDetector{
			Category:   domain.FindingCategory(rule.Category),
			Severity:   domain.Severity(rule.Severity),
			Suggestion: rule.Suggestion,
			kind:       MatcherKind(rule.Kind),
		}
		switch det.kind {
		case MatchSubstring:
			det.substring = rule.Pattern
		case MatchRegex:
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				errs = append(errs, fmt.Errorf("detector %s: invalid pattern %q: %w", rule.Category, rule.Pattern, err))
				continue
			}
			det.regex = re
		default:
			errs = append(errs, fmt.Errorf("detector %s: unknown matcher kind %q", rule.Category, rule.Kind))
			continue
		}
		compiled = append(compiled, det)
	}

	return compiled, errs
}
