package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/internal/rules"
	"golang.org/x/mod/semver"
)

// Classifier assigns vulnerability and staleness verdicts to dependencies.
// It sets severity, is_outdated, and note in place; it never removes or
// reorders the dependency collection.
type Classifier struct {
	table              *rules.Table
	lowMajorsBehind    int
	mediumMajorsBehind int
}

// NewClassifier creates a classifier over the given rule table
func NewClassifier(table *rules.Table, lowMajorsBehind, mediumMajorsBehind int) *Classifier {
	return &Classifier{
		table:              table,
		lowMajorsBehind:    lowMajorsBehind,
		mediumMajorsBehind: mediumMajorsBehind,
	}
}

// Classify processes every dependency in place
func (c *Classifier) Classify(deps []domain.Dependency) {
	for i := range deps {
		c.classifyOne(&deps[i])
	}
}

func (c *Classifier) classifyOne(dep *domain.Dependency) {
	// Known-vulnerability table first: the only path to CRITICAL
	if rule, ok := c.table.FindVulnerability(dep.ArtifactID); ok {
		dep.Severity = domain.Severity(rule.Severity)
		dep.Note = rule.Note()
		return
	}

	// Staleness heuristic. A library without a reference entry, or with an
	// unparseable version, cannot be assessed; absence of data is never
	// reported as a problem.
	latest, tracked := c.table.LatestKnownMajor(dep.Coordinate())
	if !tracked {
		return
	}
	major, ok := majorVersion(dep.Version)
	if !ok {
		return
	}

	behind := latest - major
	switch {
	case behind >= c.mediumMajorsBehind:
		dep.IsOutdated = true
		dep.Severity = domain.SeverityMedium
		dep.Note = fmt.Sprintf("%d major versions behind latest known (%d.x)", behind, latest)
	case behind >= c.lowMajorsBehind:
		dep.IsOutdated = true
		dep.Severity = domain.SeverityLow
		dep.Note = fmt.Sprintf("%d major version(s) behind latest known (%d.x)", behind, latest)
	}
}

var leadingVersion = regexp.MustCompile(`^\d+(?:\.\d+)*`)

// majorVersion extracts the major version from a declared version string.
// Property placeholders, ranges, and catalog references are not guessable
// and return false.
func majorVersion(version string) (int, bool) {
	v := strings.TrimSpace(version)
	if v == "" || strings.HasPrefix(v, "${") {
		return 0, false
	}

	// Normalize "2.13.0.RELEASE" style suffixes down to the numeric core
	core := leadingVersion.FindString(v)
	if core == "" {
		return 0, false
	}

	canonical := "v" + core
	if !semver.IsValid(canonical) {
		return 0, false
	}
	major, err := strconv.Atoi(strings.TrimPrefix(semver.Major(canonical), "v"))
	if err != nil {
		return 0, false
	}
	return major, true
}
