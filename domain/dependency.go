package domain

import "fmt"

// Severity represents the assessed severity of a dependency or finding
type Severity string

const (
	SeverityOK       Severity = "OK"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// severityRank orders severities from most to least severe for sorting
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityOK:       4,
}

// Rank returns the sort rank of the severity (lower is more severe)
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// Ecosystem identifies the build tool a dependency was declared for
type Ecosystem string

const (
	EcosystemMaven  Ecosystem = "maven"
	EcosystemGradle Ecosystem = "gradle"
)

// Dependency represents one declared library reference in a build manifest.
// Records are scoped to the manifest file they were parsed from; the same
// coordinate declared in two files yields two records.
type Dependency struct {
	GroupID    string    `json:"group_id"`
	ArtifactID string    `json:"artifact_id"`
	Version    string    `json:"version"`
	Scope      string    `json:"scope,omitempty"`
	Ecosystem  Ecosystem `json:"type"`
	SourceFile string    `json:"source_file"`

	// Set by the vulnerability/staleness classifier
	IsOutdated bool     `json:"is_outdated"`
	Severity   Severity `json:"severity"`
	Note       string   `json:"issue,omitempty"`
}

// Coordinate returns the group:artifact identity of the dependency
func (d Dependency) Coordinate() string {
	if d.GroupID == "" {
		return d.ArtifactID
	}
	return fmt.Sprintf("%s:%s", d.GroupID, d.ArtifactID)
}

// BuildPlugin represents a build plugin declared in a Maven manifest
type BuildPlugin struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version"`
}

// ManifestResult holds everything extracted from one build ecosystem's manifests
type ManifestResult struct {
	Found        bool         `json:"found"`
	JavaVersion  string       `json:"java_version,omitempty"`
	Dependencies []Dependency `json:"dependencies"`

	// BuildPlugins is populated for Maven manifests
	BuildPlugins []BuildPlugin `json:"build_plugins,omitempty"`

	// Plugins is populated for Gradle manifests (plugin ids)
	Plugins []string `json:"plugins,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// CriticalDependency is the report entry for a vulnerable dependency
type CriticalDependency struct {
	Artifact string   `json:"artifact"`
	Version  string   `json:"version"`
	Severity Severity `json:"severity"`
	Issue    string   `json:"issue"`
}

// DependenciesReport aggregates both ecosystems' manifest results
type DependenciesReport struct {
	Maven             ManifestResult       `json:"maven"`
	Gradle            ManifestResult       `json:"gradle"`
	TotalDependencies int                  `json:"total_dependencies"`
	OutdatedCount     int                  `json:"outdated_count"`
	VulnerableCount   int                  `json:"vulnerable_count"`
	CriticalIssues    []CriticalDependency `json:"critical_issues"`
}

// AllDependencies returns the Maven and Gradle dependencies as one slice,
// Maven first, preserving declaration order within each ecosystem
func (r *DependenciesReport) AllDependencies() []Dependency {
	all := make([]Dependency, 0, len(r.Maven.Dependencies)+len(r.Gradle.Dependencies))
	all = append(all, r.Maven.Dependencies...)
	all = append(all, r.Gradle.Dependencies...)
	return all
}

// Recount recomputes the aggregate counters and critical issue list from the
// per-ecosystem dependency collections. It never reorders the collections.
func (r *DependenciesReport) Recount() {
	r.TotalDependencies = len(r.Maven.Dependencies) + len(r.Gradle.Dependencies)
	r.OutdatedCount = 0
	r.VulnerableCount = 0
	r.CriticalIssues = nil

	for _, dep := range r.AllDependencies() {
		if dep.IsOutdated {
			r.OutdatedCount++
		}
		if dep.Severity == SeverityCritical || dep.Severity == SeverityHigh {
			r.VulnerableCount++
			issue := dep.Note
			if issue == "" {
				issue = "Security vulnerability detected"
			}
			r.CriticalIssues = append(r.CriticalIssues, CriticalDependency{
				Artifact: dep.Coordinate(),
				Version:  dep.Version,
				Severity: dep.Severity,
				Issue:    issue,
			})
		}
	}
}
