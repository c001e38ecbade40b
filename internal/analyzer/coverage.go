package analyzer

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/javascan-dev/javascan/domain"
)

// maxFrameworkProbeFiles bounds how many test files are opened to look for
// framework imports
const maxFrameworkProbeFiles = 20

// frameworkImports maps an import prefix to a framework display name
var frameworkImports = map[string]string{
	"org.junit":   "JUnit",
	"org.testng":  "TestNG",
	"org.mockito": "Mockito",
}

// frameworkCoordinates maps dependency artifact substrings to frameworks,
// so a framework declared in the manifest counts even when no test file
// imports it yet
var frameworkCoordinates = map[string]string{
	"junit":   "JUnit",
	"testng":  "TestNG",
	"mockito": "Mockito",
}

var importLine = regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+)`)

// CoverageEstimator derives an approximate coverage percentage from test
// file counts. The number is a naming-convention heuristic, not a measured
// line or branch coverage, and is labeled an estimate wherever surfaced.
type CoverageEstimator struct {
	lowThreshold    int
	targetThreshold int
}

// NewCoverageEstimator creates an estimator with advisory thresholds
func NewCoverageEstimator(lowThreshold, targetThreshold int) *CoverageEstimator {
	return &CoverageEstimator{lowThreshold: lowThreshold, targetThreshold: targetThreshold}
}

// IsTestFile reports whether a path looks like a test source by convention
func IsTestFile(path string) bool {
	slashed := filepath.ToSlash(path)
	if strings.Contains(slashed, "/src/test/") || strings.HasPrefix(slashed, "src/test/") {
		return true
	}
	base := strings.TrimSuffix(filepath.Base(slashed), ".java")
	return strings.HasSuffix(base, "Test") ||
		strings.HasSuffix(base, "Tests") ||
		strings.HasSuffix(base, "TestCase") ||
		strings.HasPrefix(base, "Test")
}

// Estimate computes the coverage summary for the given source files.
// Framework detection from dependency coordinates is layered on afterwards
// by the aggregator so the estimator needs no manifest data.
func (e *CoverageEstimator) Estimate(files []string) domain.CoverageSummary {
	summary := domain.CoverageSummary{Frameworks: []string{}, Issues: []domain.CoverageAdvisory{}}

	var testFiles []string
	nonTestCount := 0
	for _, f := range files {
		if IsTestFile(f) {
			testFiles = append(testFiles, f)
		} else {
			nonTestCount++
		}
	}
	summary.TestFileCount = len(testFiles)

	// Estimated ratio of test files to non-test sources, clamped to [0,100].
	// Zero source files must not divide by zero.
	denominator := nonTestCount
	if denominator < 1 {
		denominator = 1
	}
	pct := (100*len(testFiles) + denominator/2) / denominator
	if pct > 100 {
		pct = 100
	}
	summary.CoveragePercentage = pct

	summary.Frameworks = detectFrameworksFromImports(testFiles)
	e.appendAdvisories(&summary)
	return summary
}

// MergeFrameworksFromDependencies adds frameworks visible in the dependency
// coordinates and re-derives the advisory list
func (e *CoverageEstimator) MergeFrameworksFromDependencies(summary *domain.CoverageSummary, deps []domain.Dependency) {
	seen := make(map[string]bool, len(summary.Frameworks))
	for _, fw := range summary.Frameworks {
		seen[fw] = true
	}
	for _, dep := range deps {
		artifact := strings.ToLower(dep.ArtifactID)
		for substr, fw := range frameworkCoordinates {
			if strings.Contains(artifact, substr) && !seen[fw] {
				seen[fw] = true
				summary.Frameworks = append(summary.Frameworks, fw)
			}
		}
	}
	sort.Strings(summary.Frameworks)

	summary.Issues = summary.Issues[:0]
	e.appendAdvisories(summary)
}

// appendAdvisories derives the advisory ladder from the current counts
func (e *CoverageEstimator) appendAdvisories(summary *domain.CoverageSummary) {
	switch {
	case summary.TestFileCount == 0:
		summary.Issues = append(summary.Issues, domain.CoverageAdvisory{
			Severity:   domain.SeverityCritical,
			Issue:      "No test files found",
			Suggestion: "Add unit tests using JUnit 5 for all public methods",
		})
	case summary.CoveragePercentage < e.lowThreshold:
		summary.Issues = append(summary.Issues, domain.CoverageAdvisory{
			Severity:   domain.SeverityHigh,
			Issue:      "Low estimated test coverage: " + strconv.Itoa(summary.CoveragePercentage) + "%",
			Suggestion: "Increase test coverage toward " + strconv.Itoa(e.targetThreshold) + "%",
		})
	case summary.CoveragePercentage < e.targetThreshold:
		summary.Issues = append(summary.Issues, domain.CoverageAdvisory{
			Severity:   domain.SeverityMedium,
			Issue:      "Estimated test coverage could be improved: " + strconv.Itoa(summary.CoveragePercentage) + "%",
			Suggestion: "Aim for at least " + strconv.Itoa(e.targetThreshold) + "% coverage",
		})
	}

	if len(summary.Frameworks) == 0 {
		summary.Issues = append(summary.Issues, domain.CoverageAdvisory{
			Severity:   domain.SeverityHigh,
			Issue:      "No test framework detected",
			Suggestion: "Consider JUnit 5 or TestNG for testing",
		})
	}
}

// detectFrameworksFromImports probes a bounded number of test files for
// framework import statements
func detectFrameworksFromImports(testFiles []string) []string {
	seen := map[string]bool{}

	limit := len(testFiles)
	if limit > maxFrameworkProbeFiles {
		limit = maxFrameworkProbeFiles
	}

	for _, path := range testFiles[:limit] {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			m := importLine.FindStringSubmatch(scanner.Text())
			if m == nil {
				continue
			}
			for prefix, fw := range frameworkImports {
				if strings.HasPrefix(m[1], prefix) {
					seen[fw] = true
				}
			}
		}
		f.Close()
	}

	frameworks := make([]string, 0, len(seen))
	for fw := range seen {
		frameworks = append(frameworks, fw)
	}
	sort.Strings(frameworks)
	return frameworks
}
