package domain

// CoverageAdvisory is a severity-only recommendation attached to the coverage
// summary; it carries no file or line attribution
type CoverageAdvisory struct {
	Severity   Severity `json:"severity"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
}

// CoverageSummary holds the test coverage estimate for a repository.
// CoveragePercentage is a heuristic ratio of test files to non-test source
// files, never a measured line/branch coverage, and must be surfaced as an
// estimate.
type CoverageSummary struct {
	TestFileCount      int                `json:"test_files_found"`
	Frameworks         []string           `json:"test_frameworks"`
	CoveragePercentage int                `json:"coverage_percentage"`
	Issues             []CoverageAdvisory `json:"issues"`
}

// HasFramework reports whether any test framework was detected
func (c *CoverageSummary) HasFramework() bool {
	return len(c.Frameworks) > 0
}
