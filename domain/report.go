package domain

// Health score deduction weights. These are the audited scoring policy: the
// score starts at PerfectHealthScore and deductions are subtracted per the
// constants below, floored at zero. Changing a weight changes reported scores
// for every repository, so every weight is a named constant rather than an
// inline literal.
const (
	PerfectHealthScore = 100

	// Dependency deductions
	CriticalDependencyPenalty   = 8
	HighDependencyPenalty       = 5
	MaxDependencyPenalty        = 25
	OutdatedDependencyTolerance = 5
	OutdatedDependencyPenalty   = 10

	// Source finding deductions
	HighFindingPenalty   = 3
	MediumFindingPenalty = 1
	MaxFindingPenalty    = 20

	// Coverage deductions: one point per CoverageShortfallDivisor percentage
	// points that the estimate falls below CoverageTarget
	CoverageTarget           = 80
	CoverageShortfallDivisor = 4
	MissingFrameworkPenalty  = 5

	// Refactoring deductions
	RefactorOpportunityPenalty = 1
	MaxRefactorPenalty         = 10
)

// AnalysisSummary is the derived roll-up of an AnalysisReport
type AnalysisSummary struct {
	TotalDependencies        int      `json:"total_dependencies"`
	OutdatedDependencies     int      `json:"outdated_dependencies"`
	VulnerableDependencies   int      `json:"vulnerable_dependencies"`
	CriticalDependencyIssues int      `json:"critical_dependency_issues"`
	BusinessLogicIssues      int      `json:"business_logic_issues"`
	HighPriorityIssues       int      `json:"high_priority_business_logic"`
	TestCoveragePercentage   int      `json:"test_coverage_percentage"`
	TestFiles                int      `json:"test_files"`
	TestFrameworks           []string `json:"test_frameworks"`
	TestingIssues            int      `json:"testing_issues"`
	JavaFiles                int      `json:"java_files"`
	RefactoringOpportunities int      `json:"refactoring_opportunities"`

	// Notes distinguishes "nothing to analyze" from "analyzed, nothing found"
	Notes []string `json:"notes,omitempty"`

	OverallHealthScore int `json:"overall_health_score"`
}

// AnalysisReport is the terminal aggregate returned by a single analysis run.
// It is constructed once, is immutable thereafter, and carries no state across
// invocations.
type AnalysisReport struct {
	Dependencies        DependenciesReport  `json:"dependencies"`
	BusinessLogicIssues []Finding           `json:"business_logic_issues"`
	TestingCoverage     CoverageSummary     `json:"testing_coverage"`
	CodeRefactoring     RefactorReport      `json:"code_refactoring"`
	Summary             AnalysisSummary     `json:"summary"`

	Warnings    []string `json:"warnings,omitempty"`
	GeneratedAt string   `json:"generated_at"`
	Version     string   `json:"version"`
	DurationMs  int64    `json:"duration_ms"`
}

// ComputeSummary derives the summary counts and health score from the
// report's collections. Safe to call on a partially populated report.
func (r *AnalysisReport) ComputeSummary() {
	frameworks := r.TestingCoverage.Frameworks
	if frameworks == nil {
		frameworks = []string{}
	}

	r.Summary = AnalysisSummary{
		TotalDependencies:        r.Dependencies.TotalDependencies,
		OutdatedDependencies:     r.Dependencies.OutdatedCount,
		VulnerableDependencies:   r.Dependencies.VulnerableCount,
		CriticalDependencyIssues: len(r.Dependencies.CriticalIssues),
		BusinessLogicIssues:      len(r.BusinessLogicIssues),
		HighPriorityIssues:       CountBySeverity(r.BusinessLogicIssues, SeverityHigh),
		TestCoveragePercentage:   r.TestingCoverage.CoveragePercentage,
		TestFiles:                r.TestingCoverage.TestFileCount,
		TestFrameworks:           frameworks,
		TestingIssues:            len(r.TestingCoverage.Issues),
		JavaFiles:                r.CodeRefactoring.TotalJavaFiles,
		RefactoringOpportunities: len(r.CodeRefactoring.Issues),
		Notes:                    r.Summary.Notes,
		OverallHealthScore:       CalculateHealthScore(r),
	}
}

// CalculateHealthScore computes the 0-100 health score for a report. It is a
// pure function of the report's collections: order-independent, deterministic,
// and total (malformed or empty inputs contribute zero deduction).
func CalculateHealthScore(r *AnalysisReport) int {
	if r == nil {
		return PerfectHealthScore
	}

	score := PerfectHealthScore

	// Vulnerable dependencies, heaviest weight
	depPenalty := 0
	for _, dep := range r.Dependencies.AllDependencies() {
		switch dep.Severity {
		case SeverityCritical:
			depPenalty += CriticalDependencyPenalty
		case SeverityHigh:
			depPenalty += HighDependencyPenalty
		}
	}
	score -= minInt(depPenalty, MaxDependencyPenalty)

	if r.Dependencies.OutdatedCount > OutdatedDependencyTolerance {
		score -= OutdatedDependencyPenalty
	}

	// Source findings
	findingPenalty := CountBySeverity(r.BusinessLogicIssues, SeverityHigh)*HighFindingPenalty +
		CountBySeverity(r.BusinessLogicIssues, SeverityMedium)*MediumFindingPenalty
	score -= minInt(findingPenalty, MaxFindingPenalty)

	// Coverage shortfall, one point per CoverageShortfallDivisor points below target
	coverage := clampInt(r.TestingCoverage.CoveragePercentage, 0, 100)
	if coverage < CoverageTarget {
		score -= (CoverageTarget - coverage) / CoverageShortfallDivisor
	}
	if !r.TestingCoverage.HasFramework() {
		score -= MissingFrameworkPenalty
	}

	// Refactoring opportunities
	score -= minInt(len(r.CodeRefactoring.Issues)*RefactorOpportunityPenalty, MaxRefactorPenalty)

	if score < 0 {
		score = 0
	}
	return score
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
