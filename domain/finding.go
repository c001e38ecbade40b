package domain

// FindingCategory classifies a detected source-code issue
type FindingCategory string

const (
	CategoryDeprecatedAPI     FindingCategory = "deprecated_api"
	CategoryNullSafety        FindingCategory = "null_safety"
	CategoryExceptionHandling FindingCategory = "exception_handling"
	CategoryThreadSafety      FindingCategory = "thread_safety"
	CategoryStringComparison  FindingCategory = "string_comparison"
	CategoryHardcodedValue    FindingCategory = "hardcoded_value"
	CategorySerialization     FindingCategory = "missing_serialversionuid"
)

// Finding represents one detected source-code issue at a specific file/line.
// Findings are advisory pattern matches, not proven defects: detection is
// line-level text matching with no semantic analysis behind it.
type Finding struct {
	Category FindingCategory `json:"type"`
	FilePath string          `json:"file"`

	// Line is 1-based and refers to the line containing MatchedText
	Line int `json:"line"`

	Severity Severity `json:"severity"`

	// MatchedText is the triggering snippet, truncated
	MatchedText string `json:"match"`

	Suggestion string `json:"suggestion"`
}

// CountBySeverity returns the number of findings at the given severity
func CountBySeverity(findings []Finding, severity Severity) int {
	n := 0
	for _, f := range findings {
		if f.Severity == severity {
			n++
		}
	}
	return n
}
