package domain

// RefactorType classifies a structural refactoring opportunity
type RefactorType string

const (
	RefactorLongMethod    RefactorType = "long_method"
	RefactorGodClass      RefactorType = "god_class"
	RefactorDeprecatedAPI RefactorType = "deprecated_api"
	RefactorDuplicateCode RefactorType = "duplicate_code"
)

// RefactorOpportunity represents one structural smell detected by simple
// structural counting (brace tracking, declaration counts, line hashing)
type RefactorOpportunity struct {
	Type       RefactorType `json:"type"`
	FilePath   string       `json:"file"`
	Severity   Severity     `json:"severity"`
	Details    string       `json:"details,omitempty"`
	Suggestion string       `json:"suggestion"`
}

// RefactorReport aggregates refactoring opportunities for a repository
type RefactorReport struct {
	TotalJavaFiles int                   `json:"total_java_files"`
	Issues         []RefactorOpportunity `json:"issues"`
	Warnings       []string              `json:"warnings,omitempty"`
}
