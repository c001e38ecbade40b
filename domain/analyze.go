package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// AnalyzeRequest represents a request for a full repository analysis
type AnalyzeRequest struct {
	// Root is the path to a checked-out working tree. The analyzer assumes
	// the tree already exists and is readable; cloning is a caller concern.
	Root string

	// FileCap bounds the number of source files scanned; 0 uses the
	// configured default. Excess files are skipped, not sampled.
	FileCap int

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer

	// ConfigPath points at an explicit configuration file
	ConfigPath string
}

// ScanRequest represents a request for a source pattern scan only
type ScanRequest struct {
	Root    string
	Files   []string
	FileCap int
}

// ScanResponse holds the findings of a source pattern scan
type ScanResponse struct {
	Findings []Finding `json:"findings"`
	Scanned  int       `json:"files_scanned"`
	Warnings []string  `json:"warnings,omitempty"`
}

// ManifestService parses build manifests under a root directory
type ManifestService interface {
	Parse(ctx context.Context, root string) (*DependenciesReport, error)
}

// SourceScanService runs the anti-pattern detectors over source files
type SourceScanService interface {
	Scan(ctx context.Context, req ScanRequest) (*ScanResponse, error)
}

// CoverageService estimates test coverage from file naming conventions.
// MergeFrameworks folds dependency-declared frameworks into a summary after
// the parallel phase; it exists so the estimate task never waits on the
// manifest task.
type CoverageService interface {
	Estimate(ctx context.Context, files []string) (*CoverageSummary, error)
	MergeFrameworks(summary *CoverageSummary, deps []Dependency)
}

// RefactorService detects structural refactoring opportunities.
// CrossReferenceDeprecated reuses the source scan's deprecated-API findings
// instead of re-scanning.
type RefactorService interface {
	Detect(ctx context.Context, files []string) (*RefactorReport, error)
	CrossReferenceDeprecated(report *RefactorReport, findings []Finding)
}

// ReportFormatter writes an AnalysisReport in the requested format
type ReportFormatter interface {
	Write(report *AnalysisReport, format OutputFormat, writer io.Writer) error
}

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is a unit of work runnable by a ParallelExecutor
type ExecutableTask interface {
	Name() string
	IsEnabled() bool
	Execute(ctx context.Context) (interface{}, error)
}

// ParallelExecutor runs tasks concurrently with bounded parallelism
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}
