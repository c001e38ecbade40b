package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/internal/config"
	"github.com/javascan-dev/javascan/internal/version"
	"github.com/javascan-dev/javascan/service"
)

// AnalyzeUseCase orchestrates the four analysis passes and aggregates their
// results into one report. The passes run in parallel and never depend on
// each other; all joins happen here after the parallel phase.
type AnalyzeUseCase struct {
	manifestService domain.ManifestService
	scanService     domain.SourceScanService
	coverageService domain.CoverageService
	refactorService domain.RefactorService
	executor        domain.ParallelExecutor
	formatter       domain.ReportFormatter
	fileHelper      *FileHelper
	cfg             *config.Config
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(
	manifestService domain.ManifestService,
	scanService domain.SourceScanService,
	coverageService domain.CoverageService,
	refactorService domain.RefactorService,
	executor domain.ParallelExecutor,
	formatter domain.ReportFormatter,
	cfg *config.Config,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		manifestService: manifestService,
		scanService:     scanService,
		coverageService: coverageService,
		refactorService: refactorService,
		executor:        executor,
		formatter:       formatter,
		fileHelper:      NewFileHelper(),
		cfg:             cfg,
	}
}

// analysisTask adapts one analysis pass to domain.ExecutableTask
type analysisTask struct {
	name string
	run  func(ctx context.Context) (interface{}, error)
}

func (t *analysisTask) Name() string    { return t.name }
func (t *analysisTask) IsEnabled() bool { return true }
func (t *analysisTask) Execute(ctx context.Context) (interface{}, error) {
	return t.run(ctx)
}

// Execute runs the full analysis. The only error it returns is an invalid
// root; every downstream failure degrades to report warnings so one broken
// file or pass never discards the rest of the analysis.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalysisReport, error) {
	startTime := time.Now()

	info, err := os.Stat(req.Root)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("repository path does not exist: %s", req.Root), err)
	}
	if !info.IsDir() {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("repository path is not a directory: %s", req.Root), nil)
	}

	report := &domain.AnalysisReport{
		BusinessLogicIssues: []domain.Finding{},
		GeneratedAt:         time.Now().Format(time.RFC3339),
		Version:             version.Version,
	}

	files, err := uc.fileHelper.CollectJavaFiles(req.Root, uc.cfg.Analysis.ExcludeDirs, uc.cfg.Analysis.RespectGitignore)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("file collection failed: %v", err))
	}

	var (
		depsReport  *domain.DependenciesReport
		scanResp    *domain.ScanResponse
		coverage    *domain.CoverageSummary
		refactoring *domain.RefactorReport
	)

	tasks := []domain.ExecutableTask{
		&analysisTask{name: "dependencies", run: func(ctx context.Context) (interface{}, error) {
			r, err := uc.manifestService.Parse(ctx, req.Root)
			if err == nil {
				depsReport = r
			}
			return r, err
		}},
		&analysisTask{name: "source-scan", run: func(ctx context.Context) (interface{}, error) {
			r, err := uc.scanService.Scan(ctx, domain.ScanRequest{
				Root:    req.Root,
				Files:   files,
				FileCap: req.FileCap,
			})
			if err == nil {
				scanResp = r
			}
			return r, err
		}},
		&analysisTask{name: "coverage", run: func(ctx context.Context) (interface{}, error) {
			r, err := uc.coverageService.Estimate(ctx, files)
			if err == nil {
				coverage = r
			}
			return r, err
		}},
		&analysisTask{name: "refactoring", run: func(ctx context.Context) (interface{}, error) {
			r, err := uc.refactorService.Detect(ctx, files)
			if err == nil {
				refactoring = r
			}
			return r, err
		}},
	}

	if err := uc.executor.Execute(ctx, tasks); err != nil {
		var aggregated *service.AggregatedError
		if errors.As(err, &aggregated) {
			for _, taskErr := range aggregated.Errors {
				report.Warnings = append(report.Warnings, fmt.Sprintf("%s analysis failed: %v", taskErr.TaskName, taskErr.Err))
			}
		} else {
			report.Warnings = append(report.Warnings, fmt.Sprintf("analysis incomplete: %v", err))
		}
	}

	if depsReport != nil {
		report.Dependencies = *depsReport
		report.Warnings = append(report.Warnings, depsReport.Maven.Warnings...)
		report.Warnings = append(report.Warnings, depsReport.Gradle.Warnings...)
	}
	if scanResp != nil {
		report.BusinessLogicIssues = scanResp.Findings
		report.Warnings = append(report.Warnings, scanResp.Warnings...)
	}
	if coverage != nil {
		report.TestingCoverage = *coverage
	}
	if refactoring != nil {
		report.CodeRefactoring = *refactoring
		report.Warnings = append(report.Warnings, refactoring.Warnings...)
	}

	// Post-join merges: framework names declared in manifests, and the
	// deprecated-API cross-reference from the source scan.
	if coverage != nil && depsReport != nil {
		uc.coverageService.MergeFrameworks(&report.TestingCoverage, depsReport.AllDependencies())
	}
	if refactoring != nil && scanResp != nil {
		uc.refactorService.CrossReferenceDeprecated(&report.CodeRefactoring, scanResp.Findings)
	}

	if depsReport != nil && !depsReport.Maven.Found && !depsReport.Gradle.Found {
		report.Summary.Notes = append(report.Summary.Notes, "no build manifests found")
	}
	if len(files) == 0 {
		report.Summary.Notes = append(report.Summary.Notes, "no Java source files found")
	}

	// Summary and score are computed over the complete finding set before
	// any output cap is applied.
	report.ComputeSummary()
	report.BusinessLogicIssues = capFindings(report.BusinessLogicIssues, uc.cfg.Analysis.MaxReportedFindings)

	report.DurationMs = time.Since(startTime).Milliseconds()
	return report, nil
}

// Write renders the report with the use case's formatter
func (uc *AnalyzeUseCase) Write(report *domain.AnalysisReport, req domain.AnalyzeRequest) error {
	format := req.OutputFormat
	if format == "" {
		format = domain.OutputFormatText
	}
	return uc.formatter.Write(report, format, req.OutputWriter)
}

// capFindings keeps the limit most severe findings, preserving the original
// file-then-line order among those kept. limit <= 0 keeps everything.
func capFindings(findings []domain.Finding, limit int) []domain.Finding {
	if limit <= 0 || len(findings) <= limit {
		return findings
	}

	indices := make([]int, len(findings))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return findings[indices[a]].Severity.Rank() < findings[indices[b]].Severity.Rank()
	})

	kept := indices[:limit]
	sort.Ints(kept)

	out := make([]domain.Finding, 0, limit)
	for _, i := range kept {
		out = append(out, findings[i])
	}
	return out
}
