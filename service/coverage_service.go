package service

import (
	"context"

	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/internal/analyzer"
	"github.com/javascan-dev/javascan/internal/config"
)

// CoverageServiceImpl implements domain.CoverageService
type CoverageServiceImpl struct {
	estimator *analyzer.CoverageEstimator
}

// NewCoverageService creates a coverage service with the configured thresholds
func NewCoverageService(cfg *config.Config) *CoverageServiceImpl {
	return &CoverageServiceImpl{
		estimator: analyzer.NewCoverageEstimator(cfg.Coverage.LowThreshold, cfg.Coverage.TargetThreshold),
	}
}

// Estimate derives a coverage summary from file naming conventions. It never
// runs tests; the percentage is a test-to-source file ratio, not measured
// line coverage.
func (s *CoverageServiceImpl) Estimate(ctx context.Context, files []string) (*domain.CoverageSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := s.estimator.Estimate(files)
	return &summary, nil
}

// MergeFrameworks folds dependency-declared test frameworks into the summary
// and recomputes its advisories. Called by the aggregator after the parallel
// phase so the coverage task never depends on the manifest task.
func (s *CoverageServiceImpl) MergeFrameworks(summary *domain.CoverageSummary, deps []domain.Dependency) {
	s.estimator.MergeFrameworksFromDependencies(summary, deps)
}
