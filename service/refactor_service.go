package service

import (
	"context"

	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/internal/analyzer"
	"github.com/javascan-dev/javascan/internal/config"
)

// RefactorServiceImpl implements domain.RefactorService
type RefactorServiceImpl struct {
	detector *analyzer.RefactorDetector
	root     string
}

// NewRefactorService creates a refactor service with the configured thresholds.
// File paths in the report are made relative to root.
func NewRefactorService(cfg *config.Config, root string) *RefactorServiceImpl {
	return &RefactorServiceImpl{
		detector: analyzer.NewRefactorDetector(
			cfg.Refactor.LongMethodLines,
			cfg.Refactor.GodClassMethods,
			cfg.Refactor.DuplicateWindowLines,
		),
		root: root,
	}
}

// Detect scans the given files for long methods, god classes, and duplicate
// code blocks
func (s *RefactorServiceImpl) Detect(ctx context.Context, files []string) (*domain.RefactorReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, warnings := s.detector.Detect(s.root, files)
	report.Warnings = warnings
	return report, nil
}

// CrossReferenceDeprecated folds deprecated-API findings from the source scan
// into the refactor report
func (s *RefactorServiceImpl) CrossReferenceDeprecated(report *domain.RefactorReport, findings []domain.Finding) {
	s.detector.CrossReferenceDeprecated(report, findings)
}
