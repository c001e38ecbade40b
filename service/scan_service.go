package service

import (
	"context"

	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/internal/analyzer"
	"github.com/javascan-dev/javascan/internal/config"
	"github.com/javascan-dev/javascan/internal/rules"
)

// ScanServiceImpl implements domain.SourceScanService
type ScanServiceImpl struct {
	scanner  *analyzer.SourceScanner
	warnings []string
}

// NewScanService compiles the configured detector rules into a scan service.
// Rules that fail to compile are reported as warnings and skipped; the rest
// of the table stays active.
func NewScanService(cfg *config.Config, table *rules.Table) *ScanServiceImpl {
	detectors, errs := table.CompileDetectors()

	var warnings []string
	for _, err := range errs {
		warnings = append(warnings, err.Error())
	}

	return &ScanServiceImpl{
		scanner:  analyzer.NewSourceScanner(detectors, cfg.Analysis.MaxFiles),
		warnings: warnings,
	}
}

// Scan runs every detector over each file, line by line. Unreadable files
// are skipped with a warning and never abort the scan.
func (s *ScanServiceImpl) Scan(ctx context.Context, req domain.ScanRequest) (*domain.ScanResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scanner := s.scanner
	if req.FileCap > 0 {
		scanner = analyzer.NewSourceScanner(s.scanner.Detectors(), req.FileCap)
	}

	findings, scanned, warnings := scanner.ScanFiles(req.Root, req.Files)

	resp := &domain.ScanResponse{
		Findings: findings,
		Scanned:  scanned,
		Warnings: append(append([]string{}, s.warnings...), warnings...),
	}
	if len(resp.Warnings) == 0 {
		resp.Warnings = nil
	}
	return resp, nil
}
