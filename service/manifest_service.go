package service

import (
	"context"

	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/internal/analyzer"
	"github.com/javascan-dev/javascan/internal/config"
	"github.com/javascan-dev/javascan/internal/manifest"
	"github.com/javascan-dev/javascan/internal/rules"
)

// ManifestServiceImpl implements domain.ManifestService
type ManifestServiceImpl struct {
	locator    *manifest.Locator
	classifier *analyzer.Classifier
}

// NewManifestService creates a manifest service with the given configuration
// and rule table
func NewManifestService(cfg *config.Config, table *rules.Table) *ManifestServiceImpl {
	return &ManifestServiceImpl{
		locator: &manifest.Locator{
			MaxDepth:    cfg.Manifest.MaxDepth,
			MaxPerKind:  cfg.Manifest.MaxManifests,
			ExcludeDirs: cfg.Analysis.ExcludeDirs,
		},
		classifier: analyzer.NewClassifier(table, cfg.Staleness.LowMajorsBehind, cfg.Staleness.MediumMajorsBehind),
	}
}

// Parse locates and parses all Maven and Gradle manifests under root,
// classifies every dependency, and returns the aggregated report. Missing
// manifests are not an error: the per-ecosystem Found flag carries that.
func (s *ManifestServiceImpl) Parse(ctx context.Context, root string) (*domain.DependenciesReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &domain.DependenciesReport{
		Maven:  manifest.ParseMaven(root, s.locator),
		Gradle: manifest.ParseGradle(root, s.locator),
	}

	s.classifier.Classify(report.Maven.Dependencies)
	s.classifier.Classify(report.Gradle.Dependencies)
	report.Recount()

	return report, nil
}
