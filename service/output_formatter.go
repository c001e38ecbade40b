package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/javascan-dev/javascan/domain"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements the ReportFormatter interface
type OutputFormatterImpl struct {
	// ShowDetails enables per-finding listings in text output
	ShowDetails bool
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(data)
}

// Write writes the analysis report in the specified format
func (f *OutputFormatterImpl) Write(report *domain.AnalysisReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, report)
	case domain.OutputFormatText:
		return f.writeAnalysisText(report, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteDependencies writes a standalone dependencies report
func (f *OutputFormatterImpl) WriteDependencies(report *domain.DependenciesReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, report)
	case domain.OutputFormatText:
		return f.writeDependenciesText(report, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteScan writes a standalone source scan response
func (f *OutputFormatterImpl) WriteScan(resp *domain.ScanResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, resp)
	case domain.OutputFormatText:
		return f.writeScanText(resp, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *OutputFormatterImpl) writeAnalysisText(report *domain.AnalysisReport, writer io.Writer) error {
	s := report.Summary

	fmt.Fprintf(writer, "\n=== Repository Analysis ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", report.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", report.Version)

	fmt.Fprintf(writer, "Health Score: %d/100\n\n", s.OverallHealthScore)

	fmt.Fprintf(writer, "Dependencies:\n")
	fmt.Fprintf(writer, "  Total: %d\n", s.TotalDependencies)
	fmt.Fprintf(writer, "  Outdated: %d\n", s.OutdatedDependencies)
	fmt.Fprintf(writer, "  Vulnerable: %d\n", s.VulnerableDependencies)
	for _, issue := range report.Dependencies.CriticalIssues {
		fmt.Fprintf(writer, "  [%s] %s %s: %s\n", issue.Severity, issue.Artifact, issue.Version, issue.Issue)
	}
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "Source Findings:\n")
	fmt.Fprintf(writer, "  Total: %d\n", s.BusinessLogicIssues)
	fmt.Fprintf(writer, "  High priority: %d\n", s.HighPriorityIssues)
	if f.ShowDetails {
		for _, finding := range report.BusinessLogicIssues {
			fmt.Fprintf(writer, "  [%s] %s:%d %s: %s\n",
				finding.Severity, finding.FilePath, finding.Line, finding.Category, finding.MatchedText)
		}
	}
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "Test Coverage:\n")
	fmt.Fprintf(writer, "  Estimated: %d%%\n", s.TestCoveragePercentage)
	fmt.Fprintf(writer, "  Test files: %d\n", s.TestFiles)
	if len(s.TestFrameworks) > 0 {
		fmt.Fprintf(writer, "  Frameworks: %s\n", strings.Join(s.TestFrameworks, ", "))
	}
	for _, issue := range report.TestingCoverage.Issues {
		fmt.Fprintf(writer, "  [%s] %s\n", issue.Severity, issue.Issue)
	}
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "Refactoring:\n")
	fmt.Fprintf(writer, "  Java files: %d\n", s.JavaFiles)
	fmt.Fprintf(writer, "  Opportunities: %d\n", s.RefactoringOpportunities)
	if f.ShowDetails {
		for _, opp := range report.CodeRefactoring.Issues {
			fmt.Fprintf(writer, "  [%s] %s %s: %s\n", opp.Severity, opp.Type, opp.FilePath, opp.Details)
		}
	}

	if len(s.Notes) > 0 {
		fmt.Fprintf(writer, "\nNotes:\n")
		for _, note := range s.Notes {
			fmt.Fprintf(writer, "  - %s\n", note)
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}

	return nil
}

func (f *OutputFormatterImpl) writeDependenciesText(report *domain.DependenciesReport, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Dependency Analysis ===\n\n")
	fmt.Fprintf(writer, "Maven manifests found: %v\n", report.Maven.Found)
	fmt.Fprintf(writer, "Gradle manifests found: %v\n", report.Gradle.Found)
	fmt.Fprintf(writer, "Total dependencies: %d\n", report.TotalDependencies)
	fmt.Fprintf(writer, "Outdated: %d\n", report.OutdatedCount)
	fmt.Fprintf(writer, "Vulnerable: %d\n\n", report.VulnerableCount)

	for _, dep := range report.AllDependencies() {
		marker := "  "
		if dep.Severity != domain.SeverityOK && dep.Severity != "" {
			marker = fmt.Sprintf("  [%s] ", dep.Severity)
		}
		fmt.Fprintf(writer, "%s%s %s (%s, %s)\n", marker, dep.Coordinate(), dep.Version, dep.Ecosystem, dep.SourceFile)
		if dep.Note != "" {
			fmt.Fprintf(writer, "      %s\n", dep.Note)
		}
	}

	return nil
}

func (f *OutputFormatterImpl) writeScanText(resp *domain.ScanResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Source Pattern Scan ===\n\n")
	fmt.Fprintf(writer, "Files scanned: %d\n", resp.Scanned)
	fmt.Fprintf(writer, "Findings: %d\n\n", len(resp.Findings))

	for _, finding := range resp.Findings {
		fmt.Fprintf(writer, "  [%s] %s:%d %s\n", finding.Severity, finding.FilePath, finding.Line, finding.Category)
		fmt.Fprintf(writer, "      %s\n", finding.MatchedText)
		if finding.Suggestion != "" {
			fmt.Fprintf(writer, "      suggestion: %s\n", finding.Suggestion)
		}
	}

	if len(resp.Warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range resp.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}

	return nil
}
