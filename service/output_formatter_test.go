package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/javascan-dev/javascan/domain"
	"gopkg.in/yaml.v3"
)

func sampleReport() *domain.AnalysisReport {
	report := &domain.AnalysisReport{
		Dependencies: domain.DependenciesReport{
			Maven: domain.ManifestResult{
				Found: true,
				Dependencies: []domain.Dependency{
					{GroupID: "org.apache.logging.log4j", ArtifactID: "log4j-core", Version: "2.14.1",
						Severity: domain.SeverityCritical, Note: "CVE-2021-44228: Log4Shell", Ecosystem: domain.EcosystemMaven},
				},
			},
		},
		BusinessLogicIssues: []domain.Finding{
			{Category: domain.CategoryNullSafety, FilePath: "src/main/java/A.java", Line: 10,
				Severity: domain.SeverityMedium, MatchedText: "if (x == null)", Suggestion: "Use Optional"},
		},
		TestingCoverage: domain.CoverageSummary{
			TestFileCount:      1,
			Frameworks:         []string{"JUnit"},
			CoveragePercentage: 40,
		},
		CodeRefactoring: domain.RefactorReport{
			TotalJavaFiles: 5,
			Issues: []domain.RefactorOpportunity{
				{Type: domain.RefactorLongMethod, FilePath: "src/main/java/A.java",
					Severity: domain.SeverityMedium, Details: "method big is 60 lines"},
			},
		},
		GeneratedAt: "2026-01-02T03:04:05Z",
		Version:     "1.0.0",
	}
	report.Dependencies.Recount()
	report.ComputeSummary()
	return report
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter()

	if err := f.Write(sampleReport(), domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	// Stable wire keys
	for _, key := range []string{"dependencies", "business_logic_issues", "testing_coverage", "code_refactoring", "summary"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Missing top-level key %q", key)
		}
	}

	summary, ok := decoded["summary"].(map[string]interface{})
	if !ok {
		t.Fatal("summary should be an object")
	}
	if _, ok := summary["overall_health_score"]; !ok {
		t.Error("summary should carry overall_health_score")
	}
	if summary["critical_dependency_issues"].(float64) != 1 {
		t.Errorf("Expected 1 critical dependency issue, got %v", summary["critical_dependency_issues"])
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter()

	if err := f.Write(sampleReport(), domain.OutputFormatYAML, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter()

	if err := f.Write(sampleReport(), domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Health Score:", "Dependencies:", "Test Coverage:", "Refactoring:", "log4j-core"} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output missing %q:\n%s", want, out)
		}
	}

	// Details are off by default
	if strings.Contains(out, "if (x == null)") {
		t.Error("Per-finding detail should require ShowDetails")
	}
}

func TestWrite_TextWithDetails(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter()
	f.ShowDetails = true

	if err := f.Write(sampleReport(), domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if !strings.Contains(buf.String(), "if (x == null)") {
		t.Error("ShowDetails should list individual findings")
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter()

	err := f.Write(sampleReport(), domain.OutputFormat("xml"), &buf)
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}

	var domainErr domain.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("Expected DomainError, got %T", err)
	}
	if domainErr.Code != domain.ErrCodeUnsupportedFormat {
		t.Errorf("Expected %s, got %s", domain.ErrCodeUnsupportedFormat, domainErr.Code)
	}
}

func TestWriteScan_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter()

	resp := &domain.ScanResponse{
		Findings: []domain.Finding{
			{Category: domain.CategoryDeprecatedAPI, FilePath: "A.java", Line: 1, Severity: domain.SeverityLow, MatchedText: "new Date()"},
		},
		Scanned: 1,
	}

	if err := f.WriteScan(resp, domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("WriteScan failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["files_scanned"].(float64) != 1 {
		t.Errorf("Expected files_scanned 1, got %v", decoded["files_scanned"])
	}
}

func TestWriteDependencies_Text(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter()

	report := &sampleReport().Dependencies
	if err := f.WriteDependencies(report, domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("WriteDependencies failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "log4j-core") {
		t.Errorf("Dependency listing missing artifact:\n%s", out)
	}
	if !strings.Contains(out, "[CRITICAL]") {
		t.Errorf("Severity marker missing:\n%s", out)
	}
}
