package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/javascan-dev/javascan/domain"
)

func TestDefault(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	if len(table.Vulnerabilities) == 0 {
		t.Error("Expected embedded vulnerability rules")
	}
	if len(table.Staleness) == 0 {
		t.Error("Expected embedded staleness rules")
	}
	if len(table.Detectors) == 0 {
		t.Error("Expected embedded detector rules")
	}
}

func TestFindVulnerability(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	tests := []struct {
		artifact     string
		wantMatch    bool
		wantSeverity string
		wantCVE      string
	}{
		{"log4j-core", true, "CRITICAL", "CVE-2021-44228"},
		{"LOG4J-CORE", true, "CRITICAL", "CVE-2021-44228"},
		{"struts2-core", true, "CRITICAL", "CVE-2017-5638"},
		{"commons-fileupload", true, "HIGH", "CVE-2016-1000031"},
		{"commons-beanutils", true, "HIGH", "CVE-2019-10086"},
		{"guava", false, "", ""},
		{"", false, "", ""},
	}

	for _, tt := range tests {
		rule, ok := table.FindVulnerability(tt.artifact)
		if ok != tt.wantMatch {
			t.Errorf("FindVulnerability(%q) match = %v, want %v", tt.artifact, ok, tt.wantMatch)
			continue
		}
		if !ok {
			continue
		}
		if rule.Severity != tt.wantSeverity {
			t.Errorf("FindVulnerability(%q) severity = %s, want %s", tt.artifact, rule.Severity, tt.wantSeverity)
		}
		if rule.CVE != tt.wantCVE {
			t.Errorf("FindVulnerability(%q) cve = %s, want %s", tt.artifact, rule.CVE, tt.wantCVE)
		}
	}
}

func TestVulnerabilityRule_Note(t *testing.T) {
	rule := VulnerabilityRule{CVE: "CVE-2021-44228", Description: "Remote code execution"}
	expected := "CVE-2021-44228: Remote code execution"
	if rule.Note() != expected {
		t.Errorf("Expected %q, got %q", expected, rule.Note())
	}
}

func TestLatestKnownMajor(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	major, ok := table.LatestKnownMajor("junit:junit")
	if !ok {
		t.Fatal("junit:junit should be tracked")
	}
	if major != 4 {
		t.Errorf("Expected junit:junit latest major 4, got %d", major)
	}

	// Lookup is case-insensitive
	if _, ok := table.LatestKnownMajor("JUnit:JUnit"); !ok {
		t.Error("Coordinate lookup should be case-insensitive")
	}

	if _, ok := table.LatestKnownMajor("com.example:unknown"); ok {
		t.Error("Untracked coordinate should not be found")
	}
}

func TestCompileDetectors(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	compiled, errs := table.CompileDetectors()
	if len(errs) != 0 {
		t.Errorf("Embedded detectors should all compile, got errors: %v", errs)
	}
	if len(compiled) != len(table.Detectors) {
		t.Errorf("Expected %d compiled detectors, got %d", len(table.Detectors), len(compiled))
	}

	// Order is preserved
	for i, det := range compiled {
		if string(det.Category) != table.Detectors[i].Category {
			t.Errorf("Detector %d: category %s does not match table order %s", i, det.Category, table.Detectors[i].Category)
		}
	}
}

func TestCompileDetectors_InvalidRegexIsolated(t *testing.T) {
	table := &Table{
		Detectors: []DetectorRule{
			{Category: "null_safety", Kind: "regex", Pattern: `[`, Severity: "HIGH"},
			{Category: "deprecated_api", Kind: "substring", Pattern: "new Date()", Severity: "LOW"},
		},
	}

	compiled, errs := table.CompileDetectors()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 compile error, got %d", len(errs))
	}
	if len(compiled) != 1 {
		t.Fatalf("The valid rule should still compile, got %d", len(compiled))
	}
	if compiled[0].Category != domain.CategoryDeprecatedAPI {
		t.Errorf("Unexpected surviving detector: %s", compiled[0].Category)
	}
}

func TestCompiledDetector_Match(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	compiled, _ := table.CompileDetectors()

	matchAny := func(line string, category domain.FindingCategory) bool {
		for i := range compiled {
			if compiled[i].Category != category {
				continue
			}
			if _, ok := compiled[i].Match(line); ok {
				return true
			}
		}
		return false
	}

	tests := []struct {
		line     string
		category domain.FindingCategory
		want     bool
	}{
		{`Integer i = new Integer(42);`, domain.CategoryDeprecatedAPI, true},
		{`Integer i = Integer.valueOf(42);`, domain.CategoryDeprecatedAPI, false},
		{`List list = new ArrayList();`, domain.CategoryDeprecatedAPI, true},
		{`List<String> list = new ArrayList<>();`, domain.CategoryDeprecatedAPI, false},
		{`if (value == null) {`, domain.CategoryNullSafety, true},
		{`if (name.equals(null)) {`, domain.CategoryNullSafety, true},
		{`} catch (Exception e) {`, domain.CategoryExceptionHandling, true},
		{`} catch (IOException e) {`, domain.CategoryExceptionHandling, false},
		{`} catch (IOException e) {}`, domain.CategoryExceptionHandling, true},
		{`e.printStackTrace();`, domain.CategoryExceptionHandling, true},
		{`private static HashMap cache = new HashMap();`, domain.CategoryThreadSafety, true},
		{`if (status == "ACTIVE") {`, domain.CategoryStringComparison, true},
		{`if (status.equals("ACTIVE")) {`, domain.CategoryStringComparison, false},
		{`String password = "hunter2";`, domain.CategoryHardcodedValue, true},
	}

	for _, tt := range tests {
		if got := matchAny(tt.line, tt.category); got != tt.want {
			t.Errorf("line %q category %s: match = %v, want %v", tt.line, tt.category, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	content := `
[[vulnerability]]
artifact = "evil-lib"
cve = "CVE-2099-0001"
severity = "CRITICAL"
description = "test entry"

[[staleness]]
coordinate = "com.example:lib"
latest_major = 9
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if _, ok := table.FindVulnerability("evil-lib-core"); !ok {
		t.Error("Loaded vulnerability rule should match")
	}
	if major, ok := table.LatestKnownMajor("com.example:lib"); !ok || major != 9 {
		t.Errorf("Expected tracked major 9, got %d (ok=%v)", major, ok)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for missing rules file")
	}
}
