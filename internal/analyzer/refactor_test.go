package analyzer

import (
	"strings"
	"testing"

	"github.com/javascan-dev/javascan/domain"
)

func TestDetect_LongMethod(t *testing.T) {
	dir := t.TempDir()

	var sb strings.Builder
	sb.WriteString("public class Worker {\n")
	sb.WriteString("    public void bigMethod() {\n")
	for i := 0; i < 60; i++ {
		sb.WriteString("        doStep();\n")
	}
	sb.WriteString("    }\n")
	sb.WriteString("}\n")
	path := writeFile(t, dir, "Worker.java", sb.String())

	d := NewRefactorDetector(50, 20, 6)
	report, warnings := d.Detect(dir, []string{path})

	if len(warnings) != 0 {
		t.Fatalf("Unexpected warnings: %v", warnings)
	}
	if report.TotalJavaFiles != 1 {
		t.Errorf("Expected 1 java file, got %d", report.TotalJavaFiles)
	}

	var long *domain.RefactorOpportunity
	for i := range report.Issues {
		if report.Issues[i].Type == domain.RefactorLongMethod {
			long = &report.Issues[i]
		}
	}
	if long == nil {
		t.Fatal("Expected a long_method opportunity")
	}
	if long.FilePath != "Worker.java" {
		t.Errorf("Expected Worker.java, got %s", long.FilePath)
	}
	if !strings.Contains(long.Details, "bigMethod") {
		t.Errorf("Details should name the method, got %q", long.Details)
	}
}

func TestDetect_ShortMethodNotFlagged(t *testing.T) {
	dir := t.TempDir()
	src := `public class Small {
    public void tiny() {
        doStep();
    }
}
`
	path := writeFile(t, dir, "Small.java", src)

	d := NewRefactorDetector(50, 20, 6)
	report, _ := d.Detect(dir, []string{path})

	for _, opp := range report.Issues {
		if opp.Type == domain.RefactorLongMethod {
			t.Errorf("Short method should not be flagged: %v", opp)
		}
	}
}

func TestDetect_GodClass(t *testing.T) {
	dir := t.TempDir()

	var sb strings.Builder
	sb.WriteString("public class Everything {\n")
	for i := 0; i < 25; i++ {
		sb.WriteString("    public void method" + strings.Repeat("x", i%3) + "() {\n")
		sb.WriteString("        doStep();\n")
		sb.WriteString("    }\n")
	}
	sb.WriteString("}\n")
	path := writeFile(t, dir, "Everything.java", sb.String())

	d := NewRefactorDetector(500, 20, 6)
	report, _ := d.Detect(dir, []string{path})

	var god *domain.RefactorOpportunity
	for i := range report.Issues {
		if report.Issues[i].Type == domain.RefactorGodClass {
			god = &report.Issues[i]
		}
	}
	if god == nil {
		t.Fatal("Expected a god_class opportunity")
	}
	if god.Severity != domain.SeverityHigh {
		t.Errorf("Expected HIGH severity, got %s", god.Severity)
	}
}

func TestDetect_DuplicateCode(t *testing.T) {
	dir := t.TempDir()

	block := `        int total = 0;
        for (Item item : items) {
            total += item.getPrice();
            total += item.getTax();
            total -= item.getDiscount();
            log.info(total);
        }
`
	a := "public class A {\n    public int sumA() {\n" + block + "    }\n}\n"
	b := "public class B {\n    public int sumB() {\n" + block + "    }\n}\n"
	pathA := writeFile(t, dir, "A.java", a)
	pathB := writeFile(t, dir, "B.java", b)

	d := NewRefactorDetector(500, 500, 6)
	report, _ := d.Detect(dir, []string{pathA, pathB})

	var dups []domain.RefactorOpportunity
	for _, opp := range report.Issues {
		if opp.Type == domain.RefactorDuplicateCode {
			dups = append(dups, opp)
		}
	}
	if len(dups) != 1 {
		t.Fatalf("Expected exactly 1 duplicate group, got %d: %v", len(dups), dups)
	}
	if !strings.Contains(dups[0].Details, "A.java") || !strings.Contains(dups[0].Details, "B.java") {
		t.Errorf("Details should name both files, got %q", dups[0].Details)
	}
}

func TestDetect_DuplicateCodeWithinOneFile(t *testing.T) {
	dir := t.TempDir()

	src := `public class Dup {
    public void first() {
        int a = load();
        int b = transform(a);
        int c = validate(b);
        int d = persist(c);
        int e = publish(d);
        log.info(e);
    }

    public void second() {
        int a = load();
        int b = transform(a);
        int c = validate(b);
        int d = persist(c);
        int e = publish(d);
        log.info(e);
    }
}
`
	path := writeFile(t, dir, "Dup.java", src)

	d := NewRefactorDetector(500, 500, 6)
	report, _ := d.Detect(dir, []string{path})

	var dups []domain.RefactorOpportunity
	for _, opp := range report.Issues {
		if opp.Type == domain.RefactorDuplicateCode {
			dups = append(dups, opp)
		}
	}
	if len(dups) != 1 {
		t.Fatalf("Expected 1 duplicate group within the file, got %d: %v", len(dups), dups)
	}
	if dups[0].FilePath != "Dup.java" {
		t.Errorf("Expected Dup.java, got %s", dups[0].FilePath)
	}
	if !strings.Contains(dups[0].Details, "Dup.java:3") || !strings.Contains(dups[0].Details, "Dup.java:12") {
		t.Errorf("Details should point at both occurrences, got %q", dups[0].Details)
	}
}

func TestDetect_DistinctBlocksSameFilePair(t *testing.T) {
	dir := t.TempDir()

	blockOne := `        int a1 = stepOne();
        int a2 = stepTwo(a1);
        int a3 = stepThree(a2);
        int a4 = stepFour(a3);
`
	blockTwo := `        String b1 = readHeader();
        String b2 = readBody(b1);
        String b3 = readFooter(b2);
        String b4 = assemble(b3);
`
	a := "public class A {\n    public void alpha() {\n" + blockOne +
		"    }\n\n    public void onlyInA() {\n        unrelatedACall();\n    }\n\n" +
		"    public void beta() {\n" + blockTwo + "    }\n}\n"
	b := "public class B {\n    public void gamma() {\n" + blockOne +
		"    }\n\n    public void onlyInB() {\n        unrelatedBCall();\n    }\n\n" +
		"    public void delta() {\n" + blockTwo + "    }\n}\n"
	pathA := writeFile(t, dir, "A.java", a)
	pathB := writeFile(t, dir, "B.java", b)

	d := NewRefactorDetector(500, 500, 4)
	report, _ := d.Detect(dir, []string{pathA, pathB})

	var dups []domain.RefactorOpportunity
	for _, opp := range report.Issues {
		if opp.Type == domain.RefactorDuplicateCode {
			dups = append(dups, opp)
		}
	}
	if len(dups) != 2 {
		t.Fatalf("Each distinct shared block should form its own group, got %d: %v", len(dups), dups)
	}
	if !strings.Contains(dups[0].Details, "A.java:3") {
		t.Errorf("First group should start at A.java:3, got %q", dups[0].Details)
	}
	if !strings.Contains(dups[1].Details, "A.java:14") {
		t.Errorf("Second group should start at A.java:14, got %q", dups[1].Details)
	}
}

func TestDetect_NoDuplicatesInDistinctCode(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "A.java", "public class A {\n    int a = 1;\n    int b = 2;\n    int c = 3;\n    int d = 4;\n    int e = 5;\n    int f = 6;\n}\n")
	b := writeFile(t, dir, "B.java", "public class B {\n    int g = 7;\n    int h = 8;\n    int i = 9;\n    int j = 10;\n    int k = 11;\n    int l = 12;\n}\n")

	d := NewRefactorDetector(500, 500, 6)
	report, _ := d.Detect(dir, []string{a, b})

	for _, opp := range report.Issues {
		if opp.Type == domain.RefactorDuplicateCode {
			t.Errorf("Distinct code should not produce duplicates: %v", opp)
		}
	}
}

func TestCrossReferenceDeprecated(t *testing.T) {
	d := NewRefactorDetector(50, 20, 6)
	report := &domain.RefactorReport{Issues: []domain.RefactorOpportunity{}}

	findings := []domain.Finding{
		{Category: domain.CategoryDeprecatedAPI, FilePath: "A.java", Line: 3},
		{Category: domain.CategoryDeprecatedAPI, FilePath: "A.java", Line: 9},
		{Category: domain.CategoryNullSafety, FilePath: "A.java", Line: 4},
		{Category: domain.CategoryDeprecatedAPI, FilePath: "B.java", Line: 1},
	}

	d.CrossReferenceDeprecated(report, findings)

	if len(report.Issues) != 2 {
		t.Fatalf("Expected one opportunity per affected file, got %d", len(report.Issues))
	}
	if report.Issues[0].FilePath != "A.java" || report.Issues[1].FilePath != "B.java" {
		t.Errorf("Expected first-seen file order [A.java B.java], got %v", report.Issues)
	}
	if !strings.Contains(report.Issues[0].Details, "2") {
		t.Errorf("A.java should report 2 usages, got %q", report.Issues[0].Details)
	}
	for _, opp := range report.Issues {
		if opp.Type != domain.RefactorDeprecatedAPI {
			t.Errorf("Expected deprecated_api type, got %s", opp.Type)
		}
	}
}

func TestCrossReferenceDeprecated_NoFindings(t *testing.T) {
	d := NewRefactorDetector(50, 20, 6)
	report := &domain.RefactorReport{}

	d.CrossReferenceDeprecated(report, nil)

	if len(report.Issues) != 0 {
		t.Errorf("No findings should add no opportunities, got %d", len(report.Issues))
	}
}
