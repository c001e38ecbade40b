package analyzer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/javascan-dev/javascan/domain"
	"github.com/minio/highwayhash"
)

// Method signature heuristic: a visibility keyword, a return type or
// constructor name, and a parameter list. Brace tracking from here to the
// matching close brace is line-based and does not understand braces inside
// string literals or comments; that imprecision is accepted rather than
// papered over with escaping heuristics.
var methodSignature = regexp.MustCompile(`^\s*(?:public|private|protected)\s+(?:static\s+)?(?:final\s+)?(?:synchronized\s+)?[\w<>\[\],.\s]+?(\w+)\s*\([^)]*\)\s*(?:throws\s+[\w.,\s]+)?\{?\s*$`)

var publicMethod = regexp.MustCompile(`\bpublic\s+(?:static\s+)?(?:final\s+)?(?:synchronized\s+)?[\w<>\[\],.\s]*?\w+\s*\(`)

// duplicateHashKey seeds the window hash; it only needs to be fixed so runs
// are deterministic
var duplicateHashKey = []byte("javascan-duplicate-grouping-key!")

// RefactorDetector finds structural smells by counting, not parsing
type RefactorDetector struct {
	longMethodLines int
	godClassMethods int
	duplicateWindow int
}

// NewRefactorDetector creates a detector with the given thresholds
func NewRefactorDetector(longMethodLines, godClassMethods, duplicateWindow int) *RefactorDetector {
	return &RefactorDetector{
		longMethodLines: longMethodLines,
		godClassMethods: godClassMethods,
		duplicateWindow: duplicateWindow,
	}
}

// windowLocation records where a normalized line window occurred. idx is the
// position in the file's normalized line sequence; two windows in the same
// file overlap when their idx values are less than the window size apart.
type windowLocation struct {
	file string
	line int
	idx  int
}

// Detect scans the given files for long methods, god classes, and duplicate
// line groups. Unreadable files are skipped with a warning.
func (d *RefactorDetector) Detect(root string, files []string) (*domain.RefactorReport, []string) {
	report := &domain.RefactorReport{
		TotalJavaFiles: len(files),
		Issues:         []domain.RefactorOpportunity{},
	}
	var warnings []string

	windowOrder := []uint64{}
	windows := map[uint64][]windowLocation{}

	for _, path := range files {
		lines, err := readLines(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped %s: %v", path, err))
			continue
		}

		rel := path
		if r, err := filepath.Rel(root, path); err == nil {
			rel = filepath.ToSlash(r)
		}

		report.Issues = append(report.Issues, d.detectLongMethods(rel, lines)...)
		if opp, ok := d.detectGodClass(rel, lines); ok {
			report.Issues = append(report.Issues, opp)
		}
		d.collectWindows(rel, lines, windows, &windowOrder)
	}

	report.Issues = append(report.Issues, d.duplicateGroups(windows, windowOrder)...)
	return report, warnings
}

// CrossReferenceDeprecated folds the scanner's deprecated-API findings into
// the refactor report, one opportunity per affected file. The findings are
// reused, never re-scanned.
func (d *RefactorDetector) CrossReferenceDeprecated(report *domain.RefactorReport, findings []domain.Finding) {
	counts := map[string]int{}
	var order []string
	for _, f := range findings {
		if f.Category != domain.CategoryDeprecatedAPI {
			continue
		}
		if counts[f.FilePath] == 0 {
			order = append(order, f.FilePath)
		}
		counts[f.FilePath]++
	}

	for _, file := range order {
		report.Issues = append(report.Issues, domain.RefactorOpportunity{
			Type:       domain.RefactorDeprecatedAPI,
			FilePath:   file,
			Severity:   domain.SeverityLow,
			Details:    fmt.Sprintf("%d deprecated API usage(s)", counts[file]),
			Suggestion: "Update deprecated API usage to modern alternatives",
		})
	}
}

// detectLongMethods tracks brace depth from each method signature to its
// close and flags bodies exceeding the line threshold
func (d *RefactorDetector) detectLongMethods(file string, lines []string) []domain.RefactorOpportunity {
	var opps []domain.RefactorOpportunity

	inMethod := false
	var methodName string
	var startLine, depth int

	for i, line := range lines {
		if !inMethod {
			m := methodSignature.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			inMethod = true
			methodName = m[1]
			startLine = i + 1
			depth = 0
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if inMethod && depth <= 0 && strings.Contains(line, "}") {
			bodyLines := i + 1 - startLine + 1
			if bodyLines > d.longMethodLines {
				opps = append(opps, domain.RefactorOpportunity{
					Type:       domain.RefactorLongMethod,
					FilePath:   file,
					Severity:   domain.SeverityMedium,
					Details:    fmt.Sprintf("method %s is %d lines (starts line %d)", methodName, bodyLines, startLine),
					Suggestion: "Break down long methods into smaller, focused methods",
				})
			}
			inMethod = false
		}
	}

	return opps
}

// detectGodClass counts public method declarations per file
func (d *RefactorDetector) detectGodClass(file string, lines []string) (domain.RefactorOpportunity, bool) {
	count := 0
	for _, line := range lines {
		if publicMethod.MatchString(line) {
			count++
		}
	}
	if count <= d.godClassMethods {
		return domain.RefactorOpportunity{}, false
	}
	return domain.RefactorOpportunity{
		Type:       domain.RefactorGodClass,
		FilePath:   file,
		Severity:   domain.SeverityHigh,
		Details:    fmt.Sprintf("%d public methods detected", count),
		Suggestion: "Split god classes into smaller, single-responsibility classes",
	}, true
}

// collectWindows hashes every normalized window of consecutive lines and
// records where it occurred
func (d *RefactorDetector) collectWindows(file string, lines []string, windows map[uint64][]windowLocation, order *[]uint64) {
	normalized := make([]string, 0, len(lines))
	lineNos := make([]int, 0, len(lines))
	for i, line := range lines {
		n := normalizeLine(line)
		if n == "" {
			continue
		}
		normalized = append(normalized, n)
		lineNos = append(lineNos, i+1)
	}

	if len(normalized) < d.duplicateWindow {
		return
	}

	type fileHit struct {
		count   int
		lastIdx int
	}
	seenInFile := map[uint64]fileHit{}
	for i := 0; i+d.duplicateWindow <= len(normalized); i++ {
		h := hashWindow(normalized[i : i+d.duplicateWindow])
		hit, seen := seenInFile[h]
		if seen {
			// An overlapping repeat is the same run of lines sliding by one;
			// two distinct occurrences per file are enough evidence, so a
			// block repeated within a single file still forms a group.
			if hit.count >= 2 || i-hit.lastIdx < d.duplicateWindow {
				continue
			}
		}
		seenInFile[h] = fileHit{count: hit.count + 1, lastIdx: i}
		if _, ok := windows[h]; !ok {
			*order = append(*order, h)
		}
		windows[h] = append(windows[h], windowLocation{file: file, line: lineNos[i], idx: i})
	}
}

// duplicateGroups flags each window hash seen at two or more locations,
// once per group in first-seen order
func (d *RefactorDetector) duplicateGroups(windows map[uint64][]windowLocation, order []uint64) []domain.RefactorOpportunity {
	var opps []domain.RefactorOpportunity
	type groupStart struct{ a, b int }
	reported := map[string][]groupStart{}

	for _, h := range order {
		locs := windows[h]
		if len(locs) < 2 {
			continue
		}
		// A block longer than the window produces a run of distinct hashes
		// whose windows slide by one; suppress a group only when both of its
		// first two locations overlap an already reported group. Distinct
		// blocks shared by the same file pair each get their own report.
		key := locs[0].file + "|" + locs[1].file
		overlapsReported := false
		for _, g := range reported[key] {
			if absInt(locs[0].idx-g.a) < d.duplicateWindow && absInt(locs[1].idx-g.b) < d.duplicateWindow {
				overlapsReported = true
				break
			}
		}
		if overlapsReported {
			continue
		}
		reported[key] = append(reported[key], groupStart{a: locs[0].idx, b: locs[1].idx})

		opps = append(opps, domain.RefactorOpportunity{
			Type:     domain.RefactorDuplicateCode,
			FilePath: locs[0].file,
			Severity: domain.SeverityMedium,
			Details: fmt.Sprintf("%d-line block at %s:%d repeats at %s:%d (%d occurrence(s))",
				d.duplicateWindow, locs[0].file, locs[0].line, locs[1].file, locs[1].line, len(locs)),
			Suggestion: "Extract the repeated block into a shared method",
		})
	}

	return opps
}

// normalizeLine trims whitespace and drops blank and comment-only lines so
// formatting differences do not defeat duplicate grouping
func normalizeLine(line string) string {
	t := strings.TrimSpace(line)
	if t == "" || t == "{" || t == "}" {
		return ""
	}
	if strings.HasPrefix(t, "//") || strings.HasPrefix(t, "*") || strings.HasPrefix(t, "/*") {
		return ""
	}
	return strings.Join(strings.Fields(t), " ")
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func hashWindow(lines []string) uint64 {
	h, err := highwayhash.New64(duplicateHashKey)
	if err != nil {
		return 0
	}
	for _, line := range lines {
		_, _ = h.Write([]byte(line))
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
