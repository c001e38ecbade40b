// Package analyzer implements the four scanning passes: source anti-pattern
// detection, dependency classification, coverage estimation, and structural
// refactoring detection. All detection is line-level pattern matching; there
// is no compiler front end, so results are advisory suggestions, not proven
// defects.
package analyzer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/javascan-dev/javascan/domain"
	"github.com/javascan-dev/javascan/internal/rules"
)

// MaxMatchedTextLen bounds the snippet stored on each finding
const MaxMatchedTextLen = 100

// SourceScanner runs the detector table over source files line by line
type SourceScanner struct {
	detectors []rules.CompiledDetector
	maxFiles  int
}

// NewSourceScanner creates a scanner from a compiled detector table.
// maxFiles caps how many files one scan reads; excess files are skipped.
func NewSourceScanner(detectors []rules.CompiledDetector, maxFiles int) *SourceScanner {
	return &SourceScanner{detectors: detectors, maxFiles: maxFiles}
}

// Detectors returns the compiled detector set
func (s *SourceScanner) Detectors() []rules.CompiledDetector {
	return s.detectors
}

// ScanFiles scans up to the configured cap of files in the given order and
// returns findings in scan order (file enumeration order, then line order).
// Unreadable files are skipped with a warning and never abort the scan.
func (s *SourceScanner) ScanFiles(root string, files []string) ([]domain.Finding, int, []string) {
	var findings []domain.Finding
	var warnings []string

	limit := len(files)
	if s.maxFiles > 0 && limit > s.maxFiles {
		limit = s.maxFiles
	}

	scanned := 0
	for _, path := range files[:limit] {
		fileFindings, err := s.scanFile(root, path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped %s: %v", path, err))
			continue
		}
		findings = append(findings, fileFindings...)
		scanned++
	}

	return findings, scanned, warnings
}

// scanFile tests every line against every detector. A single line may
// trigger multiple detectors; each trigger is its own finding, and findings
// on the same line are never deduplicated.
func (s *SourceScanner) scanFile(root, path string) ([]domain.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rel := path
	if r, err := filepath.Rel(root, path); err == nil {
		rel = filepath.ToSlash(r)
	}

	var findings []domain.Finding
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		for i := range s.detectors {
			det := &s.detectors[i]
			matched, ok := det.Match(line)
			if !ok {
				continue
			}
			findings = append(findings, domain.Finding{
				Category:    det.Category,
				FilePath:    rel,
				Line:        lineNo,
				Severity:    det.Severity,
				MatchedText: truncate(matched, MaxMatchedTextLen),
				Suggestion:  det.Suggestion,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return findings, err
	}

	return findings, nil
}

// truncate cuts s to at most max bytes without splitting a multi-byte rune,
// so truncated snippets stay valid UTF-8 in the report
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
