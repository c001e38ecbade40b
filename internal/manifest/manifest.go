// Package manifest locates and parses Maven and Gradle build manifests under
// a repository root. Parsing is best-effort: a malformed manifest degrades to
// an empty dependency list plus a warning, never an aborted analysis.
package manifest

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Manifest file names recognized by the locator
const (
	MavenManifest     = "pom.xml"
	GradleManifest    = "build.gradle"
	GradleKtsManifest = "build.gradle.kts"
)

// Locator finds manifest files under a root with bounded depth and count,
// so a pathological tree cannot stall the walk
type Locator struct {
	MaxDepth    int
	MaxPerKind  int
	ExcludeDirs []string
}

// Locate walks the tree and returns found Maven and Gradle manifest paths in
// lexical walk order. Walk errors on subtrees are skipped, not fatal.
func (l *Locator) Locate(root string) (poms []string, gradles []string) {
	cleanRoot := filepath.Clean(root)

	_ = filepath.WalkDir(cleanRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
		}

		if d.IsDir() {
			if path != cleanRoot {
				if l.excluded(d.Name()) {
					return fs.SkipDir
				}
				if l.depth(cleanRoot, path) > l.MaxDepth {
					return fs.SkipDir
				}
			}
			return nil
		}

		switch d.Name() {
		case MavenManifest:
			if len(poms) < l.MaxPerKind {
				poms = append(poms, path)
			}
		case GradleManifest, GradleKtsManifest:
			if len(gradles) < l.MaxPerKind {
				gradles = append(gradles, path)
			}
		}

		if len(poms) >= l.MaxPerKind && len(gradles) >= l.MaxPerKind {
			return filepath.SkipAll
		}
		return nil
	})

	return poms, gradles
}

func (l *Locator) excluded(name string) bool {
	for _, dir := range l.ExcludeDirs {
		if name == dir {
			return true
		}
	}
	return false
}

func (l *Locator) depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// relPath returns the path relative to root for report attribution, falling
// back to the absolute path when Rel fails
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
