package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper collects Java source files under a repository root
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectJavaFiles walks root and returns all .java files in sorted order.
// Directories named in excludeDirs are skipped at any depth. When
// respectGitignore is set and root contains a .gitignore, matching paths are
// skipped as well. Unreadable subtrees are skipped, not fatal.
func (h *FileHelper) CollectJavaFiles(root string, excludeDirs []string, respectGitignore bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if h.IsJavaFile(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var matcher *ignore.GitIgnore
	if respectGitignore {
		if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			matcher = gi
		}
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if h.excluded(d.Name(), excludeDirs) {
				return fs.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(filepath.ToSlash(rel)+"/") {
				return fs.SkipDir
			}
			return nil
		}

		if !h.IsJavaFile(path) {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(filepath.ToSlash(rel)) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// WalkDir visits lexically, but sort anyway so the contract does not
	// depend on walk internals.
	sort.Strings(files)
	return files, nil
}

// IsJavaFile checks if a path is a Java source file by extension
func (h *FileHelper) IsJavaFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".java")
}

// FileExists checks if a regular file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (h *FileHelper) excluded(name string, excludeDirs []string) bool {
	for _, pattern := range excludeDirs {
		if pattern == name {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
