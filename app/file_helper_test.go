package app

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeSource(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectJavaFiles(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/main/java/B.java", "class B {}")
	writeSource(t, root, "src/main/java/A.java", "class A {}")
	writeSource(t, root, "src/main/java/readme.md", "docs")
	writeSource(t, root, "target/Generated.java", "class Generated {}")

	h := NewFileHelper()
	files, err := h.CollectJavaFiles(root, []string{"target"}, false)
	if err != nil {
		t.Fatalf("CollectJavaFiles failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Expected 2 java files, got %d: %v", len(files), files)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("Files should be sorted: %v", files)
	}
	for _, f := range files {
		if filepath.Base(f) == "Generated.java" {
			t.Error("Excluded directory should be skipped")
		}
	}
}

func TestCollectJavaFiles_Gitignore(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, ".gitignore", "generated/\n")
	writeSource(t, root, "Main.java", "class Main {}")
	writeSource(t, root, "generated/Stub.java", "class Stub {}")

	h := NewFileHelper()

	files, err := h.CollectJavaFiles(root, nil, true)
	if err != nil {
		t.Fatalf("CollectJavaFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Gitignored directory should be skipped, got %v", files)
	}

	// Without gitignore support both files are collected
	files, err = h.CollectJavaFiles(root, nil, false)
	if err != nil {
		t.Fatalf("CollectJavaFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 files without gitignore, got %v", files)
	}
}

func TestCollectJavaFiles_MissingRoot(t *testing.T) {
	h := NewFileHelper()
	if _, err := h.CollectJavaFiles(filepath.Join(t.TempDir(), "missing"), nil, false); err == nil {
		t.Error("Expected error for missing root")
	}
}

func TestIsJavaFile(t *testing.T) {
	h := NewFileHelper()
	if !h.IsJavaFile("Foo.java") {
		t.Error("Foo.java should be a Java file")
	}
	if !h.IsJavaFile("Foo.JAVA") {
		t.Error("Extension match should be case-insensitive")
	}
	if h.IsJavaFile("Foo.javascript") || h.IsJavaFile("Foo.kt") {
		t.Error("Non-java extensions should not match")
	}
}
