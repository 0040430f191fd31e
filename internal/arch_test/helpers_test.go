package arch_test

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/papapumpkin/phase0/internal/imports"
)

const modulePath = "github.com/papapumpkin/phase0"

// repoRoot returns the module root two levels above this file, checking its
// go.mod declares modulePath.
func repoRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	root := filepath.Join(filepath.Dir(thisFile), "..", "..")
	mod, err := imports.ModulePath(root)
	if err != nil {
		t.Fatalf("locating module root: %v", err)
	}
	if mod != modulePath {
		t.Fatalf("module root %s declares %s, want %s", root, mod, modulePath)
	}
	return root
}

func internalDirPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(repoRoot(t), "internal")
}

// internalPackages lists the directories under internal/ holding Go
// sources, arch_test excluded.
func internalPackages(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(internalDirPath(t))
	if err != nil {
		t.Fatalf("reading internal/: %v", err)
	}
	var pkgs []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != "arch_test" && len(goFilesIn(t, filepath.Join(internalDirPath(t), e.Name()))) > 0 {
			pkgs = append(pkgs, e.Name())
		}
	}
	sort.Strings(pkgs)
	return pkgs
}

// goFilesIn returns the non-test .go files in dir.
func goFilesIn(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		t.Fatalf("listing %s: %v", dir, err)
	}
	var files []string
	for _, m := range matches {
		if !strings.HasSuffix(m, "_test.go") {
			files = append(files, m)
		}
	}
	return files
}

func TestInternalPackages(t *testing.T) {
	t.Parallel()

	got := strings.Join(internalPackages(t), ",")
	for _, want := range []string{"boundary", "imports", "naming", "prompt"} {
		if !strings.Contains(got, want) {
			t.Errorf("internalPackages() = %s, missing %s", got, want)
		}
	}
	if strings.Contains(got, "arch_test") {
		t.Errorf("internalPackages() should exclude arch_test, got %s", got)
	}
}
