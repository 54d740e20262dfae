package root

import (
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/tallcms/cms-installer/internal/testutil"
)

func TestFindHostRootFound(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "artisan"), []byte("#!/usr/bin/env php\n"), 0o755); err != nil {
		t.Fatalf("write artisan: %v", err)
	}
	sub := filepath.Join(root, "app", "Models")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}

	got, found, err := FindHostRoot(sub)
	if err != nil {
		t.Fatalf("FindHostRoot error: %v", err)
	}
	if !found {
		t.Fatalf("expected root to be found")
	}
	if got != root {
		t.Fatalf("expected root %s, got %s", root, got)
	}
}

func TestFindHostRootComposerJSON(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "composer.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write composer.json: %v", err)
	}

	got, found, err := FindHostRoot(root)
	if err != nil {
		t.Fatalf("FindHostRoot error: %v", err)
	}
	if !found || got != root {
		t.Fatalf("expected %s, got %s (found=%v)", root, got, found)
	}
}

func TestFindHostRootNearestWins(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "packages", "site")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("mkdir inner: %v", err)
	}
	for _, dir := range []string{outer, inner} {
		if err := os.WriteFile(filepath.Join(dir, "composer.json"), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write composer.json: %v", err)
		}
	}

	got, _, err := FindHostRoot(inner)
	if err != nil {
		t.Fatalf("FindHostRoot error: %v", err)
	}
	if got != inner {
		t.Fatalf("expected nearest root %s, got %s", inner, got)
	}
}

func TestFindHostRootIgnoresMarkerDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "artisan"), 0o755); err != nil {
		t.Fatalf("mkdir artisan: %v", err)
	}

	got, found, err := FindHostRoot(root)
	if err != nil {
		t.Fatalf("FindHostRoot error: %v", err)
	}
	if found && got == root {
		t.Fatalf("directory marker should not qualify %s", root)
	}
}

func TestFindHostRootRequiresStartPath(t *testing.T) {
	if _, _, err := FindHostRoot(""); err == nil {
		t.Fatal("expected FindHostRoot to reject empty start")
	}
}

func TestFindHostRootSkipsSpecialFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mkfifo is not supported on windows")
	}

	root := t.TempDir()
	if err := syscall.Mkfifo(filepath.Join(root, "composer.json"), 0o644); err != nil {
		t.Fatalf("mkfifo composer.json: %v", err)
	}
	if _, _, err := FindHostRoot(root); err != nil {
		t.Fatalf("FindHostRoot error: %v", err)
	}
}

func TestResolveHostRootExplicit(t *testing.T) {
	dir := t.TempDir()
	got, err := ResolveHostRoot(dir, "/does/not/matter")
	if err != nil {
		t.Fatalf("ResolveHostRoot error: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %s, got %s", dir, got)
	}
}

func TestResolveHostRootDiscovers(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "artisan"), []byte(""), 0o644); err != nil {
		t.Fatalf("write artisan: %v", err)
	}
	got, err := ResolveHostRoot("", root)
	if err != nil {
		t.Fatalf("ResolveHostRoot error: %v", err)
	}
	if got != root {
		t.Fatalf("expected %s, got %s", root, got)
	}
}

func TestResolveHostRootFromRelativeStart(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "composer.json"), "{}")
	sub := filepath.Join(root, "resources", "views")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}

	testutil.WithWorkingDir(t, sub, func() {
		got, err := ResolveHostRoot("", ".")
		if err != nil {
			t.Fatalf("ResolveHostRoot error: %v", err)
		}
		want, _ := filepath.EvalSymlinks(root)
		resolved, _ := filepath.EvalSymlinks(got)
		if resolved != want {
			t.Fatalf("expected %s, got %s", want, resolved)
		}
	})
}
