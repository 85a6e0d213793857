package sidecar

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires Unix-like permissions and shell")
	}
}

func writeFakeBackend(t *testing.T, dir, name string, perm os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), perm); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestResolveIn_ExecutableDir(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	want := writeFakeBackend(t, dir, "backend", 0o755)
	got, err := ResolveIn(dir, "backend")
	if err != nil {
		t.Fatalf("ResolveIn: %v", err)
	}
	if got != want {
		t.Fatalf("resolved %q, want %q", got, want)
	}
}

func TestResolveIn_ResourcesSubdir(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	want := writeFakeBackend(t, filepath.Join(dir, "resources"), "backend", 0o755)
	got, err := ResolveIn(dir, "backend")
	if err != nil {
		t.Fatalf("ResolveIn: %v", err)
	}
	if got != want {
		t.Fatalf("resolved %q, want %q", got, want)
	}
}

func TestResolveIn_Missing(t *testing.T) {
	dir := t.TempDir()
	_, err := ResolveIn(dir, "backend")
	if err == nil {
		t.Fatalf("expected error for missing executable")
	}
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ResolutionError, got %T: %v", err, err)
	}
	if re.Name != "backend" || len(re.Searched) == 0 {
		t.Fatalf("incomplete resolution error: %+v", re)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestResolveIn_SkipsNonExecutable(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	writeFakeBackend(t, dir, "backend", 0o644)
	_, err := ResolveIn(dir, "backend")
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ResolutionError for non-executable file, got %v", err)
	}
}

func TestResolveIn_SkipsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "backend"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := ResolveIn(dir, "backend")
	if err == nil {
		t.Fatalf("a directory must not resolve as the sidecar")
	}
}
