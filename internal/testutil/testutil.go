// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tallcms/cms-installer/internal/fsutil"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) string {
	t.Helper()
	return WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// It returns the stub path.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return writeScript(t, dir, name, fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
}

// WriteStubRecordingArgs writes a stub that appends its arguments, one line
// per invocation, to logPath and exits with exitCode.
func WriteStubRecordingArgs(t *testing.T, dir string, name string, logPath string, exitCode int) string {
	t.Helper()
	return writeScript(t, dir, name, fmt.Sprintf("#!/bin/sh\necho \"$@\" >> %q\nexit %d\n", logPath, exitCode))
}

func writeScript(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}

// CountingSystem wraps a System and records every mutating call.
type CountingSystem struct {
	fsutil.System

	mu     sync.Mutex
	writes []string
}

// NewCountingSystem wraps base.
func NewCountingSystem(base fsutil.System) *CountingSystem {
	return &CountingSystem{System: base}
}

// MkdirAll records a write only when the directory does not exist yet.
func (c *CountingSystem) MkdirAll(path string, perm os.FileMode) error {
	if _, err := c.System.Stat(path); err != nil {
		c.record(path)
	}
	return c.System.MkdirAll(path, perm)
}

// WriteFileAtomic records the write and delegates.
func (c *CountingSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	c.record(filename)
	return c.System.WriteFileAtomic(filename, data, perm)
}

func (c *CountingSystem) record(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, filepath.Clean(path))
}

// Writes returns the paths written so far.
func (c *CountingSystem) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

// Reset forgets recorded writes.
func (c *CountingSystem) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = nil
}

// FaultSystem allows deterministic error injection per path without
// chmod-based permission tricks.
type FaultSystem struct {
	fsutil.System
	StatErrs  map[string]error
	ReadErrs  map[string]error
	MkdirErrs map[string]error
	WriteErrs map[string]error
}

// NewFaultSystem wraps base with empty fault tables.
func NewFaultSystem(base fsutil.System) *FaultSystem {
	return &FaultSystem{
		System:    base,
		StatErrs:  map[string]error{},
		ReadErrs:  map[string]error{},
		MkdirErrs: map[string]error{},
		WriteErrs: map[string]error{},
	}
}

// Stat fails for paths in StatErrs.
func (f *FaultSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := f.StatErrs[filepath.Clean(name)]; ok {
		return nil, err
	}
	return f.System.Stat(name)
}

// ReadFile fails for paths in ReadErrs.
func (f *FaultSystem) ReadFile(name string) ([]byte, error) {
	if err, ok := f.ReadErrs[filepath.Clean(name)]; ok {
		return nil, err
	}
	return f.System.ReadFile(name)
}

// MkdirAll fails for paths in MkdirErrs.
func (f *FaultSystem) MkdirAll(path string, perm os.FileMode) error {
	if err, ok := f.MkdirErrs[filepath.Clean(path)]; ok {
		return err
	}
	return f.System.MkdirAll(path, perm)
}

// WriteFileAtomic fails for paths in WriteErrs.
func (f *FaultSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err, ok := f.WriteErrs[filepath.Clean(filename)]; ok {
		return err
	}
	return f.System.WriteFileAtomic(filename, data, perm)
}

var _ fsutil.System = (*CountingSystem)(nil)
var _ fsutil.System = (*FaultSystem)(nil)
