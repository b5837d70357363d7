package main

// Notes:
// - This file contains test helpers used across the CLI tests.
// - These are not functions under test themselves, but supporting infrastructure.

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	mdprint "github.com/alnah/go-mdprint"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter records inputs and echoes the Markdown into its output.
type mockConverter struct {
	mu       sync.Mutex
	inputs   []mdprint.Input
	warnings []error
	err      error
}

func (m *mockConverter) Convert(_ context.Context, in mdprint.Input) (*mdprint.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &mdprint.Result{
		HTML:     "<html>" + in.Markdown + "</html>",
		PDF:      []byte("%PDF-1.7 " + in.Markdown),
		Warnings: m.warnings,
	}, nil
}

func (m *mockConverter) calls() []mdprint.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mdprint.Input(nil), m.inputs...)
}

// mockPool hands out one shared converter.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu     sync.Mutex
	opts   int
	closed bool
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {}

func (p *mockPool) Size() int {
	return p.size
}

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Environment helpers
// ---------------------------------------------------------------------------

// testEnv returns an environment with captured output, an empty process
// environment and a pool backed by conv.
func testEnv(conv *mockConverter) (*Environment, *bytes.Buffer, *bytes.Buffer, *mockPool) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	pool := &mockPool{conv: conv, size: 2}
	env := &Environment{
		Stdout:     stdout,
		Stderr:     stderr,
		Getenv:     func(string) string { return "" },
		Environ:    func() []string { return nil },
		IsTerminal: func(io.Writer) bool { return false },
		NewPool: func(_ int, opts ...mdprint.Option) Pool {
			pool.mu.Lock()
			pool.opts = len(opts)
			pool.mu.Unlock()
			return pool
		},
	}
	return env, stdout, stderr, pool
}

// mapGetenv serves environment lookups from vars.
func mapGetenv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

// writeFiles creates files under root, keyed by slash-separated path.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

// writeConfig writes a config file and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mdprint.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// emptyConfig is a config file that keeps every default.
const emptyConfig = "output:\n  format: html\n"

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
