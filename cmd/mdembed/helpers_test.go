package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	mdembed "github.com/alnah/go-mdembed"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and fixtures
// ---------------------------------------------------------------------------

// syncBuffer is a bytes.Buffer safe for concurrent writes from workers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *syncBuffer
	stderr *syncBuffer
	vars   map[string]string
}

// newTestEnv returns an Environment with captured output and an empty,
// isolated set of environment variables.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	te := &testEnv{stdout: stdout, stderr: stderr, vars: map[string]string{}}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr),
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			kv := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				kv = append(kv, k+"="+v)
			}
			sort.Strings(kv)
			return kv
		},
	}
	return te
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// fakeConverter records inputs and returns canned results.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []mdembed.Input
	result *mdembed.ConvertResult
	err    error
}

func (f *fakeConverter) Convert(_ context.Context, input mdembed.Input) (*mdembed.ConvertResult, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &mdembed.ConvertResult{HTML: []byte("<p>" + input.Title + "</p>")}, nil
}
