package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/danspam/bundlemap/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new artifact", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bundle.js")
		content := []byte("function f(){}")

		if err := fsutil.WriteAtomic(context.Background(), path, content, 0644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
	})

	t.Run("replaces stale artifact", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bundle.js.map")
		if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("fresh"), 0644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "fresh" {
			t.Errorf("content = %q, want %q", got, "fresh")
		}
	})

	t.Run("uses default mode when zero", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bundle.js")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bundle.js")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0644); err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("file should not have been created")
		}
	})

	t.Run("leaves no temp file on failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "missing-parent", "bundle.js")

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0644); err == nil {
			t.Fatal("expected error for invalid path")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		for _, entry := range entries {
			if strings.Contains(entry.Name(), ".tmp") {
				t.Errorf("temp file left behind: %s", entry.Name())
			}
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bundle.js.map")

	changed, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("v1"), 0644)
	if err != nil {
		t.Fatalf("WriteAtomicIfChanged() error = %v", err)
	}
	if !changed {
		t.Error("expected changed = true for new file")
	}

	changed, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("v1"), 0644)
	if err != nil {
		t.Fatalf("WriteAtomicIfChanged() error = %v", err)
	}
	if changed {
		t.Error("expected changed = false for identical content")
	}

	changed, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("v2"), 0644)
	if err != nil {
		t.Fatalf("WriteAtomicIfChanged() error = %v", err)
	}
	if !changed {
		t.Error("expected changed = true for new content")
	}
}

// Concurrent atomic writers must never expose a partial file: any read
// observes one complete write or another.
func TestWriteAtomicConcurrent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "shared.js.map")
	contents := []string{
		strings.Repeat("a", 4096),
		strings.Repeat("b", 8192),
		strings.Repeat("c", 1024),
	}

	var wg sync.WaitGroup
	for _, c := range contents {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				if err := fsutil.WriteAtomic(context.Background(), path, []byte(c), 0644); err != nil {
					t.Errorf("WriteAtomic() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	valid := false
	for _, c := range contents {
		if string(got) == c {
			valid = true
		}
	}
	if !valid {
		t.Errorf("final content (%d bytes) matches no complete write", len(got))
	}
}
