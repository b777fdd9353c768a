package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/railfill/pkg/cache"
)

// captureOutput redirects user-facing output to a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	root := newRoot(New(&bytes.Buffer{}, LogInfo))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	return root.Execute()
}

func TestCachePathCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	out := captureOutput(t)

	if err := runRoot(t, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join(home, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	t.Setenv(redisURLEnv, "")
	out := captureOutput(t)

	if err := runRoot(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear on missing dir: %v", err)
	}
	if !strings.Contains(out.String(), "Cache is empty") {
		t.Errorf("output = %q, want empty notice", out.String())
	}

	fc, err := cache.NewFileCache(filepath.Join(home, appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	if err := runRoot(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached results") {
		t.Errorf("output = %q, want count of 2", out.String())
	}
	if fc.Len() != 0 {
		t.Errorf("Len() = %d after clear, want 0", fc.Len())
	}
}

func TestCacheClearBadRedisURL(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	captureOutput(t)
	if err := runRoot(t, "cache", "clear", "--redis", "not-a-url"); err == nil {
		t.Error("cache clear with bad redis URL: expected error")
	}
}
