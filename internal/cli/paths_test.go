package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir() = %q, should be under home %q", dir, home)
	}

	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(redisURLEnv, "")
	ctx := t.Context()

	c, err := newCache(ctx, cacheOptions{noCache: true})
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("null cache should never hit")
	}

	c, err = newCache(ctx, cacheOptions{})
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("file cache should hit after Set")
	}

	if _, err := newCache(ctx, cacheOptions{redisURL: "not-a-url"}); err == nil {
		t.Error("newCache with an invalid redis URL should fail")
	}
}

func TestCacheOptionsKeyer(t *testing.T) {
	plain := cacheOptions{}.keyer().ResultKey("f", "p")
	scoped := cacheOptions{namespace: "staging"}.keyer().ResultKey("f", "p")
	if scoped != "staging:"+plain {
		t.Errorf("scoped key = %q, want %q", scoped, "staging:"+plain)
	}
}
