package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCacheNeverStores(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, "key"); hit || data != nil || err != nil {
		t.Errorf("Get after Set = (%q, %v, %v), want a clean miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.(Clearer).Clear(ctx); err != nil {
		t.Errorf("Clear: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get(key) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get(key) = %q, want %q", data, "value")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "short", []byte("x"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "short"); !hit {
		t.Error("fresh entry should hit")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Len() = %d, want expired entry removed", got)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := os.WriteFile(c.file("key"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want silent miss", hit, err)
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len() = %d, want corrupt entry removed", got)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if got := c.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("Get(%s) after Clear should miss", k)
		}
	}
}

func TestHashing(t *testing.T) {
	hello := Hash([]byte("hello"))
	if hello != Hash([]byte("hello")) {
		t.Error("Hash is not stable")
	}
	if hello == Hash([]byte("world")) {
		t.Error("Hash collides on different input")
	}
	if len(hello) != 2*sha256Size {
		t.Errorf("len(Hash) = %d, want %d hex digits", len(hello), 2*sha256Size)
	}

	a, err := HashJSON(map[string]int{"rods": 30})
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	b, _ := HashJSON(map[string]int{"rods": 31})
	if a == b {
		t.Error("HashJSON collides on different values")
	}
	if _, err := HashJSON(make(chan int)); err == nil {
		t.Error("HashJSON of a channel should fail")
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	base := k.ResultKey("frame1", "params1")

	if !strings.HasPrefix(base, "result:") {
		t.Errorf("ResultKey = %q, want result: prefix", base)
	}
	if base != k.ResultKey("frame1", "params1") {
		t.Error("ResultKey is not stable")
	}
	for _, other := range []string{k.ResultKey("frame1", "params2"), k.ResultKey("frame2", "params1")} {
		if other == base {
			t.Errorf("ResultKey collides: %q", other)
		}
	}

	if got := NewScopedKeyer(k, "staging:").ResultKey("frame1", "params1"); got != "staging:"+base {
		t.Errorf("scoped key = %q, want staging: prefix on %q", got, base)
	}
	if got := NewScopedKeyer(nil, "prod:").ResultKey("frame1", "params1"); got != "prod:"+base {
		t.Errorf("scoped key with nil inner = %q, want default keyer underneath", got)
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) should stay nil")
	}

	err := Transient(ErrUnavailable)
	if !IsTransient(err) {
		t.Error("IsTransient should see the mark")
	}
	if !IsTransient(fmt.Errorf("get: %w", err)) {
		t.Error("IsTransient should see through wrapping")
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("message changed: %q", err.Error())
	}
	if IsTransient(ErrUnavailable) {
		t.Error("unmarked errors are not transient")
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should return nil")
	}

	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := classify(netErr)
	if !IsTransient(err) {
		t.Error("network errors should be transient")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("network errors should wrap ErrUnavailable")
	}

	plain := errors.New("WRONGTYPE")
	if classify(plain) != plain {
		t.Error("other errors should pass through")
	}
}

func TestBackoffDo(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Initial: time.Millisecond, Factor: 2}
	errPermanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"permanent error", 5, errPermanent, 1, errPermanent},
		{"recovers", 1, Transient(ErrUnavailable), 2, nil},
		{"gives up", 5, Transient(ErrUnavailable), 3, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffDoContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultBackoff.Do(ctx, func() error {
		return Transient(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
