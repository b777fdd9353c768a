package pipeline

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/railfill/pkg/cache"
	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/railing"
)

func testFrame(t *testing.T) *railing.Frame {
	t.Helper()
	f, err := railing.FrameFromVertices([]r2.Vec{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 100}, {X: 0, Y: 100}}, 0.5)
	if err != nil {
		t.Fatalf("FrameFromVertices: %v", err)
	}
	return f
}

func testParams(seed uint64) generate.Params {
	p := generate.DefaultParams()
	p.Placement.NumRods = 6
	p.Placement.NumLayers = 2
	p.Placement.MaxIterations = 5000
	p.Placement.MaxDuration = 30 * time.Second
	p.Seed = seed
	return p
}

func newRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, ok := r.Cache.(cache.NullCache); !ok {
		t.Errorf("Cache = %T, want cache.NullCache", r.Cache)
	}
	if r.Keyer == nil || r.Logger == nil {
		t.Error("NewRunner should fill in keyer and logger")
	}
}

func TestGenerateCachesSeededRuns(t *testing.T) {
	ctx := context.Background()
	r := newRunner(t)
	defer r.Close()
	f := testFrame(t)

	first, hit, err := r.Generate(ctx, f, testParams(11), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if hit {
		t.Error("first run should miss the cache")
	}
	if first.Status != generate.StatusCompleted {
		t.Fatalf("Status = %s, want completed (%s)", first.Status, first.Reason())
	}

	completed := 0
	obs := generate.ObserverFuncs{Completed: func(*generate.Result) { completed++ }}
	second, hit, err := r.Generate(ctx, f, testParams(11), obs)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !hit {
		t.Error("second run should hit the cache")
	}
	if completed != 1 {
		t.Errorf("OnCompleted calls = %d, want 1", completed)
	}
	if second.RunID != first.RunID {
		t.Errorf("RunID = %s, want cached %s", second.RunID, first.RunID)
	}
	if second.Infill.RodCount() != first.Infill.RodCount() {
		t.Errorf("RodCount = %d, want %d", second.Infill.RodCount(), first.Infill.RodCount())
	}
	for i := range first.Infill.Rods {
		if first.Infill.Rods[i] != second.Infill.Rods[i] {
			t.Errorf("rod %d = %+v, want %+v", i, second.Infill.Rods[i], first.Infill.Rods[i])
		}
	}

	// A different seed is a different key.
	_, hit, _ = r.Generate(ctx, f, testParams(12), nil)
	if hit {
		t.Error("different seed should miss the cache")
	}
}

func TestGenerateSkipsUnseededAndFailedRuns(t *testing.T) {
	ctx := context.Background()
	r := newRunner(t)
	f := testFrame(t)

	for i := 0; i < 2; i++ {
		if _, hit, _ := r.Generate(ctx, f, testParams(0), nil); hit {
			t.Error("time-seeded runs should never be cached")
		}
	}

	p := testParams(5)
	p.Placement.MaxIterations = 0
	for i := 0; i < 2; i++ {
		res, hit, err := r.Generate(ctx, f, p, nil)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if hit {
			t.Error("exhausted runs should not be cached")
		}
		if res.Status != generate.StatusExhausted {
			t.Errorf("Status = %s, want exhausted", res.Status)
		}
	}
}

func TestGenerateInvalidParams(t *testing.T) {
	r := newRunner(t)
	p := testParams(1)
	p.Placement.NumLayers = 0
	if _, _, err := r.Generate(context.Background(), testFrame(t), p, nil); err == nil {
		t.Error("invalid params should fail")
	}
}

func TestResultKey(t *testing.T) {
	r := newRunner(t)
	f := testFrame(t)

	k1, err := r.ResultKey(f, testParams(1))
	if err != nil {
		t.Fatalf("ResultKey: %v", err)
	}
	k2, _ := r.ResultKey(f, testParams(1))
	if k1 != k2 {
		t.Error("ResultKey should be deterministic")
	}

	p := testParams(1)
	p.Placement.NumRods = 7
	if k3, _ := r.ResultKey(f, p); k3 == k1 {
		t.Error("different params should give different keys")
	}
}
