package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/railfill/pkg/config"
	"github.com/matzehuels/railfill/pkg/evaluate"
	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/placer"
)

const testRunFile = `
[frame]
vertices = [[0, 0], [200, 0], [200, 100], [0, 100]]
weight_per_meter = 1.0

[generation]
seed = 42

[generation.placement]
num_rods = 6
num_layers = 2
max_iterations = 5000
`

func writeRunFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	if err := os.WriteFile(path, []byte(testRunFile), 0o644); err != nil {
		t.Fatalf("write run file: %v", err)
	}
	return path
}

func TestApplyOverrides(t *testing.T) {
	cmd := New(&bytes.Buffer{}, LogInfo).generateCommand()
	if err := cmd.ParseFlags([]string{"--seed", "7", "--strategy", "simple", "--evaluator", "quality", "--layers", "1"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	opts := generateOptions{seed: 7, strategy: "simple", evaluator: "quality", layers: 1, rods: 99}

	p := generate.DefaultParams()
	applyOverrides(cmd, &p, opts)

	if p.Seed != 7 || p.Strategy != placer.StrategySimple || p.Evaluator.Kind != evaluate.KindQuality || p.Placement.NumLayers != 1 {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.Placement.NumRods != placer.DefaultNumRods {
		t.Errorf("NumRods = %d, unset flag should keep %d", p.Placement.NumRods, placer.DefaultNumRods)
	}
}

func TestGenerateCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(redisURLEnv, "")
	run := writeRunFile(t)
	out := filepath.Join(t.TempDir(), "result.json")
	screen := captureOutput(t)

	var logs bytes.Buffer
	root := newRoot(New(&logs, LogInfo))
	root.SetArgs([]string{"generate", run, "--rods", "4", "-o", out, "-q"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var res generate.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if res.Status != generate.StatusCompleted {
		t.Errorf("Status = %s, want completed (%s)", res.Status, res.Reason())
	}
	if res.Infill.RodCount() != 4 {
		t.Errorf("RodCount = %d, want 4", res.Infill.RodCount())
	}
	if res.Seed != 42 {
		t.Errorf("Seed = %d, want 42", res.Seed)
	}
	if !strings.Contains(screen.String(), "4/4 rods") {
		t.Errorf("summary missing rod count:\n%s", screen.String())
	}
	if strings.Contains(screen.String(), "Σ") {
		t.Error("-q should suppress the bill of materials")
	}
}

func TestGenerateVerboseUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(redisURLEnv, "")
	f, err := config.Load(writeRunFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var logs bytes.Buffer
	c := New(&logs, LogDebug)
	ctx := withLogger(context.Background(), c.Logger)
	runner, err := c.newRunner(ctx, cacheOptions{})
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer runner.Close()
	frame, _ := f.Frame.Build()

	first, cached, err := c.generate(ctx, runner, frame, f.Generation, generateOptions{})
	if err != nil || cached {
		t.Fatalf("first run: cached=%v err=%v", cached, err)
	}
	if !bytes.Contains(logs.Bytes(), []byte("placing rods")) {
		t.Error("verbose run should log attempts")
	}

	second, cached, err := c.generate(ctx, runner, frame, f.Generation, generateOptions{})
	if err != nil || !cached {
		t.Fatalf("second run: cached=%v err=%v", cached, err)
	}
	if second.RunID != first.RunID {
		t.Errorf("cached RunID = %s, want %s", second.RunID, first.RunID)
	}
}

func TestGenerateCommandErrors(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	run := writeRunFile(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"generate", filepath.Join(t.TempDir(), "nope.toml")}},
		{"bad strategy", []string{"generate", run, "--strategy", "zigzag"}},
		{"bad layers", []string{"generate", run, "--layers", "0"}},
		{"no args", []string{"generate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRoot(New(&bytes.Buffer{}, LogInfo))
			root.SetArgs(tt.args)
			root.SetErr(&bytes.Buffer{})
			if err := root.Execute(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := writeJSON(path, map[string]int{"rods": 3}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !bytes.Contains(data, []byte(`"rods": 3`)) {
		t.Errorf("output = %s", data)
	}
	if err := writeJSON(filepath.Join(t.TempDir(), "missing", "out.json"), 1); err == nil {
		t.Error("writing into a missing directory should fail")
	}
}
