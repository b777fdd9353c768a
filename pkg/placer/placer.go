package placer

import (
	"context"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railfill/pkg/anchor"
	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/railing"
)

// Strategy names a placement algorithm.
type Strategy string

const (
	StrategySimple      Strategy = "simple"
	StrategyDirectional Strategy = "directional"
)

// Strategies returns every known strategy name.
func Strategies() []Strategy {
	return []Strategy{StrategySimple, StrategyDirectional}
}

// Placer fills a frame with rods drawn from per-layer anchor pools.
type Placer interface {
	// Name returns the strategy name.
	Name() Strategy
	// Place runs one arrangement attempt. It never fails: running out of
	// budget or anchors yields a partial arrangement.
	Place(ctx context.Context, in Input) *Arrangement
}

// Input is the per-arrangement state handed to a [Placer]. Anchors in Pools
// are mutated (marked used) during placement.
type Input struct {
	Frame *railing.Frame
	// Pools holds one pool per layer; Pools[i] serves layer i+1.
	Pools []*anchor.Pool
	Rand  *rand.Rand
	// Progress, if set, is called after every iteration with the iteration
	// count so far.
	Progress func(iterations int)
	Logger   *log.Logger
}

// Arrangement is the outcome of one placement attempt.
type Arrangement struct {
	Rods       []railing.Rod
	Requested  int
	Iterations int
	Duration   time.Duration
	Statistics Statistics
	// Interrupted is set when the context ended placement early.
	Interrupted bool
}

// Complete reports whether every requested rod was placed.
func (a *Arrangement) Complete() bool { return len(a.Rods) == a.Requested }

// Infill returns the placed rods as an infill.
func (a *Arrangement) Infill() *railing.Infill { return railing.NewInfill(a.Rods) }

// New returns the placer for strategy s.
func New(s Strategy, p Params) (Placer, error) {
	switch s {
	case StrategySimple:
		return &Simple{Params: p}, nil
	case StrategyDirectional:
		return &Directional{Params: p}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStrategy, "unknown placement strategy %q (want one of %v)", s, Strategies())
}

// ParseStrategy validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(name)
	if !slices.Contains(Strategies(), s) {
		return "", errors.New(errors.ErrCodeInvalidStrategy, "unknown placement strategy %q (want one of %v)", name, Strategies())
	}
	return s, nil
}

// run carries the bookkeeping shared by both strategies.
type run struct {
	ctx    context.Context
	in     Input
	params Params
	start  time.Time
	arr    *Arrangement
	logger *log.Logger
}

func newRun(ctx context.Context, in Input, p Params) *run {
	logger := in.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &run{
		ctx:    ctx,
		in:     in,
		params: p,
		start:  time.Now(),
		arr:    &Arrangement{Requested: p.NumRods},
		logger: logger,
	}
}

// exhausted reports whether placement must stop before the next iteration.
func (r *run) exhausted() bool {
	if r.ctx.Err() != nil {
		r.arr.Interrupted = true
		return true
	}
	return r.arr.Iterations >= r.params.MaxIterations ||
		time.Since(r.start) > r.params.MaxDuration
}

// tick counts one iteration.
func (r *run) tick() {
	r.arr.Iterations++
	if r.in.Progress != nil {
		r.in.Progress(r.arr.Iterations)
	}
}

func (r *run) finish() *Arrangement {
	r.arr.Duration = time.Since(r.start)
	return r.arr
}

// connect builds the rod between two anchors, mitring each end against the
// frame rod its anchor sits on.
func connect(a, b *railing.AnchorPoint, layer int, weight float64) railing.Rod {
	rod := railing.Rod{Start: a.Position, End: b.Position, WeightPerMeter: weight, Layer: layer}
	angle := rod.AngleFromVertical()
	rod.StartCutAngle = railing.CutAngle(angle, a.SegmentAngle)
	rod.EndCutAngle = railing.CutAngle(angle, b.SegmentAngle)
	return rod
}
