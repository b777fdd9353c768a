package generate

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/railfill/pkg/anchor"
	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/evaluate"
	"github.com/matzehuels/railfill/pkg/observability"
	"github.com/matzehuels/railfill/pkg/placer"
	"github.com/matzehuels/railfill/pkg/railing"
)

// Generator runs infill generation for one parameter set. It runs at most
// one generation at a time; Run and Cancel are safe to call from different
// goroutines.
type Generator struct {
	params    Params
	placer    placer.Placer
	evaluator evaluate.Evaluator
	observer  Observer
	logger    *log.Logger
	throttle  time.Duration
	rng       *rand.Rand

	running atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
}

// Option configures a [Generator].
type Option func(*Generator)

// WithObserver sets the event observer.
func WithObserver(o Observer) Option {
	return func(g *Generator) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithThrottle sets the minimum interval between progress events. Zero
// emits every event.
func WithThrottle(d time.Duration) Option {
	return func(g *Generator) { g.throttle = d }
}

// WithRand makes runs draw from rng instead of a generator seeded from
// Params.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// New validates p and returns a generator for it.
func New(p Params, opts ...Option) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	pl, err := placer.New(p.Strategy, p.Placement)
	if err != nil {
		return nil, err
	}
	ev, err := evaluate.New(p.Evaluator)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		params:    p,
		placer:    pl,
		evaluator: ev,
		observer:  NoopObserver{},
		logger:    log.New(io.Discard),
		throttle:  DefaultThrottle,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Params returns the parameters the generator was built with.
func (g *Generator) Params() Params { return g.params }

// Running reports whether a run is in progress.
func (g *Generator) Running() bool { return g.running.Load() }

// Cancel stops the active run, if any. The run returns its best result so
// far with [StatusCancelled].
func (g *Generator) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
}

// Run generates an infill for frame. See the package documentation for the
// possible outcomes.
func (g *Generator) Run(ctx context.Context, frame *railing.Frame) (*Result, error) {
	if !g.running.CompareAndSwap(false, true) {
		return nil, errors.New(errors.ErrCodeRunInProgress, "a generation run is already in progress")
	}
	defer g.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	g.mu.Lock()
	g.cancel = cancel
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.cancel = nil
		g.mu.Unlock()
		cancel()
	}()

	runID := uuid.NewString()
	if frame == nil || frame.RodCount() < 3 {
		err := errors.New(errors.ErrCodeDegenerateGeometry, "frame is missing or has fewer than 3 rods")
		g.observer.OnFailed(err.Error(), nil)
		observability.Generation().OnRunComplete(ctx, runID, "", 0, err)
		return nil, err
	}

	seed, rng := g.params.Seed, g.rng
	if rng == nil {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}

	r := &run{
		g:     g,
		ctx:   ctx,
		frame: frame,
		rng:   rng,
		start: time.Now(),
		th:    throttle{every: g.throttle},
		res: &Result{
			RunID:     runID,
			Seed:      seed,
			Strategy:  g.params.Strategy,
			Evaluator: g.params.Evaluator.Kind,
			Requested: g.params.Placement.NumRods,
		},
		logger: g.logger.With("run", runID[:8]),
	}
	return r.execute(), nil
}

// candidate is an arrangement kept by the outer loop.
type candidate struct {
	rods       []railing.Rod
	fitness    float64
	iterations int
	duration   time.Duration
}

func (c *candidate) infill() *railing.Infill {
	return railing.NewInfill(c.rods).WithRun(railing.RunInfo{
		Fitness:    c.fitness,
		Iterations: c.iterations,
		Duration:   c.duration,
	})
}

// run holds the state of one call to Run.
type run struct {
	g      *Generator
	ctx    context.Context
	frame  *railing.Frame
	rng    *rand.Rand
	start  time.Time
	th     throttle
	res    *Result
	logger *log.Logger

	attempt int
	phase   Phase
	best    *candidate // best complete and accepted arrangement
	partial *candidate // most complete arrangement of any kind

	// iterations is the live placement iteration count across attempts.
	iterations int
}

func (r *run) execute() *Result {
	p := r.g.params
	hooks := observability.Generation()
	hooks.OnRunStart(r.ctx, r.res.RunID, string(p.Strategy))
	r.logger.Info("generation started",
		"strategy", p.Strategy, "evaluator", p.Evaluator.Kind,
		"rods", p.Placement.NumRods, "layers", p.Placement.NumLayers, "seed", r.res.Seed)

	cancelled := false
	for r.attempt < p.MaxEvaluationAttempts {
		if r.ctx.Err() != nil {
			cancelled = true
			break
		}
		if time.Since(r.start) > p.MaxEvaluationDuration {
			r.logger.Debug("evaluation duration exhausted", "attempts", r.attempt)
			break
		}
		r.attempt++

		arr := r.place()
		r.res.Iterations += arr.Iterations
		r.iterations = r.res.Iterations
		r.res.Statistics.Add(arr.Statistics)
		if r.partial == nil || len(arr.Rods) > len(r.partial.rods) {
			r.partial = &candidate{rods: arr.Rods, iterations: arr.Iterations, duration: arr.Duration}
		}
		if arr.Interrupted {
			cancelled = true
			break
		}
		if !arr.Complete() {
			r.res.Rejections.Incomplete++
			hooks.OnAttempt(r.ctx, r.res.RunID, r.attempt, len(arr.Rods), 0, false)
			r.logger.Debug("arrangement incomplete",
				"attempt", r.attempt, "rods", len(arr.Rods), "requested", arr.Requested,
				"rejections", arr.Statistics.String())
			continue
		}

		r.setPhase(PhaseEvaluating)
		ev := r.g.evaluator.Evaluate(arr.Infill(), r.frame)
		hooks.OnAttempt(r.ctx, r.res.RunID, r.attempt, len(arr.Rods), ev.Fitness, ev.Acceptable)
		if !ev.Acceptable {
			r.res.Rejections.Add(ev.Rejections)
			r.logger.Debug("arrangement rejected", "attempt", r.attempt, "reasons", ev.Rejections.String())
			continue
		}
		r.logger.Debug("arrangement evaluated", "attempt", r.attempt, "fitness", ev.Fitness)

		if r.best == nil || ev.Fitness > r.best.fitness {
			r.best = &candidate{rods: arr.Rods, fitness: ev.Fitness, iterations: arr.Iterations, duration: arr.Duration}
			r.logger.Info("new best arrangement", "attempt", r.attempt, "fitness", ev.Fitness)
			r.g.observer.OnBestImproved(r.best.infill())
		}
		if ev.Fitness >= p.MinAcceptableFitness {
			r.logger.Debug("acceptable fitness reached", "fitness", ev.Fitness, "min", p.MinAcceptableFitness)
			break
		}
	}
	return r.finish(cancelled)
}

// place runs the inner loop once: fresh anchors, a fresh layer deal, one
// placement attempt.
func (r *run) place() *placer.Arrangement {
	p := r.g.params
	r.setPhase(PhasePlacing)

	anchors := anchor.Generate(r.frame, anchor.Options{Spacing: p.Placement.Spacing}, r.rng)
	pools := anchor.Distribute(anchors, p.Placement.NumLayers, r.rng)
	r.logger.Debug("anchors dealt", "attempt", r.attempt, "anchors", len(anchors), "per_layer", anchor.Counts(pools))

	done := r.res.Iterations
	return r.g.placer.Place(r.ctx, placer.Input{
		Frame: r.frame,
		Pools: pools,
		Rand:  r.rng,
		Progress: func(n int) {
			r.iterations = done + n
			r.emit()
		},
		Logger: r.logger,
	})
}

func (r *run) setPhase(ph Phase) {
	changed := r.phase != ph
	r.phase = ph
	if changed {
		r.emit()
	}
}

// emit sends a progress event if the throttle allows it.
func (r *run) emit() {
	now := time.Now()
	if !r.th.allow(now) {
		return
	}
	pr := Progress{
		RunID:      r.res.RunID,
		Phase:      r.phase,
		Attempt:    r.attempt,
		Iterations: r.iterations,
		Elapsed:    now.Sub(r.start),
	}
	if r.best != nil {
		pr.BestFitness, pr.HasBest = r.best.fitness, true
	}
	r.g.observer.OnProgress(pr)
}

func (r *run) finish(cancelled bool) *Result {
	res := r.res
	res.Attempts = r.attempt
	res.Duration = time.Since(r.start)

	switch {
	case cancelled:
		res.Status = StatusCancelled
	case r.best != nil:
		res.Status = StatusCompleted
	default:
		res.Status = StatusExhausted
	}
	switch {
	case r.best != nil:
		res.Infill = r.best.infill()
		res.Fitness = r.best.fitness
		res.Acceptable = true
	case r.partial != nil:
		// Partial arrangements were never evaluated, so they carry no run info.
		res.Infill = railing.NewInfill(r.partial.rods)
	default:
		res.Infill = railing.NewInfill(nil)
	}
	r.phase = phaseOf(res.Status)

	hooks := observability.Generation()
	hooks.OnRunComplete(r.ctx, res.RunID, string(res.Status), res.Duration, nil)
	r.logger.Info("generation finished",
		"status", res.Status, "rods", res.Infill.RodCount(), "fitness", res.Fitness,
		"attempts", res.Attempts, "iterations", res.Iterations, "duration", res.Duration.Round(time.Millisecond))

	if res.Acceptable {
		r.g.observer.OnCompleted(res)
	} else {
		reason := res.Reason()
		if res.Status == StatusExhausted {
			r.logger.Warn("generation exhausted", "reason", reason)
		}
		r.g.observer.OnFailed(reason, res)
	}
	return res
}
