package generate

import (
	"fmt"
	"time"

	"github.com/matzehuels/railfill/pkg/railing"
)

// DefaultThrottle is the minimum interval between two progress events.
const DefaultThrottle = 100 * time.Millisecond

// Status is the terminal state of a run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusExhausted Status = "exhausted"
)

// Phase is the stage a run is in, as reported by progress events.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlacing
	PhaseEvaluating
	PhaseCompleted
	PhaseCancelled
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlacing:
		return "placing"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseCompleted:
		return "completed"
	case PhaseCancelled:
		return "cancelled"
	case PhaseExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// phaseOf maps a terminal status to its phase.
func phaseOf(s Status) Phase {
	switch s {
	case StatusCompleted:
		return PhaseCompleted
	case StatusCancelled:
		return PhaseCancelled
	}
	return PhaseExhausted
}

// Progress is a snapshot of a running generation.
type Progress struct {
	RunID   string
	Phase   Phase
	Attempt int
	// Iterations counts placement iterations across all attempts so far.
	Iterations int
	// BestFitness is meaningful only when HasBest is set.
	BestFitness float64
	HasBest     bool
	Elapsed     time.Duration
}

// Observer receives generation events. Calls happen synchronously on the
// goroutine running [Generator.Run]; slow observers slow the run down.
type Observer interface {
	OnProgress(p Progress)
	// OnBestImproved receives the new best infill. Its Run field carries the
	// fitness.
	OnBestImproved(infill *railing.Infill)
	OnCompleted(res *Result)
	// OnFailed reports a run that ended without an acceptable arrangement or
	// could not start. res is nil in the latter case.
	OnFailed(reason string, res *Result)
}

// NoopObserver ignores every event.
type NoopObserver struct{}

func (NoopObserver) OnProgress(Progress)            {}
func (NoopObserver) OnBestImproved(*railing.Infill) {}
func (NoopObserver) OnCompleted(*Result)            {}
func (NoopObserver) OnFailed(string, *Result)       {}

// ObserverFuncs adapts plain functions to [Observer]. Nil fields are
// skipped.
type ObserverFuncs struct {
	Progress     func(Progress)
	BestImproved func(*railing.Infill)
	Completed    func(*Result)
	Failed       func(string, *Result)
}

func (o ObserverFuncs) OnProgress(p Progress) {
	if o.Progress != nil {
		o.Progress(p)
	}
}

func (o ObserverFuncs) OnBestImproved(in *railing.Infill) {
	if o.BestImproved != nil {
		o.BestImproved(in)
	}
}

func (o ObserverFuncs) OnCompleted(res *Result) {
	if o.Completed != nil {
		o.Completed(res)
	}
}

func (o ObserverFuncs) OnFailed(reason string, res *Result) {
	if o.Failed != nil {
		o.Failed(reason, res)
	}
}

// throttle lets through at most one event per interval. The first event
// always passes.
type throttle struct {
	every time.Duration
	last  time.Time
}

func (t *throttle) allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.every {
		return false
	}
	t.last = now
	return true
}
