package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/railing"
)

// heartbeatInterval is how often a long placement logs that it is still
// running.
const heartbeatInterval = 10 * time.Second

// logObserver reports generation progress through the logger. It logs each
// new attempt, improvements to the best arrangement and a periodic
// heartbeat so long searches do not look stuck.
//
// Observer callbacks arrive on the generating goroutine, so the logObserver
// keeps unsynchronized state.
type logObserver struct {
	logger      *log.Logger
	watch       *stopwatch
	lastAttempt int
	lastPhase   generate.Phase
	lastLog     time.Time
}

// newLogObserver creates a log observer using the logger from ctx.
func newLogObserver(ctx context.Context) *logObserver {
	logger := loggerFromContext(ctx)
	return &logObserver{
		logger:  logger,
		watch:   newStopwatch(logger),
		lastLog: time.Now(),
	}
}

// OnProgress logs attempt starts and evaluation at debug level and a
// heartbeat at info level every heartbeatInterval.
func (o *logObserver) OnProgress(p generate.Progress) {
	switch {
	case p.Attempt != o.lastAttempt && p.Phase == generate.PhasePlacing:
		o.logger.Debugf("Attempt %d: placing rods", p.Attempt)
		o.lastAttempt = p.Attempt
	case p.Phase == generate.PhaseEvaluating && o.lastPhase != generate.PhaseEvaluating:
		o.logger.Debugf("Attempt %d: evaluating after %d iterations", p.Attempt, p.Iterations)
	default:
		if time.Since(o.lastLog) >= heartbeatInterval {
			o.logger.Infof("Searching... %v elapsed, %s", p.Elapsed.Truncate(time.Second), progressLine(p))
			o.lastLog = time.Now()
		}
	}
	o.lastPhase = p.Phase
}

// OnBestImproved logs the new best fitness.
func (o *logObserver) OnBestImproved(in *railing.Infill) {
	if in.Run == nil {
		return
	}
	o.logger.Infof("Improved: fitness %.3f with %d rods", in.Run.Fitness, in.RodCount())
	o.lastLog = time.Now()
}

// OnCompleted logs the rod count and elapsed time.
func (o *logObserver) OnCompleted(res *generate.Result) {
	o.watch.donef("Generated %d rods", res.Infill.RodCount())
}

// OnFailed warns with the reason and, when one exists, how far the best
// partial arrangement got.
func (o *logObserver) OnFailed(reason string, res *generate.Result) {
	if res != nil && res.Status == generate.StatusExhausted {
		o.logger.Warn("Generation exhausted; try more attempts (--attempts) or fewer rods (--rods)", "reason", reason)
		return
	}
	o.logger.Warn(reason)
}
