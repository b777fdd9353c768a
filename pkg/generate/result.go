package generate

import (
	"fmt"
	"time"

	"github.com/matzehuels/railfill/pkg/evaluate"
	"github.com/matzehuels/railfill/pkg/placer"
	"github.com/matzehuels/railfill/pkg/railing"
)

// Result is the outcome of a run that started.
type Result struct {
	RunID     string          `json:"run_id"`
	Seed      uint64          `json:"seed"`
	Status    Status          `json:"status"`
	Strategy  placer.Strategy `json:"strategy"`
	Evaluator evaluate.Kind   `json:"evaluator"`

	// Infill is the best accepted arrangement, or for exhausted and
	// unfinished cancelled runs the most complete partial one. It is never
	// nil but may hold no rods.
	Infill     *railing.Infill `json:"infill"`
	Fitness    float64         `json:"fitness"`
	Acceptable bool            `json:"acceptable"`
	Requested  int             `json:"requested_rods"`

	Attempts   int           `json:"attempts"`
	Iterations int           `json:"iterations"`
	Duration   time.Duration `json:"duration"`

	// Statistics sums the placement rejections of every attempt.
	Statistics placer.Statistics `json:"statistics"`
	// Rejections counts arrangements turned down by the outer loop.
	Rejections evaluate.RejectionReasons `json:"rejections"`
}

// Reason explains a run that did not complete, naming the dominant
// rejection. It is empty for completed runs.
func (r *Result) Reason() string {
	switch r.Status {
	case StatusCompleted:
		return ""
	case StatusCancelled:
		if r.Acceptable {
			return "cancelled; returning best arrangement so far"
		}
		return "cancelled before any acceptable arrangement"
	}

	msg := fmt.Sprintf("no acceptable arrangement after %d attempts (best %d/%d rods)",
		r.Attempts, r.Infill.RodCount(), r.Requested)
	if name, n := r.Statistics.MostFrequent(); n > 0 {
		msg += fmt.Sprintf("; most frequent placement rejection: %s (%d)", name, n)
	}
	if r.Rejections.Total() > 0 {
		msg += fmt.Sprintf("; arrangements rejected: %s", r.Rejections)
	}
	return msg
}
