package evaluate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/holes"
	"github.com/matzehuels/railfill/pkg/railing"
)

// Kind names an evaluator.
type Kind string

const (
	KindPassThrough Kind = "passthrough"
	KindQuality     Kind = "quality"
)

// Kinds returns every known evaluator kind.
func Kinds() []Kind {
	return []Kind{KindPassThrough, KindQuality}
}

// ParseKind validates an evaluator name.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if !slices.Contains(Kinds(), k) {
		return "", errors.New(errors.ErrCodeInvalidEvaluator, "unknown evaluator %q (want one of %v)", name, Kinds())
	}
	return k, nil
}

// Evaluator scores one infill arrangement. Implementations must not mutate
// their arguments and are safe for concurrent use.
type Evaluator interface {
	Name() Kind
	Evaluate(infill *railing.Infill, frame *railing.Frame) Result
}

// New returns the evaluator selected by p.Kind after validating p.
func New(p Params) (Evaluator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch p.Kind {
	case KindPassThrough:
		return PassThrough{}, nil
	case KindQuality:
		return &Quality{Params: p}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidEvaluator, "unknown evaluator %q (want one of %v)", p.Kind, Kinds())
}

// Result is the outcome of evaluating one arrangement.
type Result struct {
	Fitness    float64          `json:"fitness"`
	Acceptable bool             `json:"acceptable"`
	Rejections RejectionReasons `json:"rejections"`
	// Scores is nil for evaluators that do not score criteria.
	Scores *Scores      `json:"scores,omitempty"`
	Holes  []holes.Hole `json:"-"`
}

// Accepted returns an acceptable result with the given fitness.
func Accepted(fitness float64) Result {
	return Result{Fitness: fitness, Acceptable: true}
}

// Scores holds the per-criterion scores of the quality evaluator.
type Scores struct {
	HoleUniformity     float64 `json:"hole_uniformity"`
	IncircleUniformity float64 `json:"incircle_uniformity"`
	AngleDistribution  float64 `json:"angle_distribution"`
	SpacingVertical    float64 `json:"spacing_vertical"`
	SpacingOther       float64 `json:"spacing_other"`
}

func (s Scores) vector() []float64 {
	return []float64{s.HoleUniformity, s.IncircleUniformity, s.AngleDistribution, s.SpacingVertical, s.SpacingOther}
}

// RejectionReasons counts why arrangements were not accepted.
type RejectionReasons struct {
	Incomplete   int `json:"incomplete"`
	HoleTooLarge int `json:"hole_too_large"`
	HoleTooSmall int `json:"hole_too_small"`
}

// Total returns the sum of all counters.
func (r RejectionReasons) Total() int { return r.Incomplete + r.HoleTooLarge + r.HoleTooSmall }

// Add accumulates o into r.
func (r *RejectionReasons) Add(o RejectionReasons) {
	r.Incomplete += o.Incomplete
	r.HoleTooLarge += o.HoleTooLarge
	r.HoleTooSmall += o.HoleTooSmall
}

// String lists the non-zero counters, e.g. "incomplete(3), hole_too_large(1)".
func (r RejectionReasons) String() string {
	var parts []string
	if r.Incomplete > 0 {
		parts = append(parts, fmt.Sprintf("incomplete(%d)", r.Incomplete))
	}
	if r.HoleTooLarge > 0 {
		parts = append(parts, fmt.Sprintf("hole_too_large(%d)", r.HoleTooLarge))
	}
	if r.HoleTooSmall > 0 {
		parts = append(parts, fmt.Sprintf("hole_too_small(%d)", r.HoleTooSmall))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// PassThrough accepts every arrangement with fitness 1.0.
type PassThrough struct{}

func (PassThrough) Name() Kind { return KindPassThrough }

func (PassThrough) Evaluate(*railing.Infill, *railing.Frame) Result { return Accepted(1.0) }
