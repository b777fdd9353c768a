package generate

import (
	"time"

	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/evaluate"
	"github.com/matzehuels/railfill/pkg/placer"
)

// Outer loop defaults.
const (
	DefaultMaxEvaluationAttempts = 10
	DefaultMaxEvaluationDuration = 60 * time.Second
	DefaultMinAcceptableFitness  = 0.7
)

// Params configures a generation run.
type Params struct {
	Strategy  placer.Strategy `json:"strategy" toml:"strategy"`
	Placement placer.Params   `json:"placement" toml:"placement"`
	Evaluator evaluate.Params `json:"evaluator" toml:"evaluator"`

	MaxEvaluationAttempts int           `json:"max_evaluation_attempts" toml:"max_evaluation_attempts"`
	MaxEvaluationDuration time.Duration `json:"max_evaluation_duration" toml:"max_evaluation_duration"`
	MinAcceptableFitness  float64       `json:"min_acceptable_fitness" toml:"min_acceptable_fitness"`

	// Seed seeds the run's random source. Zero selects a time-based seed.
	Seed uint64 `json:"seed" toml:"seed"`
}

// DefaultParams returns the default parameters: directional placement with
// the pass-through evaluator.
func DefaultParams() Params {
	return Params{
		Strategy:              placer.StrategyDirectional,
		Placement:             placer.DefaultParams(),
		Evaluator:             evaluate.PassThroughParams(),
		MaxEvaluationAttempts: DefaultMaxEvaluationAttempts,
		MaxEvaluationDuration: DefaultMaxEvaluationDuration,
		MinAcceptableFitness:  DefaultMinAcceptableFitness,
	}
}

// Validate checks every parameter before any work begins. Placement and
// evaluator problems are reported together with the outer loop ones.
func (p Params) Validate() error {
	if _, err := placer.ParseStrategy(string(p.Strategy)); err != nil {
		return err
	}
	if _, err := evaluate.ParseKind(string(p.Evaluator.Kind)); err != nil {
		return err
	}
	return errors.Join(
		p.Placement.Validate(),
		p.Evaluator.Validate(),
		errors.ValidateCount("max evaluation attempts", p.MaxEvaluationAttempts, 1),
		errors.ValidatePositive("max evaluation duration seconds", p.MaxEvaluationDuration.Seconds()),
		errors.ValidateRange("min acceptable fitness", p.MinAcceptableFitness, 0, 1),
	)
}
