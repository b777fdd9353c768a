package evaluate

import (
	"github.com/matzehuels/railfill/pkg/errors"
)

// Quality evaluator defaults.
const (
	DefaultMaxHoleArea   = 10000.0 // cm²
	DefaultIdealAngleMin = 5.0     // degrees from vertical
	DefaultIdealAngleMax = 35.0
	DefaultAngleFalloff  = 15.0
)

// Weights sets the contribution of each criterion to the fitness. They
// need not sum to one, but fitness is clamped to [0, 1] either way.
type Weights struct {
	HoleUniformity     float64 `json:"hole_uniformity" toml:"hole_uniformity"`
	IncircleUniformity float64 `json:"incircle_uniformity" toml:"incircle_uniformity"`
	AngleDistribution  float64 `json:"angle_distribution" toml:"angle_distribution"`
	SpacingVertical    float64 `json:"spacing_vertical" toml:"spacing_vertical"`
	SpacingOther       float64 `json:"spacing_other" toml:"spacing_other"`
}

func (w Weights) vector() []float64 {
	return []float64{w.HoleUniformity, w.IncircleUniformity, w.AngleDistribution, w.SpacingVertical, w.SpacingOther}
}

// DefaultWeights returns the default criterion weights.
func DefaultWeights() Weights {
	return Weights{
		HoleUniformity:     0.3,
		IncircleUniformity: 0.2,
		AngleDistribution:  0.2,
		SpacingVertical:    0.15,
		SpacingOther:       0.15,
	}
}

// Params configures an evaluator. Only Kind matters for the pass-through
// evaluator.
type Params struct {
	Kind Kind `json:"kind" toml:"kind"`

	// MaxHoleArea rejects arrangements with any larger hole (cm²).
	MaxHoleArea float64 `json:"max_hole_area_cm2" toml:"max_hole_area_cm2"`
	// MinHoleArea rejects arrangements with any smaller hole (cm²). Zero
	// disables the check.
	MinHoleArea float64 `json:"min_hole_area_cm2" toml:"min_hole_area_cm2"`

	Weights Weights `json:"weights" toml:"weights"`

	// Rods whose absolute angle from vertical lies in
	// [IdealAngleMin, IdealAngleMax] score 1 for angle distribution.
	IdealAngleMin float64 `json:"ideal_angle_min_deg" toml:"ideal_angle_min_deg"`
	IdealAngleMax float64 `json:"ideal_angle_max_deg" toml:"ideal_angle_max_deg"`
	AngleFalloff  float64 `json:"angle_falloff_deg" toml:"angle_falloff_deg"`
}

// DefaultParams returns the default parameters for the quality evaluator.
func DefaultParams() Params {
	return Params{
		Kind:          KindQuality,
		MaxHoleArea:   DefaultMaxHoleArea,
		Weights:       DefaultWeights(),
		IdealAngleMin: DefaultIdealAngleMin,
		IdealAngleMax: DefaultIdealAngleMax,
		AngleFalloff:  DefaultAngleFalloff,
	}
}

// PassThroughParams returns parameters selecting the pass-through evaluator.
func PassThroughParams() Params {
	p := DefaultParams()
	p.Kind = KindPassThrough
	return p
}

// Validate checks the parameters. The quality criteria are only checked for
// the quality evaluator.
func (p Params) Validate() error {
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return err
	}
	if p.Kind == KindPassThrough {
		return nil
	}
	w := p.Weights
	var weightErr error
	if w.HoleUniformity+w.IncircleUniformity+w.AngleDistribution+w.SpacingVertical+w.SpacingOther <= 0 {
		weightErr = errors.New(errors.ErrCodeInvalidParams, "at least one quality weight must be positive")
	}
	return errors.Join(
		errors.ValidatePositive("max hole area", p.MaxHoleArea),
		errors.ValidateNonNegative("min hole area", p.MinHoleArea),
		errors.ValidateOrdered("min hole area", p.MinHoleArea, "max hole area", p.MaxHoleArea),
		errors.ValidateNonNegative("hole uniformity weight", w.HoleUniformity),
		errors.ValidateNonNegative("incircle uniformity weight", w.IncircleUniformity),
		errors.ValidateNonNegative("angle distribution weight", w.AngleDistribution),
		errors.ValidateNonNegative("vertical spacing weight", w.SpacingVertical),
		errors.ValidateNonNegative("other spacing weight", w.SpacingOther),
		weightErr,
		errors.ValidateRange("ideal angle min", p.IdealAngleMin, 0, 90),
		errors.ValidateRange("ideal angle max", p.IdealAngleMax, 0, 90),
		errors.ValidateOrdered("ideal angle min", p.IdealAngleMin, "ideal angle max", p.IdealAngleMax),
		errors.ValidatePositive("angle falloff", p.AngleFalloff),
	)
}
