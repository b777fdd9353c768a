package placer

import (
	"time"

	"github.com/matzehuels/railfill/pkg/anchor"
	"github.com/matzehuels/railfill/pkg/errors"
)

// Default placement parameters.
const (
	DefaultNumRods           = 30
	DefaultMinLength         = 50.0  // cm
	DefaultMaxLength         = 200.0 // cm
	DefaultMaxAngleDeviation = 40.0  // degrees from vertical
	DefaultNumLayers         = 3
	DefaultSpacingVertical   = 15.0 // cm
	DefaultSpacingOther      = 5.0  // cm
	DefaultDirectionMin      = -30.0
	DefaultDirectionMax      = 10.0
	DefaultRandomDeviation   = 20.0
	DefaultWeightPerMeter    = 0.3 // kg/m
	DefaultMaxIterations     = 1000
	DefaultMaxDuration       = 60 * time.Second

	// BoundaryTolerance is how far (cm) a rod may stray outside the frame
	// boundary and still count as contained.
	BoundaryTolerance = 0.1
)

// Params configures rod placement for one arrangement.
type Params struct {
	NumRods           int     `json:"num_rods" toml:"num_rods"`
	MinLength         float64 `json:"min_length_cm" toml:"min_length_cm"`
	MaxLength         float64 `json:"max_length_cm" toml:"max_length_cm"`
	MaxAngleDeviation float64 `json:"max_angle_deviation_deg" toml:"max_angle_deviation_deg"`
	NumLayers         int     `json:"num_layers" toml:"num_layers"`
	WeightPerMeter    float64 `json:"weight_kg_m" toml:"weight_kg_m"`

	// Spacing is the minimum anchor distance per frame rod class.
	Spacing anchor.Spacing `json:"anchor_spacing" toml:"anchor_spacing"`

	// Directional strategy only.
	DirectionMin    float64 `json:"direction_min_deg" toml:"direction_min_deg"`
	DirectionMax    float64 `json:"direction_max_deg" toml:"direction_max_deg"`
	RandomDeviation float64 `json:"random_deviation_deg" toml:"random_deviation_deg"`

	// Budgets for one arrangement.
	MaxIterations int           `json:"max_iterations" toml:"max_iterations"`
	MaxDuration   time.Duration `json:"max_duration" toml:"max_duration"`
}

// DefaultParams returns the default placement parameters.
func DefaultParams() Params {
	return Params{
		NumRods:           DefaultNumRods,
		MinLength:         DefaultMinLength,
		MaxLength:         DefaultMaxLength,
		MaxAngleDeviation: DefaultMaxAngleDeviation,
		NumLayers:         DefaultNumLayers,
		WeightPerMeter:    DefaultWeightPerMeter,
		Spacing:           anchor.Spacing{Vertical: DefaultSpacingVertical, Other: DefaultSpacingOther},
		DirectionMin:      DefaultDirectionMin,
		DirectionMax:      DefaultDirectionMax,
		RandomDeviation:   DefaultRandomDeviation,
		MaxIterations:     DefaultMaxIterations,
		MaxDuration:       DefaultMaxDuration,
	}
}

// Validate checks the parameters for values no placement could honour. It
// reports every problem it finds, not just the first.
func (p Params) Validate() error {
	return errors.Join(
		errors.ValidateCount("rod count", p.NumRods, 1),
		errors.ValidatePositive("min length", p.MinLength),
		errors.ValidatePositive("max length", p.MaxLength),
		errors.ValidateOrdered("min length", p.MinLength, "max length", p.MaxLength),
		errors.ValidateRange("max angle deviation", p.MaxAngleDeviation, 0, 90),
		errors.ValidateCount("layer count", p.NumLayers, 1),
		errors.ValidatePositive("weight per meter", p.WeightPerMeter),
		p.Spacing.Validate(),
		errors.ValidateRange("direction min", p.DirectionMin, -90, 90),
		errors.ValidateRange("direction max", p.DirectionMax, -90, 90),
		errors.ValidateOrdered("direction min", p.DirectionMin, "direction max", p.DirectionMax),
		errors.ValidateNonNegative("random deviation", p.RandomDeviation),
		errors.ValidateCount("max iterations", p.MaxIterations, 0),
		errors.ValidatePositive("max duration seconds", p.MaxDuration.Seconds()),
	)
}

// LayerTargets splits n rods across layers as evenly as possible. The first
// n mod layers layers get one extra rod.
func LayerTargets(n, layers int) []int {
	if layers < 1 {
		return nil
	}
	out := make([]int, layers)
	for i := range out {
		out[i] = n / layers
		if i < n%layers {
			out[i]++
		}
	}
	return out
}

// MainDirections returns the main direction of each layer in degrees: the
// midpoint of [lo, hi] for a single layer, otherwise evenly spaced from lo
// to hi inclusive.
func MainDirections(n int, lo, hi float64) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{(lo + hi) / 2}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)/float64(n-1)*(hi-lo)
	}
	return out
}
