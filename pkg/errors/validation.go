package errors

import "math"

// ValidatePositive checks that a numeric parameter is a finite value > 0.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidParams, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateNonNegative checks that a numeric parameter is a finite value >= 0.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidParams, "%s must not be negative, got %g", name, v)
	}
	return nil
}

// ValidateRange checks that lo <= v <= hi.
func ValidateRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return New(ErrCodeInvalidParams, "%s must be in [%g, %g], got %g", name, lo, hi, v)
	}
	return nil
}

// ValidateOrdered checks that a pair of bounds is not inverted. The names are
// used in the message, e.g. "min length 200 exceeds max length 50".
func ValidateOrdered(loName string, lo float64, hiName string, hi float64) error {
	if lo > hi {
		return New(ErrCodeInvalidParams, "%s %g exceeds %s %g", loName, lo, hiName, hi)
	}
	return nil
}

// ValidateCount checks that an integer parameter is at least minimum.
func ValidateCount(name string, n, minimum int) error {
	if n < minimum {
		return New(ErrCodeInvalidParams, "%s must be at least %d, got %d", name, minimum, n)
	}
	return nil
}
