package errors

import (
	"math"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 15, false},
		{"small positive", 1e-9, false},

		{"zero", 0, true},
		{"negative", -5, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("spacing", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidParams) {
				t.Errorf("ValidatePositive(%v) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidParams)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 3, false},

		{"negative", -0.1, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("deviation", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"lower bound", 0, false},
		{"upper bound", 90, false},
		{"inside", 40, false},

		{"below", -1, true},
		{"above", 91, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("max angle", tt.input, 0, 90)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOrdered(t *testing.T) {
	if err := ValidateOrdered("min length", 50, "max length", 200); err != nil {
		t.Errorf("ValidateOrdered(50, 200) error = %v, want nil", err)
	}
	if err := ValidateOrdered("min length", 50, "max length", 50); err != nil {
		t.Errorf("ValidateOrdered(50, 50) error = %v, want nil", err)
	}

	err := ValidateOrdered("min length", 200, "max length", 50)
	if err == nil {
		t.Fatal("ValidateOrdered(200, 50) error = nil, want error")
	}
	if want := "min length 200 exceeds max length 50"; UserMessage(err) != want {
		t.Errorf("UserMessage() = %q, want %q", UserMessage(err), want)
	}
}

func TestValidateCount(t *testing.T) {
	if err := ValidateCount("layers", 1, 1); err != nil {
		t.Errorf("ValidateCount(1, 1) error = %v, want nil", err)
	}
	if err := ValidateCount("layers", 0, 1); err == nil {
		t.Error("ValidateCount(0, 1) error = nil, want error")
	}
}
