package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidParams, "rods must be at least %d", 1), "INVALID_PARAMS: rods must be at least 1"},
		{Wrap(ErrCodeFileNotFound, errors.New("no such file"), "open %s", "run.toml"), "FILE_NOT_FOUND: open run.toml: no such file"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidFormat, cause, "parse run file")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		msg  string
	}{
		{"direct", New(ErrCodeInvalidStrategy, "unknown strategy"), ErrCodeInvalidStrategy, "unknown strategy"},
		{"outermost wins", Wrap(ErrCodeInvalidFrame, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidFrame, "outer"},
		{"behind fmt wrap", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "missing")), ErrCodeFileNotFound, "missing"},
		{"plain", errors.New("plain error"), "", "plain error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeInternal) {
				t.Error("Is(INTERNAL_ERROR) = true")
			}
			if got := UserMessage(tt.err); got != tt.msg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.msg)
			}
		})
	}

	if Is(nil, ErrCodeInvalidInput) || GetCode(nil) != "" {
		t.Error("nil error should carry no code")
	}
}

func TestJoin(t *testing.T) {
	if err := Join(nil, nil); err != nil {
		t.Errorf("Join(nil, nil) = %v, want nil", err)
	}

	single := New(ErrCodeInvalidParams, "rods must be at least 1, got 0")
	if err := Join(nil, single); err != single {
		t.Errorf("Join(nil, err) = %v, want %v", err, single)
	}

	second := errors.New("second")
	err := Join(New(ErrCodeInvalidParams, "first"), second)
	if GetCode(err) != ErrCodeInvalidParams {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInvalidParams)
	}
	if got, want := UserMessage(err), "first; second"; got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
	if !errors.Is(err, second) {
		t.Error("joined error should wrap every failure")
	}

	if got := GetCode(Join(errors.New("a"), errors.New("b"))); got != ErrCodeInvalidInput {
		t.Errorf("uncoded join code = %q, want INVALID_INPUT", got)
	}
}
