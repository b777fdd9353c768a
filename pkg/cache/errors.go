package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks failures to reach a cache backend.
var ErrUnavailable = errors.New("cache backend unavailable")

// transientError flags a failure that may succeed on a later try.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

// IsTransient reports whether err, or anything it wraps, was marked with
// [Transient].
func IsTransient(err error) bool {
	var te transientError
	return errors.As(err, &te)
}

// Backoff retries transient failures with exponentially growing pauses.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Factor   float64
}

// DefaultBackoff makes three tries starting at 200ms.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 200 * time.Millisecond, Factor: 2}

// Do calls fn until it succeeds, returns a non-transient error, or the
// attempts run out. The last error is returned unchanged.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	pause := b.Initial
	var err error
	for try := 1; ; try++ {
		if err = fn(); err == nil || !IsTransient(err) || try >= b.Attempts {
			return err
		}
		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		pause = time.Duration(float64(pause) * b.Factor)
	}
}
