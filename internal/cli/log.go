// Package cli implements the railfill command-line interface.
//
// The commands load a run file describing a railing frame, generate infill
// rods for it and print the resulting bill of materials. Generated results
// are cached on disk (or in Redis) so repeated runs with the same seed are
// instant. The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - generate: Fill a frame with rods and print the bill of materials
//   - holes: List the holes an arrangement leaves in its frame
//   - cache: Manage the result cache
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so observers and helpers can reach them.
//
// # Example
//
//	import "github.com/matzehuels/railfill/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// timeFormat shows wall-clock time with centiseconds, e.g. "14:32:01.45".
const timeFormat = "15:04:05.00"

// newLogger returns a timestamped logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Level:           level,
	})
}

// stopwatch logs how long a step took once it finishes. Not safe for
// concurrent use.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func newStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// elapsed returns the time since the stopwatch started, in milliseconds.
func (s *stopwatch) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}

// donef logs the formatted message followed by the elapsed time, e.g.
// "Generated 30 rods (1.234s)".
func (s *stopwatch) donef(format string, args ...any) {
	s.logger.Infof("%s (%s)", fmt.Sprintf(format, args...), s.elapsed())
}

type loggerKey struct{}

// withLogger attaches l to ctx for commands and observers further down.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
