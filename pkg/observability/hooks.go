// Package observability lets a binary attach metrics or tracing to railfill
// without the core packages depending on a backend.
//
// There are three hook families: [GenerationHooks] for generation runs,
// [CacheHooks] for the result cache and [HTTPHooks] for the API server. Each
// defaults to a no-op. A main package installs its own once, before any work
// starts:
//
//	observability.SetGenerationHooks(promGenerationHooks{reg})
//
// Instrumented code fetches the current hooks at the call site:
//
//	observability.Generation().OnRunStart(ctx, runID, "directional")
package observability

import (
	"context"
	"sync"
	"time"
)

// GenerationHooks observes generation runs.
type GenerationHooks interface {
	OnRunStart(ctx context.Context, runID, strategy string)

	// OnAttempt fires once per evaluated arrangement.
	OnAttempt(ctx context.Context, runID string, attempt, rods int, fitness float64, acceptable bool)

	// OnRunComplete fires when a run ends. status is the run's terminal
	// status; err is only set when the run could not start.
	OnRunComplete(ctx context.Context, runID, status string, duration time.Duration, err error)
}

// CacheHooks observes result cache traffic. keyType names the kind of entry.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes API requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError fires for requests answered with a server error.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopGenerationHooks discards generation events.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnRunStart(context.Context, string, string)                          {}
func (NoopGenerationHooks) OnAttempt(context.Context, string, int, int, float64, bool)          {}
func (NoopGenerationHooks) OnRunComplete(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registry holds the installed hooks.
type registry struct {
	mu         sync.RWMutex
	generation GenerationHooks
	cache      CacheHooks
	http       HTTPHooks
}

var hooks = newRegistry()

func newRegistry() *registry {
	return &registry{
		generation: NoopGenerationHooks{},
		cache:      NoopCacheHooks{},
		http:       NoopHTTPHooks{},
	}
}

// install runs fn under the write lock.
func install(fn func(r *registry)) {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	fn(hooks)
}

// SetGenerationHooks installs h. A nil h is ignored.
func SetGenerationHooks(h GenerationHooks) {
	if h != nil {
		install(func(r *registry) { r.generation = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		install(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		install(func(r *registry) { r.http = h })
	}
}

// Generation returns the installed generation hooks.
func Generation() GenerationHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.generation
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset puts the no-op hooks back. Tests that install hooks call it in
// cleanup.
func Reset() {
	install(func(r *registry) {
		r.generation = NoopGenerationHooks{}
		r.cache = NoopCacheHooks{}
		r.http = NoopHTTPHooks{}
	})
}
