package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railfill/pkg/cache"
	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/observability"
	"github.com/matzehuels/railfill/pkg/railing"
)

// Runner puts the result cache in front of the generator. The CLI and the
// HTTP server share it. A Runner holds no per-run state and may be used
// from several goroutines at once.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. Nil arguments select a cache that stores
// nothing, the default keyer and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Generate runs generation for frame, serving a cached result when one
// exists. It reports whether the result came from the cache. A cached
// result is announced to observer through OnCompleted only.
func (r *Runner) Generate(ctx context.Context, frame *railing.Frame, p generate.Params, observer generate.Observer) (*generate.Result, bool, error) {
	if observer == nil {
		observer = generate.NoopObserver{}
	}
	hooks := observability.Cache()

	key, keyErr := r.ResultKey(frame, p)
	if keyErr == nil && p.Seed != 0 {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var res generate.Result
			if err := json.Unmarshal(data, &res); err == nil {
				hooks.OnCacheHit(ctx, cacheKeyType)
				r.Logger.Debug("result served from cache", "run", res.RunID, "seed", res.Seed)
				observer.OnCompleted(&res)
				return &res, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache lookup failed", "err", err)
		}
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	g, err := generate.New(p, generate.WithObserver(observer), generate.WithLogger(r.Logger))
	if err != nil {
		return nil, false, err
	}
	res, err := g.Run(ctx, frame)
	if err != nil {
		return nil, false, err
	}

	if keyErr == nil && cacheable(p, res) {
		data, err := json.Marshal(res)
		if err != nil {
			return res, false, fmt.Errorf("encode result: %w", err)
		}
		if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return res, false, nil
}

// ResultKey returns the cache key for generating frame under p.
func (r *Runner) ResultKey(frame *railing.Frame, p generate.Params) (string, error) {
	fh, err := cache.HashJSON(frameKey{Frame: frame})
	if err != nil {
		return "", err
	}
	ph, err := cache.HashJSON(keyParts{Params: p})
	if err != nil {
		return "", err
	}
	return r.Keyer.ResultKey(fh, ph), nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}
