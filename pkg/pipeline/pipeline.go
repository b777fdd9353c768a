// Package pipeline runs infill generation behind a result cache.
//
// The CLI and the HTTP server both go through a [Runner] so they share one
// caching policy: a run is cached only when it is reproducible (an explicit
// seed) and completed. Cancelled and exhausted runs, and runs with a
// time-based seed, are always recomputed.
//
// # Usage
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	defer runner.Close()
//
//	res, hit, err := runner.Generate(ctx, frame, params, observer)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Status, hit)
package pipeline

import (
	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/railing"
)

// cacheKeyType labels result entries in cache hooks.
const cacheKeyType = "result"

// cacheable reports whether res may be served again for the same request.
func cacheable(p generate.Params, res *generate.Result) bool {
	return p.Seed != 0 && res.Status == generate.StatusCompleted
}

// keyParts is hashed into the params half of a result key.
type keyParts struct {
	Params generate.Params `json:"params"`
}

// frameKey is hashed into the frame half of a result key.
type frameKey struct {
	Frame *railing.Frame `json:"frame"`
}
