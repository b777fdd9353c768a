// Package pkg provides the core libraries for Railfill infill generation.
//
// # Overview
//
// Railfill fills a railing frame with straight infill rods. Rods run from
// one frame rod to another, sit on one of several layers so rods on
// different layers may cross, and come out as a bill of materials with
// lengths, mitre angles and weights. The pkg directory is organized into
// three areas:
//
//  1. Geometry and model: [geom], [railing]
//  2. Generation: [anchor], [placer], [holes], [evaluate], [generate]
//  3. Infrastructure: [config], [cache], [pipeline], [observability], [errors]
//
// # Architecture
//
// The typical data flow through Railfill:
//
//	Frame vertices or rods
//	         ↓
//	    [anchor] package (candidate attachment points on the frame)
//	         ↓
//	    [placer] package (rods between anchors, per layer, validated)
//	         ↓
//	    [holes] + [evaluate] packages (enclosed regions, fitness)
//	         ↓
//	    [generate] package (retry until acceptable or out of budget)
//	         ↓
//	    Infill + bill of materials
//
// # Quick Start
//
// Generate infill for a rectangular frame:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/railfill/pkg/generate"
//	    "github.com/matzehuels/railfill/pkg/railing"
//	    "gonum.org/v1/gonum/spatial/r2"
//	)
//
//	// 1. Build the frame
//	frame, _ := railing.FrameFromVertices([]r2.Vec{
//	    {X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 100}, {X: 0, Y: 100},
//	}, 1.2)
//
//	// 2. Configure the run
//	p := generate.DefaultParams()
//	p.Placement.NumRods = 12
//	p.Seed = 42
//
//	// 3. Generate
//	g, _ := generate.New(p)
//	res, _ := g.Run(context.Background(), frame)
//
//	// 4. Read the bill of materials
//	for _, line := range res.Infill.BOM() {
//	    fmt.Println(line.ID, line.Length, line.StartCutAngle, line.EndCutAngle)
//	}
//
// # Main Packages
//
// ## Geometry and Model
//
// [geom] - Segments, polygons, intersection tests, noding, polygonization
// and pole of inaccessibility. Points are gonum r2 vectors.
//
// [railing] - Rods, frames, anchor points, infills and bill-of-materials
// lines. Coordinates are centimetres, angles degrees from vertical.
//
// ## Generation
//
// [anchor] - Random anchor generation along the frame with per-class
// minimum spacing, and per-layer anchor pools with nearest-free lookup.
//
// [placer] - The simple and directional placement strategies and the
// constraint validator they share.
//
// [holes] - Hole detection: the regions enclosed by frame and infill.
//
// [evaluate] - Pass-through and weighted quality evaluators.
//
// [generate] - The generation orchestrator: budgets, cancellation,
// throttled progress events and outcome statuses.
//
// ## Infrastructure
//
// [config] - TOML and JSON run files.
//
// [cache] - Result cache backends: file (CLI), Redis (shared), null.
//
// [pipeline] - Cached generation used by both the CLI and the HTTP server.
// Ensures consistent caching behavior across entry points.
//
// [observability] - Hooks for metrics and tracing around runs, cache
// access and HTTP requests.
//
// [errors] - Error codes and parameter validation helpers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/placer/...             # Specific package
//	go test -run Example                 # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/geom
// [railing]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/railing
// [anchor]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/anchor
// [placer]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/placer
// [holes]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/holes
// [evaluate]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/evaluate
// [generate]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/generate
// [config]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/railfill/pkg/errors
package pkg
