// Package pkg provides the core libraries for hemo vascular network
// generation.
//
// # Overview
//
// Hemo synthesizes cubic-lattice vascular networks for perfusion studies
// and computes their derived physical quantities. The pkg directory is
// organized into:
//
//  1. [vascular] - Domain logic (lattice synthesis, ranking, radii, metrics)
//  2. [pipeline] - Orchestration (build → rank → radii → prep → switches)
//  3. [netio] - Canonical JSON serialization of networks
//  4. [cache], [store] - Generation cache and network persistence
//  5. [render] - Graphviz DOT/SVG visualization
//
// # Architecture
//
// The typical data flow through hemo:
//
//	Resolution + seed
//	         ↓
//	    [vascular] package (lattice, distances, radii, preparation)
//	         ↓
//	    [pipeline] package (caching, hooks, stage timing)
//	         ↓
//	    [netio] package (serialization)
//	         ↓
//	    files / [store] / HTTP API / [render] output
//
// # Quick Start
//
// Generate a prepared network and compute its total flow:
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{Resolution: 7, Seed: 3})
//	flow, _ := vascular.TotalFlow(result.Network)
//
// # Main Packages
//
// [vascular] - The domain model: directed networks over an N×N×N lattice
// with checkerboard source/sink roles, hop-distance ranking, symmetric or
// gamma-distributed radii with repair sweeps, simulation preparation, the
// switch optimizer, and metric functions (flow, resistance, surface area,
// volume, tracer mass).
//
// [pipeline] - The generation pipeline used by CLI and API. Ensures
// consistent behavior across all entry points and caches prepared networks.
//
// [netio] - Attribute-complete JSON serialization: import → export →
// re-import reproduces an identical network.
//
// [cache] - Generation result cache with file, Redis, and null backends.
//
// [store] - Network persistence with file and MongoDB backends.
//
// [render] - Graphviz DOT conversion and SVG rendering.
//
// [config] - TOML configuration for physics constants, generation
// defaults, cache, store, and server settings.
//
// [errors] - Coded error values shared by every package.
//
// [observability] - Hook interfaces for instrumenting generation, cache,
// and store operations without backend dependencies.
//
// [httputil] - JSON helpers for the HTTP API.
//
// [search] - Filename substring search over output trees.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/vascular/...     # Specific package
//
// [vascular]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/vascular
// [pipeline]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/pipeline
// [netio]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/netio
// [cache]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/cache
// [store]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/store
// [render]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/render
// [config]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/config
// [errors]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/errors
// [observability]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/httputil
// [search]: https://pkg.go.dev/github.com/AlexRiggs/hemo/pkg/search
package pkg
