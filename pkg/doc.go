// Package pkg holds the public libraries behind giftring, a generator of
// gift-exchange assignments made of closed giving cycles.
//
// # Overview
//
// Every participant gives exactly one gift and receives exactly one, so an
// assignment is a permutation and decomposes into cycles. The libraries are
// split by concern:
//
//  1. [assign] - cycle detection, forced-chain building, bin packing and the
//     shape generators (any shape, one ring, equal rings, bounded rings)
//  2. [pipeline] - validation, caching and rendering around one generation
//  3. [io] - request and assignment files in JSON and TOML
//  4. [render/dot] - Graphviz output with forced and banned pairings marked
//  5. [cache] - file and Redis result caches
//  6. [errors] - coded errors shared by the CLI and the HTTP API
//  7. [observability] - hooks for generation, cache and API events
//
// # Data Flow
//
//	request (flags, TOML or JSON)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [pipeline] package (cache lookup)
//	         ↓
//	    [assign] package (chains → shape strategy → cycles)
//	         ↓
//	    text, JSON, DOT, SVG or PNG
//
// # Quick Start
//
//	shape := assign.EqualCycles{Size: 3}
//	res := assign.Generate(
//	    []string{"Ana", "Ben", "Cleo", "Dev", "Eli", "Fay"},
//	    shape,
//	    []assign.Constraint{{From: "Ana", To: "Ben"}},  // banned
//	    []assign.Constraint{{From: "Cleo", To: "Dev"}}, // forced
//	    assign.Options{Seed: 7},
//	)
//	if !res.Success {
//	    fmt.Println(res.Reason, res.Warning)
//	}
//
// A failed search is a [assign.Result] with Success false, never a Go error;
// errors are reserved for malformed input.
//
// [assign]: https://pkg.go.dev/github.com/matzehuels/giftring/pkg/assign
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/giftring/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/giftring/pkg/io
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/giftring/pkg/render/dot
// [cache]: https://pkg.go.dev/github.com/matzehuels/giftring/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/giftring/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/giftring/pkg/observability
package pkg
