// Package pkg provides the core libraries for Anchorage menu and tooltip placement.
//
// # Overview
//
// Anchorage computes where a floating element (menu, tooltip, dropdown) goes
// relative to the element that opened it. The target opens at a preferred
// corner of its origin, is clamped to the page horizontally, and flips above
// the origin when it would run past the bottom of the viewport. The pkg
// directory is organized into three areas:
//
//  1. Placement - geometry, the resolver and the tracker that re-runs it
//  2. Persistence - scenario files, caches and the placement store
//  3. Serving - the HTTP API plus shared errors and observability hooks
//
// # Architecture
//
// The typical data flow:
//
//	measured boxes (terminal, browser bridge, scenario file, HTTP body)
//	         ↓
//	    [tracker] package (when to re-measure; last write wins)
//	         ↓
//	    [anchor] package (Resolve: corner → coords, flip, clamp)
//	         ↓
//	    [store] package (latest placement per overlay id)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/anchorage/pkg/anchor"
//	    "github.com/matzehuels/anchorage/pkg/geom"
//	)
//
//	origin := geom.BBox{Top: 500, Left: 100, Width: 50, Height: 20}
//	target := geom.BBox{Width: 200, Height: 300}
//	vp := geom.Viewport{InnerHeight: 600, PageWidth: 1000}
//
//	p := anchor.Resolve(target, origin, anchor.UpperLeft, vp)
//	// p.Corner == anchor.LowerLeft: the menu opens above the button.
//
// # Main Packages
//
// ## Placement
//
// [geom] - Boxes, sizes, points and the viewport.
//
// [anchor] - Corner table, the resolver, the coordinate variants and
// [anchor.Absolute] for renderers that only position by top/left.
//
// [tracker] - Keeps one placement current across mount, resize and move
// triggers, guarded by a mutex.
//
// ## Persistence
//
// [scenario] - Placement requests in TOML, YAML or JSON files.
//
// [cache] - Byte caches with TTL: null, memory, file (CLI) and Redis (server).
//
// [store] - Latest placement per overlay id, with revisions.
//
// ## Serving
//
// [server] - chi-based JSON API over the store.
//
// [errors] - Coded errors shared by CLI and API.
//
// [observability] - Hook registry for resolver, cache and HTTP events.
//
// [buildinfo] - Version information set via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./...                                  # All tests
//	go test ./pkg/anchor/...                       # Specific package
//	go test -run Example ./pkg/anchor              # Examples only
//	ANCHORAGE_TEST_REDIS=localhost:6379 go test ./pkg/cache  # Include Redis
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/geom
// [anchor]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/anchor
// [tracker]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/tracker
// [scenario]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/scenario
// [cache]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/anchorage/pkg/buildinfo
package pkg
