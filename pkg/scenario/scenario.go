// Package scenario reads and writes placement requests.
//
// A scenario is everything [anchor.Resolve] needs: the preferred corner, the
// measured origin and target boxes and the viewport. Scenario files hold one
// or more of them and come in three formats, chosen by file extension:
//
//	# menus.toml
//	[[scenario]]
//	name   = "org dropdown"
//	corner = "upper-left"
//	origin   = { top = 500, left = 100, width = 50, height = 20 }
//	target   = { width = 200, height = 300 }
//	viewport = { inner_height = 600, page_width = 1000 }
//
//	# menus.yaml
//	scenarios:
//	  - name: org dropdown
//	    corner: upper-left
//	    origin: {top: 500, left: 100, width: 50, height: 20}
//	    target: {width: 200, height: 300}
//	    viewport: {inner_height: 600, page_width: 1000}
//
// JSON files use the YAML layout with camelCase viewport keys
// (innerHeight, pageWidth, scrollX, scrollY).
package scenario

import (
	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/geom"
)

// Scenario is one placement request.
type Scenario struct {
	Name     string        `json:"name,omitempty"`
	Corner   anchor.Corner `json:"corner"`
	Origin   geom.BBox     `json:"origin"`
	Target   geom.BBox     `json:"target"`
	Viewport geom.Viewport `json:"viewport"`
}

// Validate checks the boxes and viewport. Zero-sized boxes are accepted
// here; callers that measure live elements treat them as not ready instead.
func (s Scenario) Validate() error {
	if !s.Corner.Valid() {
		return errors.New(errors.ErrCodeInvalidCorner, "%s: invalid corner %d", s.label(), int(s.Corner))
	}
	if err := errors.ValidateBox("origin", s.Origin); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "%s", s.label())
	}
	if err := errors.ValidateBox("target", s.Target); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "%s", s.label())
	}
	if err := errors.ValidateViewport(s.Viewport); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "%s", s.label())
	}
	return nil
}

// Resolve places the scenario's target.
func (s Scenario) Resolve() anchor.Placement {
	return anchor.Resolve(s.Target, s.Origin, s.Corner, s.Viewport)
}

func (s Scenario) label() string {
	if s.Name == "" {
		return "scenario"
	}
	return "scenario " + s.Name
}

// Example returns a scenario that flips: the origin sits too close to the
// bottom of the viewport for the target to open below it.
func Example() Scenario {
	return Scenario{
		Name:     "example",
		Corner:   anchor.UpperLeft,
		Origin:   geom.BBox{Top: 500, Left: 100, Width: 50, Height: 20},
		Target:   geom.BBox{Width: 200, Height: 300},
		Viewport: geom.Viewport{InnerHeight: 600, PageWidth: 1000},
	}
}
