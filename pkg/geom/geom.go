package geom

import (
	"fmt"
	"math"
)

// BBox is an element's measured rectangle. It is an immutable snapshot;
// callers re-measure whenever geometry may have changed.
type BBox struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Right returns the x coordinate of the box's right edge.
func (b BBox) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the box's bottom edge.
func (b BBox) Bottom() float64 { return b.Top + b.Height }

// Size returns the box dimensions.
func (b BBox) Size() Size { return Size{Width: b.Width, Height: b.Height} }

// Empty reports whether the box has no area. Layout engines report unmounted
// or hidden elements this way.
func (b BBox) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Finite reports whether every field is a finite number.
func (b BBox) Finite() bool {
	return finite(b.Top) && finite(b.Left) && finite(b.Width) && finite(b.Height)
}

// Translate returns the box moved by dx, dy.
func (b BBox) Translate(dx, dy float64) BBox {
	b.Left += dx
	b.Top += dy
	return b
}

// Contains reports whether p lies inside the box. The right and bottom
// edges are exclusive.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left && p.X < b.Right() && p.Y >= b.Top && p.Y < b.Bottom()
}

func (b BBox) String() string {
	return fmt.Sprintf("{top:%g left:%g width:%g height:%g}", b.Top, b.Left, b.Width, b.Height)
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// At returns a box of this size whose top-left corner is p.
func (s Size) At(p Point) BBox {
	return BBox{Top: p.Y, Left: p.X, Width: s.Width, Height: s.Height}
}

// Point is a position in page coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport describes the visible window.
//
// PageWidth must be the document's client width, which excludes a vertical
// scrollbar. Using the window's outer width shifts right-anchored elements by
// the scrollbar width.
type Viewport struct {
	ScrollX     float64 `json:"scrollX" toml:"scroll_x" yaml:"scroll_x"`
	ScrollY     float64 `json:"scrollY" toml:"scroll_y" yaml:"scroll_y"`
	InnerHeight float64 `json:"innerHeight" toml:"inner_height" yaml:"inner_height"`
	PageWidth   float64 `json:"pageWidth" toml:"page_width" yaml:"page_width"`
}

// Visible returns the visible region in page coordinates.
func (v Viewport) Visible() BBox {
	return BBox{Top: v.ScrollY, Left: v.ScrollX, Width: v.PageWidth, Height: v.InnerHeight}
}

// Finite reports whether every field is a finite number.
func (v Viewport) Finite() bool {
	return finite(v.ScrollX) && finite(v.ScrollY) && finite(v.InnerHeight) && finite(v.PageWidth)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
