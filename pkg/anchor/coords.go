package anchor

import (
	"fmt"

	"github.com/matzehuels/anchorage/pkg/geom"
)

// Coords is the resolved position of a target element. It is implemented
// only by [TopLeft], [TopRight], [BottomLeft] and [BottomRight], so each
// value carries exactly one vertical and one horizontal coordinate.
type Coords interface {
	// Edges reports which edges the coordinates are measured from.
	Edges() (Vertical, Horizontal)
	coords()
}

// TopLeft positions the target by its top and left edges.
type TopLeft struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// TopRight positions the target by its top edge and its distance from the
// page's right edge.
type TopRight struct {
	Top   float64 `json:"top"`
	Right float64 `json:"right"`
}

// BottomLeft positions the target by its distance from the viewport's
// bottom edge and its left edge.
type BottomLeft struct {
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// BottomRight positions the target by its distances from the viewport's
// bottom edge and the page's right edge.
type BottomRight struct {
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

func (TopLeft) Edges() (Vertical, Horizontal)     { return Top, Left }
func (TopRight) Edges() (Vertical, Horizontal)    { return Top, Right }
func (BottomLeft) Edges() (Vertical, Horizontal)  { return Bottom, Left }
func (BottomRight) Edges() (Vertical, Horizontal) { return Bottom, Right }

func (TopLeft) coords()     {}
func (TopRight) coords()    {}
func (BottomLeft) coords()  {}
func (BottomRight) coords() {}

func (c TopLeft) String() string     { return fmt.Sprintf("{top:%g left:%g}", c.Top, c.Left) }
func (c TopRight) String() string    { return fmt.Sprintf("{top:%g right:%g}", c.Top, c.Right) }
func (c BottomLeft) String() string  { return fmt.Sprintf("{bottom:%g left:%g}", c.Bottom, c.Left) }
func (c BottomRight) String() string { return fmt.Sprintf("{bottom:%g right:%g}", c.Bottom, c.Right) }

// axis is one resolved coordinate: a value measured from the start edge
// (top/left) or the end edge (bottom/right).
type axis struct {
	fromEnd bool
	value   float64
}

func combine(v, h axis) Coords {
	switch {
	case !v.fromEnd && !h.fromEnd:
		return TopLeft{Top: v.value, Left: h.value}
	case !v.fromEnd && h.fromEnd:
		return TopRight{Top: v.value, Right: h.value}
	case v.fromEnd && !h.fromEnd:
		return BottomLeft{Bottom: v.value, Left: h.value}
	default:
		return BottomRight{Bottom: v.value, Right: h.value}
	}
}

// Absolute returns the page position of the target's top-left corner for c,
// given the target's size. Right values are measured from the page width and
// bottom values from the viewport height, the same references [Resolve]
// uses.
func Absolute(c Coords, size geom.Size, vp geom.Viewport) geom.Point {
	switch c := c.(type) {
	case TopLeft:
		return geom.Point{X: c.Left, Y: c.Top}
	case TopRight:
		return geom.Point{X: vp.PageWidth - c.Right - size.Width, Y: c.Top}
	case BottomLeft:
		return geom.Point{X: c.Left, Y: vp.InnerHeight - c.Bottom - size.Height}
	case BottomRight:
		return geom.Point{X: vp.PageWidth - c.Right - size.Width, Y: vp.InnerHeight - c.Bottom - size.Height}
	}
	return geom.Point{}
}

// Placement is the result of a resolution: the coordinates plus the corner
// actually used, which differs from the preferred corner after a flip.
type Placement struct {
	Coords Coords
	Corner Corner
}

// Flipped reports whether the placement uses a different corner than
// preferred.
func (p Placement) Flipped(preferred Corner) bool {
	return p.Corner != preferred
}

// Box returns the page-coordinate rectangle the target occupies under p.
func (p Placement) Box(size geom.Size, vp geom.Viewport) geom.BBox {
	return size.At(Absolute(p.Coords, size, vp))
}

func (p Placement) String() string {
	return fmt.Sprintf("%s %v", p.Corner, p.Coords)
}
