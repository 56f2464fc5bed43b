package anchor

import (
	"math"

	"github.com/matzehuels/anchorage/pkg/geom"
)

// Resolve computes where target is placed relative to origin.
//
// Both boxes are measured relative to the viewport; the viewport's scroll
// offsets are added here. The function is total: degenerate layouts (a
// target wider than the page, for example) yield negative coordinates rather
// than errors. Callers skip resolution entirely while either box is not yet
// measured.
func Resolve(target, origin geom.BBox, preferred Corner, vp geom.Viewport) Placement {
	spec := SpecFor(preferred)

	h := resolveHorizontal(target, origin, spec, vp)
	v, ok := resolveBelow(target, origin, spec, vp)

	corner := preferred
	if !ok {
		if flipped, can := preferred.Flip(); can {
			corner = flipped
		}
		v = resolveAbove(target, origin, vp)
	}

	return Placement{Coords: combine(v, h), Corner: corner}
}

// resolveHorizontal never flips; it clamps so the target stays on the page.
func resolveHorizontal(target, origin geom.BBox, spec Spec, vp geom.Viewport) axis {
	originOffset := spec.Origin.Horizontal.Offset(origin.Width)
	if spec.Target.Horizontal != Right {
		targetOffset := spec.Target.Horizontal.Offset(target.Width)
		left := vp.ScrollX + origin.Left + originOffset - targetOffset
		maxLeft := vp.PageWidth - target.Width + vp.ScrollX
		return axis{value: math.Min(left, maxLeft)}
	}
	right := vp.PageWidth - (origin.Left + originOffset) - vp.ScrollX
	maxRight := vp.PageWidth - target.Width - vp.ScrollX
	return axis{fromEnd: true, value: math.Min(right, maxRight)}
}

// resolveBelow reports false when the target is bottom-anchored or would
// cross the bottom of the viewport.
func resolveBelow(target, origin geom.BBox, spec Spec, vp geom.Viewport) (axis, bool) {
	if spec.Target.Vertical == Bottom {
		return axis{}, false
	}
	originOffset := spec.Origin.Vertical.Offset(origin.Height)
	targetOffset := spec.Target.Vertical.Offset(target.Height)
	top := vp.ScrollY + origin.Top + originOffset - targetOffset
	if top+target.Height < vp.InnerHeight+vp.ScrollY {
		return axis{value: top}, true
	}
	return axis{}, false
}

// resolveAbove anchors the target's bottom edge to the origin's top edge.
func resolveAbove(target, origin geom.BBox, vp geom.Viewport) axis {
	bottom := vp.InnerHeight - origin.Top - vp.ScrollY
	maxBottom := vp.InnerHeight - target.Height + vp.ScrollY
	return axis{fromEnd: true, value: math.Min(bottom, maxBottom)}
}
