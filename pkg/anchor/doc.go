// Package anchor computes where a floating element is placed relative to
// the element that triggered it.
//
// A menu opened from a button, a tooltip over a link, a dropdown under a
// field: each has an origin (the trigger) and a target (the floating panel).
// [Resolve] takes both measured boxes, the preferred [Corner] and the
// [geom.Viewport], and returns a [Placement] that keeps the target attached
// to the origin and inside the visible area where it can.
//
// # Placement Rules
//
// The two axes are treated differently:
//
//   - Horizontally the target is clamped pixel by pixel so it never crosses
//     the page edge. It never switches sides.
//   - Vertically the target flips wholesale from below the origin to above
//     it when the lower placement would cross the bottom of the viewport.
//     This mirrors how native menus behave.
//
// # Coordinates
//
// The result is a sum type: exactly one of [TopLeft], [TopRight],
// [BottomLeft] or [BottomRight]. Right and bottom values are distances from
// the page's right edge and the viewport's bottom edge, matching absolute
// positioning in CSS. Renderers that only understand top/left positions use
// [Absolute] to convert any variant.
//
// # Example
//
//	p := anchor.Resolve(menuBox, buttonBox, anchor.UpperLeft, viewport)
//	switch c := p.Coords.(type) {
//	case anchor.TopLeft:
//	    style.Top, style.Left = c.Top, c.Left
//	case anchor.BottomLeft:
//	    style.Bottom, style.Left = c.Bottom, c.Left
//	}
package anchor
