// Package geom provides the value types shared by every placement package.
//
// Boxes are measured relative to the viewport (the visible window), the way a
// layout engine reports them. Scroll offsets are carried separately on
// [Viewport] and added explicitly by the resolver in package anchor.
//
// Units are whatever the host measures in: pixels in a browser-like host,
// cells in a terminal. Nothing in this package assumes one or the other.
//
// # Core Types
//
//   - [BBox]: measured rectangle of an element (top, left, width, height)
//   - [Size]: width/height pair for elements whose position is being computed
//   - [Point]: absolute page position
//   - [Viewport]: scroll offsets plus visible height and page width
package geom
