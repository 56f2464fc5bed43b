package anchor

// Horizontal is the horizontal side of an element used as a reference.
type Horizontal int

const (
	Left Horizontal = iota
	HCenter
	Right
)

// Vertical is the vertical side of an element used as a reference.
type Vertical int

const (
	Top Vertical = iota
	VCenter
	Bottom
)

// Anchor names a reference point on an element.
type Anchor struct {
	Horizontal Horizontal
	Vertical   Vertical
}

// Spec pairs the point on the origin with the point on the target that
// must coincide.
type Spec struct {
	Origin Anchor
	Target Anchor
}

// specs is indexed by Corner. Upper corners attach the target's top edge to
// the origin's bottom edge; lower corners the reverse.
var specs = [...]Spec{
	UpperLeft: {
		Origin: Anchor{Horizontal: Left, Vertical: Bottom},
		Target: Anchor{Horizontal: Left, Vertical: Top},
	},
	UpperRight: {
		Origin: Anchor{Horizontal: Right, Vertical: Bottom},
		Target: Anchor{Horizontal: Right, Vertical: Top},
	},
	LowerLeft: {
		Origin: Anchor{Horizontal: Left, Vertical: Top},
		Target: Anchor{Horizontal: Left, Vertical: Bottom},
	},
	LowerRight: {
		Origin: Anchor{Horizontal: Right, Vertical: Top},
		Target: Anchor{Horizontal: Right, Vertical: Bottom},
	},
}

// SpecFor returns the anchor pair for c. It panics if c is not a valid
// corner.
func SpecFor(c Corner) Spec {
	return specs[c]
}

// Offset returns the distance from an element's left edge to side h.
func (h Horizontal) Offset(width float64) float64 {
	switch h {
	case HCenter:
		return width / 2
	case Right:
		return width
	}
	return 0
}

// Offset returns the distance from an element's top edge to side v.
func (v Vertical) Offset(height float64) float64 {
	switch v {
	case VCenter:
		return height / 2
	case Bottom:
		return height
	}
	return 0
}

func (h Horizontal) String() string {
	switch h {
	case Left:
		return "left"
	case HCenter:
		return "center"
	case Right:
		return "right"
	}
	return "unknown"
}

func (v Vertical) String() string {
	switch v {
	case Top:
		return "top"
	case VCenter:
		return "center"
	case Bottom:
		return "bottom"
	}
	return "unknown"
}
