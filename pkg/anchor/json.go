package anchor

import (
	"encoding/json"

	"github.com/matzehuels/anchorage/pkg/errors"
)

// placementJSON is the wire form. Fields use pointers so decoding can tell
// a zero value from a missing field.
type placementJSON struct {
	Corner *Corner    `json:"corner"`
	Coords coordsJSON `json:"coords"`
}

type coordsJSON struct {
	Top    *float64 `json:"top,omitempty"`
	Bottom *float64 `json:"bottom,omitempty"`
	Left   *float64 `json:"left,omitempty"`
	Right  *float64 `json:"right,omitempty"`
}

// MarshalJSON encodes the placement as
// {"corner":"upper-left","coords":{"top":..,"left":..}}.
func (p Placement) MarshalJSON() ([]byte, error) {
	var c coordsJSON
	switch v := p.Coords.(type) {
	case TopLeft:
		c.Top, c.Left = &v.Top, &v.Left
	case TopRight:
		c.Top, c.Right = &v.Top, &v.Right
	case BottomLeft:
		c.Bottom, c.Left = &v.Bottom, &v.Left
	case BottomRight:
		c.Bottom, c.Right = &v.Bottom, &v.Right
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "placement has no coordinates")
	}
	return json.Marshal(placementJSON{Corner: &p.Corner, Coords: c})
}

// UnmarshalJSON decodes the form written by MarshalJSON. The corner is
// required; coordinates must carry exactly one of top/bottom and exactly one
// of left/right.
func (p *Placement) UnmarshalJSON(data []byte) error {
	var raw placementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Corner == nil {
		return errors.New(errors.ErrCodeInvalidCorner, "placement needs a corner")
	}
	c := raw.Coords
	if (c.Top == nil) == (c.Bottom == nil) {
		return errors.New(errors.ErrCodeInvalidInput, "coords need exactly one of top or bottom")
	}
	if (c.Left == nil) == (c.Right == nil) {
		return errors.New(errors.ErrCodeInvalidInput, "coords need exactly one of left or right")
	}

	var v, h axis
	if c.Top != nil {
		v = axis{value: *c.Top}
	} else {
		v = axis{fromEnd: true, value: *c.Bottom}
	}
	if c.Left != nil {
		h = axis{value: *c.Left}
	} else {
		h = axis{fromEnd: true, value: *c.Right}
	}

	p.Corner = *raw.Corner
	p.Coords = combine(v, h)
	return nil
}
