package anchor

import (
	"strconv"
	"strings"

	"github.com/matzehuels/anchorage/pkg/errors"
)

// Corner is the preferred attachment corner of a floating element.
// Upper corners open the target below the origin; lower corners open it
// above.
type Corner int

const (
	UpperLeft Corner = iota
	UpperRight
	LowerLeft
	LowerRight
)

// Corners lists every corner in declaration order.
var Corners = [...]Corner{UpperLeft, UpperRight, LowerLeft, LowerRight}

var cornerNames = [...]string{
	UpperLeft:  "upper-left",
	UpperRight: "upper-right",
	LowerLeft:  "lower-left",
	LowerRight: "lower-right",
}

var cornerAliases = map[string]Corner{
	"upper-left":  UpperLeft,
	"upper-right": UpperRight,
	"lower-left":  LowerLeft,
	"lower-right": LowerRight,
	"ul":          UpperLeft,
	"ur":          UpperRight,
	"ll":          LowerLeft,
	"lr":          LowerRight,
}

// ParseCorner parses a corner name. Accepted forms are the hyphenated names
// ("upper-left") and their two-letter abbreviations ("ul"), case-insensitive.
// Underscores are treated as hyphens.
func ParseCorner(s string) (Corner, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if c, ok := cornerAliases[key]; ok {
		return c, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidCorner, "unknown corner %q (want upper-left, upper-right, lower-left or lower-right)", s)
}

// Valid reports whether c is one of the four declared corners.
func (c Corner) Valid() bool {
	return c >= UpperLeft && c <= LowerRight
}

func (c Corner) String() string {
	if !c.Valid() {
		return "corner(" + strconv.Itoa(int(c)) + ")"
	}
	return cornerNames[c]
}

// Upper reports whether c places the target below the origin.
func (c Corner) Upper() bool { return c == UpperLeft || c == UpperRight }

// Flip returns the lower variant of an upper corner. Lower corners have no
// flip and return themselves with ok false.
func (c Corner) Flip() (Corner, bool) {
	switch c {
	case UpperLeft:
		return LowerLeft, true
	case UpperRight:
		return LowerRight, true
	}
	return c, false
}

// MarshalText implements encoding.TextMarshaler.
func (c Corner) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidCorner, "invalid corner %d", int(c))
	}
	return []byte(cornerNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Corner) UnmarshalText(text []byte) error {
	parsed, err := ParseCorner(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
