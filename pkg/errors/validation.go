package errors

import (
	"strings"
	"unicode"

	"github.com/matzehuels/anchorage/pkg/geom"
)

// ValidateBox checks a measured box. Width and height must be non-negative
// and every field finite. Position may be negative: elements scrolled above
// or left of the viewport report negative offsets.
func ValidateBox(name string, b geom.BBox) error {
	if !b.Finite() {
		return New(ErrCodeInvalidBox, "%s box has non-finite values: %v", name, b)
	}
	if b.Width < 0 || b.Height < 0 {
		return New(ErrCodeInvalidBox, "%s box has negative size: %gx%g", name, b.Width, b.Height)
	}
	return nil
}

// ValidateViewport checks viewport dimensions. The visible height and page
// width must be positive; scroll offsets must be non-negative.
func ValidateViewport(v geom.Viewport) error {
	if !v.Finite() {
		return New(ErrCodeInvalidViewport, "viewport has non-finite values")
	}
	if v.InnerHeight <= 0 || v.PageWidth <= 0 {
		return New(ErrCodeInvalidViewport, "viewport must have positive size, got %gx%g", v.PageWidth, v.InnerHeight)
	}
	if v.ScrollX < 0 || v.ScrollY < 0 {
		return New(ErrCodeInvalidViewport, "scroll offsets cannot be negative")
	}
	return nil
}

// ValidateOverlayID validates an overlay identifier used as a storage key.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - No path separators (ids become file names in the file cache)
//   - Maximum length of 128 characters
func ValidateOverlayID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "overlay id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidID, "overlay id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "overlay id contains invalid characters")
		}
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return New(ErrCodeInvalidID, "overlay id cannot contain path components: %q", id)
	}
	return nil
}
