package scenario

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/geom"
)

const tomlDoc = `
[[scenario]]
name = "org dropdown"
corner = "upper-left"
origin = { top = 500.0, left = 100.0, width = 50.0, height = 20.0 }
target = { width = 200.0, height = 300.0 }
viewport = { inner_height = 600.0, page_width = 1000.0 }

[[scenario]]
name = "avatar menu"
corner = "ur"
origin = { top = 10.0, left = 900.0, width = 40.0, height = 40.0 }
target = { width = 180.0, height = 120.0 }
viewport = { inner_height = 600.0, page_width = 1000.0, scroll_y = 50.0 }
`

const yamlDoc = `
scenarios:
  - name: org dropdown
    corner: upper-left
    origin: {top: 500, left: 100, width: 50, height: 20}
    target: {width: 200, height: 300}
    viewport: {inner_height: 600, page_width: 1000}
  - name: avatar menu
    corner: ur
    origin: {top: 10, left: 900, width: 40, height: 40}
    target: {width: 180, height: 120}
    viewport: {inner_height: 600, page_width: 1000, scroll_y: 50}
`

const jsonDoc = `{
  "scenarios": [
    {"name": "org dropdown", "corner": "upper-left",
     "origin": {"top": 500, "left": 100, "width": 50, "height": 20},
     "target": {"width": 200, "height": 300},
     "viewport": {"innerHeight": 600, "pageWidth": 1000}},
    {"name": "avatar menu", "corner": "ur",
     "origin": {"top": 10, "left": 900, "width": 40, "height": 40},
     "target": {"width": 180, "height": 120},
     "viewport": {"innerHeight": 600, "pageWidth": 1000, "scrollY": 50}}
  ]
}`

func wantScenarios() []Scenario {
	return []Scenario{
		{
			Name:     "org dropdown",
			Corner:   anchor.UpperLeft,
			Origin:   geom.BBox{Top: 500, Left: 100, Width: 50, Height: 20},
			Target:   geom.BBox{Width: 200, Height: 300},
			Viewport: geom.Viewport{InnerHeight: 600, PageWidth: 1000},
		},
		{
			Name:     "avatar menu",
			Corner:   anchor.UpperRight,
			Origin:   geom.BBox{Top: 10, Left: 900, Width: 40, Height: 40},
			Target:   geom.BBox{Width: 180, Height: 120},
			Viewport: geom.Viewport{ScrollY: 50, InnerHeight: 600, PageWidth: 1000},
		},
	}
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		format Format
		doc    string
	}{
		{FormatTOML, tomlDoc},
		{FormatYAML, yamlDoc},
		{FormatJSON, jsonDoc},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.doc), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(wantScenarios(), got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
		code   errors.Code
		msg    string // prefix of the user message
	}{
		{"empty yaml", FormatYAML, "", errors.ErrCodeInvalidInput, "no scenarios found"},
		{"no scenarios", FormatJSON, `{"scenarios": []}`, errors.ErrCodeInvalidInput, "no scenarios found"},
		{"bad syntax", FormatTOML, "[[scenario", errors.ErrCodeInvalidFormat, "decode toml scenarios: toml: line 1"},
		{"unknown json field", FormatJSON, `{"scenarios": [], "extra": 1}`, errors.ErrCodeInvalidFormat, `decode json scenarios: json: unknown field "extra"`},
		{"bad corner", FormatYAML, "scenarios:\n  - corner: middle\n    viewport: {inner_height: 1, page_width: 1}\n", errors.ErrCodeInvalidCorner, `scenario #1: unknown corner "middle"`},
		{"negative box", FormatYAML, "scenarios:\n  - name: m\n    target: {width: -1, height: 1}\n    viewport: {inner_height: 1, page_width: 1}\n", errors.ErrCodeInvalidBox, "scenario m: target box has negative size: -1x1"},
		{"missing viewport", FormatYAML, "scenarios:\n  - target: {width: 1, height: 1}\n", errors.ErrCodeInvalidViewport, "scenario: viewport must have positive size"},
		{"unknown format", Format("ini"), "", errors.ErrCodeInvalidFormat, `unknown format "ini"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format)
			if err == nil {
				t.Fatal("Decode should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
			if got := errors.UserMessage(err); !strings.HasPrefix(got, tt.msg) {
				t.Errorf("message = %q, want prefix %q", got, tt.msg)
			}
		})
	}
}

func TestDefaultCorner(t *testing.T) {
	doc := "scenarios:\n  - target: {width: 1, height: 1}\n    viewport: {inner_height: 10, page_width: 10}\n"
	got, err := Decode(strings.NewReader(doc), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Corner != anchor.UpperLeft {
		t.Errorf("default corner = %v, want upper-left", got[0].Corner)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, format, wantScenarios()); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v\n%s", err, buf.String())
			}
			if diff := cmp.Diff(wantScenarios(), got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menus.yml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load returned %d scenarios, want 2", len(got))
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}

	_, err = Load(filepath.Join(dir, "menus.ini"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension: code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestScenarioResolve(t *testing.T) {
	p := Example().Resolve()
	want := anchor.Placement{Coords: anchor.BottomLeft{Bottom: 100, Left: 100}, Corner: anchor.LowerLeft}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Example().Resolve() (-want +got):\n%s", diff)
	}
}

func TestValidateInvalidCorner(t *testing.T) {
	s := Example()
	s.Corner = anchor.Corner(7)
	if err := s.Validate(); !errors.Is(err, errors.ErrCodeInvalidCorner) {
		t.Errorf("Validate() = %v, want INVALID_CORNER", err)
	}
}
