package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/geom"
)

// Format is a scenario file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported scenario file %q (want .toml, .yaml or .json)", filepath.Base(path))
}

// document is the on-disk layout shared by all formats. Corners stay strings
// until conversion so every format reports the same parse errors.
type document struct {
	TOMLScenarios []rawScenario `toml:"scenario" yaml:"-" json:"-"`
	Scenarios     []rawScenario `toml:"-" yaml:"scenarios" json:"scenarios"`
}

type rawScenario struct {
	Name     string        `toml:"name" yaml:"name" json:"name"`
	Corner   string        `toml:"corner" yaml:"corner" json:"corner"`
	Origin   geom.BBox     `toml:"origin" yaml:"origin" json:"origin"`
	Target   geom.BBox     `toml:"target" yaml:"target" json:"target"`
	Viewport geom.Viewport `toml:"viewport" yaml:"viewport" json:"viewport"`
}

// Load reads and validates every scenario in the file at path.
func Load(path string) ([]Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open scenario file: %w", err)
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode reads and validates every scenario in r.
func Decode(r io.Reader, format Format) ([]Scenario, error) {
	var doc document
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
		doc.Scenarios = doc.TOMLScenarios
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s scenarios", format)
	}
	if len(doc.Scenarios) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no scenarios found")
	}

	out := make([]Scenario, 0, len(doc.Scenarios))
	for i, raw := range doc.Scenarios {
		s, err := raw.scenario()
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "scenario #%d", i+1)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Encode writes scenarios in the given format. The output decodes back with
// Decode.
func Encode(w io.Writer, format Format, scenarios []Scenario) error {
	raws := make([]rawScenario, len(scenarios))
	for i, s := range scenarios {
		raws[i] = rawScenario{
			Name:     s.Name,
			Corner:   s.Corner.String(),
			Origin:   s.Origin,
			Target:   s.Target,
			Viewport: s.Viewport,
		}
	}

	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(document{TOMLScenarios: raws})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Scenarios: raws}); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(document{Scenarios: raws}); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
}

func (r rawScenario) scenario() (Scenario, error) {
	corner := anchor.UpperLeft
	if r.Corner != "" {
		c, err := anchor.ParseCorner(r.Corner)
		if err != nil {
			return Scenario{}, err
		}
		corner = c
	}
	return Scenario{
		Name:     r.Name,
		Corner:   corner,
		Origin:   r.Origin,
		Target:   r.Target,
		Viewport: r.Viewport,
	}, nil
}
