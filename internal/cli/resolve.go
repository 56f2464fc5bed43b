package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/geom"
	"github.com/matzehuels/anchorage/pkg/scenario"
)

const (
	formatText = "text" // table on stdout
	formatJSON = "json" // one JSON document on stdout
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	corner   string // preferred corner
	origin   string // top,left,width,height of the trigger
	target   string // width,height of the floating element
	viewport string // innerHeight,pageWidth
	scroll   string // scrollX,scrollY
	file     string // scenario file; replaces the geometry flags
	format   string // output format: text or json
	save     string // overlay id to store the placement under
	backend  backendFlags
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{
		corner: anchor.UpperLeft.String(),
		format: formatText,
	}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Compute where a menu or tooltip is placed",
		Long: `Compute the placement of a floating element next to its trigger.

The geometry comes either from flags or from a scenario file (TOML, YAML
or JSON). The target opens at the preferred corner when it fits and flips
above the trigger when it would run past the bottom of the viewport.`,
		Example: `  anchorage resolve --corner ul --origin 500,100,50,20 --target 200,300 --viewport 600,1000
  anchorage resolve --file menus.toml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.corner, "corner", "c", opts.corner, "preferred corner: upper-left (ul), upper-right (ur), lower-left (ll), lower-right (lr)")
	cmd.Flags().StringVar(&opts.origin, "origin", "", "trigger box as top,left,width,height")
	cmd.Flags().StringVar(&opts.target, "target", "", "floating element size as width,height")
	cmd.Flags().StringVar(&opts.viewport, "viewport", "", "viewport as innerHeight,pageWidth")
	cmd.Flags().StringVar(&opts.scroll, "scroll", "0,0", "scroll offsets as x,y")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "scenario file (.toml, .yaml, .yml, .json)")
	cmd.Flags().StringVarP(&opts.format, "format", "o", opts.format, "output format: text, json")
	cmd.Flags().StringVar(&opts.save, "save", "", "store the placement under this overlay id")
	opts.backend.register(cmd)

	cmd.MarkFlagsMutuallyExclusive("file", "origin")
	cmd.MarkFlagsMutuallyExclusive("file", "target")
	cmd.MarkFlagsMutuallyExclusive("file", "viewport")

	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, opts *resolveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.format != formatText && opts.format != formatJSON {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want text or json)", opts.format)
	}

	scenarios, err := opts.scenarios()
	if err != nil {
		return err
	}
	if opts.save != "" && len(scenarios) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--save needs exactly one scenario, got %d", len(scenarios))
	}

	prog := newProgress(logger)
	results := resolveAll(scenarios)
	prog.done(fmt.Sprintf("resolved %d %s", len(results), plural(len(results), "scenario")))

	if opts.save != "" {
		st, err := c.newStore(ctx, opts.backend)
		if err != nil {
			return err
		}
		defer st.Close()
		rec, err := st.Save(ctx, opts.save, scenarios[0], results[0].Placement)
		if err != nil {
			return err
		}
		logger.Debug("saved placement", "id", rec.ID, "revision", rec.Revision)
	}

	return writeResults(cmd.OutOrStdout(), opts.format, results)
}

// scenarios returns the scenarios to resolve, from --file or from the
// geometry flags.
func (o *resolveOpts) scenarios() ([]scenario.Scenario, error) {
	if o.file != "" {
		return scenario.Load(o.file)
	}

	s, err := o.flagScenario()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []scenario.Scenario{s}, nil
}

func (o *resolveOpts) flagScenario() (scenario.Scenario, error) {
	if o.origin == "" || o.target == "" || o.viewport == "" {
		return scenario.Scenario{}, errors.New(errors.ErrCodeInvalidInput, "--origin, --target and --viewport are required without --file")
	}

	corner, err := anchor.ParseCorner(o.corner)
	if err != nil {
		return scenario.Scenario{}, err
	}
	origin, err := parseFloats("origin", o.origin, 4)
	if err != nil {
		return scenario.Scenario{}, err
	}
	target, err := parseFloats("target", o.target, 2)
	if err != nil {
		return scenario.Scenario{}, err
	}
	vp, err := parseFloats("viewport", o.viewport, 2)
	if err != nil {
		return scenario.Scenario{}, err
	}
	scroll, err := parseFloats("scroll", o.scroll, 2)
	if err != nil {
		return scenario.Scenario{}, err
	}

	return scenario.Scenario{
		Name:   "flags",
		Corner: corner,
		Origin: geom.BBox{Top: origin[0], Left: origin[1], Width: origin[2], Height: origin[3]},
		Target: geom.BBox{Width: target[0], Height: target[1]},
		Viewport: geom.Viewport{
			InnerHeight: vp[0],
			PageWidth:   vp[1],
			ScrollX:     scroll[0],
			ScrollY:     scroll[1],
		},
	}, nil
}

// parseFloats splits a comma-separated flag value into exactly n numbers.
func parseFloats(flag, value string, n int) ([]float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--%s: want %d comma-separated numbers, got %q", flag, n, value)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "--%s: %q is not a number", flag, p)
		}
		out[i] = f
	}
	return out, nil
}

func resolveAll(scenarios []scenario.Scenario) []resolved {
	results := make([]resolved, 0, len(scenarios))
	for i, s := range scenarios {
		p := s.Resolve()
		pos := anchor.Absolute(p.Coords, s.Target.Size(), s.Viewport)
		name := s.Name
		if name == "" {
			name = "#" + strconv.Itoa(i+1)
		}
		results = append(results, resolved{
			Name:      name,
			Preferred: s.Corner,
			Placement: p,
			X:         pos.X,
			Y:         pos.Y,
		})
	}
	return results
}

// jsonResult is the --format json form of one resolved scenario.
type jsonResult struct {
	Name      string           `json:"name"`
	Preferred anchor.Corner    `json:"preferred"`
	Placement anchor.Placement `json:"placement"`
	Position  geom.Point       `json:"position"`
	Flipped   bool             `json:"flipped"`
}

func writeResults(w io.Writer, format string, results []resolved) error {
	if format == formatJSON {
		out := make([]jsonResult, len(results))
		for i, r := range results {
			out[i] = jsonResult{
				Name:      r.Name,
				Preferred: r.Preferred,
				Placement: r.Placement,
				Position:  geom.Point{X: r.X, Y: r.Y},
				Flipped:   r.Placement.Flipped(r.Preferred),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	writePlacementTable(w, results)
	printSummary(w, results)
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
