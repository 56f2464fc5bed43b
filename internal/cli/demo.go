package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/geom"
	"github.com/matzehuels/anchorage/pkg/tracker"
)

// Demo geometry, in terminal cells.
const (
	demoFooter = 2 // status lines below the canvas

	buttonW, buttonH = 12, 3
	menuW, menuH     = 22, 8
)

var menuItems = []string{"Profile", "Settings", "Billing", "Keyboard", "Help", "Sign out"}

// demoKeyMap lists the demo's key bindings.
type demoKeyMap struct {
	Up, Down, Left, Right key.Binding
	Corner, NextCorner    key.Binding
	Quit                  key.Binding
}

var demoKeys = demoKeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Corner:     key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "corner")),
	NextCorner: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next corner")),
	Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k demoKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Corner, k.NextCorner, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k demoKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// demoCommand creates the demo command, an interactive playground.
func (c *CLI) demoCommand() *cobra.Command {
	var cornerFlag string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Move a menu button around the terminal and watch the menu follow",
		Long: `Open an interactive demo. The arrow keys (or h/j/k/l) move a button;
its menu is placed at the preferred corner and flips above the button when
it would run past the bottom of the terminal. 1-4 or tab change the
preferred corner. Resize the terminal to see resize handling.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			corner, err := anchor.ParseCorner(cornerFlag)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			// The alternate screen owns the terminal; tracker logs would
			// tear it, so they are dropped here.
			m := newDemoModel(ctx, corner, log.New(io.Discard))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&cornerFlag, "corner", "c", anchor.UpperLeft.String(), "initial preferred corner")

	return cmd
}

// =============================================================================
// demoModel
// =============================================================================

// demoModel is the bubbletea model for the demo. It is used by pointer so
// the tracker's measurers see the current geometry.
type demoModel struct {
	ctx     context.Context
	tracker *tracker.Tracker
	help    help.Model

	width, height int        // terminal size
	button        geom.Point // trigger top-left, in cells
	ready         bool       // a window size has been received
}

func newDemoModel(ctx context.Context, preferred anchor.Corner, logger *log.Logger) *demoModel {
	m := &demoModel{ctx: ctx, help: help.New()}
	m.tracker = tracker.New(preferred,
		tracker.MeasureFunc(m.measureButton),
		tracker.MeasureFunc(m.measureMenu),
		m.viewport,
		tracker.WithLogger(logger),
	)
	return m
}

func (m *demoModel) viewport() geom.Viewport {
	return geom.Viewport{
		InnerHeight: float64(m.canvasHeight()),
		PageWidth:   float64(m.width),
	}
}

func (m *demoModel) canvasHeight() int {
	return max(m.height-demoFooter, 0)
}

func (m *demoModel) measureButton() (geom.BBox, bool) {
	if !m.ready {
		return geom.BBox{}, false
	}
	return geom.Size{Width: buttonW, Height: buttonH}.At(m.button), true
}

// measureMenu reports the menu where it is currently drawn.
func (m *demoModel) measureMenu() (geom.BBox, bool) {
	if !m.ready {
		return geom.BBox{}, false
	}
	vp := m.viewport()
	size := geom.Size{Width: menuW, Height: menuH}
	pos := anchor.Absolute(m.tracker.Placement().Coords, size, vp)
	return size.At(geom.Point{X: pos.X - vp.ScrollX, Y: pos.Y - vp.ScrollY}), true
}

func (m *demoModel) Init() tea.Cmd {
	return nil
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.ready = true
			m.button = geom.Point{X: float64(max((m.width-buttonW)/2, 0)), Y: 1}
			m.tracker.Mount(m.ctx)
			return m, nil
		}
		m.tracker.WindowResized(m.ctx)
		if m.clampButton() {
			m.tracker.OriginMoved(m.ctx)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, demoKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, demoKeys.Up):
			m.moveButton(0, -1)
		case key.Matches(msg, demoKeys.Down):
			m.moveButton(0, 1)
		case key.Matches(msg, demoKeys.Left):
			m.moveButton(-1, 0)
		case key.Matches(msg, demoKeys.Right):
			m.moveButton(1, 0)
		case key.Matches(msg, demoKeys.Corner):
			m.tracker.SetPreferred(m.ctx, anchor.Corners[msg.String()[0]-'1'])
		case key.Matches(msg, demoKeys.NextCorner):
			next := (int(m.tracker.Preferred()) + 1) % len(anchor.Corners)
			m.tracker.SetPreferred(m.ctx, anchor.Corners[next])
		}
	}
	return m, nil
}

func (m *demoModel) moveButton(dx, dy float64) {
	if !m.ready {
		return
	}
	before := m.button
	m.button.X += dx
	m.button.Y += dy
	m.clampButton()
	if m.button != before {
		m.tracker.OriginMoved(m.ctx)
	}
}

// clampButton keeps the button on the canvas and reports whether it moved.
func (m *demoModel) clampButton() bool {
	before := m.button
	m.button.X = math.Max(0, math.Min(m.button.X, float64(m.width-buttonW)))
	m.button.Y = math.Max(0, math.Min(m.button.Y, float64(m.canvasHeight()-buttonH)))
	return m.button != before
}

// =============================================================================
// Rendering
// =============================================================================

type cellStyle uint8

const (
	cellPlain cellStyle = iota
	cellButtonBorder
	cellButtonText
	cellMenuBorder
	cellMenuText
)

var demoStyles = map[cellStyle]lipgloss.Style{
	cellPlain:        lipgloss.NewStyle(),
	cellButtonBorder: lipgloss.NewStyle().Foreground(colorCyan),
	cellButtonText:   lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	cellMenuBorder:   lipgloss.NewStyle().Foreground(colorGray),
	cellMenuText:     lipgloss.NewStyle().Foreground(colorWhite),
}

// canvas is a grid of cells that boxes are drawn onto. Drawing outside the
// grid is clipped.
type canvas struct {
	w, h   int
	runes  [][]rune
	styles [][]cellStyle
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, runes: make([][]rune, h), styles: make([][]cellStyle, h)}
	for y := range h {
		c.runes[y] = []rune(strings.Repeat(" ", w))
		c.styles[y] = make([]cellStyle, w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, s cellStyle) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x] = s
}

// box draws a rounded box with lines of text inside, clearing what was
// underneath.
func (c *canvas) box(x, y, w, h int, border, text cellStyle, lines []string) {
	for dy := range h {
		for dx := range w {
			r := ' '
			s := text
			switch {
			case dy == 0 && dx == 0:
				r, s = '╭', border
			case dy == 0 && dx == w-1:
				r, s = '╮', border
			case dy == h-1 && dx == 0:
				r, s = '╰', border
			case dy == h-1 && dx == w-1:
				r, s = '╯', border
			case dy == 0 || dy == h-1:
				r, s = '─', border
			case dx == 0 || dx == w-1:
				r, s = '│', border
			}
			c.set(x+dx, y+dy, r, s)
		}
	}
	for i, line := range lines {
		if i >= h-2 {
			break
		}
		for j, r := range []rune(line) {
			if j >= w-4 {
				break
			}
			c.set(x+2+j, y+1+i, r, text)
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.h {
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.styles[y][x] == c.styles[y][start] {
				continue
			}
			b.WriteString(demoStyles[c.styles[y][start]].Render(string(c.runes[y][start:x])))
			start = x
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *demoModel) View() string {
	if !m.ready {
		return StyleDim.Render("waiting for terminal size…")
	}

	cv := newCanvas(m.width, m.canvasHeight())
	bx, by := int(m.button.X), int(m.button.Y)
	cv.box(bx, by, buttonW, buttonH, cellButtonBorder, cellButtonText, []string{"  Menu ▾"})

	p := m.tracker.Placement()
	pos := anchor.Absolute(p.Coords, geom.Size{Width: menuW, Height: menuH}, m.viewport())
	cv.box(round(pos.X), round(pos.Y), menuW, menuH, cellMenuBorder, cellMenuText, menuItems)

	preferred := m.tracker.Preferred()
	used := StyleValue.Render(p.Corner.String())
	if p.Flipped(preferred) {
		used = styleFlipped.Render(p.Corner.String() + " (flipped)")
	}
	status := fmt.Sprintf("%s %s  %s %s  %s",
		StyleDim.Render("preferred"), StyleHighlight.Render(preferred.String()),
		StyleDim.Render("used"), used,
		StyleDim.Render(coordsString(p.Coords)))
	return cv.String() + "\n" + status + "\n" + m.help.View(demoKeys)
}

func round(f float64) int {
	return int(math.Round(f))
}
