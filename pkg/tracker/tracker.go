// Package tracker keeps a floating element's placement current.
//
// A [Tracker] owns the caller side of [anchor.Resolve]: on each trigger it
// measures the origin and target afresh, skips resolution while either is
// not ready, and stores the new placement. The three triggers mirror what a
// host delivers: the first measurement after mount, a resize of the target,
// and a resize of the window. Hosts whose origin can move (a draggable
// trigger) also report that.
//
// Triggers may arrive from several goroutines (a resize callback firing
// while a window-resize handler runs, for example). The placement is guarded
// by a single-writer lock and the last completed trigger wins. Nothing is
// queued or coalesced.
package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/geom"
	"github.com/matzehuels/anchorage/pkg/observability"
)

// Trigger names the event that caused a resolution.
type Trigger string

const (
	TriggerMount         Trigger = "mount"
	TriggerTargetResize  Trigger = "target-resize"
	TriggerOriginMove    Trigger = "origin-move"
	TriggerWindowResize  Trigger = "window-resize"
	TriggerPreferredEdit Trigger = "preferred"
)

// Measurer reports an element's current box. ok is false while the element
// is not mounted or has no size.
type Measurer interface {
	Measure() (box geom.BBox, ok bool)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func() (geom.BBox, bool)

// Measure calls f.
func (f MeasureFunc) Measure() (geom.BBox, bool) { return f() }

// ViewportFunc reports the current viewport.
type ViewportFunc func() geom.Viewport

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithOnChange registers fn to receive every new placement. fn runs after
// the lock is released, in the goroutine that delivered the trigger.
func WithOnChange(fn func(anchor.Placement)) Option {
	return func(t *Tracker) { t.onChange = fn }
}

// Tracker holds the latest placement of one target relative to one origin.
type Tracker struct {
	origin   Measurer
	target   Measurer
	viewport ViewportFunc
	logger   *log.Logger
	onChange func(anchor.Placement)

	mu        sync.Mutex
	preferred anchor.Corner
	placement anchor.Placement
	revision  uint64
}

// New creates a tracker. Until the first successful trigger the placement is
// the page origin with the preferred corner.
func New(preferred anchor.Corner, origin, target Measurer, viewport ViewportFunc, opts ...Option) *Tracker {
	t := &Tracker{
		origin:    origin,
		target:    target,
		viewport:  viewport,
		logger:    log.Default(),
		preferred: preferred,
		placement: anchor.Placement{Coords: anchor.TopLeft{}, Corner: preferred},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Placement returns the current placement.
func (t *Tracker) Placement() anchor.Placement {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.placement
}

// Revision returns the number of placements stored so far.
func (t *Tracker) Revision() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.revision
}

// Preferred returns the preferred corner.
func (t *Tracker) Preferred() anchor.Corner {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.preferred
}

// Mount runs the first resolution after both elements are rendered.
func (t *Tracker) Mount(ctx context.Context) bool {
	return t.resolve(ctx, TriggerMount)
}

// TargetResized re-resolves after the target element changed size.
func (t *Tracker) TargetResized(ctx context.Context) bool {
	return t.resolve(ctx, TriggerTargetResize)
}

// OriginMoved re-resolves after the origin element moved or changed size.
func (t *Tracker) OriginMoved(ctx context.Context) bool {
	return t.resolve(ctx, TriggerOriginMove)
}

// SetPreferred changes the preferred corner and re-resolves.
func (t *Tracker) SetPreferred(ctx context.Context, c anchor.Corner) bool {
	t.mu.Lock()
	t.preferred = c
	t.mu.Unlock()
	return t.resolve(ctx, TriggerPreferredEdit)
}

// WindowResized handles a window resize.
//
// Right- and bottom-anchored placements are measured from the page's right
// and bottom edges, so a resize would drag the target along with those
// edges. Such placements are pinned to the target's current page position
// instead. Top/left placements are already stable and left alone.
func (t *Tracker) WindowResized(ctx context.Context) bool {
	current := t.Placement()
	if _, ok := current.Coords.(anchor.TopLeft); ok {
		t.skip(ctx, TriggerWindowResize, "already top/left anchored")
		return false
	}
	target, ok := t.target.Measure()
	if !ok {
		t.skip(ctx, TriggerWindowResize, "target not measured")
		return false
	}
	vp := t.viewport()
	pinned := anchor.Placement{
		Coords: anchor.TopLeft{Top: target.Top + vp.ScrollY, Left: target.Left + vp.ScrollX},
		Corner: current.Corner,
	}
	t.store(pinned)
	t.logger.Debug("pinned placement", "trigger", TriggerWindowResize, "placement", pinned)
	return true
}

func (t *Tracker) resolve(ctx context.Context, trigger Trigger) bool {
	origin, ok := t.origin.Measure()
	if !ok {
		t.skip(ctx, trigger, "origin not measured")
		return false
	}
	target, ok := t.target.Measure()
	if !ok {
		t.skip(ctx, trigger, "target not measured")
		return false
	}

	start := time.Now()
	preferred := t.Preferred()
	p := anchor.Resolve(target, origin, preferred, t.viewport())
	observability.Resolver().OnResolve(ctx, string(trigger), preferred.String(), p.Corner.String(), time.Since(start))

	t.store(p)
	t.logger.Debug("resolved placement", "trigger", trigger, "placement", p, "flipped", p.Flipped(preferred))
	return true
}

func (t *Tracker) store(p anchor.Placement) {
	t.mu.Lock()
	t.placement = p
	t.revision++
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange(p)
	}
}

func (t *Tracker) skip(ctx context.Context, trigger Trigger, reason string) {
	observability.Resolver().OnSkip(ctx, string(trigger), reason)
	t.logger.Debug("skipped resolution", "trigger", trigger, "reason", reason)
}
