package tracker

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/geom"
)

// element is a fake layout node whose box can change between triggers.
type element struct {
	mu  sync.Mutex
	box geom.BBox
	ok  bool
}

func (e *element) Measure() (geom.BBox, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.box, e.ok
}

func (e *element) set(b geom.BBox) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.box, e.ok = b, true
}

func newFixture(preferred anchor.Corner, opts ...Option) (*Tracker, *element, *element, *geom.Viewport) {
	origin := &element{}
	target := &element{}
	vp := &geom.Viewport{InnerHeight: 600, PageWidth: 1000}
	opts = append([]Option{WithLogger(log.New(&bytes.Buffer{}))}, opts...)
	tr := New(preferred, origin, target, func() geom.Viewport { return *vp }, opts...)
	return tr, origin, target, vp
}

func TestInitialPlacement(t *testing.T) {
	tr, _, _, _ := newFixture(anchor.UpperRight)
	want := anchor.Placement{Coords: anchor.TopLeft{}, Corner: anchor.UpperRight}
	if diff := cmp.Diff(want, tr.Placement()); diff != "" {
		t.Errorf("initial placement (-want +got):\n%s", diff)
	}
	if tr.Revision() != 0 {
		t.Errorf("Revision() = %d, want 0", tr.Revision())
	}
}

func TestMountSkipsUntilMeasured(t *testing.T) {
	ctx := context.Background()
	tr, origin, target, _ := newFixture(anchor.UpperLeft)

	if tr.Mount(ctx) {
		t.Fatal("Mount should skip when nothing is measured")
	}
	origin.set(geom.BBox{Top: 100, Left: 100, Width: 50, Height: 20})
	if tr.Mount(ctx) {
		t.Fatal("Mount should skip when the target is not measured")
	}
	if tr.Revision() != 0 {
		t.Fatalf("skipped triggers must not store, revision = %d", tr.Revision())
	}

	target.set(geom.BBox{Width: 200, Height: 300})
	if !tr.Mount(ctx) {
		t.Fatal("Mount should resolve once both boxes are measured")
	}
	want := anchor.Placement{Coords: anchor.TopLeft{Top: 120, Left: 100}, Corner: anchor.UpperLeft}
	if diff := cmp.Diff(want, tr.Placement()); diff != "" {
		t.Errorf("placement (-want +got):\n%s", diff)
	}
}

func TestTargetResizedFlips(t *testing.T) {
	ctx := context.Background()
	tr, origin, target, _ := newFixture(anchor.UpperLeft)
	origin.set(geom.BBox{Top: 300, Left: 100, Width: 50, Height: 20})
	target.set(geom.BBox{Width: 200, Height: 100})
	tr.Mount(ctx)
	if tr.Placement().Corner != anchor.UpperLeft {
		t.Fatalf("small target should fit below, got %v", tr.Placement())
	}

	target.set(geom.BBox{Width: 200, Height: 400})
	if !tr.TargetResized(ctx) {
		t.Fatal("TargetResized should resolve")
	}
	want := anchor.Placement{Coords: anchor.BottomLeft{Bottom: 200, Left: 100}, Corner: anchor.LowerLeft}
	if diff := cmp.Diff(want, tr.Placement()); diff != "" {
		t.Errorf("placement (-want +got):\n%s", diff)
	}
	if tr.Preferred() != anchor.UpperLeft {
		t.Error("a flip must not change the preferred corner")
	}
}

func TestWindowResizedPinsRightAnchored(t *testing.T) {
	ctx := context.Background()
	tr, origin, target, vp := newFixture(anchor.UpperRight)
	origin.set(geom.BBox{Top: 100, Left: 700, Width: 50, Height: 20})
	target.set(geom.BBox{Width: 200, Height: 300})
	tr.Mount(ctx)
	if _, ok := tr.Placement().Coords.(anchor.TopRight); !ok {
		t.Fatalf("expected TopRight, got %T", tr.Placement().Coords)
	}

	// The host renders the target where the placement put it.
	target.set(geom.BBox{Top: 120, Left: 550, Width: 200, Height: 300})
	vp.ScrollY = 10
	if !tr.WindowResized(ctx) {
		t.Fatal("WindowResized should pin right-anchored placements")
	}
	want := anchor.Placement{Coords: anchor.TopLeft{Top: 130, Left: 550}, Corner: anchor.UpperRight}
	if diff := cmp.Diff(want, tr.Placement()); diff != "" {
		t.Errorf("placement (-want +got):\n%s", diff)
	}
}

func TestWindowResizedLeavesTopLeft(t *testing.T) {
	ctx := context.Background()
	tr, origin, target, _ := newFixture(anchor.UpperLeft)
	origin.set(geom.BBox{Top: 100, Left: 100, Width: 50, Height: 20})
	target.set(geom.BBox{Width: 200, Height: 300})
	tr.Mount(ctx)
	rev := tr.Revision()

	if tr.WindowResized(ctx) {
		t.Error("WindowResized should not touch top/left placements")
	}
	if tr.Revision() != rev {
		t.Error("revision changed without a store")
	}
}

func TestSetPreferred(t *testing.T) {
	ctx := context.Background()
	tr, origin, target, _ := newFixture(anchor.UpperLeft)
	origin.set(geom.BBox{Top: 400, Left: 100, Width: 50, Height: 20})
	target.set(geom.BBox{Width: 200, Height: 100})

	if !tr.SetPreferred(ctx, anchor.LowerLeft) {
		t.Fatal("SetPreferred should resolve")
	}
	want := anchor.Placement{Coords: anchor.BottomLeft{Bottom: 200, Left: 100}, Corner: anchor.LowerLeft}
	if diff := cmp.Diff(want, tr.Placement()); diff != "" {
		t.Errorf("placement (-want +got):\n%s", diff)
	}
}

func TestOnChange(t *testing.T) {
	ctx := context.Background()
	var got []anchor.Placement
	tr, origin, target, _ := newFixture(anchor.UpperLeft, WithOnChange(func(p anchor.Placement) {
		got = append(got, p)
	}))
	origin.set(geom.BBox{Top: 100, Left: 100, Width: 50, Height: 20})

	tr.Mount(ctx) // skipped
	target.set(geom.BBox{Width: 200, Height: 300})
	tr.Mount(ctx)
	tr.TargetResized(ctx)

	if len(got) != 2 {
		t.Fatalf("onChange called %d times, want 2", len(got))
	}
	if diff := cmp.Diff(got[0], got[1]); diff != "" {
		t.Errorf("identical inputs should give identical placements:\n%s", diff)
	}
}

func TestConcurrentTriggers(t *testing.T) {
	ctx := context.Background()
	tr, origin, target, _ := newFixture(anchor.UpperLeft)
	origin.set(geom.BBox{Top: 100, Left: 100, Width: 50, Height: 20})
	target.set(geom.BBox{Width: 200, Height: 300})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); tr.Mount(ctx) }()
		go func() { defer wg.Done(); tr.TargetResized(ctx) }()
		go func() { defer wg.Done(); tr.WindowResized(ctx) }()
	}
	wg.Wait()

	if tr.Revision() < 2*n {
		t.Errorf("Revision() = %d, want at least %d", tr.Revision(), 2*n)
	}
	want := anchor.Placement{Coords: anchor.TopLeft{Top: 120, Left: 100}, Corner: anchor.UpperLeft}
	if diff := cmp.Diff(want, tr.Placement()); diff != "" {
		t.Errorf("final placement (-want +got):\n%s", diff)
	}
}

func TestMeasureFunc(t *testing.T) {
	f := MeasureFunc(func() (geom.BBox, bool) { return geom.BBox{Width: 3}, true })
	b, ok := f.Measure()
	if !ok || b.Width != 3 {
		t.Errorf("MeasureFunc.Measure() = %v, %v", b, ok)
	}
}

func TestOriginMoved(t *testing.T) {
	ctx := context.Background()
	tr, origin, target, _ := newFixture(anchor.UpperLeft)
	origin.set(geom.BBox{Top: 100, Left: 40, Width: 50, Height: 20})
	target.set(geom.BBox{Width: 120, Height: 200})
	tr.Mount(ctx)

	origin.set(geom.BBox{Top: 450, Left: 40, Width: 50, Height: 20})
	if !tr.OriginMoved(ctx) {
		t.Fatal("OriginMoved should resolve")
	}
	want := anchor.Placement{Coords: anchor.BottomLeft{Bottom: 150, Left: 40}, Corner: anchor.LowerLeft}
	if diff := cmp.Diff(want, tr.Placement()); diff != "" {
		t.Errorf("placement (-want +got):\n%s", diff)
	}
	if tr.Revision() != 2 {
		t.Errorf("Revision() = %d, want 2", tr.Revision())
	}
}
