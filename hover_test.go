package folio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type hoverFixture struct {
	root    *Node
	reg     *Registry
	tweener *Tweener
	cursor  *recordingCursor
	store   *recordingStore
	m       *HoverMachine
}

func newHoverFixture(t *testing.T) *hoverFixture {
	t.Helper()
	f := &hoverFixture{
		root:    testRoom(),
		tweener: NewTweener(),
		cursor:  &recordingCursor{},
		store:   &recordingStore{},
	}
	f.reg = testRegistry(t, f.root)
	f.m = NewHoverMachine(DefaultHoverConfig(), f.reg, f.tweener, f.cursor, f.store.EmitEvent)
	return f
}

// hit builds a single-entry hit list on the named object.
func (f *hoverFixture) hit(name string) []Hit {
	return []Hit{{Object: f.reg.ByName(name)}}
}

// settle runs the tweener well past the hover duration.
func (f *hoverFixture) settle() {
	tick(f.tweener, 30, 1.0/60)
}

func TestHoverTarget(t *testing.T) {
	tests := []struct {
		base Vec3
		want Vec3
	}{
		{Vec3{1, 1, 1}, Vec3{1.4, 1.4, 1.4}},
		{Vec3{2.5, 1, 0.5}, Vec3{3, 1.4, 0.7}},
		{Vec3{10, 10, 10}, Vec3{3, 3, 3}},
	}
	for _, tt := range tests {
		got := HoverTarget(tt.base, 1.4, 3)
		if !vecApprox(got, tt.want, 1e-9) {
			t.Errorf("HoverTarget(%v) = %v, want %v", tt.base, got, tt.want)
		}
	}
}

func TestHoverEnter(t *testing.T) {
	f := newHoverFixture(t)
	hover := f.reg.ByName("Work_Raycaster_Hover")

	f.m.Update(f.hit("Work_Sign"), PointerState{X: 0.1, Y: 0.2})

	if !f.m.HoverSet().Contains(hover) || !hover.Hovered {
		t.Fatal("Work_Raycaster_Hover should be hovered")
	}
	if f.m.HoverSet().Len() != 1 {
		t.Errorf("hover set size = %d, want 1", f.m.HoverSet().Len())
	}
	if got := hover.Node.Material.Emissive.Hex(); got != 0xff0000 {
		t.Errorf("emissive = %06x, want ff0000", got)
	}
	if sign := f.reg.ByName("Work_Sign"); sign.Hovered || sign.Node.Material.Emissive != ColorBlack {
		t.Error("non-variant mesh was highlighted")
	}
	if !f.tweener.Active(hover.Node) {
		t.Error("scale tween not started")
	}
	want := []InteractionEvent{{Type: EventHoverEnter, Object: "Work_Raycaster_Hover", PointerX: 0.1, PointerY: 0.2}}
	if diff := cmp.Diff(want, f.store.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]CursorStyle{CursorInteractive}, f.cursor.styles); diff != "" {
		t.Errorf("cursor (-want +got):\n%s", diff)
	}

	f.settle()
	if !vecApprox(hover.Node.Scale, Vec3{1.4, 1.4, 1.4}, 1e-4) {
		t.Errorf("scale = %v, want 1.4", hover.Node.Scale)
	}
}

func TestHoverLeave(t *testing.T) {
	f := newHoverFixture(t)
	hover := f.reg.ByName("Work_Raycaster_Hover")

	f.m.Update(f.hit("Work_Sign"), PointerState{})
	f.settle()
	f.m.Update(nil, PointerState{})

	if f.m.HoverSet().Len() != 0 || hover.Hovered {
		t.Fatal("hover set should be empty after leaving")
	}
	if hover.Node.Material.Emissive != ColorBlack {
		t.Errorf("emissive = %+v, want black", hover.Node.Material.Emissive)
	}
	if diff := cmp.Diff([]EventType{EventHoverEnter, EventHoverLeave}, f.store.types()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]CursorStyle{CursorInteractive, CursorDefault}, f.cursor.styles); diff != "" {
		t.Errorf("cursor (-want +got):\n%s", diff)
	}

	f.settle()
	if !vecApprox(hover.Node.Scale, hover.BaseScale(), 1e-4) {
		t.Errorf("scale = %v, want base %v", hover.Node.Scale, hover.BaseScale())
	}
}

func TestHoverSteadyStateIsQuiet(t *testing.T) {
	f := newHoverFixture(t)

	for i := 0; i < 5; i++ {
		f.m.Update(f.hit("Work_Raycaster_Hover"), PointerState{})
		f.tweener.Update(1.0 / 60)
	}
	if n := len(f.store.events); n != 1 {
		t.Errorf("got %d events over a steady hover, want 1", n)
	}
	if n := len(f.cursor.styles); n != 1 {
		t.Errorf("cursor set %d times, want 1", n)
	}
	for i := 0; i < 5; i++ {
		f.m.Update(nil, PointerState{})
	}
	if n := f.store.count(EventHoverLeave); n != 1 {
		t.Errorf("got %d leave events, want 1", n)
	}
	if n := len(f.cursor.styles); n != 2 {
		t.Errorf("cursor set %d times, want 2", n)
	}
}

func TestHoverCapsScale(t *testing.T) {
	root := testRoom()
	// Captured at registration, so set before registering.
	root.FindByName("Insta_Raycaster_Hover").SetScale(Vec3{2.5, 1, 1})
	reg := testRegistry(t, root)
	tw := NewTweener()
	cfg := DefaultHoverConfig()
	m := NewHoverMachine(cfg, reg, tw, nil, nil)
	hover := reg.ByName("Insta_Raycaster_Hover")

	m.Update([]Hit{{Object: hover}}, PointerState{})
	tick(tw, 30, 1.0/60)
	if !vecApprox(hover.Node.Scale, Vec3{3, 1.4, 1.4}, 1e-4) {
		t.Errorf("scale = %v, want [3 1.4 1.4]", hover.Node.Scale)
	}
}

func TestHoverNonVariantGroupSetsCursorOnly(t *testing.T) {
	f := newHoverFixture(t)

	f.m.Update(f.hit("Mouse_Raycaster"), PointerState{})
	if f.m.HoverSet().Len() != 0 {
		t.Errorf("hover set = %v, want empty", objectNames(f.m.HoverSet().Members()))
	}
	if len(f.store.events) != 0 {
		t.Errorf("events = %v, want none", f.store.types())
	}
	if diff := cmp.Diff([]CursorStyle{CursorInteractive}, f.cursor.styles); diff != "" {
		t.Errorf("cursor (-want +got):\n%s", diff)
	}
}

func TestHoverSwitchGroups(t *testing.T) {
	f := newHoverFixture(t)
	work := f.reg.ByName("Work_Raycaster_Hover")
	insta := f.reg.ByName("Insta_Raycaster_Hover")

	f.m.Update(f.hit("Work_Sign"), PointerState{})
	f.m.Update(f.hit("Insta_Raycaster_Hover"), PointerState{})

	if f.m.HoverSet().Contains(work) || work.Hovered {
		t.Error("Work variant still hovered")
	}
	if !f.m.HoverSet().Contains(insta) || !insta.Hovered {
		t.Error("Insta variant not hovered")
	}
	if n := f.store.count(EventHoverEnter); n != 2 {
		t.Errorf("enter events = %d, want 2", n)
	}
	if n := f.store.count(EventHoverLeave); n != 1 {
		t.Errorf("leave events = %d, want 1", n)
	}
	// Both frames had a hit, so the cursor only changed once.
	if n := len(f.cursor.styles); n != 1 {
		t.Errorf("cursor set %d times, want 1", n)
	}
}

func TestHoverFlagMatchesSet(t *testing.T) {
	f := newHoverFixture(t)
	frames := [][]Hit{
		f.hit("Work_Sign"), nil, f.hit("Insta_Raycaster_Hover"),
		f.hit("Mouse_Raycaster"), f.hit("Work_Raycaster_Hover"), nil,
	}
	for i, hits := range frames {
		f.m.Update(hits, PointerState{})
		f.tweener.Update(0.05)
		for _, o := range f.reg.Objects() {
			if o.Hovered != f.m.HoverSet().Contains(o) {
				t.Fatalf("frame %d: %s Hovered=%v but set membership=%v", i, o.Name(), o.Hovered, !o.Hovered)
			}
			if o.Hovered && !o.IsHoverVariant {
				t.Fatalf("frame %d: non-variant %s hovered", i, o.Name())
			}
		}
	}
}

func TestHoverLeaveCancelsStaleTween(t *testing.T) {
	f := newHoverFixture(t)
	hover := f.reg.ByName("Work_Raycaster_Hover")

	// Enter and leave before the scale tween ever ticks: the live scale is
	// still the base, so the growing tween must not keep writing.
	f.m.Update(f.hit("Work_Sign"), PointerState{})
	f.m.Update(nil, PointerState{})
	if f.tweener.Active(hover.Node) {
		t.Error("stale hover tween still active")
	}
	f.settle()
	if hover.Node.Scale != hover.BaseScale() {
		t.Errorf("scale = %v, want base %v", hover.Node.Scale, hover.BaseScale())
	}
}

func TestHoverNearTargetKeepsTweening(t *testing.T) {
	f := newHoverFixture(t)
	hover := f.reg.ByName("Work_Raycaster_Hover")

	f.m.Update(f.hit("Work_Sign"), PointerState{})
	settleAt := Vec3{1.4, 1.4, 1.4}.Sub(Vec3{1e-6, 1e-6, 1e-6})
	hover.Node.Scale = settleAt

	cfg := DefaultHoverConfig()
	target := HoverTarget(hover.BaseScale(), cfg.ScaleMultiplier, cfg.MaxScale)
	f.m.tweenScale(hover, target)
	if hover.Node.Scale != settleAt {
		t.Errorf("scale snapped to %v", hover.Node.Scale)
	}
	if !f.tweener.Active(hover.Node) {
		t.Fatal("a near miss should still tween to the target")
	}
	f.settle()
	if hover.Node.Scale != target {
		t.Errorf("scale = %v, want %v", hover.Node.Scale, target)
	}
}

func TestHoverCycleRestoresBaseExactly(t *testing.T) {
	root := testRoom()
	root.FindByName("Work_Raycaster_Hover").SetScale(Vec3{0.1, 0.3, 0.7})
	UpdateWorld(root)
	reg := testRegistry(t, root)
	tw := NewTweener()
	cfg := DefaultHoverConfig()
	m := NewHoverMachine(cfg, reg, tw, nil, nil)
	hover := reg.ByName("Work_Raycaster_Hover")
	hit := []Hit{{Object: reg.ByName("Work_Sign")}}

	grown := HoverTarget(hover.BaseScale(), cfg.ScaleMultiplier, cfg.MaxScale)
	for i := 0; i < 5; i++ {
		m.Update(hit, PointerState{})
		tick(tw, 40, 1.0/60)
		if hover.Node.Scale != grown {
			t.Fatalf("cycle %d: hovered scale = %v, want %v", i, hover.Node.Scale, grown)
		}
		m.Update(nil, PointerState{})
		tick(tw, 40, 1.0/60)
		if hover.Node.Scale != hover.BaseScale() {
			t.Fatalf("cycle %d: scale = %v, want base %v", i, hover.Node.Scale, hover.BaseScale())
		}
	}
}

func TestHoverReenterMidTween(t *testing.T) {
	f := newHoverFixture(t)
	hover := f.reg.ByName("Work_Raycaster_Hover")

	f.m.Update(f.hit("Work_Sign"), PointerState{})
	tick(f.tweener, 6, 1.0/60)
	f.m.Update(nil, PointerState{})
	tick(f.tweener, 3, 1.0/60)
	f.m.Update(f.hit("Work_Sign"), PointerState{})
	f.settle()

	if !vecApprox(hover.Node.Scale, Vec3{1.4, 1.4, 1.4}, 1e-4) {
		t.Errorf("scale = %v, want 1.4 after re-entering", hover.Node.Scale)
	}
	if f.tweener.Len() != 0 {
		t.Errorf("%d tweens still running", f.tweener.Len())
	}
}
