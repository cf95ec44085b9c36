package folio

import (
	"fmt"
	"math"
	"testing"
)

// recordingLogger keeps every message by level.
type recordingLogger struct {
	infos, warnings, errors []string
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warningf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

// recordingStore keeps every emitted event.
type recordingStore struct {
	events []InteractionEvent
}

func (s *recordingStore) EmitEvent(ev InteractionEvent) {
	s.events = append(s.events, ev)
}

func (s *recordingStore) types() []EventType {
	out := make([]EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

func (s *recordingStore) count(t EventType) int {
	n := 0
	for _, ev := range s.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// recordingCursor keeps every cursor change.
type recordingCursor struct {
	styles []CursorStyle
}

func (c *recordingCursor) SetCursor(s CursorStyle) {
	c.styles = append(c.styles, s)
}

// recordingOpener keeps every opened URL.
type recordingOpener struct {
	urls []string
	err  error
}

func (o *recordingOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return o.err
}

// fakeVideo counts play attempts.
type fakeVideo struct {
	paused  bool
	blocked bool
	plays   int
}

func (v *fakeVideo) Paused() bool { return v.paused }

func (v *fakeVideo) Play() error {
	v.plays++
	if v.blocked {
		return ErrPlaybackBlocked
	}
	v.paused = false
	return nil
}

// frontCamera looks down -Z at the origin from z=10 with an 800x600
// viewport and no damping.
func frontCamera() *Camera {
	c := NewCamera(800, 600)
	c.Position = Vec3{0, 0, 10}
	c.Target = Vec3{}
	c.EnableDamping = false
	return c
}

// testRoom builds a room where every group sits on the Z axis in front of
// frontCamera:
//
//	Work_Raycaster (z=0)     sign + Work_Raycaster_Hover in front of it
//	Insta_Raycaster (x=3)    Insta_Raycaster_Hover only
//	Mouse_Raycaster (x=-3)   plain mesh
func testRoom() *Node {
	root := NewGroup("Scene")

	work := NewGroup("Work_Raycaster")
	sign := NewMesh("Work_Sign", Vec3{2, 2, 0.2}, NewStandardMaterial(nil))
	hover := NewMesh("Work_Raycaster_Hover", Vec3{1, 0.5, 0.1}, NewStandardMaterial(nil))
	hover.Position = Vec3{0, 0, 0.3}
	work.AddChild(sign)
	work.AddChild(hover)
	root.AddChild(work)

	insta := NewGroup("Insta_Raycaster")
	insta.Position = Vec3{3, 0, 0}
	icon := NewMesh("Insta_Raycaster_Hover", Vec3{1, 1, 0.1}, NewStandardMaterial(nil))
	insta.AddChild(icon)
	root.AddChild(insta)

	mouse := NewMesh("Mouse_Raycaster", Vec3{1, 1, 1}, NewBasicMaterial(ColorWhite))
	mouse.Position = Vec3{-3, 0, 0}
	root.AddChild(mouse)

	UpdateWorld(root)
	return root
}

var testTargets = []string{
	"Insta_Raycaster", "Mouse_Raycaster", "Work_Raycaster",
	"Work_Raycaster_Hover", "Insta_Raycaster_Hover",
}

func testRegistry(t *testing.T, root *Node) *Registry {
	t.Helper()
	r := NewRegistry(nil)
	if missing := r.RegisterTargets(root.FindByName, testTargets); len(missing) != 0 {
		t.Fatalf("missing targets: %v", missing)
	}
	return r
}

// pixelOf projects a world point through cam to pixel coordinates.
func pixelOf(t *testing.T, cam *Camera, p Vec3) (float64, float64) {
	t.Helper()
	x, y, _, ok := cam.WorldToScreen(p)
	if !ok {
		t.Fatalf("%v is behind the camera", p)
	}
	return x, y
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vecApprox(a, b Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// tick advances the tweener n times by dt.
func tick(tw *Tweener, n int, dt float32) {
	for i := 0; i < n; i++ {
		tw.Update(dt)
	}
}
