package folio

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default base color for substituted materials.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the "no emissive" tint.
var ColorBlack = Color{0, 0, 0, 1}

// ColorFromHex converts a 0xRRGGBB value to an opaque Color.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// Hex returns the 0xRRGGBB form of c, ignoring alpha.
func (c Color) Hex() uint32 {
	return uint32(clamp01(c.R)*255+0.5)<<16 |
		uint32(clamp01(c.G)*255+0.5)<<8 |
		uint32(clamp01(c.B)*255+0.5)
}

// RGBA converts c to a color.RGBA, premultiplying alpha.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned screen rectangle. Origin top-left, Y down.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Vec3 is the vector type used for positions, rotations and scales.
type Vec3 = mgl64.Vec3

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventHoverEnter  EventType = iota // a hover-variant object became hot
	EventHoverLeave                   // a hover-variant object went idle
	EventSelectLink                   // a click opened an external link
	EventSelectModal                  // a click opened a modal
	EventSelectNone                   // a click hit an object with no action
	EventSuppressed                   // a click was ignored because a modal is open
	EventModalShown                   // a modal started fading in
	EventModalHidden                  // a modal finished fading out
)

var eventTypeNames = [...]string{
	EventHoverEnter:  "hover-enter",
	EventHoverLeave:  "hover-leave",
	EventSelectLink:  "select-link",
	EventSelectModal: "select-modal",
	EventSelectNone:  "select-none",
	EventSuppressed:  "suppressed",
	EventModalShown:  "modal-shown",
	EventModalHidden: "modal-hidden",
}

func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "unknown"
}

// CursorStyle is the pointer affordance shown over the canvas.
type CursorStyle uint8

const (
	CursorDefault     CursorStyle = iota // nothing interactive under the pointer
	CursorInteractive                    // pointer is over a registered object
)

// CursorSink receives cursor affordance changes.
type CursorSink interface {
	SetCursor(CursorStyle)
}

// EntityStore is the interface for optional ECS integration.
// When set on an Experience, interaction events are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	Object   string // registry object name, when an object is involved
	Modal    ModalKey
	URL      string
	PointerX float64 // normalized device coordinates at event time
	PointerY float64
}
