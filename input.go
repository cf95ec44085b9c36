package folio

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const defaultDragDeadZone = 4.0 // pixels

// pointerPress tracks one pointer between press and release.
type pointerPress struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
}

// pressState holds the mouse and the first active touch.
type pressState struct {
	mouse pointerPress
	touch pointerPress

	touchID     ebiten.TouchID
	touchActive bool
	touchIDs    []ebiten.TouchID
}

// pointerSource tells processPointer which entry point a release feeds.
type pointerSource uint8

const (
	sourceMouse pointerSource = iota
	sourceTouch
)

func (e *Experience) dragDeadZone() float64 {
	if e.Config.DragDeadZone > 0 {
		return e.Config.DragDeadZone
	}
	return defaultDragDeadZone
}

// processPointer runs the press state machine for one pointer sample. A
// release that never left the dead zone is a click (or a tap); anything
// further orbits the camera instead.
func (e *Experience) processPointer(src pointerSource, x, y float64, pressed bool) {
	ps := &e.press.mouse
	if src == sourceTouch {
		ps = &e.press.touch
	}
	moved := x != ps.lastX || y != ps.lastY

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.dragging = false
		e.HandlePointerMove(x, y)

	case pressed && ps.down:
		if moved {
			if src == sourceMouse {
				e.HandlePointerMove(x, y)
			}
			if !ps.dragging && math.Hypot(x-ps.startX, y-ps.startY) > e.dragDeadZone() {
				ps.dragging = true
			}
			if ps.dragging {
				e.HandleDrag(x-ps.lastX, y-ps.lastY)
			}
		}
		ps.lastX, ps.lastY = x, y

	case !pressed && ps.down:
		if !ps.dragging {
			if src == sourceTouch {
				e.HandleTap(x, y)
			} else {
				e.HandleClick(x, y)
			}
		}
		ps.down = false
		ps.dragging = false
		ps.lastX, ps.lastY = x, y

	default:
		if moved && src == sourceMouse {
			e.HandlePointerMove(x, y)
			ps.lastX, ps.lastY = x, y
		}
	}
}

// pollInput reads ebiten's input state and feeds the experience. Called
// from the game adapter before Update.
func (e *Experience) pollInput() {
	mx, my := ebiten.CursorPosition()
	e.processPointer(sourceMouse, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	e.pollTouch()

	if _, wy := ebiten.Wheel(); wy != 0 {
		e.HandleWheel(wy)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		e.HandleKey(KeyEscape)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		e.HandleKey(KeyLeft)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		e.HandleKey(KeyRight)
	}
}

// pollTouch follows the first active touch until it is lifted.
func (e *Experience) pollTouch() {
	p := &e.press
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	if !p.touchActive {
		if len(p.touchIDs) == 0 {
			return
		}
		p.touchID = p.touchIDs[0]
		p.touchActive = true
	}

	if inpututil.IsTouchJustReleased(p.touchID) || !containsTouch(p.touchIDs, p.touchID) {
		x, y := inpututil.TouchPositionInPreviousTick(p.touchID)
		if x == 0 && y == 0 {
			x, y = int(p.touch.lastX), int(p.touch.lastY)
		}
		e.processPointer(sourceTouch, float64(x), float64(y), false)
		p.touchActive = false
		return
	}
	x, y := ebiten.TouchPosition(p.touchID)
	e.processPointer(sourceTouch, float64(x), float64(y), true)
}

func containsTouch(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, t := range ids {
		if t == id {
			return true
		}
	}
	return false
}

// EbitenCursor shows the hover cursor through ebiten's cursor shapes.
type EbitenCursor struct{}

// SetCursor switches between the default arrow and the pointing hand.
func (EbitenCursor) SetCursor(style CursorStyle) {
	if style == CursorInteractive {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}
