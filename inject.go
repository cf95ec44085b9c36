package folio

// syntheticEvent is a single injected input event. Coordinates are screen
// pixels, the same space a screenshot shows.
type syntheticEvent struct {
	kind          syntheticKind
	x, y          float64
	width, height float64
	key           Key
}

type syntheticKind uint8

const (
	injectMove syntheticKind = iota
	injectPress
	injectRelease
	injectTap
	injectResize
	injectKey
)

// InjectMove queues a pointer move to (x, y). The event is consumed by the
// next Update.
func (e *Experience) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: injectMove, x: x, y: y})
}

// InjectPress queues a primary-button press at (x, y).
func (e *Experience) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: injectPress, x: x, y: y})
}

// InjectRelease queues a primary-button release at (x, y).
func (e *Experience) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: injectRelease, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two ticks.
func (e *Experience) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2
// interpolated moves and a release at (toX, toY). Minimum frames is 2.
func (e *Experience) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.injectQueue = append(e.injectQueue, syntheticEvent{
			kind: injectPress,
			x:    fromX + (toX-fromX)*t,
			y:    fromY + (toY-fromY)*t,
		})
	}
	e.InjectRelease(toX, toY)
}

// InjectTap queues a touch lifted at (x, y).
func (e *Experience) InjectTap(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: injectTap, x: x, y: y})
}

// InjectResize queues a viewport resize.
func (e *Experience) InjectResize(width, height float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: injectResize, width: width, height: height})
}

// InjectKey queues a key press.
func (e *Experience) InjectKey(k Key) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: injectKey, key: k})
}

// Pending returns the number of queued injected events.
func (e *Experience) Pending() int {
	return len(e.injectQueue)
}

// processInjected pops one event from the inject queue and feeds it
// through the same paths real input takes. Returns true if an event was
// consumed.
func (e *Experience) processInjected() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case injectMove:
		e.processPointer(sourceMouse, evt.x, evt.y, false)
	case injectPress:
		e.processPointer(sourceMouse, evt.x, evt.y, true)
	case injectRelease:
		e.processPointer(sourceMouse, evt.x, evt.y, false)
	case injectTap:
		e.processPointer(sourceTouch, evt.x, evt.y, true)
		e.processPointer(sourceTouch, evt.x, evt.y, false)
	case injectResize:
		e.HandleResize(evt.width, evt.height)
	case injectKey:
		e.HandleKey(evt.key)
	}
	return true
}
