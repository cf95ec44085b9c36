package folio

// PointerState is the latest pointer sample in normalized device
// coordinates. A pointer that never moved sits at the center (0, 0).
type PointerState struct {
	X, Y float64
}

// PointerTracker converts pixel coordinates to normalized device
// coordinates. It keeps no history beyond the latest sample.
type PointerTracker struct {
	state          PointerState
	pixelX, pixelY float64
	width, height  float64
}

// NewPointerTracker creates a tracker for a viewport of the given size.
func NewPointerTracker(width, height float64) *PointerTracker {
	return &PointerTracker{width: width, height: height}
}

// SetViewport updates the viewport size used for the conversion.
func (p *PointerTracker) SetViewport(width, height float64) {
	p.width = width
	p.height = height
}

// OnPointerMove records a pointer move at pixel (clientX, clientY).
func (p *PointerTracker) OnPointerMove(clientX, clientY float64) {
	p.pixelX, p.pixelY = clientX, clientY
	p.state = ToNDC(clientX, clientY, p.width, p.height)
}

// OnTouchEnd records the position where a touch was lifted.
func (p *PointerTracker) OnTouchEnd(clientX, clientY float64) {
	p.OnPointerMove(clientX, clientY)
}

// State returns the latest normalized pointer position.
func (p *PointerTracker) State() PointerState {
	return p.state
}

// Pixel returns the latest pointer position in pixels.
func (p *PointerTracker) Pixel() (x, y float64) {
	return p.pixelX, p.pixelY
}

// ToNDC maps a pixel position in a width x height viewport to normalized
// device coordinates. A degenerate viewport maps everything to the center.
func ToNDC(clientX, clientY, width, height float64) PointerState {
	if width <= 0 || height <= 0 {
		return PointerState{}
	}
	return PointerState{
		X: (clientX/width)*2 - 1,
		Y: -(clientY/height)*2 + 1,
	}
}
