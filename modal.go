package folio

import "fmt"

// ModalKey names a content dialog.
type ModalKey string

// Stock modal keys.
const (
	ModalWork    ModalKey = "work"
	ModalAbout   ModalKey = "about"
	ModalContact ModalKey = "contact"
	ModalFolder  ModalKey = "folder"
	ModalImac    ModalKey = "imac"
)

// ModalState is a dialog's visibility.
type ModalState uint8

const (
	ModalHidden ModalState = iota
	ModalFadingIn
	ModalVisible
	ModalFadingOut
)

var modalStateNames = [...]string{
	ModalHidden:    "hidden",
	ModalFadingIn:  "fading-in",
	ModalVisible:   "visible",
	ModalFadingOut: "fading-out",
}

func (s ModalState) String() string {
	if int(s) < len(modalStateNames) {
		return modalStateNames[s]
	}
	return fmt.Sprintf("ModalState(%d)", s)
}

// ModalContent describes what a dialog shows.
type ModalContent struct {
	Title  string   `yaml:"title"`
	Body   []string `yaml:"body"`
	Slides []Slide  `yaml:"slides"`
}

// Modal is one content dialog.
type Modal struct {
	Key     ModalKey
	Content ModalContent
	Slider  *Slider

	// Opacity is the inline opacity while a fade runs.
	Opacity float64

	state           ModalState
	opacityOverride bool

	// Layout in screen pixels, recomputed by ModalController.Layout.
	Panel Rect
	Exit  Rect
	Prev  Rect
	Next  Rect
}

// State returns the dialog's visibility.
func (m *Modal) State() ModalState {
	return m.state
}

// Displayed reports whether the dialog takes part in layout (any state but
// hidden).
func (m *Modal) Displayed() bool {
	return m.state != ModalHidden
}

// EffectiveOpacity returns the opacity to draw with.
func (m *Modal) EffectiveOpacity() float64 {
	if !m.Displayed() {
		return 0
	}
	if m.opacityOverride {
		return m.Opacity
	}
	return 1
}

// ModalController shows and hides dialogs with fades and keeps at most one
// of them open.
type ModalController struct {
	modals  map[ModalKey]*Modal
	order   []ModalKey
	tweener *Tweener
	fade    float32
	emit    func(InteractionEvent)
	log     Logger
}

// NewModalController creates dialogs for every entry in content. fade is
// the opacity transition length in seconds.
func NewModalController(content map[ModalKey]ModalContent, order []ModalKey, tweener *Tweener, fade float32, emit func(InteractionEvent), log Logger) *ModalController {
	if log == nil {
		log = NopLogger{}
	}
	c := &ModalController{
		modals:  make(map[ModalKey]*Modal, len(content)),
		tweener: tweener,
		fade:    fade,
		emit:    emit,
		log:     log,
	}
	for _, key := range order {
		mc, ok := content[key]
		if !ok {
			continue
		}
		m := &Modal{Key: key, Content: mc}
		if len(mc.Slides) > 0 {
			m.Slider = NewSlider(mc.Slides, tweener)
		}
		c.modals[key] = m
		c.order = append(c.order, key)
	}
	return c
}

// Modal returns the dialog for key, or nil.
func (c *ModalController) Modal(key ModalKey) *Modal {
	return c.modals[key]
}

// Keys returns the dialog keys in display order.
func (c *ModalController) Keys() []ModalKey {
	return c.order
}

// State returns the visibility of key; unknown keys are hidden.
func (c *ModalController) State(key ModalKey) ModalState {
	if m := c.modals[key]; m != nil {
		return m.state
	}
	return ModalHidden
}

// AnyOpen reports whether some dialog is fading in or visible. A dialog
// fading out counts as closed.
func (c *ModalController) AnyOpen() bool {
	return c.Open() != nil
}

// Open returns the dialog fading in or visible, or nil.
func (c *ModalController) Open() *Modal {
	for _, key := range c.order {
		m := c.modals[key]
		if m.state == ModalFadingIn || m.state == ModalVisible {
			return m
		}
	}
	return nil
}

// Show fades the dialog in. Any other displayed dialog is hidden first, so
// a dialog still fading in never reaches visible once another is shown.
func (c *ModalController) Show(key ModalKey) error {
	m := c.modals[key]
	if m == nil {
		return fmt.Errorf("show modal %q: unknown modal", key)
	}
	for _, other := range c.order {
		if other != key && c.modals[other].Displayed() {
			c.hide(c.modals[other])
		}
	}

	c.tweener.Cancel(m)
	m.state = ModalFadingIn
	m.opacityOverride = true
	tw := TweenValueFrom(&m.Opacity, 0, 1, c.fade, EaseFade)
	tw.OnComplete = func() {
		m.state = ModalVisible
	}
	c.tweener.Start(m, tw)

	if m.Slider != nil {
		m.Slider.Reset()
	}
	c.fire(EventModalShown, key)
	return nil
}

// Hide fades the dialog out and takes it out of layout when the fade
// completes. Hiding a hidden dialog is a no-op.
func (c *ModalController) Hide(key ModalKey) {
	if m := c.modals[key]; m != nil {
		c.hide(m)
	}
}

func (c *ModalController) hide(m *Modal) {
	if m.state == ModalHidden {
		return
	}
	c.tweener.Cancel(m)
	m.state = ModalFadingOut
	if !m.opacityOverride {
		m.Opacity = 1
		m.opacityOverride = true
	}
	tw := TweenValue(&m.Opacity, 0, c.fade, EaseFade)
	tw.OnComplete = func() {
		m.state = ModalHidden
		m.opacityOverride = false
		m.Opacity = 0
		c.fire(EventModalHidden, m.Key)
	}
	c.tweener.Start(m, tw)
}

// HideAll fades out every displayed dialog.
func (c *ModalController) HideAll() {
	for _, key := range c.order {
		c.hide(c.modals[key])
	}
}

// Layout recomputes panel and control rectangles for a viewport and
// re-measures slider widths.
func (c *ModalController) Layout(width, height float64) {
	pw := min(720, width*0.8)
	ph := min(480, height*0.75)
	panel := Rect{X: (width - pw) / 2, Y: (height - ph) / 2, Width: pw, Height: ph}

	const control = 32.0
	for _, key := range c.order {
		m := c.modals[key]
		m.Panel = panel
		m.Exit = Rect{X: panel.X + panel.Width - control - 8, Y: panel.Y + 8, Width: control, Height: control}
		m.Prev = Rect{X: panel.X + 8, Y: panel.Y + panel.Height/2 - control/2, Width: control, Height: control}
		m.Next = Rect{X: panel.X + panel.Width - control - 8, Y: panel.Y + panel.Height/2 - control/2, Width: control, Height: control}
		if m.Slider != nil {
			m.Slider.Resize(panel.Width - 2*(control+16))
		}
	}
}

// HandleClick routes a click at pixel (x, y) to the open dialog: the exit
// control or the backdrop hides it, slider controls page it. Returns true
// when the click was consumed.
func (c *ModalController) HandleClick(x, y float64) bool {
	m := c.Open()
	if m == nil {
		return false
	}
	if m.Exit.Contains(x, y) {
		c.hide(m)
		return true
	}
	if m.Slider != nil {
		if m.Prev.Contains(x, y) {
			m.Slider.Prev()
			return true
		}
		if m.Next.Contains(x, y) {
			m.Slider.Next()
			return true
		}
	}
	if !m.Panel.Contains(x, y) {
		c.hide(m)
		return true
	}
	return false
}

func (c *ModalController) fire(t EventType, key ModalKey) {
	if c.emit != nil {
		c.emit(InteractionEvent{Type: t, Modal: key})
	}
}
