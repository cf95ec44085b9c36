package folio

// Slide is one page of a modal's image slider.
type Slide struct {
	Title   string `yaml:"title"`
	Caption string `yaml:"caption"`
	// Color tints the slide's placeholder image, as 0xRRGGBB.
	Color uint32 `yaml:"color"`
}

// sliderDuration is the track tween length in seconds.
const sliderDuration = 0.35

// Slider is a horizontal track of slides with wraparound navigation. The
// track offset is -index*100 percent, or -index*SlideWidth pixels once a
// slide width has been measured.
type Slider struct {
	Slides []Slide

	// Offset is the live track translation: percent of one slide when
	// SlideWidth is 0, pixels otherwise.
	Offset float64
	// SlideWidth is the measured width of one slide in pixels.
	SlideWidth float64

	index   int
	tweener *Tweener
}

// NewSlider creates a slider at the first slide. tweener may be nil, in
// which case the offset snaps.
func NewSlider(slides []Slide, tweener *Tweener) *Slider {
	return &Slider{Slides: slides, tweener: tweener}
}

// Index returns the current slide index.
func (s *Slider) Index() int {
	return s.index
}

// Len returns the number of slides.
func (s *Slider) Len() int {
	return len(s.Slides)
}

// Current returns the slide at the current index.
func (s *Slider) Current() (Slide, bool) {
	if len(s.Slides) == 0 {
		return Slide{}, false
	}
	return s.Slides[s.index], true
}

// Next advances one slide, wrapping from the last to the first.
func (s *Slider) Next() {
	s.step(1)
}

// Prev goes back one slide, wrapping from the first to the last.
func (s *Slider) Prev() {
	s.step(-1)
}

func (s *Slider) step(delta int) {
	n := len(s.Slides)
	if n == 0 {
		return
	}
	s.index = (s.index + delta + n) % n
	s.render(true)
}

// Reset moves back to the first slide without animating.
func (s *Slider) Reset() {
	s.index = 0
	s.render(false)
}

// Resize records a new slide width in pixels and recomputes the offset.
func (s *Slider) Resize(slideWidth float64) {
	s.SlideWidth = slideWidth
	s.render(false)
}

// TargetOffset returns the resting offset for the current index.
func (s *Slider) TargetOffset() float64 {
	if s.SlideWidth > 0 {
		return -float64(s.index) * s.SlideWidth
	}
	return -float64(s.index) * 100
}

// PixelOffset converts the live offset to pixels for a slide of width w.
func (s *Slider) PixelOffset(w float64) float64 {
	if s.SlideWidth > 0 {
		return s.Offset
	}
	return s.Offset / 100 * w
}

func (s *Slider) render(animate bool) {
	target := s.TargetOffset()
	if s.tweener == nil || !animate {
		if s.tweener != nil {
			s.tweener.Cancel(s)
		}
		s.Offset = target
		return
	}
	s.tweener.Replace(s, TweenValue(&s.Offset, target, sliderDuration, EaseOut))
}
