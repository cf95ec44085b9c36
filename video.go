package folio

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Video is the ambient screen playback the dispatcher resumes on clicks.
type Video interface {
	Paused() bool
	Play() error
}

// AutoplayPolicy decides whether playback may start without a user gesture.
type AutoplayPolicy uint8

const (
	// AutoplayAllowed lets playback start at any time (muted autoplay).
	AutoplayAllowed AutoplayPolicy = iota
	// AutoplayRequiresGesture rejects Play until Gesture has been called.
	AutoplayRequiresGesture
)

// FrameLoop plays a looping sequence of frames onto a screen material.
type FrameLoop struct {
	Policy AutoplayPolicy
	FPS    float64

	frames   []image.Image
	images   []*ebiten.Image
	screen   *Material
	paused   bool
	gestured bool
	clock    float64
	current  int
}

// NewFrameLoop creates a paused loop over decoded frames.
func NewFrameLoop(frames []image.Image, fps float64, policy AutoplayPolicy) *FrameLoop {
	if fps <= 0 {
		fps = 24
	}
	return &FrameLoop{Policy: policy, FPS: fps, frames: frames, paused: true}
}

// Bind attaches the screen material the current frame is written to.
func (v *FrameLoop) Bind(screen *Material) {
	v.screen = screen
}

// Gesture records a user gesture, lifting a gesture-gated autoplay policy.
func (v *FrameLoop) Gesture() {
	v.gestured = true
}

// Paused reports whether playback is stopped.
func (v *FrameLoop) Paused() bool {
	return v.paused
}

// Play starts or resumes playback.
func (v *FrameLoop) Play() error {
	if v.Policy == AutoplayRequiresGesture && !v.gestured {
		return ErrPlaybackBlocked
	}
	v.paused = false
	return nil
}

// Pause stops playback on the current frame.
func (v *FrameLoop) Pause() {
	v.paused = true
}

// Len returns the number of frames.
func (v *FrameLoop) Len() int {
	return len(v.frames)
}

// Frame returns the index of the frame on screen.
func (v *FrameLoop) Frame() int {
	return v.current
}

// Aspect returns the frame width over height, 0 without frames.
func (v *FrameLoop) Aspect() float64 {
	if len(v.frames) == 0 {
		return 0
	}
	b := v.frames[0].Bounds()
	if b.Dy() == 0 {
		return 0
	}
	return float64(b.Dx()) / float64(b.Dy())
}

// Update advances playback by dt seconds, looping at the end, and writes
// the current frame to the bound material.
func (v *FrameLoop) Update(dt float64) {
	if len(v.frames) == 0 {
		return
	}
	if !v.paused {
		v.clock += dt
		frameTime := 1 / v.FPS
		for v.clock >= frameTime {
			v.clock -= frameTime
			v.current = (v.current + 1) % len(v.frames)
		}
	}
	if v.screen != nil {
		v.screen.Texture = v.image(v.current)
	}
}

// image converts frames to ebiten images lazily, on the update goroutine.
func (v *FrameLoop) image(i int) *ebiten.Image {
	if v.images == nil {
		v.images = make([]*ebiten.Image, len(v.frames))
	}
	if v.images[i] == nil {
		v.images[i] = ebiten.NewImageFromImage(v.frames[i])
	}
	return v.images[i]
}

// TestPattern generates a looping sequence of scrolling color bars, used
// when no frame directory is configured.
func TestPattern(width, height, count int) []image.Image {
	bars := []color.RGBA{
		{0xc0, 0xc0, 0xc0, 0xff}, {0xc0, 0xc0, 0x00, 0xff}, {0x00, 0xc0, 0xc0, 0xff},
		{0x00, 0xc0, 0x00, 0xff}, {0xc0, 0x00, 0xc0, 0xff}, {0xc0, 0x00, 0x00, 0xff},
		{0x00, 0x00, 0xc0, 0xff},
	}
	frames := make([]image.Image, count)
	for f := 0; f < count; f++ {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		shift := f * width / max(count, 1)
		for x := 0; x < width; x++ {
			c := bars[((x+shift)%width)*len(bars)/width]
			for y := 0; y < height; y++ {
				img.SetRGBA(x, y, c)
			}
		}
		frames[f] = img
	}
	return frames
}

// FitToAspect shrinks the screen node's scale on one axis so its X/Y ratio
// matches aspect (frame width over height).
func FitToAspect(screen *Node, aspect float64) {
	if screen == nil || aspect <= 0 || screen.Scale.Y() == 0 {
		return
	}
	s := screen.Scale
	meshAspect := s.X() / s.Y()
	if aspect > meshAspect {
		s[1] = s.X() / aspect
	} else {
		s[0] = s.Y() * aspect
	}
	screen.SetScale(s)
}
