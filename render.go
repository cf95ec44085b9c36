package folio

import (
	"fmt"
	"image"
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// maxBatchVerts keeps a batch inside uint16 index range.
const maxBatchVerts = 65532

// boxFaces lists each box face as four corner indices (see boxCorners)
// in cyclic order, with its local outward normal.
var boxFaces = [6]struct {
	corners [4]int
	normal  Vec3
}{
	{[4]int{0, 2, 6, 4}, Vec3{-1, 0, 0}},
	{[4]int{1, 3, 7, 5}, Vec3{1, 0, 0}},
	{[4]int{0, 1, 5, 4}, Vec3{0, -1, 0}},
	{[4]int{2, 3, 7, 6}, Vec3{0, 1, 0}},
	{[4]int{0, 1, 3, 2}, Vec3{0, 0, -1}},
	{[4]int{4, 5, 7, 6}, Vec3{0, 0, 1}},
}

// face is one projected quad waiting to be painted.
type face struct {
	pts   [4][2]float32
	depth float64
	color Color
	tex   *ebiten.Image
}

type light struct {
	dir   Vec3 // unit vector toward the light
	color Color
}

// Renderer paints an Experience: flat-shaded boxes sorted back to front,
// then the modal and loading overlays.
type Renderer struct {
	lights     []light
	ambient    Color
	background Color

	faces []face
	verts []ebiten.Vertex
	inds  []uint16

	white    *ebiten.Image
	panel    *ebiten.Image
	overlay  *ebiten.Image
	imageOpt ebiten.DrawImageOptions
}

// lightFloor keeps unlit faces readable under the dim room lights.
const lightFloor = 0.35

// NewRenderer creates a renderer with the lights and background of cfg.
func NewRenderer(cfg Config) *Renderer {
	r := &Renderer{background: ColorFromHex(cfg.Background)}
	var total float64
	for _, l := range cfg.Lights {
		c := ColorFromHex(l.Color)
		c.R, c.G, c.B = c.R*l.Intensity, c.G*l.Intensity, c.B*l.Intensity
		total += l.Intensity
		switch l.Kind {
		case LightAmbient:
			r.ambient.R += c.R
			r.ambient.G += c.G
			r.ambient.B += c.B
		case LightDirectional:
			dir := l.Position
			if dir.Len() > 0 {
				dir = dir.Normalize()
			}
			r.lights = append(r.lights, light{dir: dir, color: c})
		}
	}
	// Normalize so a face lit by every light at full strength is at 1.
	if total > 0 {
		scale := 1 / total
		r.ambient.R, r.ambient.G, r.ambient.B = r.ambient.R*scale, r.ambient.G*scale, r.ambient.B*scale
		for i := range r.lights {
			c := &r.lights[i].color
			c.R, c.G, c.B = c.R*scale, c.G*scale, c.B*scale
		}
	}

	img := ebiten.NewImage(3, 3)
	img.Fill(ColorWhite.RGBA())
	r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	return r
}

// Draw paints the experience onto screen.
func (r *Renderer) Draw(screen *ebiten.Image, e *Experience) {
	start := time.Now()
	screen.Fill(r.background.RGBA())

	r.collectFaces(e.Root, e.Camera)
	r.paintFaces(screen)

	w, h := e.Size()
	for _, key := range e.Modals.Keys() {
		m := e.Modals.Modal(key)
		if m.Displayed() {
			r.drawModal(screen, m)
		}
	}
	if e.LoadingOpacity > 0 {
		r.drawLoading(screen, e, w, h)
	}
	e.stats.recordDraw(len(r.faces), time.Since(start))
}

// collectFaces projects every visible mesh face and sorts them far to near.
func (r *Renderer) collectFaces(root *Node, cam *Camera) {
	r.faces = r.faces[:0]
	var walk func(n *Node)
	walk = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.IsMesh() {
			r.addMesh(n, cam)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
	sort.SliceStable(r.faces, func(i, j int) bool {
		return r.faces[i].depth > r.faces[j].depth
	})
}

func (r *Renderer) addMesh(n *Node, cam *Camera) {
	m := n.WorldMatrix()
	corners := boxCorners(m, *n.Geometry)
	for _, bf := range boxFaces {
		var center Vec3
		for _, ci := range bf.corners {
			center = center.Add(corners[ci])
		}
		center = center.Mul(0.25)

		normal := mgl64.TransformNormal(bf.normal, m)
		if normal.Len() == 0 {
			continue
		}
		normal = normal.Normalize()
		if normal.Dot(center.Sub(cam.Position)) >= 0 {
			continue // back face
		}

		f := face{depth: center.Sub(cam.Position).Len()}
		visible := true
		for i, ci := range bf.corners {
			sx, sy, _, ok := cam.WorldToScreen(corners[ci])
			if !ok {
				visible = false
				break
			}
			f.pts[i] = [2]float32{float32(sx), float32(sy)}
		}
		if !visible {
			continue
		}
		f.color, f.tex = r.shade(n.Material, normal)
		r.faces = append(r.faces, f)
	}
}

// shade returns the flat color of a face with the given world normal.
func (r *Renderer) shade(mat *Material, normal Vec3) (Color, *ebiten.Image) {
	if mat == nil {
		mat = NewStandardMaterial(nil)
	}
	if mat.Texture != nil && !mat.ToneMapped {
		return ColorWhite, mat.Texture
	}
	base := mat.Color
	if mat.Kind == MaterialBasic {
		return base, mat.Texture
	}
	lr, lg, lb := r.ambient.R, r.ambient.G, r.ambient.B
	for _, l := range r.lights {
		k := math.Max(0, normal.Dot(l.dir))
		lr += l.color.R * k
		lg += l.color.G * k
		lb += l.color.B * k
	}
	lift := func(v float64) float64 { return lightFloor + (1-lightFloor)*clamp01(v) }
	return Color{
		R: clamp01(base.R*lift(lr) + mat.Emissive.R),
		G: clamp01(base.G*lift(lg) + mat.Emissive.G),
		B: clamp01(base.B*lift(lb) + mat.Emissive.B),
		A: base.A,
	}, mat.Texture
}

// paintFaces submits the sorted faces, batching runs that share a source
// image into one DrawTriangles call.
func (r *Renderer) paintFaces(screen *ebiten.Image) {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	var src *ebiten.Image
	for i := range r.faces {
		f := &r.faces[i]
		img := f.tex
		if img == nil {
			img = r.white
		}
		if img != src || len(r.verts)+4 > maxBatchVerts {
			r.flush(screen, src)
			src = img
		}
		r.appendFace(f, img)
	}
	r.flush(screen, src)
}

func (r *Renderer) appendFace(f *face, img *ebiten.Image) {
	b := img.Bounds()
	x0, y0 := float32(b.Min.X), float32(b.Min.Y)
	x1, y1 := float32(b.Max.X), float32(b.Max.Y)
	uv := [4][2]float32{{x0, y1}, {x1, y1}, {x1, y0}, {x0, y0}}

	base := uint16(len(r.verts))
	for i, p := range f.pts {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   p[0],
			DstY:   p[1],
			SrcX:   uv[i][0],
			SrcY:   uv[i][1],
			ColorR: float32(f.color.R),
			ColorG: float32(f.color.G),
			ColorB: float32(f.color.B),
			ColorA: float32(f.color.A),
		})
	}
	r.inds = append(r.inds, base, base+1, base+2, base, base+2, base+3)
}

func (r *Renderer) flush(screen, src *ebiten.Image) {
	if src == nil || len(r.inds) == 0 {
		r.verts = r.verts[:0]
		r.inds = r.inds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	screen.DrawTriangles(r.verts, r.inds, src, &op)
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// fillRect draws a solid rectangle.
func (r *Renderer) fillRect(dst *ebiten.Image, rect Rect, c Color) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	op := &r.imageOpt
	op.GeoM.Reset()
	op.GeoM.Scale(rect.Width, rect.Height)
	op.GeoM.Translate(rect.X, rect.Y)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	dst.DrawImage(r.white, op)
}

// scratch returns img sized w x h, reallocating when the size changed.
func scratch(img *ebiten.Image, w, h int) *ebiten.Image {
	w, h = max(w, 1), max(h, 1)
	if img != nil {
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			img.Clear()
			return img
		}
		img.Deallocate()
	}
	return ebiten.NewImage(w, h)
}

var (
	colorBackdrop = Color{0, 0, 0, 0.55}
	colorPanel    = Color{0.12, 0.12, 0.15, 0.96}
	colorControl  = Color{0.3, 0.3, 0.36, 1}
)

// drawModal paints a dialog into an offscreen panel and composites it at
// the dialog's opacity.
func (r *Renderer) drawModal(screen *ebiten.Image, m *Modal) {
	alpha := m.EffectiveOpacity()
	if alpha <= 0 {
		return
	}
	sb := screen.Bounds()
	backdrop := colorBackdrop
	backdrop.A *= alpha
	r.fillRect(screen, Rect{Width: float64(sb.Dx()), Height: float64(sb.Dy())}, backdrop)

	p := m.Panel
	r.panel = scratch(r.panel, int(p.Width), int(p.Height))
	local := func(rc Rect) Rect { return Rect{X: rc.X - p.X, Y: rc.Y - p.Y, Width: rc.Width, Height: rc.Height} }

	r.fillRect(r.panel, Rect{Width: p.Width, Height: p.Height}, colorPanel)
	ebitenutil.DebugPrintAt(r.panel, m.Content.Title, 16, 12)

	exit := local(m.Exit)
	r.fillRect(r.panel, exit, colorControl)
	ebitenutil.DebugPrintAt(r.panel, "x", int(exit.X+exit.Width/2-3), int(exit.Y+exit.Height/2-8))

	if m.Slider != nil {
		r.drawSlider(m, local)
	} else {
		for i, line := range m.Content.Body {
			ebitenutil.DebugPrintAt(r.panel, line, 16, 48+i*16)
		}
	}

	op := &r.imageOpt
	op.GeoM.Reset()
	op.GeoM.Translate(p.X, p.Y)
	op.ColorScale.Reset()
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(r.panel, op)
}

func (r *Renderer) drawSlider(m *Modal, local func(Rect) Rect) {
	prev, next := local(m.Prev), local(m.Next)
	track := Rect{
		X:      prev.X + prev.Width + 8,
		Y:      40,
		Width:  next.X - 8 - (prev.X + prev.Width + 8),
		Height: m.Panel.Height - 56,
	}
	s := m.Slider
	offset := s.PixelOffset(track.Width)
	for i, slide := range s.Slides {
		rect := Rect{X: track.X + float64(i)*track.Width + offset, Y: track.Y, Width: track.Width, Height: track.Height}
		clipped := intersect(rect, track)
		r.fillRect(r.panel, clipped, ColorFromHex(slide.Color))
		if clipped.Width >= rect.Width*0.5 {
			ebitenutil.DebugPrintAt(r.panel, slide.Title, int(rect.X)+12, int(rect.Y)+12)
			ebitenutil.DebugPrintAt(r.panel, slide.Caption, int(rect.X)+12, int(rect.Y+rect.Height)-28)
		}
	}
	r.fillRect(r.panel, prev, colorControl)
	ebitenutil.DebugPrintAt(r.panel, "<", int(prev.X+prev.Width/2-3), int(prev.Y+prev.Height/2-8))
	r.fillRect(r.panel, next, colorControl)
	ebitenutil.DebugPrintAt(r.panel, ">", int(next.X+next.Width/2-3), int(next.Y+next.Height/2-8))
	ebitenutil.DebugPrintAt(r.panel, fmt.Sprintf("%d/%d", s.Index()+1, s.Len()), int(track.X+track.Width/2)-12, int(track.Y+track.Height)+2)
}

// drawLoading paints the loading screen and progress bar at the overlay's
// current opacity.
func (r *Renderer) drawLoading(screen *ebiten.Image, e *Experience, w, h float64) {
	r.overlay = scratch(r.overlay, int(w), int(h))
	r.fillRect(r.overlay, Rect{Width: w, Height: h}, r.background)

	progress := e.LoadProgress()
	if !e.Loading() {
		progress = 1
	}
	bar := Rect{X: w/2 - 120, Y: h/2 - 4, Width: 240, Height: 8}
	r.fillRect(r.overlay, bar, colorControl)
	r.fillRect(r.overlay, Rect{X: bar.X, Y: bar.Y, Width: bar.Width * clamp01(progress), Height: bar.Height}, ColorWhite)
	label := fmt.Sprintf("Loading %d%%", int(math.Round(progress*100)))
	if e.LoadErr() != nil {
		label = "Could not load the room"
	}
	ebitenutil.DebugPrintAt(r.overlay, label, int(bar.X), int(bar.Y)-24)

	op := &r.imageOpt
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.ColorScale.ScaleAlpha(float32(e.LoadingOpacity))
	screen.DrawImage(r.overlay, op)
}

// intersect returns the overlap of a and b, empty when they do not meet.
func intersect(a, b Rect) Rect {
	x0 := math.Max(a.X, b.X)
	y0 := math.Max(a.Y, b.Y)
	x1 := math.Min(a.X+a.Width, b.X+b.Width)
	y1 := math.Min(a.Y+a.Height, b.Y+b.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
