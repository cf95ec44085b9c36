package folio

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// Orbit limits.
const (
	minPolar = 0.05
	maxPolar = math.Pi - 0.05
)

// Camera is a perspective camera orbiting a target point.
type Camera struct {
	// Position is the eye position in world space.
	Position Vec3
	// Target is the point the camera looks at and orbits around.
	Target Vec3
	// Up is the world up direction.
	Up Vec3
	// FOV is the vertical field of view in degrees.
	FOV       float64
	Near, Far float64

	// Width and Height are the viewport size in pixels.
	Width, Height float64

	// EnableDamping makes orbit and dolly input coast to a stop instead of
	// applying instantly.
	EnableDamping bool
	RotateSpeed   float64
	ZoomSpeed     float64
	MinDistance   float64
	MaxDistance   float64

	azimuthVel, azimuthAccel float64
	polarVel, polarAccel     float64
	zoomVel, zoomAccel       float64
	spring                   harmonica.Spring
}

// NewCamera creates a camera with the given viewport and the defaults of a
// 45 degree perspective looking at the origin.
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Position:      Vec3{0, 0, 10},
		Up:            Vec3{0, 1, 0},
		FOV:           45,
		Near:          0.1,
		Far:           1000,
		Width:         width,
		Height:        height,
		EnableDamping: true,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MinDistance:   0.5,
		MaxDistance:   100,
		spring:        harmonica.NewSpring(harmonica.FPS(60), 6.0, 1.0),
	}
}

// SetTickRate rebuilds the damping spring for the given ticks per second.
func (c *Camera) SetTickRate(tps int) {
	if tps <= 0 {
		return
	}
	c.spring = harmonica.NewSpring(harmonica.FPS(tps), 6.0, 1.0)
}

// SetViewport updates the viewport size. The aspect ratio follows.
func (c *Camera) SetViewport(width, height float64) {
	c.Width = width
	c.Height = height
}

// Aspect returns the viewport aspect ratio, 1 for a degenerate viewport.
func (c *Camera) Aspect() float64 {
	if c.Height <= 0 {
		return 1
	}
	return c.Width / c.Height
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect(), c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// RayFromNDC builds a world-space ray from the camera through the given
// normalized device coordinates (each in [-1, 1], Y up).
func (c *Camera) RayFromNDC(x, y float64) Ray {
	inv := c.ViewProjection().Inv()

	near := inv.Mul4x1(mgl64.Vec4{x, y, -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{x, y, 1, 1})
	if near.W() != 0 {
		near = near.Mul(1 / near.W())
	}
	if far.W() != 0 {
		far = far.Mul(1 / far.W())
	}

	origin := near.Vec3()
	dir := far.Vec3().Sub(origin)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: origin, Direction: dir}
}

// WorldToScreen projects a world point to pixel coordinates. depth is the
// NDC depth in [-1, 1]; ok is false for points behind the camera.
func (c *Camera) WorldToScreen(p Vec3) (sx, sy, depth float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-9 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	sx = (ndc.X() + 1) / 2 * c.Width
	sy = (1 - ndc.Y()) / 2 * c.Height
	return sx, sy, ndc.Z(), true
}

// --- Orbit controls ---

// spherical returns the eye offset from the target as radius, azimuth
// (around Up, from +Z towards +X) and polar angle (from Up).
func (c *Camera) spherical() (radius, azimuth, polar float64) {
	off := c.Position.Sub(c.Target)
	radius = off.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	azimuth = math.Atan2(off.X(), off.Z())
	polar = math.Acos(math.Max(-1, math.Min(1, off.Y()/radius)))
	return radius, azimuth, polar
}

func (c *Camera) setSpherical(radius, azimuth, polar float64) {
	polar = math.Max(minPolar, math.Min(maxPolar, polar))
	radius = math.Max(c.MinDistance, math.Min(c.MaxDistance, radius))
	sinP := math.Sin(polar)
	off := Vec3{
		radius * sinP * math.Sin(azimuth),
		radius * math.Cos(polar),
		radius * sinP * math.Cos(azimuth),
	}
	c.Position = c.Target.Add(off)
}

// Rotate orbits the camera by a pointer drag of (dx, dy) pixels.
func (c *Camera) Rotate(dx, dy float64) {
	h := c.Height
	if h <= 0 {
		h = 1
	}
	dAz := -2 * math.Pi * dx / h * c.RotateSpeed
	dPolar := -2 * math.Pi * dy / h * c.RotateSpeed
	if c.EnableDamping {
		c.azimuthVel += dAz
		c.polarVel += dPolar
		return
	}
	r, az, p := c.spherical()
	c.setSpherical(r, az+dAz, p+dPolar)
}

// Dolly moves the camera toward (positive steps) or away from the target.
func (c *Camera) Dolly(steps float64) {
	if c.EnableDamping {
		c.zoomVel += steps * c.ZoomSpeed
		return
	}
	r, az, p := c.spherical()
	c.setSpherical(r*math.Pow(0.95, steps*c.ZoomSpeed), az, p)
}

// Update applies pending orbit velocity and lets the damping springs pull
// it back to rest. Called once per tick by the experience.
func (c *Camera) Update() {
	if !c.EnableDamping {
		return
	}
	if c.azimuthVel == 0 && c.polarVel == 0 && c.zoomVel == 0 {
		return
	}
	r, az, p := c.spherical()
	c.setSpherical(r*math.Pow(0.95, c.zoomVel), az+c.azimuthVel, p+c.polarVel)

	c.azimuthVel, c.azimuthAccel = c.spring.Update(c.azimuthVel, c.azimuthAccel, 0)
	c.polarVel, c.polarAccel = c.spring.Update(c.polarVel, c.polarAccel, 0)
	c.zoomVel, c.zoomAccel = c.spring.Update(c.zoomVel, c.zoomAccel, 0)

	const rest = 1e-5
	if math.Abs(c.azimuthVel) < rest && math.Abs(c.azimuthAccel) < rest {
		c.azimuthVel, c.azimuthAccel = 0, 0
	}
	if math.Abs(c.polarVel) < rest && math.Abs(c.polarAccel) < rest {
		c.polarVel, c.polarAccel = 0, 0
	}
	if math.Abs(c.zoomVel) < rest && math.Abs(c.zoomAccel) < rest {
		c.zoomVel, c.zoomAccel = 0, 0
	}
}

// Coasting reports whether damped orbit motion is still in progress.
func (c *Camera) Coasting() bool {
	return c.azimuthVel != 0 || c.polarVel != 0 || c.zoomVel != 0
}
