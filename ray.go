package folio

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line with an origin and a normalized direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectBox tests the ray against an axis-aligned box using the slab
// method. Returns the entry distance, or the exit distance when the origin
// is inside the box. Hits behind the origin are rejected.
func (r Ray) IntersectBox(lo, hi Vec3) (t float64, hit bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < lo[axis] || o > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - o) / d
		t2 := (hi[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// intersectNode tests the ray against a mesh node's box in the node's local
// space and returns the world-space distance and hit point.
func (r Ray) intersectNode(n *Node) (dist float64, point Vec3, hit bool) {
	if n.Geometry == nil {
		return 0, Vec3{}, false
	}
	world := n.WorldMatrix()
	if math.Abs(world.Det()) < 1e-12 {
		return 0, Vec3{}, false
	}
	inv := world.Inv()

	localOrigin := mgl64.TransformCoordinate(r.Origin, inv)
	localDir := mgl64.TransformNormal(r.Direction, inv)
	if localDir.Len() == 0 {
		return 0, Vec3{}, false
	}
	local := Ray{Origin: localOrigin, Direction: localDir.Normalize()}

	t, ok := local.IntersectBox(n.Geometry.Min(), n.Geometry.Max())
	if !ok {
		return 0, Vec3{}, false
	}
	point = mgl64.TransformCoordinate(local.At(t), world)
	return point.Sub(r.Origin).Len(), point, true
}
