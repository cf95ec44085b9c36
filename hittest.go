package folio

import "sort"

// Hit is one registry object intersected by the pointer ray.
type Hit struct {
	Object   *InteractiveObject
	Distance float64
	Point    Vec3
}

// HitTester finds the registry objects under the pointer.
type HitTester struct {
	buf []Hit
}

// Query casts a ray from camera through the pointer and returns every
// visible registry object it intersects, nearest first. The returned slice
// is reused by the next call. Query has no side effects on the objects.
func (h *HitTester) Query(ptr PointerState, cam *Camera, objects []*InteractiveObject) []Hit {
	h.buf = h.buf[:0]
	if cam == nil || len(objects) == 0 {
		return h.buf
	}
	ray := cam.RayFromNDC(ptr.X, ptr.Y)
	for _, o := range objects {
		if !visibleInWorld(o.Node) {
			continue
		}
		if d, p, ok := ray.intersectNode(o.Node); ok {
			h.buf = append(h.buf, Hit{Object: o, Distance: d, Point: p})
		}
	}
	sort.SliceStable(h.buf, func(i, j int) bool {
		return h.buf[i].Distance < h.buf[j].Distance
	})
	return h.buf
}

// visibleInWorld reports whether n and every ancestor are visible.
func visibleInWorld(n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}
