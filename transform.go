package folio

import "github.com/go-gl/mathgl/mgl64"

// computeLocalMatrix computes the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Translate(Position) -> Rotate X -> Rotate Y -> Rotate Z -> Scale
func computeLocalMatrix(n *Node) mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl64.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(n.Rotation.Z()))
	s := mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// UpdateWorld recomputes world matrices for root and its subtree. Nodes
// whose transform and ancestors are clean are skipped.
func UpdateWorld(root *Node) {
	updateWorldTransform(root, mgl64.Ident4(), false)
}

// updateWorldTransform recomputes a node's worldMatrix.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parent mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldMatrix = parent.Mul4(computeLocalMatrix(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, recompute)
	}
}

// WorldMatrix returns the world matrix computed by the last UpdateWorld.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	return n.worldMatrix
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() Vec3 {
	return n.worldMatrix.Col(3).Vec3()
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(p Vec3) {
	n.Position = p
	n.transformDirty = true
}

// SetScale sets the node's local scale and marks it dirty.
func (n *Node) SetScale(s Vec3) {
	n.Scale = s
	n.transformDirty = true
}

// SetRotation sets the node's Euler rotation (radians) and marks it dirty.
func (n *Node) SetRotation(r Vec3) {
	n.Rotation = r
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// boxCorners returns the eight corners of g transformed by m.
func boxCorners(m mgl64.Mat4, g Geometry) [8]Vec3 {
	lo, hi := g.Min(), g.Max()
	var out [8]Vec3
	for i := 0; i < 8; i++ {
		p := Vec3{lo.X(), lo.Y(), lo.Z()}
		if i&1 != 0 {
			p[0] = hi.X()
		}
		if i&2 != 0 {
			p[1] = hi.Y()
		}
		if i&4 != 0 {
			p[2] = hi.Z()
		}
		out[i] = mgl64.TransformCoordinate(p, m)
	}
	return out
}
