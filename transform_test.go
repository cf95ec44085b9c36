package folio

import (
	"math"
	"testing"
)

func TestWorldPositionComposes(t *testing.T) {
	parent := NewGroup("parent")
	parent.Position = Vec3{10, 0, 0}
	parent.Scale = Vec3{2, 2, 2}
	child := NewGroup("child")
	child.Position = Vec3{1, 1, 0}
	parent.AddChild(child)

	UpdateWorld(parent)
	if got := child.WorldPosition(); !vecApprox(got, Vec3{12, 2, 0}, 1e-9) {
		t.Errorf("world position = %v, want [12 2 0]", got)
	}
}

func TestWorldRotationOrder(t *testing.T) {
	n := NewGroup("n")
	n.Rotation = Vec3{math.Pi / 2, math.Pi / 2, 0}
	child := NewGroup("c")
	child.Position = Vec3{1, 0, 0}
	n.AddChild(child)
	UpdateWorld(n)

	// Ry(90) maps +X to -Z, then Rx(90) maps -Z to +Y.
	if got := child.WorldPosition(); !vecApprox(got, Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("world position = %v, want [0 1 0]", got)
	}
}

func TestUpdateWorldPropagatesDirtyParent(t *testing.T) {
	parent := NewGroup("parent")
	child := NewGroup("child")
	child.Position = Vec3{0, 1, 0}
	parent.AddChild(child)
	UpdateWorld(parent)

	parent.SetPosition(Vec3{5, 0, 0})
	UpdateWorld(parent)
	if got := child.WorldPosition(); !vecApprox(got, Vec3{5, 1, 0}, 1e-9) {
		t.Errorf("world position = %v, want [5 1 0]", got)
	}
}

func TestUpdateWorldSeesDirectFieldWrites(t *testing.T) {
	n := NewGroup("n")
	UpdateWorld(n)
	n.Position[0] = 3
	n.MarkDirty()
	UpdateWorld(n)
	if got := n.WorldPosition(); got.X() != 3 {
		t.Errorf("x = %v, want 3", got.X())
	}
}

func TestBoxCorners(t *testing.T) {
	n := NewMesh("box", Vec3{2, 4, 6}, nil)
	n.Position = Vec3{1, 0, 0}
	UpdateWorld(n)
	corners := boxCorners(n.WorldMatrix(), *n.Geometry)
	if !vecApprox(corners[0], Vec3{0, -2, -3}, 1e-9) {
		t.Errorf("corner 0 = %v", corners[0])
	}
	if !vecApprox(corners[7], Vec3{2, 2, 3}, 1e-9) {
		t.Errorf("corner 7 = %v", corners[7])
	}
}
