package folio

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// Rooms are built on the loader goroutine, so IDs come from an atomic.
var nodeIDCounter atomic.Uint32

func nextNodeID() uint32 {
	return nodeIDCounter.Add(1)
}

// Geometry is a box shape in the node's local space. Every mesh in a room
// is approximated by its box for both drawing and ray hits.
type Geometry struct {
	Center      Vec3
	HalfExtents Vec3
}

// Min returns the local-space minimum corner.
func (g Geometry) Min() Vec3 { return g.Center.Sub(g.HalfExtents) }

// Max returns the local-space maximum corner.
func (g Geometry) Max() Vec3 { return g.Center.Add(g.HalfExtents) }

// Node is the scene graph element. A node with Geometry is a mesh; a node
// without one is a plain group.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is Euler XYZ in radians.
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	// Spin rotates the node about its Y axis at this rate (radians per
	// second, before the experience's animation time scale).
	Spin float64

	Geometry *Geometry
	Material *Material
	Visible  bool

	UserData any

	worldMatrix    mgl64.Mat4
	transformDirty bool
	disposed       bool
}

// NewGroup creates a node with no geometry.
func NewGroup(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		Scale:          Vec3{1, 1, 1},
		Visible:        true,
		worldMatrix:    mgl64.Ident4(),
		transformDirty: true,
	}
}

// NewMesh creates a box mesh node with the given full size and material.
func NewMesh(name string, size Vec3, mat *Material) *Node {
	n := NewGroup(name)
	n.Geometry = &Geometry{HalfExtents: size.Mul(0.5)}
	n.Material = mat
	return n
}

// IsMesh reports whether the node carries renderable, hit-testable geometry.
func (n *Node) IsMesh() bool {
	return n.Geometry != nil
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("folio: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("folio: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("folio: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Traverse calls fn for n and every descendant, depth-first, parents before
// children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Traverse(fn)
	}
}

// FindByName returns the first node in the subtree (pre-order) whose Name
// matches, or nil.
func (n *Node) FindByName(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Material = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
