package folio

import (
	"fmt"
	"strings"
)

// HoverSuffix marks the mesh variant whose material and scale animate.
const HoverSuffix = "_Hover"

// BaseName strips the hover-variant suffix from an object name.
func BaseName(name string) string {
	return strings.TrimSuffix(name, HoverSuffix)
}

// InteractiveObject is a mesh registered for hover and click handling.
type InteractiveObject struct {
	Node *Node
	// Group is the logical clickable unit this mesh belongs to. The registry
	// never owns it.
	Group *Node
	// IsHoverVariant is true for meshes named with HoverSuffix.
	IsHoverVariant bool
	// SupportsEmissive is decided once at registration.
	SupportsEmissive bool
	// Hovered mirrors membership in the HoverSet.
	Hovered bool

	baseScale Vec3
}

// Name returns the registered mesh name.
func (o *InteractiveObject) Name() string {
	return o.Node.Name
}

// BaseScale returns the scale captured at registration. It never changes.
func (o *InteractiveObject) BaseScale() Vec3 {
	return o.baseScale
}

// Registry is the flat list of interactive objects. It is filled once when
// the room finishes loading and is read-only afterwards, apart from each
// object's Hovered flag.
type Registry struct {
	objects []*InteractiveObject
	byNode  map[*Node]*InteractiveObject
	log     Logger
}

// NewRegistry creates an empty registry reporting through log.
func NewRegistry(log Logger) *Registry {
	if log == nil {
		log = NopLogger{}
	}
	return &Registry{byNode: make(map[*Node]*InteractiveObject), log: log}
}

// Register walks root's subtree and registers every mesh with root as its
// group. A nil root is logged as a missing target and skipped. Meshes that
// are already registered keep their first group. Returns the number of
// objects added.
func (r *Registry) Register(root *Node, name string) (int, error) {
	if root == nil {
		r.log.Warningf("%s not found", name)
		return 0, fmt.Errorf("register %q: %w", name, ErrMissingTarget)
	}
	added := 0
	root.Traverse(func(n *Node) {
		if !n.IsMesh() {
			return
		}
		if _, dup := r.byNode[n]; dup {
			return
		}
		n.Material = ensureEmissiveMaterial(n.Material)
		obj := &InteractiveObject{
			Node:             n,
			Group:            root,
			IsHoverVariant:   strings.HasSuffix(n.Name, HoverSuffix),
			SupportsEmissive: n.Material.SupportsEmissiveTint(),
			baseScale:        n.Scale,
		}
		r.objects = append(r.objects, obj)
		r.byNode[n] = obj
		added++
	})
	return added, nil
}

// RegisterTargets looks up each name with lookup and registers it. Missing
// names are logged and skipped; the returned slice lists them.
func (r *Registry) RegisterTargets(lookup func(string) *Node, names []string) (missing []string) {
	for _, name := range names {
		if _, err := r.Register(lookup(name), name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// Objects returns the registered objects in registration order. The returned
// slice MUST NOT be mutated.
func (r *Registry) Objects() []*InteractiveObject {
	return r.objects
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Lookup returns the registry entry for a node, or nil.
func (r *Registry) Lookup(n *Node) *InteractiveObject {
	return r.byNode[n]
}

// ByName returns the first entry with the given mesh name, or nil.
func (r *Registry) ByName(name string) *InteractiveObject {
	for _, o := range r.objects {
		if o.Node.Name == name {
			return o
		}
	}
	return nil
}

// HoverVariantsOf returns the hover-variant objects belonging to group.
func (r *Registry) HoverVariantsOf(group *Node, buf []*InteractiveObject) []*InteractiveObject {
	for _, o := range r.objects {
		if o.Group == group && o.IsHoverVariant {
			buf = append(buf, o)
		}
	}
	return buf
}
