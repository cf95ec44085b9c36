package folio

import "math"

// HoverConfig holds the hover feedback parameters.
type HoverConfig struct {
	// ScaleMultiplier grows the hovered mesh relative to its base scale.
	ScaleMultiplier float64 `yaml:"scaleMultiplier"`
	// MaxScale caps every axis of the hover target scale.
	MaxScale float64 `yaml:"maxScale"`
	// Duration is the scale tween length in seconds.
	Duration float32 `yaml:"duration"`
	// Highlight is the emissive tint of hovered meshes, as 0xRRGGBB.
	Highlight uint32 `yaml:"highlight"`
}

// DefaultHoverConfig returns the stock hover feedback.
func DefaultHoverConfig() HoverConfig {
	return HoverConfig{
		ScaleMultiplier: 1.4,
		MaxScale:        3,
		Duration:        0.3,
		Highlight:       0xff0000,
	}
}

// HoverTarget computes min(base*multiplier, maxScale) per axis.
func HoverTarget(base Vec3, multiplier, maxScale float64) Vec3 {
	return Vec3{
		math.Min(base.X()*multiplier, maxScale),
		math.Min(base.Y()*multiplier, maxScale),
		math.Min(base.Z()*multiplier, maxScale),
	}
}

// HoverSet is the ordered set of objects currently flagged hovered.
type HoverSet struct {
	members []*InteractiveObject
}

// Contains reports whether o is in the set.
func (s *HoverSet) Contains(o *InteractiveObject) bool {
	for _, m := range s.members {
		if m == o {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s *HoverSet) Len() int {
	return len(s.members)
}

// Members returns the members in insertion order. The returned slice MUST
// NOT be mutated.
func (s *HoverSet) Members() []*InteractiveObject {
	return s.members
}

func (s *HoverSet) add(o *InteractiveObject) {
	if !s.Contains(o) {
		s.members = append(s.members, o)
	}
}

func (s *HoverSet) remove(o *InteractiveObject) {
	for i, m := range s.members {
		if m == o {
			copy(s.members[i:], s.members[i+1:])
			s.members[len(s.members)-1] = nil
			s.members = s.members[:len(s.members)-1]
			return
		}
	}
}

// HoverMachine moves registry objects between idle and hovered once per
// frame, driving the emissive tint, the scale tween and the cursor.
type HoverMachine struct {
	cfg      HoverConfig
	registry *Registry
	tweener  *Tweener
	cursor   CursorSink
	emit     func(InteractionEvent)

	set     HoverSet
	current []*InteractiveObject
	leaving []*InteractiveObject

	cursorSet  bool
	lastCursor CursorStyle
}

// NewHoverMachine creates a hover machine over registry. cursor and emit
// may be nil.
func NewHoverMachine(cfg HoverConfig, registry *Registry, tweener *Tweener, cursor CursorSink, emit func(InteractionEvent)) *HoverMachine {
	return &HoverMachine{
		cfg:      cfg,
		registry: registry,
		tweener:  tweener,
		cursor:   cursor,
		emit:     emit,
	}
}

// HoverSet returns the objects currently hovered.
func (m *HoverMachine) HoverSet() *HoverSet {
	return &m.set
}

// SetRegistry swaps the registry, used once when the room finishes loading.
func (m *HoverMachine) SetRegistry(r *Registry) {
	m.registry = r
}

// Update applies one frame of hover transitions from a hit list (nearest
// first) computed at pointer ptr.
func (m *HoverMachine) Update(hits []Hit, ptr PointerState) {
	m.current = m.current[:0]
	if len(hits) > 0 && m.registry != nil {
		m.current = m.registry.HoverVariantsOf(hits[0].Object.Group, m.current)
	}

	highlight := ColorFromHex(m.cfg.Highlight)
	for _, o := range m.current {
		if m.set.Contains(o) {
			continue
		}
		if o.SupportsEmissive {
			o.Node.Material.Emissive = highlight
		}
		target := HoverTarget(o.baseScale, m.cfg.ScaleMultiplier, m.cfg.MaxScale)
		m.tweenScale(o, target)
		m.set.add(o)
		o.Hovered = true
		m.fire(EventHoverEnter, o, ptr)
	}

	m.leaving = m.leaving[:0]
	for _, o := range m.set.members {
		if !containsObject(m.current, o) {
			m.leaving = append(m.leaving, o)
		}
	}
	for _, o := range m.leaving {
		if o.SupportsEmissive {
			o.Node.Material.Emissive = ColorBlack
		}
		m.tweenScale(o, o.baseScale)
		m.set.remove(o)
		o.Hovered = false
		m.fire(EventHoverLeave, o, ptr)
	}

	style := CursorDefault
	if len(hits) > 0 {
		style = CursorInteractive
	}
	if m.cursor != nil && (!m.cursorSet || style != m.lastCursor) {
		m.cursor.SetCursor(style)
		m.cursorSet = true
		m.lastCursor = style
	}
}

// tweenScale starts a scale tween to target unless the live scale is
// already there. A new target always replaces the running tween; when the
// live scale already matches, a tween still heading elsewhere is dropped
// and the scale is left untouched.
func (m *HoverMachine) tweenScale(o *InteractiveObject, target Vec3) {
	if o.Node.Scale == target {
		m.tweener.Cancel(o.Node)
		return
	}
	m.tweener.Replace(o.Node, TweenScale(o.Node, target, m.cfg.Duration, EaseOut))
}

func (m *HoverMachine) fire(t EventType, o *InteractiveObject, ptr PointerState) {
	if m.emit == nil {
		return
	}
	m.emit(InteractionEvent{Type: t, Object: o.Name(), PointerX: ptr.X, PointerY: ptr.Y})
}

func containsObject(s []*InteractiveObject, o *InteractiveObject) bool {
	for _, x := range s {
		if x == o {
			return true
		}
	}
	return false
}
