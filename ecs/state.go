package ecs

import (
	"github.com/phanxgames/folio"

	"github.com/yohamta/donburi"
)

// ObjectState mirrors one interactive object's interaction history.
type ObjectState struct {
	Name       string
	Hovered    bool
	Selections int
	LastURL    string
}

// ModalState mirrors whether a modal is shown.
type ModalState struct {
	Key   folio.ModalKey
	Shown bool
}

// Components written by StateTracker.
var (
	Object = donburi.NewComponentType[ObjectState]()
	Modal  = donburi.NewComponentType[ModalState]()
)

// StateTracker keeps one entity per object and per modal, updated from
// processed interaction events.
type StateTracker struct {
	world   donburi.World
	objects map[string]donburi.Entity
	modals  map[folio.ModalKey]donburi.Entity
}

// NewStateTracker subscribes a tracker to InteractionEventType on world.
func NewStateTracker(world donburi.World) *StateTracker {
	t := &StateTracker{
		world:   world,
		objects: make(map[string]donburi.Entity),
		modals:  make(map[folio.ModalKey]donburi.Entity),
	}
	InteractionEventType.Subscribe(world, t.handle)
	return t
}

func (t *StateTracker) handle(w donburi.World, ev folio.InteractionEvent) {
	switch ev.Type {
	case folio.EventHoverEnter, folio.EventHoverLeave:
		o := t.object(folio.BaseName(ev.Object))
		o.Hovered = ev.Type == folio.EventHoverEnter
	case folio.EventSelectLink:
		o := t.object(folio.BaseName(ev.Object))
		o.Selections++
		o.LastURL = ev.URL
	case folio.EventSelectModal:
		t.object(folio.BaseName(ev.Object)).Selections++
	case folio.EventModalShown, folio.EventModalHidden:
		t.modal(ev.Modal).Shown = ev.Type == folio.EventModalShown
	}
}

func (t *StateTracker) object(name string) *ObjectState {
	e, ok := t.objects[name]
	if !ok {
		e = t.world.Create(Object)
		t.objects[name] = e
		Object.Get(t.world.Entry(e)).Name = name
	}
	return Object.Get(t.world.Entry(e))
}

func (t *StateTracker) modal(key folio.ModalKey) *ModalState {
	e, ok := t.modals[key]
	if !ok {
		e = t.world.Create(Modal)
		t.modals[key] = e
		Modal.Get(t.world.Entry(e)).Key = key
	}
	return Modal.Get(t.world.Entry(e))
}

// Object returns the tracked state of a base object name.
func (t *StateTracker) Object(name string) (ObjectState, bool) {
	e, ok := t.objects[name]
	if !ok {
		return ObjectState{}, false
	}
	return *Object.Get(t.world.Entry(e)), true
}

// Modal returns the tracked state of a modal.
func (t *StateTracker) Modal(key folio.ModalKey) (ModalState, bool) {
	e, ok := t.modals[key]
	if !ok {
		return ModalState{}, false
	}
	return *Modal.Get(t.world.Entry(e)), true
}

// Len returns the number of tracked entities.
func (t *StateTracker) Len() int {
	return len(t.objects) + len(t.modals)
}
