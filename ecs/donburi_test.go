package ecs

import (
	"testing"

	"github.com/phanxgames/folio"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []folio.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e folio.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(folio.InteractionEvent{
		Type:     folio.EventHoverEnter,
		Object:   "Work_Raycaster_Hover",
		PointerX: 0.25,
		PointerY: -0.5,
	})
	store.EmitEvent(folio.InteractionEvent{
		Type:  folio.EventModalShown,
		Modal: folio.ModalWork,
	})

	// Events are queued; process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != folio.EventHoverEnter || e0.Object != "Work_Raycaster_Hover" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.PointerX != 0.25 || e0.PointerY != -0.5 {
		t.Errorf("event 0 pointer: (%v,%v)", e0.PointerX, e0.PointerY)
	}
	if e1 := received[1]; e1.Type != folio.EventModalShown || e1.Modal != folio.ModalWork {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store folio.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e folio.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e folio.InteractionEvent) {
		count2++
	})

	store.EmitEvent(folio.InteractionEvent{Type: folio.EventSelectNone})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestStateTracker(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	tracker := NewStateTracker(world)

	store.EmitEvent(folio.InteractionEvent{Type: folio.EventHoverEnter, Object: "Insta_Raycaster_Hover"})
	store.EmitEvent(folio.InteractionEvent{Type: folio.EventSelectLink, Object: "Insta_Raycaster", URL: "https://example.com"})
	store.EmitEvent(folio.InteractionEvent{Type: folio.EventModalShown, Modal: folio.ModalAbout})
	InteractionEventType.ProcessEvents(world)

	insta, ok := tracker.Object("Insta_Raycaster")
	if !ok {
		t.Fatal("Insta_Raycaster not tracked")
	}
	want := ObjectState{Name: "Insta_Raycaster", Hovered: true, Selections: 1, LastURL: "https://example.com"}
	if insta != want {
		t.Errorf("insta = %+v, want %+v", insta, want)
	}
	if m, ok := tracker.Modal(folio.ModalAbout); !ok || !m.Shown {
		t.Errorf("about modal = %+v, %v", m, ok)
	}

	store.EmitEvent(folio.InteractionEvent{Type: folio.EventHoverLeave, Object: "Insta_Raycaster_Hover"})
	store.EmitEvent(folio.InteractionEvent{Type: folio.EventModalHidden, Modal: folio.ModalAbout})
	InteractionEventType.ProcessEvents(world)

	if insta, _ := tracker.Object("Insta_Raycaster"); insta.Hovered {
		t.Error("insta still hovered after leave")
	}
	if m, _ := tracker.Modal(folio.ModalAbout); m.Shown {
		t.Error("about still shown after hide")
	}
	if tracker.Len() != 2 {
		t.Errorf("Len = %d, want 2", tracker.Len())
	}
}
