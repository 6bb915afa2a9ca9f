package ecs

import (
	"context"
	"testing"

	"github.com/phanxgames/lattice"
	"github.com/phanxgames/lattice/memhost"

	"github.com/yohamta/donburi"
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

	var received []lattice.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e lattice.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(lattice.InteractionEvent{
		Type:      lattice.EventOpen,
		SessionID: "s1",
		Viewer:    "alice",
		Tick:      7,
	})
	store.EmitEvent(lattice.InteractionEvent{
		Type:      lattice.EventClick,
		SessionID: "s1",
		Viewer:    "alice",
		Slot:      lattice.Point{X: 2, Y: 1},
		Click:     lattice.ClickRight,
	})

	// Events are queued; process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e0 := received[0]; e0.Type != lattice.EventOpen || e0.SessionID != "s1" || e0.Tick != 7 {
		t.Errorf("event 0: %+v", e0)
	}
	if e1 := received[1]; e1.Type != lattice.EventClick || e1.Slot != (lattice.Point{X: 2, Y: 1}) {
		t.Errorf("event 1: %+v", e1)
	}

	open := OpenSessions(world)
	if len(open) != 1 {
		t.Fatalf("expected 1 open session entity, got %d", len(open))
	}
	if open[0].Viewer != "alice" || open[0].Clicks != 1 || open[0].OpenedAt != 7 {
		t.Errorf("open session: %+v", open[0])
	}
}

func TestDonburiStore_CloseRemovesEntity(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	store.EmitEvent(lattice.InteractionEvent{Type: lattice.EventOpen, SessionID: "s1"})
	store.EmitEvent(lattice.InteractionEvent{Type: lattice.EventOpen, SessionID: "s2"})
	store.EmitEvent(lattice.InteractionEvent{Type: lattice.EventClose, SessionID: "s1"})

	open := OpenSessions(world)
	if len(open) != 1 || open[0].SessionID != "s2" {
		t.Fatalf("open sessions = %+v, want only s2", open)
	}
}

func TestDonburiStore_WithEngine(t *testing.T) {
	world := donburi.NewWorld()
	var received []lattice.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e lattice.InteractionEvent) {
		received = append(received, e)
	})

	host := memhost.New()
	engine := lattice.NewEngine(host, lattice.WithEventSink(NewDonburiStore(world)))
	iface := lattice.BuildChest(1).Build()

	ctx := context.Background()
	if _, err := engine.Open(ctx, iface, "bob", lattice.NewArguments()); err != nil {
		t.Fatal(err)
	}
	host.Surface("bob").InjectClick(0, 0, lattice.ClickLeft)
	engine.Close(ctx, "bob")

	InteractionEventType.ProcessEvents(world)

	want := []lattice.EventType{lattice.EventOpen, lattice.EventClick, lattice.EventClose}
	if len(received) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(received))
	}
	for i, typ := range want {
		if received[i].Type != typ {
			t.Errorf("event %d type = %v, want %v", i, received[i].Type, typ)
		}
	}
	if received[1].Result != lattice.Handled {
		t.Errorf("click result = %+v, want Handled", received[1].Result)
	}
	if received[2].Cause != lattice.CloseExplicit {
		t.Errorf("close cause = %v, want explicit", received[2].Cause)
	}
	if len(OpenSessions(world)) != 0 {
		t.Error("closed session still mirrored")
	}
}
