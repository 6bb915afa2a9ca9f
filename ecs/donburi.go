// Package ecs provides ECS adapters for lattice.
package ecs

import (
	"github.com/phanxgames/lattice"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType is the Donburi event type for lattice interaction
// events. Subscribe to it in your ECS systems to receive opens, clicks, and
// closes.
var InteractionEventType = events.NewEventType[lattice.InteractionEvent]()

// OpenSession mirrors one open lattice session as a component.
type OpenSession struct {
	SessionID string
	Viewer    lattice.ViewerID
	OpenedAt  int64
	Clicks    int
}

// OpenSessionComponent is attached to one entity per open session.
var OpenSessionComponent = donburi.NewComponentType[OpenSession]()

var openSessions = donburi.NewQuery(filter.Contains(OpenSessionComponent))

type donburiStore struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents. Each open session also
// lives in the world as an entity carrying OpenSessionComponent.
func NewDonburiStore(world donburi.World) lattice.EventSink {
	return &donburiStore{world: world, entities: make(map[string]donburi.Entity)}
}

func (s *donburiStore) EmitEvent(event lattice.InteractionEvent) {
	switch event.Type {
	case lattice.EventOpen:
		entity := s.world.Create(OpenSessionComponent)
		OpenSessionComponent.SetValue(s.world.Entry(entity), OpenSession{
			SessionID: event.SessionID,
			Viewer:    event.Viewer,
			OpenedAt:  event.Tick,
		})
		s.entities[event.SessionID] = entity
	case lattice.EventClick:
		if entity, ok := s.entities[event.SessionID]; ok && s.world.Valid(entity) {
			OpenSessionComponent.Get(s.world.Entry(entity)).Clicks++
		}
	case lattice.EventClose:
		if entity, ok := s.entities[event.SessionID]; ok {
			if s.world.Valid(entity) {
				s.world.Remove(entity)
			}
			delete(s.entities, event.SessionID)
		}
	}
	InteractionEventType.Publish(s.world, event)
}

// OpenSessions returns the sessions currently mirrored in world.
func OpenSessions(world donburi.World) []OpenSession {
	var out []OpenSession
	openSessions.Each(world, func(entry *donburi.Entry) {
		out = append(out, *OpenSessionComponent.Get(entry))
	})
	return out
}
