// Package ecs provides ECS adapters for lattice's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges lattice interaction
// events (open, click, close) into a [Donburi] world as typed events and keeps
// one entity per open session. Subscribe to [InteractionEventType] in your ECS
// systems to receive the events, or query [OpenSessionComponent].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine := lattice.NewEngine(host, lattice.WithEventSink(store))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
