// Package ecs provides ECS adapters for folio's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges folio interaction
// events (hover, selection, modal visibility) into a [Donburi] world as
// typed events. Subscribe to [InteractionEventType] in your ECS systems to
// receive them, or attach a [StateTracker] to keep one entity per object.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	exp := folio.NewExperience(cfg, folio.Options{Store: store})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
