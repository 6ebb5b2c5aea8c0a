// Package ecs provides ECS adapters for thicket's collision events.
//
// The primary adapter is [NewDonburiSink], which bridges every manifold of
// every physics tick into a [Donburi] world as a typed event. Subscribe to
// [CollisionEventType] in your ECS systems to receive them. Events are queued
// during the tick and delivered when the world processes events, so
// subscribers may freely mutate the scene (including Destroy).
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetCollisionSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
