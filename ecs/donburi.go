package ecs

import (
	"github.com/phanxgames/thicket"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CollisionEventType is the Donburi event type for thicket collision events.
// Subscribe to this in your ECS systems to receive contacts and trigger hits.
var CollisionEventType = events.NewEventType[thicket.CollisionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a CollisionSink backed by a Donburi world.
// Collision events are published to CollisionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) thicket.CollisionSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitCollision(event thicket.CollisionEvent) {
	CollisionEventType.Publish(s.world, event)
}
