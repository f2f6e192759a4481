// Package ecs provides ECS adapters for evergreen.
package ecs

import (
	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SignalEventType is the Donburi event type for evergreen signal events.
// Subscribe to this in your ECS systems to react to formed-state
// transitions (e.g. trigger audio or effects when the tree assembles).
var SignalEventType = events.NewEventType[evergreen.SignalEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates a SignalStore backed by a Donburi world.
// Signal events are published to SignalEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) evergreen.SignalStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitSignal(event evergreen.SignalEvent) {
	SignalEventType.Publish(s.world, event)
}
