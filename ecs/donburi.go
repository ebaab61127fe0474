package ecs

import (
	"github.com/phanxgames/sprig"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ReallocateEvent announces that slot layout changed and all slots will be
// resent.
type ReallocateEvent struct {
	Nodes int
}

// ReallocateEventType is the Donburi event type for layout changes.
var ReallocateEventType = events.NewEventType[ReallocateEvent]()

// TransformUploadType is the Donburi event type for world transform uploads.
var TransformUploadType = events.NewEventType[sprig.TransformUpload]()

// QuadUploadType is the Donburi event type for quad uploads.
var QuadUploadType = events.NewEventType[sprig.QuadUpload]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an UploadSink backed by a Donburi world. Uploads are
// queued as events and delivered by ProcessEvents or ProcessAllEvents.
func NewDonburiSink(world donburi.World) sprig.UploadSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Reallocate(nodes int) {
	ReallocateEventType.Publish(s.world, ReallocateEvent{Nodes: nodes})
}

func (s *donburiSink) UploadTransform(u sprig.TransformUpload) {
	TransformUploadType.Publish(s.world, u)
}

func (s *donburiSink) UploadQuad(u sprig.QuadUpload) {
	QuadUploadType.Publish(s.world, u)
}
