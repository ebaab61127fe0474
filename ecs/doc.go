// Package ecs provides ECS adapters for sprig's frame uploads.
//
// The primary adapter is [NewDonburiSink], an [sprig.UploadSink] that
// publishes every reallocation, transform upload and quad upload into a
// [Donburi] world as typed events. Subscribe to [ReallocateEventType],
// [TransformUploadType] and [QuadUploadType] in your ECS systems.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	tree.Frame(sink)
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
