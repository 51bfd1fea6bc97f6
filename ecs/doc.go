// Package ecs attaches monopet rigs and props to a [Donburi] world.
//
// Entities carry a [Rig] or [Prop] component. [Update] advances every
// animation and delivers queued [PoseChangedEvent]s; [Draw] renders the
// world onto a monopet.Renderer ordered by layer.
//
// Usage:
//
//	world := donburi.NewWorld()
//	pet := ecs.NewRig(world, monopet.NewPetRig(), 0)
//	ecs.SetPose(world, pet, pose)
//	...
//	ecs.Update(world, dt)
//	ecs.Draw(world, renderer)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
