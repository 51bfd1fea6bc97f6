package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/monopet"
)

// RigData is the component payload for an animated pet.
type RigData struct {
	Rig *monopet.Rig
	// Layer orders drawing; lower layers are drawn first.
	Layer int
}

// PropData is the component payload for a free-standing sprite.
type PropData struct {
	Prop  *monopet.Prop
	Layer int
}

var (
	Rig  = donburi.NewComponentType[RigData]()
	Prop = donburi.NewComponentType[PropData]()
)

// PoseChanged is published whenever SetPose swaps a rig's pose.
type PoseChanged struct {
	Entity donburi.Entity
	From   string
	To     string
}

// PoseChangedEvent carries PoseChanged. Subscribe to it in systems that
// react to mood or posture changes; events are delivered by Update.
var PoseChangedEvent = events.NewEventType[PoseChanged]()

// NewRig creates an entity holding r.
func NewRig(world donburi.World, r *monopet.Rig, layer int) *donburi.Entry {
	entry := world.Entry(world.Create(Rig))
	Rig.SetValue(entry, RigData{Rig: r, Layer: layer})
	return entry
}

// NewProp creates an entity holding p.
func NewProp(world donburi.World, p *monopet.Prop, layer int) *donburi.Entry {
	entry := world.Entry(world.Create(Prop))
	Prop.SetValue(entry, PropData{Prop: p, Layer: layer})
	return entry
}

// SetPose applies pose to the rig on entry and queues a PoseChanged event.
// Setting the pose a rig already holds is a no-op.
func SetPose(world donburi.World, entry *donburi.Entry, pose *monopet.Pose) {
	if !entry.HasComponent(Rig) {
		return
	}
	r := Rig.Get(entry).Rig
	prev := r.Pose()
	if prev == pose {
		return
	}
	r.SetPose(pose)
	PoseChangedEvent.Publish(world, PoseChanged{
		Entity: entry.Entity(),
		From:   poseName(prev),
		To:     poseName(pose),
	})
}

func poseName(p *monopet.Pose) string {
	if p == nil {
		return ""
	}
	return p.Name
}
