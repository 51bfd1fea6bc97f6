package ecs

import (
	"sort"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/monopet"
)

// Update advances every rig and prop by dt seconds, then delivers queued
// pose events.
func Update(world donburi.World, dt float64) {
	Rig.Each(world, func(entry *donburi.Entry) {
		if r := Rig.Get(entry).Rig; r != nil {
			r.Advance(dt)
		}
	})
	Prop.Each(world, func(entry *donburi.Entry) {
		if p := Prop.Get(entry).Prop; p != nil {
			p.Advance(dt)
		}
	})
	PoseChangedEvent.ProcessEvents(world)
}

type drawable struct {
	layer int
	draw  func(*monopet.Renderer)
}

// Draw renders every rig and prop in ascending layer order. Within a layer,
// props are drawn before rigs.
func Draw(world donburi.World, rd *monopet.Renderer) {
	var items []drawable
	Prop.Each(world, func(entry *donburi.Entry) {
		d := Prop.Get(entry)
		if d.Prop != nil {
			items = append(items, drawable{layer: d.Layer, draw: d.Prop.Draw})
		}
	})
	Rig.Each(world, func(entry *donburi.Entry) {
		d := Rig.Get(entry)
		if d.Rig != nil {
			items = append(items, drawable{layer: d.Layer, draw: d.Rig.Render})
		}
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].layer < items[j].layer })
	for _, it := range items {
		it.draw(rd)
	}
}
