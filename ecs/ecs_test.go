package ecs

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/monopet"
)

func solidSprite(name string, frames int) *monopet.Sprite {
	s := &monopet.Sprite{Name: name, Width: 2, Height: 2}
	for i := 0; i < frames; i++ {
		s.Frames = append(s.Frames, monopet.ParseArt("##", "##"))
	}
	return s
}

// eraser draws nothing but clears its 2x2 silhouette.
func eraser() *monopet.Sprite {
	return &monopet.Sprite{
		Name:       "eraser",
		Width:      2,
		Height:     2,
		Frames:     []*monopet.Bitmap{monopet.ParseArt("..", "..")},
		FillFrames: []*monopet.Bitmap{monopet.ParseArt("##", "##")},
	}
}

func petAt(x, y float64) *monopet.Rig {
	r := monopet.NewPetRig()
	r.SetSprite(monopet.PartBody, solidSprite("body", 3), 1)
	r.X, r.Y = x, y
	return r
}

func TestSetPosePublishes(t *testing.T) {
	world := donburi.NewWorld()
	entry := NewRig(world, petAt(0, 0), 0)

	var got []PoseChanged
	PoseChangedEvent.Subscribe(world, func(w donburi.World, e PoseChanged) {
		got = append(got, e)
	})

	sit := &monopet.Pose{Name: "sitting.side.happy"}
	lie := &monopet.Pose{Name: "lying.side.sleepy"}
	SetPose(world, entry, sit)
	SetPose(world, entry, sit)
	SetPose(world, entry, lie)

	if len(got) != 0 {
		t.Fatalf("events delivered before Update: %v", got)
	}
	Update(world, 0)

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].From != "" || got[0].To != "sitting.side.happy" {
		t.Errorf("event 0 = %+v", got[0])
	}
	if got[1].From != "sitting.side.happy" || got[1].To != "lying.side.sleepy" {
		t.Errorf("event 1 = %+v", got[1])
	}
	if got[1].Entity != entry.Entity() {
		t.Errorf("event entity = %v, want %v", got[1].Entity, entry.Entity())
	}
	if Rig.Get(entry).Rig.Pose() != lie {
		t.Error("rig pose not applied")
	}
}

func TestSetPoseIgnoresNonRigs(t *testing.T) {
	world := donburi.NewWorld()
	entry := NewProp(world, monopet.NewProp("bowl", solidSprite("bowl", 1), 0, 0), 0)

	fired := false
	PoseChangedEvent.Subscribe(world, func(w donburi.World, e PoseChanged) { fired = true })
	SetPose(world, entry, &monopet.Pose{Name: "a.b.c"})
	Update(world, 0)
	if fired {
		t.Error("pose event published for a prop")
	}
}

func TestUpdateAdvancesAnimations(t *testing.T) {
	world := donburi.NewWorld()
	rig := NewRig(world, petAt(0, 0), 0)
	prop := NewProp(world, monopet.NewProp("plant", solidSprite("plant", 3), 0, 0), 0)

	Update(world, 1.5)

	if f := Rig.Get(rig).Rig.Part(monopet.PartBody).Frame(); f != 1 {
		t.Errorf("rig body frame = %d, want 1", f)
	}
	if f := Prop.Get(prop).Prop.Frame(); f != 1 {
		t.Errorf("prop frame = %d, want 1", f)
	}
}

func TestDrawLayerOrder(t *testing.T) {
	tests := []struct {
		name      string
		rigLayer  int
		propLayer int
		want      bool
	}{
		{"prop above rig", 0, 1, false},
		{"rig above prop", 1, 0, true},
		{"same layer draws props first", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := donburi.NewWorld()
			NewRig(world, petAt(4, 4), tt.rigLayer)
			NewProp(world, monopet.NewProp("cover", eraser(), 4, 4), tt.propLayer)

			fb := monopet.NewFramebuffer(16, 16)
			Draw(world, monopet.NewRenderer(fb))

			if got := fb.Pixel(4, 4) == monopet.On; got != tt.want {
				t.Errorf("pixel (4,4) lit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawSkipsEmptyComponents(t *testing.T) {
	world := donburi.NewWorld()
	NewRig(world, nil, 0)
	NewProp(world, nil, 0)

	fb := monopet.NewFramebuffer(8, 8)
	Draw(world, monopet.NewRenderer(fb))
	Update(world, 1)
	if fb.Bitmap().Count() != 0 {
		t.Error("empty components drew pixels")
	}
}
