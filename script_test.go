package monopet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type poseMap map[string]*Pose

func (m poseMap) Pose(name string) (*Pose, error) {
	p, ok := m[name]
	if !ok {
		return nil, errors.New("unknown pose " + name)
	}
	return p, nil
}

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "pose", "pose": "sitting.side.happy"},
			{"action": "move", "x": 64, "y": 48},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "happy"}
		]
	}`)
	runner, err := LoadScript(data, poseMap{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].X != 64 || runner.steps[1].Y != 48 {
		t.Error("step 1 mismatch")
	}
	if runner.Dir != "screenshots" {
		t.Errorf("Dir = %q, want screenshots", runner.Dir)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		poses PoseSource
	}{
		{"invalid json", `not json`, nil},
		{"empty", `{"steps": []}`, nil},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, nil},
		{"pose without source", `{"steps": [{"action": "pose", "pose": "a.b.c"}]}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data), tt.poses); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScriptRunnerDrivesRig(t *testing.T) {
	body := &Sprite{Width: 1, Height: 1, Frames: frames(4, 1, 1)}
	poses := poseMap{
		"sitting.side.happy": {Name: "sitting.side.happy", Parts: map[string]PartPose{PartBody: {Sprite: body}}},
	}
	data := []byte(`{"steps": [
		{"action": "pose", "pose": "sitting.side.happy"},
		{"action": "mirror", "on": true},
		{"action": "move", "x": 3, "y": 4},
		{"action": "advance", "seconds": 2},
		{"action": "wait", "frames": 2},
		{"action": "reset"}
	]}`)
	runner, err := LoadScript(data, poses)
	if err != nil {
		t.Fatal(err)
	}
	rig := NewPetRig()

	for i := 0; i < 4; i++ {
		if err := runner.Step(rig); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if rig.Pose() == nil || rig.Pose().Name != "sitting.side.happy" {
		t.Fatal("pose step not applied")
	}
	if !rig.Mirror || rig.X != 3 || rig.Y != 4 {
		t.Errorf("rig = mirror %v at (%v,%v), want mirrored at (3,4)", rig.Mirror, rig.X, rig.Y)
	}
	if rig.Part(PartBody).Frame() != 2 {
		t.Errorf("body frame = %d, want 2", rig.Part(PartBody).Frame())
	}

	// wait 2: this tick plus one more.
	runner.Step(rig)
	runner.Step(rig)
	if runner.Done() {
		t.Fatal("runner finished before the reset step")
	}
	runner.Step(rig)
	if !runner.Done() {
		t.Error("runner should be done")
	}
	if rig.Part(PartBody).Counter.Value != 0 {
		t.Error("reset step not applied")
	}
}

func TestScriptRunnerUnknownPose(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "pose", "pose": "nope"}]}`), poseMap{})
	if err != nil {
		t.Fatal(err)
	}
	if err := runner.Step(NewPetRig()); err == nil {
		t.Error("expected error for an unknown pose")
	}
}

func TestScriptRunnerScreenshots(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "first shot"}
	]}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	runner.Dir = t.TempDir()
	if err := runner.Step(NewPetRig()); err != nil {
		t.Fatal(err)
	}
	if runner.Done() {
		t.Fatal("Done before the queued screenshot was flushed")
	}

	fb := NewFramebuffer(8, 4)
	fb.SetPixel(1, 1, On)
	paths, err := runner.Flush(fb)
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("paths = %v, want one", paths)
	}
	if filepath.Dir(paths[0]) != runner.Dir {
		t.Errorf("screenshot written to %s, want under %s", paths[0], runner.Dir)
	}
	if _, err := os.Stat(paths[0]); err != nil {
		t.Errorf("screenshot missing: %v", err)
	}
	if !runner.Done() {
		t.Error("runner should be done after Flush")
	}
}
