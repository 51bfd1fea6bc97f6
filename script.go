package monopet

import (
	"encoding/json"
	"fmt"
)

// PoseSource resolves pose names for scripts. *assets.Library implements it.
type PoseSource interface {
	Pose(name string) (*Pose, error)
}

// scriptStep is a single action in a rig script.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Pose    string  `json:"pose,omitempty"`
	On      bool    `json:"on,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of a rig script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"pose": true, "mirror": true, "move": true, "advance": true,
	"reset": true, "wait": true, "screenshot": true,
}

// ScriptRunner drives a rig through a sequence of poses, moves and
// screenshots, one step per tick, for automated visual checks of pose data.
//
//	{"steps": [
//	  {"action": "pose", "pose": "sitting.side.happy"},
//	  {"action": "advance", "seconds": 0.5},
//	  {"action": "screenshot", "label": "happy"}
//	]}
type ScriptRunner struct {
	// Dir is where screenshots are written. Defaults to "screenshots".
	Dir string

	steps     []scriptStep
	poses     PoseSource
	cursor    int
	waitCount int
	done      bool
	queue     []string
}

// LoadScript parses a JSON rig script. poses may be nil when the script has
// no pose steps.
func LoadScript(jsonData []byte, poses PoseSource) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("monopet: parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("monopet: parse script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("monopet: parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "pose" && poses == nil {
			return nil, fmt.Errorf("monopet: parse script: step %d: pose step without a pose source", i)
		}
	}
	return &ScriptRunner{Dir: "screenshots", steps: s.Steps, poses: poses}, nil
}

// Done reports whether every step has run and every screenshot has been
// written.
func (r *ScriptRunner) Done() bool {
	return r.done && len(r.queue) == 0
}

// Step runs the next step against rig. Call it once per tick before drawing.
func (r *ScriptRunner) Step(rig *Rig) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "pose":
		p, err := r.poses.Pose(st.Pose)
		if err != nil {
			return fmt.Errorf("monopet: script step %d: %w", r.cursor-1, err)
		}
		rig.SetPose(p)
	case "mirror":
		rig.Mirror = st.On
	case "move":
		rig.X, rig.Y = st.X, st.Y
	case "advance":
		rig.Advance(st.Seconds)
	case "reset":
		rig.ResetAnimation()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "screenshot":
		r.queue = append(r.queue, st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}

// Flush writes the screenshots queued this tick from fb. Call it after the
// frame is drawn. It returns the paths written.
func (r *ScriptRunner) Flush(fb *Framebuffer) ([]string, error) {
	if len(r.queue) == 0 {
		return nil, nil
	}
	defer func() { r.queue = r.queue[:0] }()
	paths := make([]string, 0, len(r.queue))
	for _, label := range r.queue {
		p, err := fb.Screenshot(r.Dir, label)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
