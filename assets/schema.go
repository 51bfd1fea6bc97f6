package assets

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/monopet"
)

// LibrarySpec is the YAML layout of a sprite and pose library.
//
//	sprites:
//	  body_sit:
//	    width: 16
//	    height: 12
//	    extra_frames: 2
//	    anchor: {x: 8, y: 11}
//	    points:
//	      head: {x: [4, 4, 5], y: 0}
//	    frames:
//	      - art: |
//	          ....####....
//	      - file: body_sit_2.png
//	    fill:
//	      - hex: "0ff0 1ff8 ..."
//	poses:
//	  sitting.side.neutral:
//	    head_first: false
//	    parts:
//	      body: {sprite: body_sit, speed: 1}
type LibrarySpec struct {
	Sprites map[string]SpriteSpec `yaml:"sprites"`
	Poses   map[string]PoseSpec   `yaml:"poses"`
}

type SpriteSpec struct {
	Width       int                  `yaml:"width"`
	Height      int                  `yaml:"height"`
	ExtraFrames int                  `yaml:"extra_frames"`
	Anchor      PointSpec            `yaml:"anchor"`
	Points      map[string]PointSpec `yaml:"points"`
	Frames      []FrameSpec          `yaml:"frames"`
	Fill        []FrameSpec          `yaml:"fill"`
}

// FrameSpec holds exactly one of Art, Hex or File.
type FrameSpec struct {
	// Art is ASCII art, one line per pixel row; '#' and friends are lit.
	Art string `yaml:"art"`
	// Hex is the packed bitmap as hex digits. Whitespace is ignored.
	Hex string `yaml:"hex"`
	// File names a PNG or BMP image relative to the library file.
	File string `yaml:"file"`
	// Threshold overrides the luminance cut-off for File frames.
	Threshold *uint8 `yaml:"threshold"`
}

type PointSpec struct {
	X ValueSpec `yaml:"x"`
	Y ValueSpec `yaml:"y"`
}

func (p PointSpec) attach() monopet.Attach {
	return monopet.Attach{X: p.X.Value, Y: p.Y.Value}
}

// ValueSpec is a coordinate written either as a number or as a list with
// one number per frame.
type ValueSpec struct {
	monopet.Value
}

func (v *ValueSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("line %d: coordinate must be an integer: %w", value.Line, err)
		}
		v.Value = monopet.Const(n)
	case yaml.SequenceNode:
		var ns []int
		if err := value.Decode(&ns); err != nil {
			return fmt.Errorf("line %d: per-frame coordinates must be integers: %w", value.Line, err)
		}
		if len(ns) == 0 {
			return fmt.Errorf("line %d: per-frame coordinate list is empty", value.Line)
		}
		v.Value = monopet.PerFrame(ns...)
	default:
		return fmt.Errorf("line %d: coordinate must be a number or a list", value.Line)
	}
	return nil
}

type PoseSpec struct {
	HeadFirst bool                `yaml:"head_first"`
	Parts     map[string]PartSpec `yaml:"parts"`
}

type PartSpec struct {
	Sprite string  `yaml:"sprite"`
	Speed  float64 `yaml:"speed"`
}
