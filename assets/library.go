// Package assets loads sprite and pose libraries for monopet rigs from YAML.
//
// A library file declares sprites (frames as ASCII art, packed hex or image
// files, plus anchors and attachment points) and poses that assign sprites
// to skeleton parts. Pose names are dotted "position.direction.emotion"
// triples such as "sitting.side.happy".
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/monopet"
)

var (
	// ErrInvalidSprite reports a sprite whose frames or points are malformed.
	ErrInvalidSprite = errors.New("assets: invalid sprite")
	// ErrInvalidPose reports a pose that names unknown parts or sprites.
	ErrInvalidPose = errors.New("assets: invalid pose")
	// ErrUnknownPose is returned by Library.Pose for names it does not hold.
	ErrUnknownPose = errors.New("assets: unknown pose")
	// ErrUnknownSprite is returned by Library.Sprite for names it does not hold.
	ErrUnknownSprite = errors.New("assets: unknown sprite")
)

// Options tune loading. The zero value validates poses against
// monopet.PetSkeleton, thresholds images at 128 and logs to the logrus
// standard logger.
type Options struct {
	Skeleton  *monopet.Skeleton
	Threshold uint8
	Logger    logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.Skeleton == nil {
		s := monopet.PetSkeleton
		o.Skeleton = &s
	}
	if o.Threshold == 0 {
		o.Threshold = defaultThreshold
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger().WithField("component", "assets")
	}
	return o
}

var _ monopet.PoseSource = (*Library)(nil)

// Library holds decoded sprites and poses. It is immutable once loaded;
// reloading builds a new Library.
type Library struct {
	sprites map[string]*monopet.Sprite
	poses   map[string]*monopet.Pose
}

// Load reads and decodes the library file at name within fsys. Image frames
// are resolved relative to the library file's directory.
func Load(fsys fs.FS, name string, opts Options) (*Library, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", name, err)
	}
	lib, err := Parse(data, fsys, path.Dir(name), opts)
	if err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", name, err)
	}
	return lib, nil
}

// Parse decodes library YAML. Image frames are opened from fsys relative to
// dir; fsys may be nil when no frame uses a file.
func Parse(data []byte, fsys fs.FS, dir string, opts Options) (*Library, error) {
	opts = opts.withDefaults()

	var spec LibrarySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("assets: unmarshal: %w", err)
	}
	return Build(spec, fsys, dir, opts)
}

// Build decodes an already parsed LibrarySpec.
func Build(spec LibrarySpec, fsys fs.FS, dir string, opts Options) (*Library, error) {
	opts = opts.withDefaults()
	lib := &Library{
		sprites: make(map[string]*monopet.Sprite, len(spec.Sprites)),
		poses:   make(map[string]*monopet.Pose, len(spec.Poses)),
	}

	for _, name := range sortedKeys(spec.Sprites) {
		s, err := buildSprite(name, spec.Sprites[name], fsys, dir, opts.Threshold)
		if err != nil {
			return nil, err
		}
		lib.sprites[name] = s
	}

	parts := make(map[string]bool, len(opts.Skeleton.Bones))
	for _, b := range opts.Skeleton.Bones {
		parts[b.Name] = true
	}
	used := make(map[string]bool, len(lib.sprites))
	for _, name := range sortedKeys(spec.Poses) {
		if _, _, _, err := SplitPoseName(name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPose, err)
		}
		ps := spec.Poses[name]
		if len(ps.Parts) == 0 {
			return nil, fmt.Errorf("%w: %s: no parts", ErrInvalidPose, name)
		}
		pose := &monopet.Pose{
			Name:      name,
			HeadFirst: ps.HeadFirst,
			Parts:     make(map[string]monopet.PartPose, len(ps.Parts)),
		}
		for part, pp := range ps.Parts {
			if !parts[part] {
				return nil, fmt.Errorf("%w: %s: unknown part %q", ErrInvalidPose, name, part)
			}
			s, ok := lib.sprites[pp.Sprite]
			if !ok {
				return nil, fmt.Errorf("%w: %s: part %s uses unknown sprite %q", ErrInvalidPose, name, part, pp.Sprite)
			}
			if pp.Speed < 0 {
				return nil, fmt.Errorf("%w: %s: part %s has negative speed", ErrInvalidPose, name, part)
			}
			used[pp.Sprite] = true
			pose.Parts[part] = monopet.PartPose{Sprite: s, Speed: pp.Speed}
		}
		lib.poses[name] = pose
	}

	for name := range lib.sprites {
		if !used[name] && len(lib.poses) > 0 {
			opts.Logger.WithField("sprite", name).Debug("sprite not used by any pose")
		}
	}
	opts.Logger.WithFields(logrus.Fields{
		"sprites": len(lib.sprites),
		"poses":   len(lib.poses),
	}).Info("library loaded")
	return lib, nil
}

func buildSprite(name string, spec SpriteSpec, fsys fs.FS, dir string, threshold uint8) (*monopet.Sprite, error) {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidSprite, name, fmt.Sprintf(format, args...))
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fail("size %dx%d", spec.Width, spec.Height)
	}
	if len(spec.Frames) == 0 {
		return nil, fail("no frames")
	}
	if spec.ExtraFrames < 0 {
		return nil, fail("negative extra_frames")
	}
	if len(spec.Fill) != 0 && len(spec.Fill) != len(spec.Frames) {
		return nil, fail("%d fill frames for %d frames", len(spec.Fill), len(spec.Frames))
	}
	if fsys == nil {
		for _, f := range append(append([]FrameSpec(nil), spec.Frames...), spec.Fill...) {
			if f.File != "" {
				return nil, fail("file frame %s without a filesystem", f.File)
			}
		}
	}

	s := &monopet.Sprite{
		Name:        name,
		Width:       spec.Width,
		Height:      spec.Height,
		ExtraFrames: spec.ExtraFrames,
		Anchor:      spec.Anchor.attach(),
		Points:      make(map[string]monopet.Attach, len(spec.Points)),
	}
	for i, f := range spec.Frames {
		b, err := decodeFrame(fsys, dir, f, spec.Width, spec.Height, threshold)
		if err != nil {
			return nil, fail("frame %d: %v", i, err)
		}
		s.Frames = append(s.Frames, b)
	}
	for i, f := range spec.Fill {
		b, err := decodeFrame(fsys, dir, f, spec.Width, spec.Height, threshold)
		if err != nil {
			return nil, fail("fill %d: %v", i, err)
		}
		s.FillFrames = append(s.FillFrames, b)
	}

	n := len(s.Frames)
	check := func(label string, p PointSpec) error {
		for axis, v := range map[string]monopet.Value{"x": p.X.Value, "y": p.Y.Value} {
			if v.IsPerFrame() && v.Len() != n {
				return fail("%s.%s has %d values for %d frames", label, axis, v.Len(), n)
			}
		}
		return nil
	}
	if err := check("anchor", spec.Anchor); err != nil {
		return nil, err
	}
	for _, pname := range sortedKeys(spec.Points) {
		p := spec.Points[pname]
		if err := check(pname, p); err != nil {
			return nil, err
		}
		s.Points[pname] = p.attach()
	}
	return s, nil
}

// SplitPoseName splits "position.direction.emotion".
func SplitPoseName(name string) (position, direction, emotion string, err error) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("pose name %q is not position.direction.emotion", name)
	}
	return parts[0], parts[1], parts[2], nil
}

// Pose returns the named pose. It implements monopet.PoseSource.
func (l *Library) Pose(name string) (*monopet.Pose, error) {
	p, ok := l.poses[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPose, name)
	}
	return p, nil
}

// Sprite returns the named sprite.
func (l *Library) Sprite(name string) (*monopet.Sprite, error) {
	s, ok := l.sprites[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSprite, name)
	}
	return s, nil
}

// PoseNames returns every pose name, sorted.
func (l *Library) PoseNames() []string { return sortedKeys(l.poses) }

// SpriteNames returns every sprite name, sorted.
func (l *Library) SpriteNames() []string { return sortedKeys(l.sprites) }

// PosesMatching returns the sorted pose names whose position, direction and
// emotion match; empty arguments match anything.
func (l *Library) PosesMatching(position, direction, emotion string) []string {
	var out []string
	for _, name := range l.PoseNames() {
		p, d, e, _ := SplitPoseName(name)
		if (position == "" || p == position) &&
			(direction == "" || d == direction) &&
			(emotion == "" || e == emotion) {
			out = append(out, name)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
