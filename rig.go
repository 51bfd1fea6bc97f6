package monopet

import (
	"errors"
	"fmt"
)

// Part names of the pet skeleton.
const (
	PartBody = "body"
	PartHead = "head"
	PartEyes = "eyes"
	PartTail = "tail"
)

// Bone places one part of a skeleton. A root bone has no Parent. A child's
// anchor lands on its parent's attachment point named Attach.
type Bone struct {
	Name   string
	Parent string
	Attach string
}

// Skeleton is the part hierarchy of a rig and the order parts are drawn in.
// Bones are listed parents first.
type Skeleton struct {
	Bones []Bone
	// DrawOrder lists parts back to front.
	DrawOrder []string
	// HeadFirstOrder replaces DrawOrder for poses with HeadFirst set.
	HeadFirstOrder []string
}

// PetSkeleton is the four-part character: the head rides on the body's
// "head" point, the eyes on the head's "eye" point and the tail on the
// body's "tail" point. The tail is drawn first and the eyes last; head-first
// poses swap head and body so the body overlaps the head.
var PetSkeleton = Skeleton{
	Bones: []Bone{
		{Name: PartBody},
		{Name: PartHead, Parent: PartBody, Attach: "head"},
		{Name: PartEyes, Parent: PartHead, Attach: "eye"},
		{Name: PartTail, Parent: PartBody, Attach: "tail"},
	},
	DrawOrder:      []string{PartTail, PartBody, PartHead, PartEyes},
	HeadFirstOrder: []string{PartTail, PartHead, PartBody, PartEyes},
}

// ErrInvalidSkeleton is returned by NewRig for malformed skeletons.
var ErrInvalidSkeleton = errors.New("monopet: invalid skeleton")

// Validate checks that bone names are unique, every parent is declared
// before its children, there is exactly one root and the draw orders only
// name known parts.
func (s Skeleton) Validate() error {
	seen := make(map[string]bool, len(s.Bones))
	roots := 0
	for _, b := range s.Bones {
		if b.Name == "" {
			return fmt.Errorf("%w: unnamed bone", ErrInvalidSkeleton)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate bone %q", ErrInvalidSkeleton, b.Name)
		}
		if b.Parent == "" {
			roots++
		} else if !seen[b.Parent] {
			return fmt.Errorf("%w: bone %q listed before its parent %q", ErrInvalidSkeleton, b.Name, b.Parent)
		}
		seen[b.Name] = true
	}
	if roots != 1 {
		return fmt.Errorf("%w: %d root bones, want 1", ErrInvalidSkeleton, roots)
	}
	for _, order := range [][]string{s.DrawOrder, s.HeadFirstOrder} {
		for _, name := range order {
			if !seen[name] {
				return fmt.Errorf("%w: draw order names unknown part %q", ErrInvalidSkeleton, name)
			}
		}
	}
	return nil
}

// PartPose assigns a sprite and animation speed to one part.
type PartPose struct {
	Sprite *Sprite
	// Speed is in frames per second. Zero means 1.
	Speed float64
}

// Pose is a complete set of part sprites, such as "sitting.side.happy".
type Pose struct {
	Name      string
	Parts     map[string]PartPose
	HeadFirst bool
}

// Part is the runtime state of one rig part.
type Part struct {
	Name    string
	Sprite  *Sprite
	Speed   float64
	Counter AnimationCounter
}

// Frame returns the frame the part currently shows.
func (p *Part) Frame() int {
	if p.Sprite == nil {
		return 0
	}
	return p.Counter.Frame(p.Sprite)
}

func (p *Part) advance(dt float64) {
	if p.Sprite == nil {
		return
	}
	speed := p.Speed
	if speed == 0 {
		speed = 1
	}
	p.Counter.Advance(dt, speed, p.Sprite)
}

// Placement is one part resolved to screen space for a single draw.
type Placement struct {
	Part   string
	Sprite *Sprite
	Frame  int
	// Origin is the top-left corner of the frame on the target.
	Origin Point
}

// Rig is a posable character built from a Skeleton. Each part owns its
// sprite, speed and animation counter; the rig chains anchors and
// attachment points every draw so per-frame points follow the animation.
type Rig struct {
	// X and Y are the world position used by Render, Prop-style callers and
	// tweens. The position is where the body anchor lands.
	X, Y float64
	// Mirror flips the rig horizontally in Render.
	Mirror bool
	// Options are applied to every part. MirrorH in Options combines with
	// the mirror argument of Draw.
	Options DrawOptions

	skeleton  Skeleton
	parts     []*Part
	index     map[string]int
	pose      *Pose
	drawOrder []string
}

// NewRig creates a rig for skeleton with no sprites assigned.
func NewRig(skeleton Skeleton) (*Rig, error) {
	if err := skeleton.Validate(); err != nil {
		return nil, err
	}
	r := &Rig{
		skeleton: skeleton,
		parts:    make([]*Part, len(skeleton.Bones)),
		index:    make(map[string]int, len(skeleton.Bones)),
	}
	for i, b := range skeleton.Bones {
		r.parts[i] = &Part{Name: b.Name}
		r.index[b.Name] = i
	}
	return r, nil
}

// NewPetRig creates a rig using PetSkeleton.
func NewPetRig() *Rig {
	r, err := NewRig(PetSkeleton)
	if err != nil {
		panic(err)
	}
	return r
}

// Skeleton returns the rig's skeleton.
func (r *Rig) Skeleton() Skeleton { return r.skeleton }

// Part returns the named part, or nil.
func (r *Rig) Part(name string) *Part {
	i, ok := r.index[name]
	if !ok {
		return nil
	}
	return r.parts[i]
}

// PartNames returns part names in skeleton order.
func (r *Rig) PartNames() []string {
	names := make([]string, len(r.parts))
	for i, p := range r.parts {
		names[i] = p.Name
	}
	return names
}

// SetSprite swaps the sprite of one part, keeping its counter. It reports
// whether the part exists.
func (r *Rig) SetSprite(part string, s *Sprite, speed float64) bool {
	p := r.Part(part)
	if p == nil {
		return false
	}
	p.Sprite = s
	p.Speed = speed
	return true
}

// SetPose assigns every part named in pose. Parts the pose does not name
// keep their sprites. Counters are kept so switching poses does not restart
// running animations.
func (r *Rig) SetPose(pose *Pose) {
	r.pose = pose
	if pose == nil {
		return
	}
	for name, pp := range pose.Parts {
		r.SetSprite(name, pp.Sprite, pp.Speed)
	}
}

// Pose returns the last pose set, or nil.
func (r *Rig) Pose() *Pose { return r.pose }

// ResetAnimation rewinds every part to frame 0.
func (r *Rig) ResetAnimation() {
	for _, p := range r.parts {
		p.Counter.Reset()
	}
}

// Advance moves every part's animation by dt seconds.
func (r *Rig) Advance(dt float64) {
	for _, p := range r.parts {
		p.advance(dt)
	}
}

// DrawOrder returns the parts back to front: the override set with
// SetDrawOrder, otherwise the skeleton order for the current pose.
func (r *Rig) DrawOrder() []string {
	if r.drawOrder != nil {
		return r.drawOrder
	}
	if r.pose != nil && r.pose.HeadFirst && r.skeleton.HeadFirstOrder != nil {
		return r.skeleton.HeadFirstOrder
	}
	if r.skeleton.DrawOrder != nil {
		return r.skeleton.DrawOrder
	}
	return r.PartNames()
}

// SetDrawOrder overrides the draw order. Unknown names are skipped when
// drawing. Pass nil to return to the skeleton's order.
func (r *Rig) SetDrawOrder(order []string) {
	if order == nil {
		r.drawOrder = nil
		return
	}
	r.drawOrder = append([]string(nil), order...)
}

// Layout resolves every part with a sprite to its screen origin and current
// frame, in skeleton order. (x, y) is where the body anchor lands.
//
// The root's origin is (x, y) minus its anchor. Each child's origin is its
// parent's origin plus the parent's attachment point minus the child's
// anchor. With mirror set every x coordinate is reflected within its sprite
// width first. Parts without a sprite, and their descendants, are left out.
func (r *Rig) Layout(x, y int, mirror bool) []Placement {
	out := make([]Placement, 0, len(r.parts))
	origins := make(map[string]Placement, len(r.parts))
	for i, b := range r.skeleton.Bones {
		p := r.parts[i]
		if p.Sprite == nil {
			continue
		}
		frame := p.Frame()
		anchor := p.Sprite.AnchorAt(frame, mirror)

		var base Point
		if b.Parent == "" {
			base = Point{x, y}
		} else {
			parent, ok := origins[b.Parent]
			if !ok {
				continue
			}
			at, _ := parent.Sprite.Point(b.Attach, parent.Frame, mirror)
			base = parent.Origin.Add(at)
		}
		pl := Placement{Part: b.Name, Sprite: p.Sprite, Frame: frame, Origin: base.Sub(anchor)}
		origins[b.Name] = pl
		out = append(out, pl)
	}
	return out
}

// Draw composites the rig with its body anchor at (x, y).
func (r *Rig) Draw(rd *Renderer, x, y int, mirror bool) {
	placed := r.Layout(x, y, mirror)
	byName := make(map[string]Placement, len(placed))
	for _, pl := range placed {
		byName[pl.Part] = pl
	}
	opts := r.Options
	opts.MirrorH = opts.MirrorH != mirror
	for _, name := range r.DrawOrder() {
		pl, ok := byName[name]
		if !ok {
			continue
		}
		rd.DrawSprite(pl.Sprite, pl.Origin.X, pl.Origin.Y, pl.Frame, opts)
	}
}

// Render draws the rig at its own position and mirror state.
func (r *Rig) Render(rd *Renderer) {
	r.Draw(rd, int(r.X), int(r.Y), r.Mirror)
}

// Bounds returns the union of the part frames placed at (x, y). It is empty
// when no part has a sprite.
func (r *Rig) Bounds(x, y int, mirror bool) Rect {
	placed := r.Layout(x, y, mirror)
	if len(placed) == 0 {
		return Rect{}
	}
	minX, minY := placed[0].Origin.X, placed[0].Origin.Y
	maxX, maxY := minX, minY
	for _, pl := range placed {
		minX = min(minX, pl.Origin.X)
		minY = min(minY, pl.Origin.Y)
		maxX = max(maxX, pl.Origin.X+pl.Sprite.Width)
		maxY = max(maxY, pl.Origin.Y+pl.Sprite.Height)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
