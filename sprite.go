package monopet

import "math"

// Value is an attachment coordinate that is either one constant or a list
// with one entry per frame. Build it with Const or PerFrame and read it with
// At; callers never need to inspect which form they hold.
type Value struct {
	constant int
	frames   []int
}

// Const returns a Value that is v on every frame.
func Const(v int) Value {
	return Value{constant: v}
}

// PerFrame returns a Value with one entry per frame. The slice is copied.
func PerFrame(v ...int) Value {
	frames := make([]int, len(v))
	copy(frames, v)
	return Value{frames: frames}
}

// At resolves the value for frame. Per-frame values index their list; a
// frame past the end reads the last entry.
func (v Value) At(frame int) int {
	if v.frames == nil {
		return v.constant
	}
	if len(v.frames) == 0 {
		return 0
	}
	if frame < 0 {
		frame = 0
	}
	if frame >= len(v.frames) {
		frame = len(v.frames) - 1
	}
	return v.frames[frame]
}

// IsPerFrame reports whether the value varies by frame.
func (v Value) IsPerFrame() bool { return v.frames != nil }

// Len returns the number of per-frame entries, or 0 for a constant.
func (v Value) Len() int { return len(v.frames) }

// Attach is a point in a sprite's local pixel space.
type Attach struct {
	X, Y Value
}

// Pt returns an Attach with constant coordinates.
func Pt(x, y int) Attach {
	return Attach{X: Const(x), Y: Const(y)}
}

// At resolves the point for frame.
func (a Attach) At(frame int) Point {
	return Point{a.X.At(frame), a.Y.At(frame)}
}

// Sprite describes one animated body part or object: its frames, optional
// fill silhouettes, and named attachment points. Frames share Width and
// Height. Sprites are immutable after construction and may be shared by any
// number of rigs and props.
type Sprite struct {
	Name   string
	Width  int
	Height int

	// Frames are the outline bitmaps, at least one.
	Frames []*Bitmap
	// FillFrames, when set, parallel Frames. A fill frame is the sprite's
	// solid silhouette; it is drawn before the outline to occlude the
	// background.
	FillFrames []*Bitmap
	// ExtraFrames is the number of pause steps after the last frame during
	// which the first frame is shown.
	ExtraFrames int

	// Anchor is the point that lands on the parent's attachment point.
	Anchor Attach
	// Points holds named attachment points for children ("head", "eye",
	// "tail" on the pet parts).
	Points map[string]Attach
}

// TotalFrames returns len(Frames)+ExtraFrames, the animation cycle length.
func (s *Sprite) TotalFrames() int {
	return len(s.Frames) + s.ExtraFrames
}

// FrameIndex maps an animation counter to the frame to display. Counters in
// the pause region past the last frame show frame 0.
func (s *Sprite) FrameIndex(counter float64) int {
	total := s.TotalFrames()
	if total <= 0 {
		return 0
	}
	i := int(math.Floor(counter)) % total
	if i < 0 {
		i += total
	}
	if i >= len(s.Frames) {
		return 0
	}
	return i
}

// mirrorX reflects a local x coordinate within the sprite width.
func (s *Sprite) mirrorX(x int, mirror bool) int {
	if mirror {
		return s.Width - x
	}
	return x
}

// AnchorAt resolves the anchor for frame. When mirror is set, x becomes
// Width-x.
func (s *Sprite) AnchorAt(frame int, mirror bool) Point {
	p := s.Anchor.At(frame)
	p.X = s.mirrorX(p.X, mirror)
	return p
}

// Point resolves the named attachment point for frame, mirrored like
// AnchorAt. ok is false when the sprite has no such point.
func (s *Sprite) Point(name string, frame int, mirror bool) (p Point, ok bool) {
	a, ok := s.Points[name]
	if !ok {
		return Point{}, false
	}
	p = a.At(frame)
	p.X = s.mirrorX(p.X, mirror)
	return p, true
}

// AnimationCounter is a fractional frame position advanced by elapsed time.
// The zero value starts at frame 0.
type AnimationCounter struct {
	Value float64
}

// Advance moves the counter by dt*speed frames and wraps it into
// [0, s.TotalFrames()).
func (c *AnimationCounter) Advance(dt, speed float64, s *Sprite) {
	total := float64(s.TotalFrames())
	if total <= 0 {
		c.Value = 0
		return
	}
	c.Value = math.Mod(c.Value+dt*speed, total)
	if c.Value < 0 {
		c.Value += total
	}
}

// Frame returns the frame of s the counter currently shows.
func (c *AnimationCounter) Frame(s *Sprite) int {
	return s.FrameIndex(c.Value)
}

// Reset puts the counter back at frame 0.
func (c *AnimationCounter) Reset() { c.Value = 0 }
