package monopet

// Prop is a single-sprite scene object such as a bowl, a plant or the moon.
// It goes straight through the blit pipeline without a skeleton.
type Prop struct {
	Name    string
	Sprite  *Sprite
	X, Y    float64
	Speed   float64
	Counter AnimationCounter
	Options DrawOptions
	Hidden  bool
}

// NewProp creates a visible prop at (x, y) animating at one frame per second.
func NewProp(name string, s *Sprite, x, y float64) *Prop {
	return &Prop{Name: name, Sprite: s, X: x, Y: y, Speed: 1}
}

// Advance moves the prop's animation by dt seconds. A zero Speed holds the
// current frame.
func (p *Prop) Advance(dt float64) {
	if p.Sprite == nil || p.Speed == 0 {
		return
	}
	p.Counter.Advance(dt, p.Speed, p.Sprite)
}

// Frame returns the frame currently shown.
func (p *Prop) Frame() int {
	if p.Sprite == nil {
		return 0
	}
	return p.Counter.Frame(p.Sprite)
}

// Draw blits the current frame with the prop's options.
func (p *Prop) Draw(r *Renderer) {
	if p.Hidden || p.Sprite == nil {
		return
	}
	r.DrawSprite(p.Sprite, int(p.X), int(p.Y), p.Frame(), p.Options)
}

// Bounds returns the untransformed rectangle the prop covers.
func (p *Prop) Bounds() Rect {
	if p.Sprite == nil {
		return Rect{}
	}
	return Rect{X: int(p.X), Y: int(p.Y), Width: p.Sprite.Width, Height: p.Sprite.Height}
}
