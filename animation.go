package monopet

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields of a rig or prop together.
// Create one with the constructors below and call Update(dt) each tick.
//
// There is no global animation manager; callers own and update their groups.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields. Done becomes true once every tween has finished.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Cancel stops the group where it is.
func (g *TweenGroup) Cancel() { g.Done = true }

func tween2(ax, ay *float64, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(*ax), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(*ay), float32(toY), duration, fn)
	g.fields[0] = ax
	g.fields[1] = ay
	return g
}

func tween1(a *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*a), float32(to), duration, fn)
	g.fields[0] = a
	return g
}

// TweenRigPosition moves rig.X and rig.Y to the target over duration seconds.
func TweenRigPosition(rig *Rig, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tween2(&rig.X, &rig.Y, toX, toY, duration, fn)
}

// TweenPropPosition moves prop.X and prop.Y to the target over duration
// seconds.
func TweenPropPosition(prop *Prop, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tween2(&prop.X, &prop.Y, toX, toY, duration, fn)
}

// TweenPropRotation turns the prop to the given clockwise angle in degrees.
// Intermediate angles are not quantized, so a transform cache attached to
// the renderer fills with one entry per distinct angle drawn.
func TweenPropRotation(prop *Prop, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tween1(&prop.Options.Rotate, to, duration, fn)
}

// TweenPropSkew shears the prop towards the given skew factors.
func TweenPropSkew(prop *Prop, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tween2(&prop.Options.SkewX, &prop.Options.SkewY, toX, toY, duration, fn)
}
