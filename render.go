package monopet

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DrawOptions controls how a bitmap is transformed and blitted. The zero
// value draws the bitmap untransformed with unlit pixels transparent.
type DrawOptions struct {
	// Opaque copies every pixel, ignoring Key.
	Opaque bool
	// Key is the source color treated as transparent when not Opaque.
	Key Color
	// Invert flips every pixel after the geometric transforms.
	Invert bool

	MirrorH bool
	MirrorV bool
	// Rotate is a clockwise angle in degrees.
	Rotate float64
	SkewX  float64
	SkewY  float64
}

// blitKey returns the Target key implied by the options.
func (o DrawOptions) blitKey() Key {
	if o.Opaque {
		return KeyNone
	}
	return KeyFor(o.Key)
}

// renderStats holds per-frame counters. Only reported in debug mode.
type renderStats struct {
	blits       int
	transforms  int
	cacheHits   int
	cacheMisses int
	polygons    int
}

// Renderer draws bitmaps, sprites and polygons into a Target. A Renderer
// is not safe for concurrent use; drive it from the loop goroutine.
type Renderer struct {
	target Target
	cache  *TransformCache
	log    logrus.FieldLogger

	debug      bool
	stats      renderStats
	frameStart time.Time
}

// NewRenderer creates a renderer writing into target.
func NewRenderer(target Target) *Renderer {
	return &Renderer{
		target:     target,
		log:        logrus.StandardLogger().WithField("component", "monopet"),
		frameStart: time.Now(),
	}
}

// Target returns the surface the renderer draws into.
func (r *Renderer) Target() Target { return r.target }

// SetCache attaches a transform cache. Pass nil to disable caching.
func (r *Renderer) SetCache(c *TransformCache) { r.cache = c }

// Cache returns the attached transform cache, or nil.
func (r *Renderer) Cache() *TransformCache { return r.cache }

// SetLogger replaces the logger used for debug output.
func (r *Renderer) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	r.log = l
}

// SetDebugMode enables per-frame stats logging on EndFrame.
func (r *Renderer) SetDebugMode(enabled bool) { r.debug = enabled }

// EndFrame closes the current frame. In debug mode it logs the frame's
// blit, transform and cache counts at debug level. The counters reset
// either way.
func (r *Renderer) EndFrame() {
	if r.debug {
		r.log.WithFields(logrus.Fields{
			"blits":        r.stats.blits,
			"transforms":   r.stats.transforms,
			"cache_hits":   r.stats.cacheHits,
			"cache_misses": r.stats.cacheMisses,
			"polygons":     r.stats.polygons,
			"frame_time":   time.Since(r.frameStart),
		}).Debug("frame")
	}
	r.stats = renderStats{}
	r.frameStart = time.Now()
}

// DrawBitmap draws b with its top-left corner at (x, y).
//
// Transforms apply in a fixed order: MirrorH, MirrorV, Rotate, Skew. Rotate
// and Skew change the bitmap size; the origin shifts by half the size change
// so the result stays centred where the untransformed bitmap would be.
// Invert applies last, then the result is blitted keyed or opaque.
func (r *Renderer) DrawBitmap(b *Bitmap, x, y int, opts DrawOptions) {
	if b == nil || b.Width == 0 || b.Height == 0 {
		return
	}
	img := b
	if opts.MirrorH {
		img = r.transform(img, opMirrorH, 0, 0)
	}
	if opts.MirrorV {
		img = r.transform(img, opMirrorV, 0, 0)
	}
	if opts.Rotate != 0 {
		w, h := img.Width, img.Height
		img = r.transform(img, opRotate, opts.Rotate, 0)
		x += floorDiv(w-img.Width, 2)
		y += floorDiv(h-img.Height, 2)
	}
	if opts.SkewX != 0 || opts.SkewY != 0 {
		w, h := img.Width, img.Height
		img = r.transform(img, opSkew, opts.SkewX, opts.SkewY)
		x += floorDiv(w-img.Width, 2)
		y += floorDiv(h-img.Height, 2)
	}
	if opts.Invert {
		img = r.transform(img, opInvert, 0, 0)
	}
	r.target.Blit(img, x, y, opts.blitKey())
	r.stats.blits++
}

// DrawSprite draws one frame of s at (x, y). When the sprite has fill frames
// the matching fill is drawn first with Invert toggled and the opposite key,
// so its silhouette overwrites whatever lies beneath the sprite before the
// outline goes on top.
func (r *Renderer) DrawSprite(s *Sprite, x, y, frame int, opts DrawOptions) {
	if s == nil || frame < 0 || frame >= len(s.Frames) {
		return
	}
	if frame < len(s.FillFrames) && s.FillFrames[frame] != nil {
		fill := opts
		fill.Invert = !opts.Invert
		fill.Key = opts.Key.Inverse()
		r.DrawBitmap(s.FillFrames[frame], x, y, fill)
	}
	r.DrawBitmap(s.Frames[frame], x, y, opts)
}

// transform applies op to src, consulting the cache when one is attached.
func (r *Renderer) transform(src *Bitmap, op transformOp, a, b float64) *Bitmap {
	if out, ok := r.cache.Get(src, op, a, b); ok {
		r.stats.cacheHits++
		return out
	}
	if r.cache != nil {
		r.stats.cacheMisses++
	}
	r.stats.transforms++

	var out *Bitmap
	switch op {
	case opMirrorH:
		out = MirrorH(src)
	case opMirrorV:
		out = MirrorV(src)
	case opRotate:
		out = Rotate(src, a)
	case opSkew:
		out = Skew(src, a, b)
	case opInvert:
		out = src.Inverted()
	default:
		return src
	}
	r.cache.Put(src, op, a, b, out)
	return out
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
