package monopet

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newTestRenderer(w, h int) (*Renderer, *Framebuffer) {
	fb := NewFramebuffer(w, h)
	return NewRenderer(fb), fb
}

// ringSprite is a 5x5 outline square with a solid silhouette.
func ringSprite() *Sprite {
	outline := ParseArt(
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)
	fill := NewBitmap(5, 5)
	fill.Fill(On)
	return &Sprite{
		Name:       "ring",
		Width:      5,
		Height:     5,
		Frames:     []*Bitmap{outline},
		FillFrames: []*Bitmap{fill},
	}
}

func TestDrawBitmapZeroOptionsKeysUnlit(t *testing.T) {
	r, fb := newTestRenderer(3, 1)
	fb.Fill(On)
	r.DrawBitmap(ParseArt("#.."), 0, 0, DrawOptions{})
	assertArt(t, fb, "###")
}

func TestDrawBitmapOpaque(t *testing.T) {
	r, fb := newTestRenderer(3, 1)
	fb.Fill(On)
	r.DrawBitmap(ParseArt("#.."), 0, 0, DrawOptions{Opaque: true})
	assertArt(t, fb, "#..")
}

func TestDrawBitmapKeyOn(t *testing.T) {
	r, fb := newTestRenderer(3, 1)
	fb.Fill(On)
	r.DrawBitmap(ParseArt("#.."), 0, 0, DrawOptions{Key: On})
	assertArt(t, fb, "#..")

	fb.Clear()
	r.DrawBitmap(ParseArt("#.."), 0, 0, DrawOptions{Key: On})
	assertArt(t, fb, "...")
}

func TestDrawBitmapInvert(t *testing.T) {
	r, fb := newTestRenderer(3, 1)
	r.DrawBitmap(ParseArt("#.."), 0, 0, DrawOptions{Invert: true})
	assertArt(t, fb, ".##")
}

func TestDrawBitmapMirror(t *testing.T) {
	r, fb := newTestRenderer(3, 2)
	r.DrawBitmap(ParseArt("#..", "..."), 0, 0, DrawOptions{MirrorH: true, MirrorV: true})
	assertArt(t, fb, "...", "..#")
}

func TestDrawBitmapTransformOrder(t *testing.T) {
	b := ParseArt(
		"##.",
		"#..",
	)
	r, fb := newTestRenderer(8, 8)
	r.DrawBitmap(b, 2, 2, DrawOptions{MirrorH: true, Rotate: 90})

	want := Rotate(MirrorH(b), 90)
	ref := NewFramebuffer(8, 8)
	// 3x2 turned to 2x3 shifts the origin by (+0, -1) with floor rounding.
	ref.Blit(want, 2, 1, KeyOff)
	assertBitmap(t, "framebuffer", fb.Bitmap(), ref.Bitmap())
}

func TestDrawBitmapRotateRecentres(t *testing.T) {
	r, fb := newTestRenderer(10, 10)
	r.DrawBitmap(ParseArt("###"), 5, 5, DrawOptions{Rotate: 90})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x == 6 && y >= 4 && y <= 6
			if (fb.Pixel(x, y) == On) != want {
				t.Fatalf("pixel (%d,%d) = %v, want lit=%v\n%s", x, y, fb.Pixel(x, y), want, fb.Bitmap())
			}
		}
	}
}

func TestDrawBitmapSkewRecentres(t *testing.T) {
	r, fb := newTestRenderer(8, 4)
	r.DrawBitmap(ParseArt("##", "##"), 2, 1, DrawOptions{SkewX: 1})
	// 2x2 sheared to 3x2 shifts left by floor(-1/2) = -1.
	assertArt(t, fb,
		"........",
		".##.....",
		"..##....",
	)
}

func TestDrawBitmapNilAndEmpty(t *testing.T) {
	r, fb := newTestRenderer(2, 2)
	r.DrawBitmap(nil, 0, 0, DrawOptions{})
	r.DrawBitmap(NewBitmap(0, 0), 0, 0, DrawOptions{Opaque: true})
	if fb.Bitmap().Count() != 0 {
		t.Error("empty draws changed the framebuffer")
	}
}

func TestDrawSpriteFillOwnsInterior(t *testing.T) {
	r, fb := newTestRenderer(7, 7)
	fb.Fill(On)
	r.DrawSprite(ringSprite(), 0, 0, 0, DrawOptions{})

	if fb.Pixel(2, 2) != Off {
		t.Error("pixel (2,2) inside the silhouette should be cleared by the fill pass")
	}
	if fb.Pixel(0, 0) != On || fb.Pixel(4, 2) != On {
		t.Error("outline pixels should be lit")
	}
	if fb.Pixel(6, 6) != On {
		t.Error("pixel outside the sprite changed")
	}
}

func TestDrawSpriteWithoutFillIsTransparent(t *testing.T) {
	r, fb := newTestRenderer(7, 7)
	fb.Fill(On)
	s := ringSprite()
	s.FillFrames = nil
	r.DrawSprite(s, 0, 0, 0, DrawOptions{})
	if fb.Pixel(2, 2) != On {
		t.Error("pixel (2,2) should show the background without a fill frame")
	}
}

func TestDrawSpriteInvertedFillLightsInterior(t *testing.T) {
	r, fb := newTestRenderer(7, 7)
	r.DrawSprite(ringSprite(), 1, 1, 0, DrawOptions{Invert: true, Key: On})
	// Inverted: the silhouette paints lit, the outline paints unlit.
	if fb.Pixel(3, 3) != On {
		t.Error("interior should be lit by the inverted fill")
	}
	if fb.Pixel(1, 1) != Off {
		t.Error("outline should be unlit when inverted")
	}
	if fb.Pixel(0, 0) != Off {
		t.Error("pixel outside the sprite changed")
	}
}

func TestDrawSpriteFrameOutOfRange(t *testing.T) {
	r, fb := newTestRenderer(7, 7)
	r.DrawSprite(ringSprite(), 0, 0, 3, DrawOptions{})
	r.DrawSprite(nil, 0, 0, 0, DrawOptions{})
	if fb.Bitmap().Count() != 0 {
		t.Error("out-of-range frame should draw nothing")
	}
}

func TestRendererUsesCache(t *testing.T) {
	cache, err := NewTransformCache(CacheConfig{})
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	r, _ := newTestRenderer(16, 16)
	r.SetCache(cache)
	b := noiseBitmap(6, 6, 11)

	r.DrawBitmap(b, 0, 0, DrawOptions{MirrorH: true})
	r.DrawBitmap(b, 0, 0, DrawOptions{MirrorH: true})

	st := cache.Stats()
	if st.Misses != 1 || st.Hits != 1 {
		t.Errorf("stats = %+v, want 1 miss and 1 hit", st)
	}
}

func TestRendererDebugStats(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r, _ := newTestRenderer(8, 8)
	r.SetLogger(logger)
	r.SetDebugMode(true)

	r.DrawBitmap(ParseArt("#"), 0, 0, DrawOptions{Rotate: 90})
	r.DrawSprite(ringSprite(), 0, 0, 0, DrawOptions{})
	r.EndFrame()

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("EndFrame logged nothing in debug mode")
	}
	if got := entry.Data["blits"]; got != 3 {
		t.Errorf("blits = %v, want 3", got)
	}
	// Rotate plus the fill inversion.
	if got := entry.Data["transforms"]; got != 2 {
		t.Errorf("transforms = %v, want 2", got)
	}

	hook.Reset()
	r.SetDebugMode(false)
	r.EndFrame()
	if len(hook.Entries) != 0 {
		t.Error("EndFrame logged with debug mode off")
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{4, 2, 2}, {3, 2, 1}, {-1, 2, -1}, {-3, 2, -2}, {-4, 2, -2}, {0, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
