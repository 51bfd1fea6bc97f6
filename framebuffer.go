package monopet

import (
	"image"
	"image/color"
)

// Target is the surface a Renderer draws into. The blit is the only
// operation the sprite pipeline needs; pixel access serves the polygon
// filler and tests. *Framebuffer implements it.
type Target interface {
	Width() int
	Height() int
	Pixel(x, y int) Color
	SetPixel(x, y int, c Color)
	// Blit copies src with its top-left corner at (x, y). Source pixels
	// equal to key are skipped unless key is KeyNone. Pixels falling outside
	// the target are dropped.
	Blit(src *Bitmap, x, y int, key Key)
}

// Display presents a finished frame on hardware or a window.
type Display interface {
	Present(fb *Framebuffer) error
}

// Framebuffer is an in-memory 1-bit display buffer in the same packed
// layout as sprite frames.
type Framebuffer struct {
	bits *Bitmap
}

// NewFramebuffer creates a cleared framebuffer of the given size.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{bits: NewBitmap(width, height)}
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.bits.Width }

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.bits.Height }

// Bitmap returns the backing packed bitmap, laid out the way an SSD1306
// driver in horizontal (MONO_HLSB) mode expects it.
func (fb *Framebuffer) Bitmap() *Bitmap { return fb.bits }

// Image returns an image.Image view of the current contents.
func (fb *Framebuffer) Image() image.Image { return fb.bits }

// Clear unlights every pixel.
func (fb *Framebuffer) Clear() { fb.bits.Fill(Off) }

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c Color) { fb.bits.Fill(c) }

// Pixel returns the color at (x, y); outside the buffer it is Off.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if fb.bits.Bit(x, y) {
		return On
	}
	return Off
}

// SetPixel writes a single pixel. Writes outside the buffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= fb.bits.Width || y >= fb.bits.Height {
		return
	}
	fb.bits.setBit(x, y, c == On)
}

// Blit implements Target.
func (fb *Framebuffer) Blit(src *Bitmap, x, y int, key Key) {
	clip := Rect{0, 0, fb.bits.Width, fb.bits.Height}
	if !clip.Intersects(Rect{x, y, src.Width, src.Height}) {
		return
	}
	x0, y0 := max(0, -x), max(0, -y)
	x1, y1 := min(src.Width, fb.bits.Width-x), min(src.Height, fb.bits.Height-y)
	for sy := y0; sy < y1; sy++ {
		for sx := x0; sx < x1; sx++ {
			on := src.Bit(sx, sy)
			if key != KeyNone && on == (key == KeyOn) {
				continue
			}
			fb.bits.setBit(x+sx, y+sy, on)
		}
	}
}

// HLine draws a horizontal run of w pixels starting at (x, y).
func (fb *Framebuffer) HLine(x, y, w int, c Color) {
	for i := 0; i < w; i++ {
		fb.SetPixel(x+i, y, c)
	}
}

// VLine draws a vertical run of h pixels starting at (x, y).
func (fb *Framebuffer) VLine(x, y, h int, c Color) {
	for i := 0; i < h; i++ {
		fb.SetPixel(x, y+i, c)
	}
}

// Line draws a line between two points, both ends included.
func (fb *Framebuffer) Line(x0, y0, x1, y1 int, c Color) {
	drawLine(fb, x0, y0, x1, y1, c)
}

// Rect draws the outline of a rectangle.
func (fb *Framebuffer) Rect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	fb.HLine(x, y, w, c)
	fb.HLine(x, y+h-1, w, c)
	fb.VLine(x, y, h, c)
	fb.VLine(x+w-1, y, h, c)
}

// FillRect fills a rectangle.
func (fb *Framebuffer) FillRect(x, y, w, h int, c Color) {
	for j := 0; j < h; j++ {
		fb.HLine(x, y+j, w, c)
	}
}

// RGBA expands the buffer to an RGBA image using the given panel colors.
func (fb *Framebuffer) RGBA(on, off color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.bits.Width, fb.bits.Height))
	fb.AppendRGBA(img.Pix[:0], on, off)
	return img
}

// AppendRGBA appends 4 bytes per pixel, row-major, to dst and returns the
// extended slice. Suitable for ebiten.Image.WritePixels.
func (fb *Framebuffer) AppendRGBA(dst []byte, on, off color.RGBA) []byte {
	for y := 0; y < fb.bits.Height; y++ {
		for x := 0; x < fb.bits.Width; x++ {
			c := off
			if fb.bits.Bit(x, y) {
				c = on
			}
			dst = append(dst, c.R, c.G, c.B, c.A)
		}
	}
	return dst
}
