package monopet

import (
	"image"
	"image/color"
	"strings"
)

// bitmapIDCounter is a plain counter (no atomic — monopet is single-threaded).
var bitmapIDCounter uint32

func nextBitmapID() uint32 {
	bitmapIDCounter++
	return bitmapIDCounter
}

// Bitmap is a packed 1-bit-per-pixel image. Rows are stored top to bottom,
// most significant bit first, each row padded to a whole byte, so a row
// occupies BytesPerRow(Width) bytes. Padding bits carry no meaning.
//
// Bitmap implements image.Image so frames can be encoded or inspected with
// the standard image tooling.
type Bitmap struct {
	Pix           []byte
	Width, Height int

	id      uint32
	version uint32
}

// BytesPerRow returns the packed row stride for a bitmap of the given width.
func BytesPerRow(width int) int {
	return (width + 7) / 8
}

// NewBitmap allocates a cleared bitmap of the given size.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{
		Pix:    make([]byte, BytesPerRow(width)*height),
		Width:  width,
		Height: height,
		id:     nextBitmapID(),
	}
}

// WrapBitmap returns a bitmap backed by pix without copying it. pix must hold
// at least BytesPerRow(width)*height bytes.
func WrapBitmap(pix []byte, width, height int) *Bitmap {
	return &Bitmap{Pix: pix, Width: width, Height: height, id: nextBitmapID()}
}

// Stride returns the number of bytes per row.
func (b *Bitmap) Stride() int {
	return BytesPerRow(b.Width)
}

// ID returns a process-unique identity for the bitmap. Bitmaps built as
// struct literals receive their ID on first use.
func (b *Bitmap) ID() uint32 {
	if b.id == 0 {
		b.id = nextBitmapID()
	}
	return b.id
}

// Version counts mutations made through SetBit, Fill and Touch.
func (b *Bitmap) Version() uint32 {
	return b.version
}

// Touch marks the bitmap as modified. Call it after writing Pix directly so
// cached transforms of the old contents are no longer served.
func (b *Bitmap) Touch() {
	b.version++
}

// Bit reports whether the pixel at (x, y) is lit. Pixels outside the bitmap
// read as unlit.
func (b *Bitmap) Bit(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Stride()+x>>3]&(0x80>>uint(x&7)) != 0
}

// SetBit lights or clears the pixel at (x, y). Out-of-bounds writes are
// ignored.
func (b *Bitmap) SetBit(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.setBit(x, y, on)
	b.version++
}

// setBit writes a pixel without bounds checks or version bookkeeping. Used by
// transforms that fill freshly allocated results.
func (b *Bitmap) setBit(x, y int, on bool) {
	idx := y*b.Stride() + x>>3
	mask := byte(0x80 >> uint(x&7))
	if on {
		b.Pix[idx] |= mask
	} else {
		b.Pix[idx] &^= mask
	}
}

// Fill sets every pixel to c.
func (b *Bitmap) Fill(c Color) {
	var v byte
	if c == On {
		v = 0xFF
	}
	for i := range b.Pix {
		b.Pix[i] = v
	}
	b.clearPadding()
	b.version++
}

// Clone returns a deep copy with a fresh identity.
func (b *Bitmap) Clone() *Bitmap {
	c := NewBitmap(b.Width, b.Height)
	copy(c.Pix, b.Pix)
	return c
}

// Inverted returns a copy with every pixel flipped. Padding bits stay clear.
func (b *Bitmap) Inverted() *Bitmap {
	c := NewBitmap(b.Width, b.Height)
	for i := range c.Pix {
		c.Pix[i] = ^b.Pix[i]
	}
	c.clearPadding()
	return c
}

// Equal reports whether both bitmaps have the same size and the same visible
// pixels. Padding bits are ignored.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height {
		return false
	}
	stride := b.Stride()
	last := paddingMask(b.Width)
	for y := 0; y < b.Height; y++ {
		row := y * stride
		for i := 0; i < stride; i++ {
			m := byte(0xFF)
			if i == stride-1 {
				m = last
			}
			if b.Pix[row+i]&m != o.Pix[row+i]&m {
				return false
			}
		}
	}
	return true
}

// Count returns the number of lit pixels.
func (b *Bitmap) Count() int {
	n := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Bit(x, y) {
				n++
			}
		}
	}
	return n
}

// paddingMask returns the mask of meaningful bits in the last byte of a row.
func paddingMask(width int) byte {
	pad := (8 - width%8) % 8
	return byte(0xFF << uint(pad))
}

func (b *Bitmap) clearPadding() {
	if b.Width%8 == 0 {
		return
	}
	stride := b.Stride()
	m := paddingMask(b.Width)
	for y := 0; y < b.Height; y++ {
		b.Pix[y*stride+stride-1] &= m
	}
}

// --- image.Image ---

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image. Lit pixels are white.
func (b *Bitmap) At(x, y int) color.Color {
	if b.Bit(x, y) {
		return color.Gray{Y: 0xFF}
	}
	return color.Gray{}
}

// FromImage thresholds img into a packed bitmap. A pixel is lit when it is
// not fully transparent and its luminance is at least threshold.
func FromImage(img image.Image, threshold uint8) *Bitmap {
	r := img.Bounds()
	b := NewBitmap(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			if color.GrayModel.Convert(c).(color.Gray).Y >= threshold {
				b.setBit(x-r.Min.X, y-r.Min.Y, true)
			}
		}
	}
	return b
}

// ParseArt builds a bitmap from text rows, one string per pixel row. The
// characters '#', '@', 'X', 'x', '*' and '1' are lit; anything else is
// unlit. The width is the longest row.
func ParseArt(rows ...string) *Bitmap {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	b := NewBitmap(w, len(rows))
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			switch r[x] {
			case '#', '@', 'X', 'x', '*', '1':
				b.setBit(x, y, true)
			}
		}
	}
	return b
}

// String renders the bitmap as ParseArt-compatible rows.
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.Grow((b.Width + 1) * b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Bit(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
