package monopet

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// skewEpsilon is the smallest |1 - skewX*skewY| Skew still inverts. Below it
// the shear collapses the sprite onto a line and Skew returns a blank bitmap.
const skewEpsilon = 0.001

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix. ok is false and
// the identity is returned when the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) (inv [6]float64, ok bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func translateAffine(tx, ty float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, tx, ty}
}

// sincosDegrees returns exact values at right angles so quarter turns stay
// lossless.
func sincosDegrees(deg float64) (sin, cos float64) {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	switch d {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(d * math.Pi / 180)
}

// mirrorByte reverses the bit order of a byte: swap nibbles, then bit
// pairs, then single bits.
func mirrorByte(b byte) byte {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

// MirrorH returns b flipped left to right.
//
// Each row is byte-reversed and every byte bit-reversed, which moves the row
// padding to the left edge; the row is then shifted left by the padding
// width to put it back on the right.
func MirrorH(b *Bitmap) *Bitmap {
	out := NewBitmap(b.Width, b.Height)
	stride := b.Stride()
	pad := uint((8 - b.Width%8) % 8)

	for y := 0; y < b.Height; y++ {
		src := b.Pix[y*stride : (y+1)*stride]
		dst := out.Pix[y*stride : (y+1)*stride]
		for i := range dst {
			dst[i] = mirrorByte(src[stride-1-i])
		}
		if pad == 0 {
			continue
		}
		for i := 0; i < stride; i++ {
			var next byte
			if i+1 < stride {
				next = dst[i+1]
			}
			dst[i] = dst[i]<<pad | next>>(8-pad)
		}
	}
	return out
}

// MirrorV returns b flipped top to bottom.
func MirrorV(b *Bitmap) *Bitmap {
	out := NewBitmap(b.Width, b.Height)
	stride := b.Stride()
	for y := 0; y < b.Height; y++ {
		dst := (b.Height - 1 - y) * stride
		copy(out.Pix[dst:dst+stride], b.Pix[y*stride:(y+1)*stride])
	}
	return out
}

// Rotate returns b rotated clockwise by degrees about its centre, in a new
// bounding box of round(|w·cos|+|h·sin|) by round(|w·sin|+|h·cos|) pixels.
//
// Every destination pixel is mapped back through the inverse rotation and
// takes the nearest source pixel. Quarter turns are exact; other angles
// alias since 1-bit pixels cannot be blended.
func Rotate(b *Bitmap, degrees float64) *Bitmap {
	sin, cos := sincosDegrees(degrees)
	w, h := float64(b.Width), float64(b.Height)

	nw := max(1, int(math.Abs(w*cos)+math.Abs(h*sin)+0.5))
	nh := max(1, int(math.Abs(w*sin)+math.Abs(h*cos)+0.5))

	// Destination pixel centre -> centred -> inverse rotation -> source pixel.
	inv := multiplyAffine(
		translateAffine(w/2-0.5, h/2-0.5),
		multiplyAffine(
			[6]float64{cos, -sin, sin, cos, 0, 0},
			translateAffine(0.5-float64(nw)/2, 0.5-float64(nh)/2),
		),
	)
	return resample(b, nw, nh, inv)
}

// Skew returns b sheared by dx = x + skewX·y, dy = y + skewY·x. The result is
// sized to the bounding box of the four transformed corners. When the shear
// is not invertible (1 - skewX·skewY ≈ 0) the result is blank.
func Skew(b *Bitmap, skewX, skewY float64) *Bitmap {
	fwd := [6]float64{1, skewY, skewX, 1, 0, 0}

	w1, h1 := float64(b.Width-1), float64(b.Height-1)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {w1, 0}, {0, h1}, {w1, h1}} {
		x, y := transformPoint(fwd, c[0], c[1])
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	nw := max(1, int(maxX-minX+1.5))
	nh := max(1, int(maxY-minY+1.5))

	if math.Abs(1-skewX*skewY) < skewEpsilon {
		return NewBitmap(nw, nh)
	}

	fwd[4], fwd[5] = -minX, -minY
	inv, ok := invertAffine(fwd)
	if !ok {
		return NewBitmap(nw, nh)
	}
	return resample(b, nw, nh, inv)
}

// resample builds a w×h bitmap whose pixel (x, y) copies the source pixel
// nearest to inv(x, y). Source coordinates outside src leave the pixel unset.
func resample(src *Bitmap, w, h int, inv [6]float64) *Bitmap {
	out := NewBitmap(w, h)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			sx, sy := transformPoint(inv, float64(dx), float64(dy))
			if src.Bit(int(math.Floor(sx+0.5)), int(math.Floor(sy+0.5))) {
				out.setBit(dx, dy, true)
			}
		}
	}
	return out
}
