package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/phanxgames/monopet"
)

const defaultThreshold = 128

// decodeFrame builds the bitmap described by f and checks it is w by h.
func decodeFrame(fsys fs.FS, dir string, f FrameSpec, w, h int, threshold uint8) (*monopet.Bitmap, error) {
	set := 0
	for _, s := range []string{f.Art, f.Hex, f.File} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("frame needs exactly one of art, hex or file")
	}

	var (
		b   *monopet.Bitmap
		err error
	)
	switch {
	case f.Art != "":
		b = parseArt(f.Art)
	case f.Hex != "":
		b, err = parseHex(f.Hex, w, h)
	default:
		if f.Threshold != nil {
			threshold = *f.Threshold
		}
		b, err = loadImage(fsys, path.Join(dir, f.File), threshold)
	}
	if err != nil {
		return nil, err
	}
	if b.Width != w || b.Height != h {
		return nil, fmt.Errorf("frame is %dx%d, sprite is %dx%d", b.Width, b.Height, w, h)
	}
	return b, nil
}

// parseArt trims the block scalar's trailing newline and hands the rows to
// monopet.ParseArt.
func parseArt(art string) *monopet.Bitmap {
	art = strings.TrimRight(art, "\n")
	return monopet.ParseArt(strings.Split(art, "\n")...)
}

// parseHex decodes packed rows written as hex digit pairs.
func parseHex(s string, w, h int) (*monopet.Bitmap, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, "0x", "")
	s = strings.ReplaceAll(s, ",", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("hex frame has an odd number of digits")
	}
	want := monopet.BytesPerRow(w) * h
	if len(s)/2 != want {
		return nil, fmt.Errorf("hex frame has %d bytes, want %d", len(s)/2, want)
	}
	pix := make([]byte, want)
	for i := range pix {
		v, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("hex frame: %w", err)
		}
		pix[i] = byte(v)
	}
	return monopet.WrapBitmap(pix, w, h), nil
}

// loadImage decodes a PNG or BMP file and thresholds it.
func loadImage(fsys fs.FS, name string, threshold uint8) (*monopet.Bitmap, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return monopet.FromImage(img, threshold), nil
}
