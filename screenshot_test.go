package monopet

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"sitting.side.happy", "sitting.side.happy"},
		{"after-blink", "after-blink"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	fb := NewFramebuffer(10, 3)
	fb.SetPixel(0, 0, On)
	fb.SetPixel(9, 2, On)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertBitmap(t, "decoded", FromImage(img, 128), fb.Bitmap())
}

func TestScreenshotNamesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	fb := NewFramebuffer(4, 4)
	path, err := fb.Screenshot(dir, "pose test")
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if !strings.HasSuffix(path, "_pose_test.png") {
		t.Errorf("path = %q, want a _pose_test.png suffix", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file missing: %v", err)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "x.png"))
	if err == nil || !strings.HasPrefix(err.Error(), "monopet: screenshot:") {
		t.Errorf("err = %v, want a monopet: screenshot: error", err)
	}
}
