package monopet

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Panel colors used when RunConfig leaves them unset: a blue-white OLED
// pixel on black.
var (
	DefaultOnColor  = color.RGBA{R: 0xD8, G: 0xF0, B: 0xFF, A: 0xFF}
	DefaultOffColor = color.RGBA{A: 0xFF}
)

// RunConfig configures the desktop panel window. Zero fields take defaults.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the panel size in pixels. Default 128x64.
	Width, Height int
	// Scale is the number of window pixels per panel pixel. Default 4.
	Scale int
	// TPS is the tick rate. Default 12, the pet's display refresh rate.
	TPS int
	// OnColor and OffColor tint lit and unlit pixels.
	OnColor, OffColor color.RGBA
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Width <= 0 {
		c.Width = DisplayWidth
	}
	if c.Height <= 0 {
		c.Height = DisplayHeight
	}
	if c.Scale <= 0 {
		c.Scale = 4
	}
	if c.TPS <= 0 {
		c.TPS = 12
	}
	if c.OnColor == (color.RGBA{}) {
		c.OnColor = DefaultOnColor
	}
	if c.OffColor == (color.RGBA{}) {
		c.OffColor = DefaultOffColor
	}
	if c.Title == "" {
		c.Title = "monopet"
	}
	return c
}

// Screen emulates the monochrome panel in an Ebitengine window. It owns a
// Framebuffer, runs the caller's update and draw callbacks once per tick
// and presents the result scaled up with hard pixel edges.
//
// Screen implements both Display and ebiten.Game.
type Screen struct {
	cfg RunConfig
	fb  *Framebuffer

	pix []byte
	img *ebiten.Image

	updateFn func(dt float64) error
	drawFn   func(fb *Framebuffer)
}

// NewScreen creates a screen for cfg.
func NewScreen(cfg RunConfig) *Screen {
	cfg = cfg.withDefaults()
	return &Screen{
		cfg: cfg,
		fb:  NewFramebuffer(cfg.Width, cfg.Height),
		pix: make([]byte, 0, 4*cfg.Width*cfg.Height),
	}
}

// Config returns the screen's resolved configuration.
func (s *Screen) Config() RunConfig { return s.cfg }

// Framebuffer returns the buffer the draw callback renders into.
func (s *Screen) Framebuffer() *Framebuffer { return s.fb }

// SetUpdateFunc sets the per-tick logic callback. dt is 1/TPS seconds.
func (s *Screen) SetUpdateFunc(fn func(dt float64) error) { s.updateFn = fn }

// SetDrawFunc sets the per-tick render callback.
func (s *Screen) SetDrawFunc(fn func(fb *Framebuffer)) { s.drawFn = fn }

// Present converts fb to window pixels for the next Draw.
func (s *Screen) Present(fb *Framebuffer) error {
	if fb.Width() != s.cfg.Width || fb.Height() != s.cfg.Height {
		return fmt.Errorf("monopet: present: framebuffer is %dx%d, screen is %dx%d",
			fb.Width(), fb.Height(), s.cfg.Width, s.cfg.Height)
	}
	s.pix = fb.AppendRGBA(s.pix[:0], s.cfg.OnColor, s.cfg.OffColor)
	return nil
}

// Update implements ebiten.Game.
func (s *Screen) Update() error {
	if s.updateFn != nil {
		if err := s.updateFn(1 / float64(s.cfg.TPS)); err != nil {
			return err
		}
	}
	if s.drawFn != nil {
		s.drawFn(s.fb)
	}
	return s.Present(s.fb)
}

// Draw implements ebiten.Game.
func (s *Screen) Draw(screen *ebiten.Image) {
	if len(s.pix) == 0 {
		return
	}
	if s.img == nil {
		s.img = ebiten.NewImage(s.cfg.Width, s.cfg.Height)
	}
	s.img.WritePixels(s.pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(s.cfg.Scale), float64(s.cfg.Scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(s.img, op)
}

// Layout implements ebiten.Game.
func (s *Screen) Layout(_, _ int) (int, int) {
	return s.cfg.Width * s.cfg.Scale, s.cfg.Height * s.cfg.Scale
}

// Run opens the panel window and blocks until it closes or a callback
// returns an error.
func Run(s *Screen) error {
	cfg := s.cfg
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(s)
}
