// Package desktop runs a table in an Ebitengine window.
// The table is drawn with vector shapes in table units scaled to pixels;
// mouse clicks become strikes at the pointer position.
package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-billiards/internal/core"
)

// palette maps shared colors to RGBA.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:     {R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff},
	core.ColorRed:         {R: 0xd7, G: 0x26, B: 0x26, A: 0xff},
	core.ColorGreen:       {R: 0x2e, G: 0xa0, B: 0x43, A: 0xff},
	core.ColorYellow:      {R: 0xf2, G: 0xc9, B: 0x1d, A: 0xff},
	core.ColorBlue:        {R: 0x25, G: 0x5f, B: 0xd9, A: 0xff},
	core.ColorMagenta:     {R: 0xb0, G: 0x37, B: 0xb8, A: 0xff},
	core.ColorCyan:        {R: 0x2c, G: 0xb5, B: 0xc9, A: 0xff},
	core.ColorWhite:       {R: 0xe4, G: 0xe4, B: 0xe4, A: 0xff},
	core.ColorBrightWhite: {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	core.ColorOrange:      {R: 0xf0, G: 0x7c, B: 0x1b, A: 0xff},
	core.ColorGray:        {R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff},
	core.ColorBlack:       {R: 0x10, G: 0x10, B: 0x10, A: 0xff},
	core.ColorFelt:        {R: 0x0b, G: 0x5d, B: 0x2a, A: 0xff},
}

// rgba returns the RGBA for c, falling back to the default color.
func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}

// imageSurface draws table shapes onto an Ebitengine image.
// It also implements core.MessageSurface; the message is kept and drawn
// after the table so it stays on top.
type imageSurface struct {
	dst      *ebiten.Image
	scale    float64
	title    string
	subtitle string
}

func newImageSurface(dst *ebiten.Image, scale float64) *imageSurface {
	return &imageSurface{dst: dst, scale: scale}
}

// FillRect fills a rectangle given in table units.
func (s *imageSurface) FillRect(x, y, w, h float64, c core.Color) {
	vector.DrawFilledRect(s.dst,
		float32(x*s.scale), float32(y*s.scale),
		float32(w*s.scale), float32(h*s.scale),
		rgba(c), false)
}

// FillCircle fills a circle given in table units.
func (s *imageSurface) FillCircle(cx, cy, r float64, c core.Color) {
	vector.DrawFilledCircle(s.dst,
		float32(cx*s.scale), float32(cy*s.scale), float32(r*s.scale),
		rgba(c), true)
}

// DrawMessage records the overlay message.
func (s *imageSurface) DrawMessage(title, subtitle string) {
	s.title = title
	s.subtitle = subtitle
}

// hasMessage reports whether the game asked for an overlay this frame.
func (s *imageSurface) hasMessage() bool {
	return s.title != "" || s.subtitle != ""
}
