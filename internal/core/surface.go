package core

import "math"

// Surface is the drawing target a game renders into.
// Coordinates are in table units; each implementation maps them onto its
// own pixels or cells.
type Surface interface {
	FillRect(x, y, w, h float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
}

// MessageSurface is implemented by surfaces that can show a centered
// two-line message over the table.
type MessageSurface interface {
	Surface
	DrawMessage(title, subtitle string)
}

// Glyphs used when rasterizing table shapes into terminal cells.
const (
	RectGlyph       = '░'
	CircleGlyph     = '█'
	SmallCircleRune = '●'
)

// Viewport projects table coordinates onto a rectangle of screen cells.
// Both axes are scaled independently so the whole table fits the area.
type Viewport struct {
	screen *Screen
	area   Rect
	worldW float64
	worldH float64
}

// NewViewport creates a viewport drawing a worldW x worldH table into area.
func NewViewport(s *Screen, area Rect, worldW, worldH float64) *Viewport {
	return &Viewport{
		screen: s,
		area:   area,
		worldW: worldW,
		worldH: worldH,
	}
}

// Area returns the cell rectangle covered by the table.
func (v *Viewport) Area() Rect {
	return v.area
}

// cellSize returns the table units covered by one cell on each axis.
func (v *Viewport) cellSize() (float64, float64) {
	if v.area.W <= 0 || v.area.H <= 0 {
		return 0, 0
	}
	return v.worldW / float64(v.area.W), v.worldH / float64(v.area.H)
}

// ToCell returns the screen cell containing table point p.
func (v *Viewport) ToCell(p Vec2) (int, int) {
	cw, ch := v.cellSize()
	if cw == 0 || ch == 0 {
		return v.area.X, v.area.Y
	}
	x := v.area.X + int(math.Floor(p.X/cw))
	y := v.area.Y + int(math.Floor(p.Y/ch))
	return x, y
}

// ToWorld returns the table point at the center of screen cell (x, y).
// The second result is false when the cell lies outside the table area.
func (v *Viewport) ToWorld(x, y int) (Vec2, bool) {
	if !v.area.Contains(x, y) {
		return Vec2{}, false
	}
	cw, ch := v.cellSize()
	return Vec2{
		X: (float64(x-v.area.X) + 0.5) * cw,
		Y: (float64(y-v.area.Y) + 0.5) * ch,
	}, true
}

// FillRect fills every cell whose center lies inside the rectangle.
func (v *Viewport) FillRect(x, y, w, h float64, c Color) {
	for cy := v.area.Y; cy < v.area.Bottom(); cy++ {
		for cx := v.area.X; cx < v.area.Right(); cx++ {
			p, _ := v.ToWorld(cx, cy)
			if p.X >= x && p.X < x+w && p.Y >= y && p.Y < y+h {
				v.screen.SetCell(cx, cy, RectGlyph, c)
			}
		}
	}
}

// FillCircle fills every cell whose center lies inside the circle.
// A circle smaller than a cell still marks the cell holding its center.
func (v *Viewport) FillCircle(cx, cy, r float64, c Color) {
	center := Vec2{X: cx, Y: cy}
	minX, minY := v.ToCell(Vec2{X: cx - r, Y: cy - r})
	maxX, maxY := v.ToCell(Vec2{X: cx + r, Y: cy + r})

	var hits [][2]int
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p, ok := v.ToWorld(x, y)
			if ok && p.Dist(center) < r {
				hits = append(hits, [2]int{x, y})
			}
		}
	}

	if len(hits) <= 1 {
		x, y := v.ToCell(center)
		if v.area.Contains(x, y) {
			v.screen.SetCell(x, y, SmallCircleRune, c)
		}
		return
	}
	for _, h := range hits {
		v.screen.SetCell(h[0], h[1], CircleGlyph, c)
	}
}

// DrawMessage draws a boxed two-line message centered in the viewport.
func (v *Viewport) DrawMessage(title, subtitle string) {
	titleLen := len([]rune(title))
	subLen := len([]rune(subtitle))

	boxW := Max(titleLen, subLen) + 4
	boxH := 5
	boxX := v.area.X + (v.area.W-boxW)/2
	boxY := v.area.Y + (v.area.H-boxH)/2

	box := NewRect(boxX, boxY, boxW, boxH)
	v.screen.DrawRect(box, ' ', ColorDefault)
	v.screen.DrawBox(box, ColorBrightWhite)

	v.screen.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	v.screen.DrawText(boxX+(boxW-subLen)/2, boxY+3, subtitle)
}
