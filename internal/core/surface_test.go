package core

import (
	"math"
	"strings"
	"testing"
)

func TestViewportToWorld(t *testing.T) {
	s := NewScreen(100, 30)
	// 80x20 cells over an 800x400 table: 10 x 20 units per cell.
	v := NewViewport(s, NewRect(10, 5, 80, 20), 800, 400)

	tests := []struct {
		name   string
		cx, cy int
		want   Vec2
		ok     bool
	}{
		{"first cell", 10, 5, V(5, 10), true},
		{"last cell", 89, 24, V(795, 390), true},
		{"middle", 50, 15, V(405, 210), true},
		{"left of table", 9, 10, Vec2{}, false},
		{"below table", 20, 25, Vec2{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := v.ToWorld(tc.cx, tc.cy)
			if ok != tc.ok {
				t.Fatalf("ToWorld(%d, %d) ok = %v, expected %v", tc.cx, tc.cy, ok, tc.ok)
			}
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("ToWorld(%d, %d) = %v, expected %v", tc.cx, tc.cy, got, tc.want)
			}
		})
	}
}

func TestViewportToCellInvertsToWorld(t *testing.T) {
	s := NewScreen(60, 20)
	v := NewViewport(s, NewRect(2, 1, 50, 15), 800, 400)

	for y := 1; y < 16; y++ {
		for x := 2; x < 52; x++ {
			p, ok := v.ToWorld(x, y)
			if !ok {
				t.Fatalf("ToWorld(%d, %d) should be inside", x, y)
			}
			cx, cy := v.ToCell(p)
			if cx != x || cy != y {
				t.Fatalf("ToCell(ToWorld(%d, %d)) = (%d, %d)", x, y, cx, cy)
			}
		}
	}
}

func TestViewportFillRect(t *testing.T) {
	s := NewScreen(10, 5)
	v := NewViewport(s, NewRect(0, 0, 10, 5), 100, 50)

	v.FillRect(0, 0, 100, 50, ColorFelt)
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != RectGlyph || c.Color != ColorFelt {
				t.Fatalf("cell (%d, %d) = %+v, expected felt", x, y, c)
			}
		}
	}
}

func TestViewportFillCircleSmall(t *testing.T) {
	s := NewScreen(80, 20)
	v := NewViewport(s, NewRect(0, 0, 80, 20), 800, 400)

	// r=10 over 10x20 cells never covers two cell centers.
	v.FillCircle(400, 300, 10, ColorWhite)

	x, y := v.ToCell(V(400, 300))
	if c := s.GetCell(x, y); c.Rune != SmallCircleRune || c.Color != ColorWhite {
		t.Errorf("cell (%d, %d) = %+v, expected small white ball", x, y, c)
	}
}

func TestViewportFillCircleLarge(t *testing.T) {
	s := NewScreen(80, 20)
	v := NewViewport(s, NewRect(0, 0, 80, 20), 800, 400)

	v.FillCircle(400, 200, 60, ColorRed)

	filled := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 80; x++ {
			if c := s.GetCell(x, y); c.Rune == CircleGlyph && c.Color == ColorRed {
				filled++
			}
		}
	}
	if filled < 2 {
		t.Errorf("large circle filled %d cells, expected several", filled)
	}
}

func TestViewportDrawMessage(t *testing.T) {
	s := NewScreen(40, 10)
	v := NewViewport(s, NewRect(0, 0, 40, 10), 800, 400)
	v.FillRect(0, 0, 800, 400, ColorFelt)

	v.DrawMessage("YOU WIN", "R - rack again")

	found := false
	for y := 0; y < 10; y++ {
		if strings.Contains(s.Row(y), "YOU WIN") {
			found = true
		}
	}
	if !found {
		t.Errorf("message title not drawn:\n%s", s.String())
	}
}
