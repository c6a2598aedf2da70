package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenSetCellKeepsColor(t *testing.T) {
	s := NewScreen(4, 4)

	s.SetCell(1, 1, '█', ColorRed)
	if c := s.GetCell(1, 1); c.Rune != '█' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red block", c)
	}

	// Set replaces the rune only
	s.Set(1, 1, 'x')
	if c := s.GetCell(1, 1); c.Rune != 'x' || c.Color != ColorRed {
		t.Errorf("after Set, GetCell(1, 1) = %+v, expected red 'x'", c)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.Fill('X', ColorBlue)
	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("After Clear(), cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(2, 2, 'A')
	s.Set(8, 8, 'B')

	s.Resize(5, 5)
	if s.Width() != 5 || s.Height() != 5 {
		t.Fatalf("Resize: got %dx%d, expected 5x5", s.Width(), s.Height())
	}
	if s.Get(2, 2) != 'A' {
		t.Error("Resize should preserve content inside the new bounds")
	}

	s.Resize(10, 10)
	if s.Get(8, 8) != ' ' {
		t.Error("Content outside a shrink should not come back")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(0, 0, "Hello")

	if got := s.Row(0)[:5]; got != "Hello" {
		t.Errorf("Row(0) = %q, expected 'Hello'", got)
	}

	// Clipped text should not panic
	s.DrawText(18, 1, "Clipped")
	if s.Get(19, 1) != 'l' {
		t.Errorf("Get(19, 1) = %q, expected 'l'", s.Get(19, 1))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc")

	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q, expected centered 'abc'", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorWhite)

	expected := strings.Join([]string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}, "\n")

	if s.String() != expected {
		t.Errorf("DrawBox() result:\n%s\nexpected:\n%s", s.String(), expected)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawRect(NewRect(1, 1, 3, 1), '#', ColorGreen)

	if got := s.Row(1); got != " ###  " {
		t.Errorf("Row(1) = %q, expected ' ###  '", got)
	}
	if c := s.GetCell(2, 1); c.Color != ColorGreen {
		t.Errorf("DrawRect color = %v, expected green", c.Color)
	}
}

func TestColorRoundTrip(t *testing.T) {
	for c := ColorDefault; c <= ColorFelt; c++ {
		got, ok := ParseColor(c.String())
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), got, ok)
		}
	}

	if _, ok := ParseColor("chartreuse"); ok {
		t.Error("ParseColor should reject unknown names")
	}
}
