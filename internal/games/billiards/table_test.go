package billiards

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-billiards/internal/config"
	"github.com/vovakirdan/tui-billiards/internal/core"
)

func TestRackLayout(t *testing.T) {
	cfg := config.DefaultBilliardsConfig()
	pal := NewPalette(cfg.Palette)
	balls := Rack(cfg.Layout, 10, pal, rand.New(rand.NewSource(1)))

	if len(balls) != 16 {
		t.Fatalf("Rack() returned %d balls, expected 16", len(balls))
	}
	if CueBall(balls) != &balls[0] {
		t.Error("the cue ball should be first")
	}

	cues := 0
	for i, b := range balls {
		if b.ID != i {
			t.Errorf("ball %d has ID %d", i, b.ID)
		}
		if b.Role == RoleCue {
			cues++
		}
	}
	if cues != 1 {
		t.Errorf("rack has %d cue balls, expected 1", cues)
	}

	// Third row, last column.
	if balls[15].Pos != core.V(680, 240) {
		t.Errorf("last ball at %v, expected (680, 240)", balls[15].Pos)
	}
	if ObjectsLeft(balls) != 15 {
		t.Errorf("ObjectsLeft() = %d, expected 15", ObjectsLeft(balls))
	}
}

func TestNewPalette(t *testing.T) {
	p := NewPalette(config.PaletteConfig{
		Felt:    "not-a-color",
		Pocket:  "black",
		Cue:     "white",
		Objects: []string{"white", "red", "nope"},
	})

	if p.Felt != core.ColorFelt {
		t.Errorf("Felt = %v, expected the default felt", p.Felt)
	}
	if p.Cue != core.ColorWhite {
		t.Errorf("Cue = %v, expected white", p.Cue)
	}
	if len(p.Objects) != 1 || p.Objects[0] != core.ColorRed {
		t.Errorf("Objects = %v, expected only red", p.Objects)
	}
}

func TestTableContains(t *testing.T) {
	tbl := testTable()
	if !tbl.Contains(core.V(0, 400)) || !tbl.Contains(core.V(800, 0)) {
		t.Error("corners should be on the table")
	}
	if tbl.Contains(core.V(-0.1, 10)) || tbl.Contains(core.V(10, 400.1)) {
		t.Error("points past the edge should be off the table")
	}
}

func TestMachine(t *testing.T) {
	var timers core.Timers
	m := NewMachine(&timers)

	if m.Phase() != core.PhasePlaying {
		t.Fatal("a new machine should be playing")
	}

	resets := 0
	if !m.End(core.OutcomeClear, 0, func() { resets++ }) {
		t.Fatal("End should succeed from Playing")
	}
	if m.End(core.OutcomeScratch, 0, func() { resets++ }) {
		t.Error("End should be ignored once the round is over")
	}
	if m.Outcome() != core.OutcomeClear {
		t.Errorf("Outcome() = %v, expected clear", m.Outcome())
	}

	timers.Advance(0)
	if resets != 1 {
		t.Errorf("reset callback ran %d times, expected 1", resets)
	}
	if m.ResetPending() {
		t.Error("no reset should be pending after it fired")
	}

	m.Restart()
	if m.Over() || m.Outcome() != core.OutcomeNone {
		t.Error("Restart should return to a fresh Playing phase")
	}
}
