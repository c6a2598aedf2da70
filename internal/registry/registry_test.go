package registry

import (
	"testing"

	"github.com/vovakirdan/tui-billiards/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(core.Surface) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }
func (g *stubGame) Bounds() (w, h float64) { return 100, 50 }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Error("Exists() should report a registered game")
	}
	if Exists("zz_missing") {
		t.Error("Exists() should not report an unknown game")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("Create() returned %q", g.ID())
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() should fail for an unknown game")
	}
}

func TestListIsSortedWithTitles(t *testing.T) {
	Register("zz_list_2", func() Game { return &stubGame{id: "zz_list_2"} })
	Register("zz_list_1", func() Game { return &stubGame{id: "zz_list_1"} })

	games := List()
	for i := 1; i < len(games); i++ {
		if games[i-1].ID >= games[i].ID {
			t.Fatalf("List() not sorted: %q before %q", games[i-1].ID, games[i].ID)
		}
	}

	found := false
	for _, g := range games {
		if g.ID == "zz_list_1" {
			found = true
			if g.Title != "Stub zz_list_1" {
				t.Errorf("title = %q, expected %q", g.Title, "Stub zz_list_1")
			}
		}
	}
	if !found {
		t.Error("List() is missing a registered game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("registering the same ID twice should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
