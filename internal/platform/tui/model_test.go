package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-billiards/internal/config"
	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/games/billiards"
	"github.com/vovakirdan/tui-billiards/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 22, TickRate: 60, Seed: 7}
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *billiards.Game) {
	t.Helper()
	g := billiards.NewWithConfig(billiards.VariantStandard, config.DefaultBilliardsConfig())
	return NewModel(g, testConfig(), Options{Store: store}), g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm
}

func TestModelMousePressStrikes(t *testing.T) {
	m, g := newTestModel(t, nil)

	// Cell (50, 16) maps to table point (505, 310): right of the cue ball.
	m = update(t, m, tea.MouseMsg{X: 50, Y: 16, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})

	if m.gameState.Strikes != 1 {
		t.Errorf("strikes = %d, expected 1", m.gameState.Strikes)
	}
	if cue := billiards.CueBall(g.Balls()); cue == nil || cue.Vel.X <= 0 {
		t.Errorf("cue ball should roll toward the press, got %+v", cue)
	}
	if len(m.inputFrame.Presses) != 0 {
		t.Error("presses should be cleared after the tick")
	}
}

func TestModelRestartKey(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = update(t, m, tea.MouseMsg{X: 50, Y: 16, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})
	m = update(t, m, keyMsg("r"))
	m = update(t, m, TickMsg{})

	if m.gameState.Strikes != 0 || m.gameState.Frame != 0 {
		t.Errorf("state after restart = %+v, expected a fresh round", m.gameState)
	}
	if cue := billiards.CueBall(g.Balls()); cue == nil || !cue.Vel.IsZero() {
		t.Errorf("cue ball should be at rest after restart, got %+v", cue)
	}
}

func TestModelRecordsFinishedRound(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rounds.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	m, g := newTestModel(t, store)

	// Park the cue ball in the top-left pocket.
	snap := g.Snapshot()
	snap.Balls[0].X, snap.Balls[0].Y = 2, 2
	if err := g.ApplySnapshot(snap); err != nil {
		t.Fatalf("ApplySnapshot() failed: %v", err)
	}

	m = update(t, m, TickMsg{})
	if !m.gameState.GameOver || m.gameState.Outcome != core.OutcomeScratch {
		t.Fatalf("state = %+v, expected a scratch", m.gameState)
	}

	rounds, err := store.RecentRounds("billiards", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("got %d rounds, expected 1", len(rounds))
	}
	if r := rounds[0]; r.Outcome != "scratch" || r.Source != storage.SourceLocal || r.Seed != 7 {
		t.Errorf("round = %+v, unexpected fields", r)
	}

	// The notice shows up once the deferred re-rack fires.
	for i := 0; i < 61; i++ {
		m = update(t, m, TickMsg{})
	}
	if m.banner == "" {
		t.Error("outcome banner should be shown after the re-rack")
	}
	if m.gameState.GameOver {
		t.Error("round should be playing again after the re-rack")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	back := update(t, m, keyMsg("b"))
	if !back.BackToMenu() || back.IsQuitting() {
		t.Error("b should leave the table without quitting")
	}

	quit := update(t, m, keyMsg("q"))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
	if quit.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelViewShowsHUD(t *testing.T) {
	m, _ := newTestModel(t, nil)

	out := m.View()
	if !strings.Contains(out, "Billiards") || !strings.Contains(out, "Pocketed: 0") {
		t.Errorf("View() should show the HUD, got:\n%s", out)
	}
	if !strings.Contains(out, string(core.CircleGlyph)) {
		t.Error("View() should draw the pockets")
	}
	if !strings.Contains(out, string(core.SmallCircleRune)) {
		t.Error("View() should draw the balls")
	}
}

func TestModelResizeKeepsTable(t *testing.T) {
	m, g := newTestModel(t, nil)
	initial := g.Snapshot()
	before := initial.Hash()

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if got := m.viewport.Area(); got.W != 120 || got.H != 38 {
		t.Errorf("viewport area = %+v, expected 120x38", got)
	}
	after := g.Snapshot()
	if after.Hash() != before {
		t.Error("resize should not change the table")
	}
}
