package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/registry"
	"github.com/vovakirdan/tui-billiards/internal/storage"
)

// Layout rows reserved around the table.
const (
	hudRows    = 1
	footerRows = 1
)

// bannerDuration is how long an outcome notice stays in the footer.
const bannerDuration = 3 * time.Second

// Options configures a play model beyond the game and runtime config.
type Options struct {
	Store  *storage.Store
	Logger *log.Logger
	Source string // round source recorded in history (storage.SourceLocal by default)
}

// Model is the Bubble Tea model for playing one table.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	viewport   *core.Viewport
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	source     string
	fixedSeed  bool
	inputFrame core.InputFrame
	gameState  core.GameState
	banner     string
	bannerLeft int // ticks until the banner clears
	quitting   bool
	goingBack  bool
}

// NewModel creates a play model for the given game and racks the table.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	fixedSeed := cfg.Seed != 0
	// Use time-based seed if not specified
	if !fixedSeed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	source := opts.Source
	if source == "" {
		source = storage.SourceLocal
	}

	game.Reset(cfg)

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		keys:       NewKeyMapper(),
		config:     cfg,
		source:     source,
		fixedSeed:  fixedSeed,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
	m.viewport = m.newViewport()
	return m
}

// newViewport fits the table between the HUD and footer rows.
func (m Model) newViewport() *core.Viewport {
	w, h := m.game.Bounds()
	area := core.NewRect(0, hudRows, m.config.ScreenW, core.Max(m.config.ScreenH-hudRows-footerRows, 1))
	return core.NewViewport(m.screen, area, w, h)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, m.viewport, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.goingBack = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize refits the viewport. The table keeps its state because
// positions live in table units, not cells.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.viewport = m.newViewport()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.restart()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.handleEvents(result)

	if m.bannerLeft > 0 {
		m.bannerLeft--
		if m.bannerLeft == 0 {
			m.banner = ""
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart racks a fresh table, dropping any pending re-rack.
func (m *Model) restart() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.banner = ""
	m.bannerLeft = 0
	m.logger.Debug("table restarted", "game", m.game.ID(), "seed", m.config.Seed)
}

// handleEvents logs round events, records finished rounds and raises banners.
func (m *Model) handleEvents(result core.StepResult) {
	for _, ev := range result.Events {
		switch ev.Kind {
		case core.EventRoundOver:
			m.logger.Info("round over",
				"game", m.game.ID(),
				"outcome", ev.Outcome,
				"pocketed", result.State.Score,
				"strikes", result.State.Strikes,
				"frames", result.State.Frame,
			)
			m.saveRound(ev.Outcome, result.State)

		case core.EventNotify:
			m.banner = ev.Outcome.Message()
			m.bannerLeft = int(bannerDuration / m.config.FrameDuration())

		case core.EventReset:
			m.logger.Debug("table re-racked", "game", m.game.ID())
		}
	}
}

// saveRound records a finished round. Storage failures never stop play.
func (m *Model) saveRound(o core.Outcome, st core.GameState) {
	if m.store == nil {
		return
	}
	_, err := m.store.SaveRound(storage.Round{
		GameID:   m.game.ID(),
		Outcome:  o.String(),
		Pocketed: st.Score,
		Strikes:  st.Strikes,
		Frames:   st.Frame,
		Seed:     m.config.Seed,
		Source:   m.source,
	})
	if err != nil {
		m.logger.Warn("could not save round", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".billiards", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// draw renders the HUD, table and footer into the screen buffer.
func (m Model) draw() {
	m.screen.Clear()
	m.game.Render(m.viewport)

	st := m.gameState
	hud := fmt.Sprintf(" %s  |  Pocketed: %d  |  Strikes: %d", m.game.Title(), st.Score, st.Strikes)
	if r, ok := m.game.(interface{ Round() int }); ok {
		hud += fmt.Sprintf("  |  Round: %d", r.Round())
	}
	m.screen.DrawText(0, 0, hud)

	footer := " Click: strike  |  P: pause  |  R: restart  |  B: back  |  Q: quit"
	if m.banner != "" {
		footer = " " + m.banner
	}
	m.screen.DrawText(0, m.screen.Height()-1, footer)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the player asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player left the table.
func (m Model) BackToMenu() bool {
	return m.goingBack
}

// Run starts the Bubble Tea program with the given game.
// Returns true if the player pressed back rather than quit.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (goBack bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
