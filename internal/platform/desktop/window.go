package desktop

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/registry"
	"github.com/vovakirdan/tui-billiards/internal/storage"
)

// Debug font metrics used by ebitenutil.DebugPrintAt.
const (
	glyphW = 6
	glyphH = 16
)

// hudHeight is the strip below the table holding the score line.
const hudHeight = 20

// bannerDuration is how long an outcome notice takes to fade.
const bannerDuration = 3 * time.Second

// Options configures a desktop window.
type Options struct {
	Store  *storage.Store
	Logger *log.Logger
	Source string  // round source recorded in history (storage.SourceDesktop by default)
	Scale  float64 // pixels per table unit, 1 by default
}

// Window adapts a table game to ebiten.Game.
type Window struct {
	game      registry.Game
	config    core.RuntimeConfig
	store     *storage.Store
	logger    *log.Logger
	source    string
	scale     float64
	fixedSeed bool
	input     core.InputFrame
	state     core.GameState
	banner    banner
}

// NewWindow racks the table and prepares a window for it.
func NewWindow(game registry.Game, cfg core.RuntimeConfig, opts Options) *Window {
	fixedSeed := cfg.Seed != 0
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
		source = storage.SourceDesktop
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	game.Reset(cfg)

	return &Window{
		game:      game,
		config:    cfg,
		store:     opts.Store,
		logger:    logger,
		source:    source,
		scale:     scale,
		fixedSeed: fixedSeed,
		input:     core.NewInputFrame(),
		state:     game.State(),
	}
}

// Size returns the logical window size in pixels.
func (w *Window) Size() (int, int) {
	tw, th := w.game.Bounds()
	return int(tw * w.scale), int(th*w.scale) + hudHeight
}

// Update reads input and advances the table by one tick.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.input.Set(core.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.input.Set(core.ActionRestart)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		w.press(ebiten.CursorPosition())
	}

	w.tick()
	return nil
}

// press queues a strike at pixel (x, y). Clicks on the HUD are ignored.
func (w *Window) press(x, y int) bool {
	tw, th := w.game.Bounds()
	px := float64(x) / w.scale
	py := float64(y) / w.scale
	if px < 0 || py < 0 || px > tw || py > th {
		return false
	}
	w.input.Press(px, py)
	return true
}

// tick steps the game with the queued input.
func (w *Window) tick() {
	defer w.input.Clear()

	if w.input.Has(core.ActionRestart) {
		w.restart()
		return
	}

	result := w.game.Step(w.input)
	w.state = result.State
	w.handleEvents(result)
	w.banner.update(float32(w.config.FrameDuration().Seconds()))
}

func (w *Window) restart() {
	if !w.fixedSeed {
		w.config.Seed = time.Now().UnixNano()
	}
	w.game.Reset(w.config)
	w.state = w.game.State()
	w.banner.clear()
	w.logger.Debug("table restarted", "game", w.game.ID(), "seed", w.config.Seed)
}

func (w *Window) handleEvents(result core.StepResult) {
	for _, ev := range result.Events {
		switch ev.Kind {
		case core.EventRoundOver:
			w.logger.Info("round over",
				"game", w.game.ID(),
				"outcome", ev.Outcome,
				"pocketed", result.State.Score,
				"strikes", result.State.Strikes,
			)
			w.saveRound(ev.Outcome, result.State)
		case core.EventNotify:
			w.banner.show(ev.Outcome.Message(), bannerDuration)
		}
	}
}

func (w *Window) saveRound(o core.Outcome, st core.GameState) {
	if w.store == nil {
		return
	}
	_, err := w.store.SaveRound(storage.Round{
		GameID:   w.game.ID(),
		Outcome:  o.String(),
		Pocketed: st.Score,
		Strikes:  st.Strikes,
		Frames:   st.Frame,
		Seed:     w.config.Seed,
		Source:   w.source,
	})
	if err != nil {
		w.logger.Warn("could not save round", "error", err)
	}
}

// Draw renders the table, any overlay message, the HUD and the banner.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(rgba(core.ColorBlack))

	surf := newImageSurface(screen, w.scale)
	w.game.Render(surf)
	if surf.hasMessage() {
		w.drawMessage(screen, surf.title, surf.subtitle)
	}

	_, th := w.game.Bounds()
	hudY := int(th * w.scale)
	hud := fmt.Sprintf("%s  Pocketed: %d  Strikes: %d", w.game.Title(), w.state.Score, w.state.Strikes)
	ebitenutil.DebugPrintAt(screen, hud, 4, hudY+2)

	if w.banner.visible() {
		w.drawBanner(screen)
	}
}

// drawMessage draws a centered box with two lines of text.
func (w *Window) drawMessage(screen *ebiten.Image, title, subtitle string) {
	sw, sh := w.Size()
	sh -= hudHeight
	lines := []string{title, subtitle}

	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l))*glyphW)
	}
	boxW += 4 * glyphW
	boxH := 4 * glyphH
	x := (sw - boxW) / 2
	y := (sh - boxH) / 2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), color.RGBA{A: 0xd0}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), 1, rgba(core.ColorBrightWhite), false)
	for i, l := range lines {
		lx := x + (boxW-len([]rune(l))*glyphW)/2
		ebitenutil.DebugPrintAt(screen, l, lx, y+glyphH/2+i*2*glyphH)
	}
}

// drawBanner draws the fading notice across the top of the table.
func (w *Window) drawBanner(screen *ebiten.Image) {
	sw, _ := w.Size()
	bg := rgba(core.ColorBlack)
	bg.A = uint8(200 * w.banner.alpha)
	vector.DrawFilledRect(screen, 0, 0, float32(sw), glyphH+8, bg, false)
	tx := (sw - len([]rune(w.banner.text))*glyphW) / 2
	ebitenutil.DebugPrintAt(screen, w.banner.text, tx, 4)
}

// Layout keeps a fixed logical size; Ebitengine scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.Size()
}

// Run opens a window and plays the game until it is closed.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	w := NewWindow(game, cfg, opts)

	width, height := w.Size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.config.TickRate)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
