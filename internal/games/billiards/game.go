// Package billiards implements a single-table billiards simulation.
// The cue ball is struck toward a pointer press; balls roll with friction,
// bounce off cushions, collide elastically and drop into six pockets.
// Pocketing the cue ball loses the round, clearing the table wins it.
package billiards

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-billiards/internal/config"
	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/registry"
)

// Variant selects the rule set a game runs with.
type Variant int

const (
	// VariantStandard clamps balls to the cushions and ends on cleared object balls.
	VariantStandard Variant = iota
	// VariantClassic keeps the unclamped cushion rule and needs every ball pocketed.
	VariantClassic
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig resolves the table configuration the way Reset does:
// config file (or defaults), then the difficulty preset.
func LoadConfig() (config.BilliardsConfig, error) {
	cfg, err := config.LoadBilliards(configPath)
	if err != nil {
		return config.DefaultBilliardsConfig(), err
	}
	if difficultyPreset != "" {
		config.ApplyBilliardsPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game implements the billiards game logic.
type Game struct {
	variant Variant

	// Configuration
	cfg     config.BilliardsConfig
	runtime core.RuntimeConfig
	fixed   *config.BilliardsConfig // set by NewWithConfig; skips file loading
	table   Table
	palette Palette
	rng     *rand.Rand

	// Ball registry; index 0 is the cue ball.
	balls []Ball

	// Round state
	timers  core.Timers
	machine *Machine
	paused  bool
	round   int
	score   int // object balls pocketed this round
	strikes int
	frame   int

	// Events raised during the current step, timer callbacks included.
	events []core.Event
}

// New creates a standard billiards game.
func New() *Game {
	return &Game{variant: VariantStandard}
}

// NewClassic creates a game with the classic rule set.
func NewClassic() *Game {
	return &Game{variant: VariantClassic}
}

// NewWithConfig creates a game that uses cfg instead of loading config files.
// The variant's rule overrides still apply on top of cfg.
func NewWithConfig(v Variant, cfg config.BilliardsConfig) *Game {
	return &Game{variant: v, fixed: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.variant == VariantClassic {
		return "billiards_classic"
	}
	return "billiards"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Billiards (Classic)"
	}
	return "Billiards"
}

// Reset initializes or restarts the game.
// A reset still pending from the previous round is cancelled.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	var cfg config.BilliardsConfig
	if g.fixed != nil {
		cfg = *g.fixed
	} else {
		loaded, err := LoadConfig()
		if err != nil {
			loaded = config.DefaultBilliardsConfig()
		}
		cfg = loaded
	}
	if g.variant == VariantClassic {
		cfg.Physics.ClampWalls = false
		cfg.Rules.ClearOn = config.ClearOnAll
	}
	g.cfg = cfg

	g.table = NewTable(cfg.Table)
	g.palette = NewPalette(cfg.Palette)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.timers.CancelAll()
	g.machine = NewMachine(&g.timers)
	g.paused = false
	g.round = 0
	g.events = nil
	g.rack()
}

// rack starts a new round with the opening layout.
func (g *Game) rack() {
	g.balls = Rack(g.cfg.Layout, g.table.BallRadius, g.palette, g.rng)
	g.machine.Restart()
	g.round++
	g.score = 0
	g.strikes = 0
	g.frame = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.machine.Over() {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.timers.Advance(g.runtime.FrameDuration())
	if g.machine.Over() {
		return g.result()
	}

	g.frame++

	for _, p := range in.Presses {
		if Strike(g.balls, p.Pos(), g.cfg.Physics.StrikeGain) {
			g.strikes++
			g.emit(core.Event{Kind: core.EventStrike, BallID: 0})
		}
	}

	Integrate(g.balls, g.table, g.cfg.Physics.Friction, g.cfg.Physics.ClampWalls)

	sinks := DetectPockets(g.balls, g.table)
	for _, s := range sinks {
		if s.Role == RoleObject {
			g.score++
		}
		g.emit(core.Event{Kind: core.EventPocketed, BallID: s.BallID, PocketID: s.PocketID})
	}
	if outcome := Judge(g.balls, sinks, g.cfg.Rules.ClearOn); outcome != core.OutcomeNone {
		g.endRound(outcome)
	}

	ResolveCollisions(g.balls, g.table.BallRadius)

	return g.result()
}

// endRound enters Over and schedules the re-rack.
func (g *Game) endRound(o core.Outcome) {
	delay := time.Duration(g.cfg.Rules.ResetDelayMS) * time.Millisecond
	ended := g.machine.End(o, delay, func() {
		g.emit(core.Event{Kind: core.EventNotify, Outcome: o})
		g.rack()
		g.emit(core.Event{Kind: core.EventReset})
	})
	if ended {
		g.emit(core.Event{Kind: core.EventRoundOver, Outcome: o})
	}
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// Render draws the table, pockets and balls in table coordinates.
func (g *Game) Render(dst core.Surface) {
	t := g.table
	dst.FillRect(0, 0, t.Width, t.Height, g.palette.Felt)

	for _, p := range t.Pockets {
		dst.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, g.palette.Pocket)
	}

	for _, b := range g.balls {
		if b.Alive {
			dst.FillCircle(b.Pos.X, b.Pos.Y, t.BallRadius, b.Color)
		}
	}

	ms, ok := dst.(core.MessageSurface)
	if !ok {
		return
	}
	if g.paused {
		ms.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.machine.Over() {
		ms.DrawMessage(g.machine.Outcome().Message(), "Re-racking...  |  Press R to restart")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.machine.Over(),
		Paused:   g.paused,
		Phase:    g.machine.Phase(),
		Outcome:  g.machine.Outcome(),
		Strikes:  g.strikes,
		Frame:    g.frame,
	}
}

// Table returns the table geometry.
func (g *Game) Table() Table {
	return g.table
}

// Bounds returns the table size.
func (g *Game) Bounds() (w, h float64) {
	return g.table.Width, g.table.Height
}

// Balls returns a copy of the ball registry.
func (g *Game) Balls() []Ball {
	return append([]Ball(nil), g.balls...)
}

// Round returns the 1-based number of the current round since Reset.
func (g *Game) Round() int {
	return g.round
}

// Config returns the configuration in effect, variant overrides included.
func (g *Game) Config() config.BilliardsConfig {
	return g.cfg
}

// Register the game variants with the registry
func init() {
	registry.Register("billiards", func() registry.Game {
		return New()
	})
	registry.Register("billiards_classic", func() registry.Game {
		return NewClassic()
	})
}
