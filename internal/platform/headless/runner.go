// Package headless runs a table without a terminal or window.
// One goroutine owns the game; other goroutines feed it input over a
// buffered channel that is drained at the top of every frame.
package headless

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/registry"
)

// ScriptedPress is a strike applied at the start of a given frame.
type ScriptedPress struct {
	Frame uint64  `json:"frame" yaml:"frame"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
}

// Options configures a Runner.
type Options struct {
	// Realtime paces frames with a ticker at the runtime tick rate.
	// Otherwise frames run back to back.
	Realtime bool

	// MaxFrames stops the runner after this many frames. 0 runs until
	// Stop, context cancellation or the frame callback says so.
	MaxFrames uint64

	// Script lists strikes to inject at fixed frames.
	Script []ScriptedPress

	// Logger receives round events. Defaults to a discarding logger.
	Logger *log.Logger
}

// FrameFunc is called on the runner goroutine after every frame.
// Returning false stops the runner.
type FrameFunc func(frame uint64, res core.StepResult) bool

// Runner is the authoritative loop for one table.
type Runner struct {
	game   registry.Game
	config core.RuntimeConfig
	opts   Options
	logger *log.Logger

	// Input handling
	inputMu   sync.Mutex
	pending   core.InputFrame
	inputChan chan core.InputFrame

	frame    uint64
	done     chan struct{}
	doneOnce sync.Once
}

// NewRunner racks the game and prepares a runner for it.
func NewRunner(game registry.Game, cfg core.RuntimeConfig, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	game.Reset(cfg)
	return &Runner{
		game:      game,
		config:    cfg,
		opts:      opts,
		logger:    logger,
		pending:   core.NewInputFrame(),
		inputChan: make(chan core.InputFrame, 64),
		done:      make(chan struct{}),
	}
}

// Game returns the game the runner drives. Only touch it from a FrameFunc
// while the runner is running.
func (r *Runner) Game() registry.Game {
	return r.game
}

// Frame returns the number of frames run so far.
func (r *Runner) Frame() uint64 {
	return r.frame
}

// SendInput queues input for the next frame.
// Non-blocking: reports false when the buffer is full and the input is dropped.
func (r *Runner) SendInput(in core.InputFrame) bool {
	select {
	case r.inputChan <- in:
		return true
	default:
		return false
	}
}

// Strike queues a pointer press at table coordinates (x, y).
func (r *Runner) Strike(x, y float64) bool {
	in := core.NewInputFrame()
	in.Press(x, y)
	return r.SendInput(in)
}

// Run drives the game until MaxFrames, Stop, ctx cancellation or onFrame
// returning false. It returns ctx.Err() when cancelled and nil otherwise.
func (r *Runner) Run(ctx context.Context, onFrame FrameFunc) error {
	if !r.opts.Realtime {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.done:
				return nil
			default:
			}
			if !r.runFrame(onFrame) {
				return nil
			}
		}
	}

	ticker := time.NewTicker(r.config.FrameDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !r.runFrame(onFrame) {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-r.done:
			return nil
		}
	}
}

// runFrame steps the game once. It reports whether the loop should go on.
func (r *Runner) runFrame(onFrame FrameFunc) bool {
	r.frame++
	in := r.drainInputs()
	if in.Has(core.ActionRestart) {
		r.game.Reset(r.config)
		r.logger.Debug("table restarted", "game", r.game.ID(), "frame", r.frame)
	}
	for _, p := range r.opts.Script {
		if p.Frame == r.frame {
			in.Press(p.X, p.Y)
		}
	}

	res := r.game.Step(in)
	for _, ev := range res.Events {
		if ev.Kind == core.EventRoundOver {
			r.logger.Debug("round over",
				"game", r.game.ID(),
				"outcome", ev.Outcome,
				"pocketed", res.State.Score,
				"frame", r.frame,
			)
		}
	}

	if onFrame != nil && !onFrame(r.frame, res) {
		return false
	}
	return r.opts.MaxFrames == 0 || r.frame < r.opts.MaxFrames
}

// drainInputs merges every queued input into one frame and clears the queue.
func (r *Runner) drainInputs() core.InputFrame {
	r.inputMu.Lock()
	defer r.inputMu.Unlock()

	for {
		select {
		case in := <-r.inputChan:
			for action, pressed := range in.Actions {
				if pressed {
					r.pending.Set(action)
				}
			}
			r.pending.Presses = append(r.pending.Presses, in.Presses...)
		default:
			out := r.pending.Clone()
			r.pending.Clear()
			return out
		}
	}
}

// Stop ends Run after the current frame. Safe to call more than once.
func (r *Runner) Stop() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}
