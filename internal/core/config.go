package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this for deterministic simulation and frame timing.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (terminal platforms only)
	ScreenH  int   // Screen height in characters (terminal platforms only)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDuration returns the wall-clock length of one simulation tick.
func (c RuntimeConfig) FrameDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Phase is the coarse round state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseOver
)

func (p Phase) String() string {
	if p == PhaseOver {
		return "over"
	}
	return "playing"
}

// Outcome records how a round ended.
type Outcome int

const (
	OutcomeNone    Outcome = iota
	OutcomeScratch         // cue ball pocketed
	OutcomeClear           // table cleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeScratch:
		return "scratch"
	case OutcomeClear:
		return "clear"
	default:
		return "none"
	}
}

// Message returns the player-facing text for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeScratch:
		return "Game Over! The cue ball was pocketed."
	case OutcomeClear:
		return "You win! All balls are pocketed."
	default:
		return ""
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Object balls pocketed this round
	GameOver bool    // Whether the round has ended
	Paused   bool    // Whether the game is paused
	Phase    Phase   // Playing or Over
	Outcome  Outcome // Set when Phase is Over
	Strikes  int     // Cue strikes this round
	Frame    int     // Simulation frames this round
}

// EventKind identifies something that happened during a step.
type EventKind int

const (
	EventStrike    EventKind = iota // cue ball struck
	EventPocketed                   // a ball fell into a pocket
	EventRoundOver                  // round ended, reset scheduled
	EventNotify                     // outcome notification is due
	EventReset                      // table re-racked
)

func (k EventKind) String() string {
	switch k {
	case EventStrike:
		return "strike"
	case EventPocketed:
		return "pocketed"
	case EventRoundOver:
		return "round_over"
	case EventNotify:
		return "notify"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is emitted by a step for platforms to react to.
// BallID and PocketID are only meaningful for EventPocketed.
type Event struct {
	Kind     EventKind
	BallID   int
	PocketID int
	Outcome  Outcome
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the step emitted an event of kind k.
func (r StepResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
