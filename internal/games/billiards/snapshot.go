package billiards

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-billiards/internal/core"
)

// BallSnapshot is one ball in a Snapshot.
type BallSnapshot struct {
	ID    int     `json:"id" yaml:"id"`
	Role  string  `json:"role" yaml:"role"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	VX    float64 `json:"vx" yaml:"vx"`
	VY    float64 `json:"vy" yaml:"vy"`
	Color string  `json:"color" yaml:"color"`
	Alive bool    `json:"alive" yaml:"alive"`
}

// Snapshot contains the complete round state for spectators, saves and
// scenario setup. Uses primitive types only for stable serialization.
type Snapshot struct {
	Game    string         `json:"game" yaml:"game"`
	Round   int            `json:"round" yaml:"round"`
	Frame   int            `json:"frame" yaml:"frame"`
	Phase   string         `json:"phase" yaml:"phase"`
	Outcome string         `json:"outcome" yaml:"outcome"`
	Score   int            `json:"score" yaml:"score"`
	Strikes int            `json:"strikes" yaml:"strikes"`
	Paused  bool           `json:"paused" yaml:"paused"`
	Width   float64        `json:"width" yaml:"width"`
	Height  float64        `json:"height" yaml:"height"`
	Radius  float64        `json:"radius" yaml:"radius"`
	Balls   []BallSnapshot `json:"balls" yaml:"balls"`
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	st := g.State()
	snap := Snapshot{
		Game:    g.ID(),
		Round:   g.round,
		Frame:   st.Frame,
		Phase:   st.Phase.String(),
		Outcome: st.Outcome.String(),
		Score:   st.Score,
		Strikes: st.Strikes,
		Paused:  st.Paused,
		Width:   g.table.Width,
		Height:  g.table.Height,
		Radius:  g.table.BallRadius,
		Balls:   make([]BallSnapshot, len(g.balls)),
	}
	for i, b := range g.balls {
		snap.Balls[i] = BallSnapshot{
			ID:    b.ID,
			Role:  b.Role.String(),
			X:     b.Pos.X,
			Y:     b.Pos.Y,
			VX:    b.Vel.X,
			VY:    b.Vel.Y,
			Color: b.Color.String(),
			Alive: b.Alive,
		}
	}
	return snap
}

// ApplySnapshot replaces the balls and round counters with the snapshot's.
// The round continues in the Playing phase; table geometry and config are
// kept. The snapshot must hold exactly one cue ball, still on the table,
// and ball IDs must be unique.
func (g *Game) ApplySnapshot(snap Snapshot) error {
	balls := make([]Ball, len(snap.Balls))
	seen := make(map[int]bool, len(snap.Balls))
	cues := 0
	for i, bs := range snap.Balls {
		if seen[bs.ID] {
			return fmt.Errorf("billiards: duplicate ball id %d", bs.ID)
		}
		seen[bs.ID] = true
		role, ok := parseRole(bs.Role)
		if !ok {
			return fmt.Errorf("billiards: ball %d: unknown role %q", bs.ID, bs.Role)
		}
		color, ok := core.ParseColor(bs.Color)
		if !ok {
			return fmt.Errorf("billiards: ball %d: unknown color %q", bs.ID, bs.Color)
		}
		if role == RoleCue {
			if !bs.Alive {
				return fmt.Errorf("billiards: cue ball %d is pocketed", bs.ID)
			}
			cues++
		}
		balls[i] = Ball{
			ID:    bs.ID,
			Role:  role,
			Pos:   core.V(bs.X, bs.Y),
			Vel:   core.V(bs.VX, bs.VY),
			Color: color,
			Alive: bs.Alive,
		}
	}
	if cues != 1 {
		return fmt.Errorf("billiards: snapshot has %d cue balls, expected 1", cues)
	}

	g.machine.Restart()
	g.balls = balls
	g.round = max(1, snap.Round)
	g.frame = snap.Frame
	g.score = snap.Score
	g.strikes = snap.Strikes
	g.paused = false
	return nil
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Round)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Frame)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Strikes) //#nosec G115 -- hash computation

	for _, b := range snap.Balls {
		h = h*31 + uint64(b.ID) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + math.Float64bits(b.VX)
		h = h*31 + math.Float64bits(b.VY)
		if b.Alive {
			h = h*31 + 1
		}
	}
	return h
}
