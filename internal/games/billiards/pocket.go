package billiards

import (
	"github.com/vovakirdan/tui-billiards/internal/config"
	"github.com/vovakirdan/tui-billiards/internal/core"
)

// Sink records a ball falling into a pocket.
type Sink struct {
	BallID   int
	PocketID int
	Role     Role
}

// DetectPockets removes every alive ball whose center is within
// pocket radius + r of a pocket center. Pockets are checked in ID order
// and the first match wins.
func DetectPockets(balls []Ball, t Table) []Sink {
	var sinks []Sink
	for i := range balls {
		b := &balls[i]
		if !b.Alive {
			continue
		}
		for _, p := range t.Pockets {
			if b.Pos.Dist(p.Pos) < p.Radius+t.BallRadius {
				b.Alive = false
				sinks = append(sinks, Sink{BallID: b.ID, PocketID: p.ID, Role: b.Role})
				break
			}
		}
	}
	return sinks
}

// Judge decides whether the sinks of one frame end the round.
// A cleared table wins over a scratch in the same frame.
func Judge(balls []Ball, sinks []Sink, clearOn string) core.Outcome {
	if len(sinks) == 0 {
		return core.OutcomeNone
	}

	cleared := ObjectsLeft(balls) == 0
	if clearOn == config.ClearOnAll {
		cleared = AliveCount(balls) == 0
	}
	if cleared {
		return core.OutcomeClear
	}

	for _, s := range sinks {
		if s.Role == RoleCue {
			return core.OutcomeScratch
		}
	}
	return core.OutcomeNone
}
