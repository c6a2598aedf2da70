package billiards

import "github.com/vovakirdan/tui-billiards/internal/core"

// Strike sets the cue ball velocity toward the press point, scaled by gain.
// Any existing cue velocity is replaced. There is no speed cap.
// It reports false when there is no cue ball on the table.
func Strike(balls []Ball, at core.Vec2, gain float64) bool {
	cue := CueBall(balls)
	if cue == nil || !cue.Alive {
		return false
	}
	cue.Vel = at.Sub(cue.Pos).Scale(gain)
	return true
}
