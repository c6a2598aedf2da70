package billiards

import "math"

// Integrate advances every alive ball by one frame: move by velocity,
// bounce off the cushions, then apply friction.
// With clamp set, a ball past a cushion is put back on the edge with its
// velocity pointing inward; otherwise the velocity is just negated.
func Integrate(balls []Ball, t Table, friction float64, clamp bool) {
	r := t.BallRadius
	for i := range balls {
		b := &balls[i]
		if !b.Alive {
			continue
		}

		b.Pos = b.Pos.Add(b.Vel)

		if clamp {
			b.Pos.X, b.Vel.X = clampAxis(b.Pos.X, b.Vel.X, r, t.Width-r)
			b.Pos.Y, b.Vel.Y = clampAxis(b.Pos.Y, b.Vel.Y, r, t.Height-r)
		} else {
			if b.Pos.X+r > t.Width || b.Pos.X-r < 0 {
				b.Vel.X = -b.Vel.X
			}
			if b.Pos.Y+r > t.Height || b.Pos.Y-r < 0 {
				b.Vel.Y = -b.Vel.Y
			}
		}

		b.Vel = b.Vel.Scale(friction)
	}
}

// clampAxis keeps pos within [lo, hi], pointing v away from the wall it hit.
func clampAxis(pos, v, lo, hi float64) (float64, float64) {
	switch {
	case pos < lo:
		return lo, math.Abs(v)
	case pos > hi:
		return hi, -math.Abs(v)
	default:
		return pos, v
	}
}
