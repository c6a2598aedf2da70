package billiards

import "math"

// Ball mass. All balls are the same size and weight.
const ballMass = 1.0

// ResolveCollisions handles every overlapping pair of alive balls once, in
// ascending (i, j) order. Normal velocity components are exchanged
// elastically, tangential ones are kept, and the pair is pushed apart to
// exactly 2r. It returns the number of pairs resolved.
//
// Coincident centers use the +x axis as the normal (Atan2(0, 0) == 0).
// Fast balls can still pass through each other within one frame.
func ResolveCollisions(balls []Ball, r float64) int {
	contacts := 0
	for i := 0; i < len(balls); i++ {
		if !balls[i].Alive {
			continue
		}
		for j := i + 1; j < len(balls); j++ {
			if !balls[j].Alive {
				continue
			}
			a, b := &balls[i], &balls[j]
			d := b.Pos.Sub(a.Pos)
			dist := d.Len()
			if dist >= 2*r {
				continue
			}
			collide(a, b, math.Atan2(d.Y, d.X), 2*r-dist)
			contacts++
		}
	}
	return contacts
}

// collide resolves one contact along the normal at angle theta.
func collide(a, b *Ball, theta, overlap float64) {
	sin, cos := math.Sincos(theta)

	// Rotate into (normal, tangent) components.
	an := a.Vel.X*cos + a.Vel.Y*sin
	at := a.Vel.X*sin - a.Vel.Y*cos
	bn := b.Vel.X*cos + b.Vel.Y*sin
	bt := b.Vel.X*sin - b.Vel.Y*cos

	an2, bn2 := elastic(an, bn, ballMass, ballMass)

	// Rotate back.
	a.Vel.X = at*sin + an2*cos
	a.Vel.Y = -at*cos + an2*sin
	b.Vel.X = bt*sin + bn2*cos
	b.Vel.Y = -bt*cos + bn2*sin

	push := overlap / 2
	a.Pos.X -= push * cos
	a.Pos.Y -= push * sin
	b.Pos.X += push * cos
	b.Pos.Y += push * sin
}

// elastic returns post-impact velocities of a one-dimensional elastic
// collision between masses m1 and m2.
func elastic(v1, v2, m1, m2 float64) (float64, float64) {
	total := m1 + m2
	return ((m1-m2)*v1 + 2*m2*v2) / total,
		((m2-m1)*v2 + 2*m1*v1) / total
}
