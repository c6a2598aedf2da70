package billiards

import "github.com/vovakirdan/tui-billiards/internal/core"

// Role tags what a ball is. Identity never comes from color.
type Role int

const (
	RoleObject Role = iota
	RoleCue
)

func (r Role) String() string {
	if r == RoleCue {
		return "cue"
	}
	return "object"
}

// parseRole is the inverse of Role.String.
func parseRole(s string) (Role, bool) {
	switch s {
	case "cue":
		return RoleCue, true
	case "object":
		return RoleObject, true
	default:
		return RoleObject, false
	}
}

// Ball is one ball on the table. A pocketed ball keeps its slot with Alive
// cleared, so indices stay stable for the whole round.
type Ball struct {
	ID    int
	Role  Role
	Pos   core.Vec2
	Vel   core.Vec2
	Color core.Color
	Alive bool
}

// CueBall returns the cue ball, or nil if the set has none.
func CueBall(balls []Ball) *Ball {
	for i := range balls {
		if balls[i].Role == RoleCue {
			return &balls[i]
		}
	}
	return nil
}

// ObjectsLeft counts object balls still on the table.
func ObjectsLeft(balls []Ball) int {
	n := 0
	for _, b := range balls {
		if b.Alive && b.Role == RoleObject {
			n++
		}
	}
	return n
}

// AliveCount counts every ball still on the table.
func AliveCount(balls []Ball) int {
	n := 0
	for _, b := range balls {
		if b.Alive {
			n++
		}
	}
	return n
}
