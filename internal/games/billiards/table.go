package billiards

import (
	"math/rand"

	"github.com/vovakirdan/tui-billiards/internal/config"
	"github.com/vovakirdan/tui-billiards/internal/core"
)

// Pocket is a circular hole. Pockets never move during a session.
type Pocket struct {
	ID     int
	Pos    core.Vec2
	Radius float64
}

// Table is the playing area: [0,Width]x[0,Height] with six pockets.
type Table struct {
	Width      float64
	Height     float64
	BallRadius float64
	Pockets    []Pocket
}

// NewTable builds a table with pockets on the four corners and the middle
// of both long sides.
func NewTable(cfg config.TableConfig) Table {
	w, h, pr := cfg.Width, cfg.Height, cfg.PocketRadius
	spots := []core.Vec2{
		core.V(0, 0),
		core.V(w, 0),
		core.V(0, h),
		core.V(w, h),
		core.V(w/2, 0),
		core.V(w/2, h),
	}

	pockets := make([]Pocket, len(spots))
	for i, p := range spots {
		pockets[i] = Pocket{ID: i, Pos: p, Radius: pr}
	}

	return Table{
		Width:      w,
		Height:     h,
		BallRadius: cfg.BallRadius,
		Pockets:    pockets,
	}
}

// Contains reports whether p lies on the table rectangle, edges included.
func (t Table) Contains(p core.Vec2) bool {
	return p.X >= 0 && p.X <= t.Width && p.Y >= 0 && p.Y <= t.Height
}

// Palette holds resolved table colors.
type Palette struct {
	Felt    core.Color
	Pocket  core.Color
	Cue     core.Color
	Objects []core.Color
}

// NewPalette resolves color names. Unknown names fall back to the
// default palette entry for that slot.
func NewPalette(cfg config.PaletteConfig) Palette {
	def := config.DefaultBilliardsConfig().Palette

	p := Palette{
		Felt:   colorOr(cfg.Felt, def.Felt),
		Pocket: colorOr(cfg.Pocket, def.Pocket),
		Cue:    colorOr(cfg.Cue, def.Cue),
	}
	for _, name := range cfg.Objects {
		if c, ok := core.ParseColor(name); ok && c != p.Cue {
			p.Objects = append(p.Objects, c)
		}
	}
	if len(p.Objects) == 0 {
		for _, name := range def.Objects {
			c, _ := core.ParseColor(name)
			p.Objects = append(p.Objects, c)
		}
	}
	return p
}

func colorOr(name, fallback string) core.Color {
	if c, ok := core.ParseColor(name); ok {
		return c
	}
	c, _ := core.ParseColor(fallback)
	return c
}

// Rack builds the opening layout: the cue ball first, then object balls in
// rows of RowSize starting at RackOrigin, 2r apart on both axes.
// Object colors are drawn from the palette with rng.
func Rack(layout config.LayoutConfig, r float64, pal Palette, rng *rand.Rand) []Ball {
	balls := make([]Ball, 0, layout.ObjectBalls+1)
	balls = append(balls, Ball{
		ID:    0,
		Role:  RoleCue,
		Pos:   layout.Cue.Vec(),
		Color: pal.Cue,
		Alive: true,
	})

	rowSize := max(1, layout.RowSize)
	for i := 0; i < layout.ObjectBalls; i++ {
		col, row := i%rowSize, i/rowSize
		balls = append(balls, Ball{
			ID:    i + 1,
			Role:  RoleObject,
			Pos:   layout.RackOrigin.Vec().Add(core.V(float64(col)*2*r, float64(row)*2*r)),
			Color: pal.Objects[rng.Intn(len(pal.Objects))],
			Alive: true,
		})
	}
	return balls
}
