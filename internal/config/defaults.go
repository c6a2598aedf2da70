package config

import (
	_ "embed"
)

//go:embed defaults/billiards.yaml
var defaultBilliardsYAML []byte

// DefaultBilliardsConfig returns the canonical 800x400 table.
func DefaultBilliardsConfig() BilliardsConfig {
	return BilliardsConfig{
		Table: TableConfig{
			Width:        800,
			Height:       400,
			BallRadius:   10,
			PocketRadius: 30,
		},
		Physics: PhysicsConfig{
			Friction:   0.99,
			StrikeGain: 0.1,
			ClampWalls: true,
		},
		Rules: RulesConfig{
			ClearOn:      ClearOnAll,
			ResetDelayMS: 1000,
		},
		Layout: LayoutConfig{
			Cue:         Point{X: 400, Y: 300},
			RackOrigin:  Point{X: 600, Y: 200},
			ObjectBalls: 15,
			RowSize:     5,
		},
		Palette: PaletteConfig{
			Felt:    "felt",
			Pocket:  "black",
			Cue:     "bright-white",
			Objects: []string{"red", "yellow", "blue", "magenta", "cyan", "green", "orange"},
		},
	}
}
