// Package config provides YAML and TOML table configuration loading and
// difficulty presets for the billiards table.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-billiards/internal/core"
)

// Clear rules.
const (
	ClearOnObjects = "objects" // every object ball pocketed
	ClearOnAll     = "all"     // every ball pocketed, cue included
)

// BilliardsConfig contains all configuration for the billiards table.
type BilliardsConfig struct {
	Table   TableConfig   `yaml:"table" toml:"table"`
	Physics PhysicsConfig `yaml:"physics" toml:"physics"`
	Rules   RulesConfig   `yaml:"rules" toml:"rules"`
	Layout  LayoutConfig  `yaml:"layout" toml:"layout"`
	Palette PaletteConfig `yaml:"palette" toml:"palette"`
}

// TableConfig defines table geometry in table units.
type TableConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	BallRadius   float64 `yaml:"ball_radius" toml:"ball_radius"`
	PocketRadius float64 `yaml:"pocket_radius" toml:"pocket_radius"`
}

// PhysicsConfig defines per-frame motion parameters.
type PhysicsConfig struct {
	Friction   float64 `yaml:"friction" toml:"friction"`       // velocity multiplier per frame
	StrikeGain float64 `yaml:"strike_gain" toml:"strike_gain"` // cue speed per unit of drag
	ClampWalls bool    `yaml:"clamp_walls" toml:"clamp_walls"`
}

// RulesConfig defines how a round ends and restarts.
type RulesConfig struct {
	ClearOn      string `yaml:"clear_on" toml:"clear_on"`
	ResetDelayMS int    `yaml:"reset_delay_ms" toml:"reset_delay_ms"`
}

// Point is a table position in config files.
type Point struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Vec returns the point as a core vector.
func (p Point) Vec() core.Vec2 {
	return core.V(p.X, p.Y)
}

// LayoutConfig defines the opening rack.
type LayoutConfig struct {
	Cue         Point `yaml:"cue" toml:"cue"`
	RackOrigin  Point `yaml:"rack_origin" toml:"rack_origin"`
	ObjectBalls int   `yaml:"object_balls" toml:"object_balls"`
	RowSize     int   `yaml:"row_size" toml:"row_size"`
}

// PaletteConfig names the colors used on the table.
type PaletteConfig struct {
	Felt    string   `yaml:"felt" toml:"felt"`
	Pocket  string   `yaml:"pocket" toml:"pocket"`
	Cue     string   `yaml:"cue" toml:"cue"`
	Objects []string `yaml:"objects" toml:"objects"`
}

// Validate checks that the configuration describes a playable table.
func (c BilliardsConfig) Validate() error {
	var errs []error

	t := c.Table
	if t.Width <= 0 || t.Height <= 0 {
		errs = append(errs, fmt.Errorf("table size %gx%g must be positive", t.Width, t.Height))
	}
	if t.BallRadius <= 0 {
		errs = append(errs, fmt.Errorf("ball_radius %g must be positive", t.BallRadius))
	}
	if t.PocketRadius < 0 {
		errs = append(errs, fmt.Errorf("pocket_radius %g must not be negative", t.PocketRadius))
	}

	if c.Physics.Friction <= 0 || c.Physics.Friction > 1 {
		errs = append(errs, fmt.Errorf("friction %g must be in (0, 1]", c.Physics.Friction))
	}
	if c.Physics.StrikeGain < 0 {
		errs = append(errs, fmt.Errorf("strike_gain %g must not be negative", c.Physics.StrikeGain))
	}

	if c.Rules.ClearOn != ClearOnObjects && c.Rules.ClearOn != ClearOnAll {
		errs = append(errs, fmt.Errorf("clear_on %q must be %q or %q", c.Rules.ClearOn, ClearOnObjects, ClearOnAll))
	}
	if c.Rules.ResetDelayMS < 0 {
		errs = append(errs, fmt.Errorf("reset_delay_ms %d must not be negative", c.Rules.ResetDelayMS))
	}

	if c.Layout.ObjectBalls < 1 {
		errs = append(errs, fmt.Errorf("object_balls %d must be at least 1", c.Layout.ObjectBalls))
	}
	if c.Layout.RowSize < 1 {
		errs = append(errs, fmt.Errorf("row_size %d must be at least 1", c.Layout.RowSize))
	}

	errs = append(errs, c.Palette.validate()...)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid billiards config: %w", errors.Join(errs...))
	}
	return nil
}

func (p PaletteConfig) validate() []error {
	var errs []error
	for _, name := range []string{p.Felt, p.Pocket, p.Cue} {
		if _, ok := core.ParseColor(name); !ok {
			errs = append(errs, fmt.Errorf("unknown color %q", name))
		}
	}
	if len(p.Objects) == 0 {
		errs = append(errs, errors.New("palette needs at least one object color"))
	}
	for _, name := range p.Objects {
		if _, ok := core.ParseColor(name); !ok {
			errs = append(errs, fmt.Errorf("unknown color %q", name))
		}
		if name == p.Cue {
			errs = append(errs, fmt.Errorf("object color %q matches the cue ball", name))
		}
	}
	return errs
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI flag value to a preset.
// Unknown or empty names yield the empty preset, which changes nothing.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset pins the canonical table.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
