package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultBilliardsConfigValid(t *testing.T) {
	if err := DefaultBilliardsConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestDefaultClearRuleNeedsEveryBall(t *testing.T) {
	if got := DefaultBilliardsConfig().Rules.ClearOn; got != ClearOnAll {
		t.Errorf("default clear_on = %q, expected %q", got, ClearOnAll)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	// Run from a directory without configs/ so the embedded file is used.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadBilliards("")
	if err != nil {
		t.Fatalf("LoadBilliards() error: %v", err)
	}

	def := DefaultBilliardsConfig()
	if cfg.Table != def.Table {
		t.Errorf("embedded table = %+v, expected %+v", cfg.Table, def.Table)
	}
	if cfg.Physics != def.Physics {
		t.Errorf("embedded physics = %+v, expected %+v", cfg.Physics, def.Physics)
	}
	if cfg.Rules != def.Rules {
		t.Errorf("embedded rules = %+v, expected %+v", cfg.Rules, def.Rules)
	}
	if cfg.Layout != def.Layout {
		t.Errorf("embedded layout = %+v, expected %+v", cfg.Layout, def.Layout)
	}
	if len(cfg.Palette.Objects) != len(def.Palette.Objects) {
		t.Errorf("embedded palette has %d object colors, expected %d", len(cfg.Palette.Objects), len(def.Palette.Objects))
	}
}

func TestLoadBilliardsCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	data := "physics:\n  friction: 0.95\nrules:\n  clear_on: objects\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBilliards(path)
	if err != nil {
		t.Fatalf("LoadBilliards() error: %v", err)
	}
	if cfg.Physics.Friction != 0.95 {
		t.Errorf("friction = %v, expected 0.95", cfg.Physics.Friction)
	}
	if cfg.Rules.ClearOn != ClearOnObjects {
		t.Errorf("clear_on = %q, expected %q", cfg.Rules.ClearOn, ClearOnObjects)
	}
	// Unset keys keep their defaults
	if cfg.Table.Width != 800 {
		t.Errorf("width = %v, expected default 800", cfg.Table.Width)
	}
}

func TestLoadBilliardsCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.toml")
	data := `
[table]
pocket_radius = 40

[physics]
clamp_walls = false

[palette]
objects = ["red", "blue"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBilliards(path)
	if err != nil {
		t.Fatalf("LoadBilliards() error: %v", err)
	}
	if cfg.Table.PocketRadius != 40 {
		t.Errorf("pocket_radius = %v, expected 40", cfg.Table.PocketRadius)
	}
	if cfg.Physics.ClampWalls {
		t.Error("clamp_walls should be false")
	}
	if len(cfg.Palette.Objects) != 2 {
		t.Errorf("objects = %v, expected two colors", cfg.Palette.Objects)
	}
}

func TestLoadBilliardsCustomErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"missing file", "missing.yaml", "", "failed to read"},
		{"bad yaml", "bad.yaml", "table: [1, 2", "failed to parse"},
		{"invalid values", "invalid.yaml", "physics:\n  friction: 1.5\n", "friction"},
		{"cue color reused", "cue.yaml", "palette:\n  cue: red\n", "matches the cue ball"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			if tc.content != "" {
				if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			_, err := LoadBilliards(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadBilliardsLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", billiardsFile), []byte("table:\n  pocket_radius: 12\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBilliards("")
	if err != nil {
		t.Fatalf("LoadBilliards() error: %v", err)
	}
	if cfg.Table.PocketRadius != 12 {
		t.Errorf("pocket_radius = %v, expected 12 from ./configs", cfg.Table.PocketRadius)
	}
}

func TestApplyBilliardsPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		pocketRadius float64
		friction     float64
	}{
		{DifficultyEasy, 36, 0.992},
		{DifficultyNormal, 30, 0.99},
		{DifficultyHard, 24, 0.985},
		{DifficultyFixed, 30, 0.99},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBilliardsConfig()
			cfg.Table.PocketRadius = 50
			cfg.Physics.Friction = 0.5

			ApplyBilliardsPreset(&cfg, tc.preset)

			if cfg.Table.PocketRadius != tc.pocketRadius {
				t.Errorf("pocket radius = %v, expected %v", cfg.Table.PocketRadius, tc.pocketRadius)
			}
			if cfg.Physics.Friction != tc.friction {
				t.Errorf("friction = %v, expected %v", cfg.Physics.Friction, tc.friction)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should return DifficultyHard")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown presets should be empty")
	}
	if !IsFixedPreset(ParsePreset("fixed")) {
		t.Error("fixed preset should be fixed")
	}
}
