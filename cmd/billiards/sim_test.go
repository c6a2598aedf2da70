package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-billiards/internal/config"
	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/games/billiards"
	"github.com/vovakirdan/tui-billiards/internal/platform/headless"
)

func TestParseStrike(t *testing.T) {
	tests := []struct {
		in      string
		want    headless.ScriptedPress
		wantErr bool
	}{
		{in: "600,200", want: headless.ScriptedPress{Frame: 1, X: 600, Y: 200}},
		{in: "30:100.5, 50", want: headless.ScriptedPress{Frame: 30, X: 100.5, Y: 50}},
		{in: "600", wantErr: true},
		{in: "0:1,2", wantErr: true},
		{in: "x:1,2", wantErr: true},
		{in: "a,2", wantErr: true},
		{in: "1,b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseStrike(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseStrike(%q) expected an error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseStrike(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseStrike(%q) = %+v, expected %+v", tt.in, got, tt.want)
			}
		})
	}
}

func newSimGame() *billiards.Game {
	return billiards.NewWithConfig(billiards.VariantStandard, config.DefaultBilliardsConfig())
}

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := core.RuntimeConfig{TickRate: 60, Seed: 42}
	script := []headless.ScriptedPress{{Frame: 1, X: 600, Y: 200}}

	a, err := simulate(newSimGame(), cfg, 300, script, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	b, err := simulate(newSimGame(), cfg, 300, script, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if a.Frames != 300 {
		t.Errorf("frames = %d, expected 300", a.Frames)
	}
	if a.Hash != b.Hash {
		t.Errorf("hash %s != %s for the same seed and script", a.Hash, b.Hash)
	}
	if a.Seed != 42 || a.Game != "billiards" {
		t.Errorf("result header = %s/%d, unexpected", a.Game, a.Seed)
	}
}

func TestSimulateIdleTable(t *testing.T) {
	result, err := simulate(newSimGame(), core.RuntimeConfig{TickRate: 60, Seed: 1}, 60, nil, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if len(result.Rounds) != 0 {
		t.Errorf("got %d rounds on an idle table, expected none", len(result.Rounds))
	}
	if result.Final.Strikes != 0 || len(result.Final.Balls) != 16 {
		t.Errorf("final = %d strikes, %d balls; expected an untouched rack", result.Final.Strikes, len(result.Final.Balls))
	}
}

func TestSimulateReportsRounds(t *testing.T) {
	cfg := config.DefaultBilliardsConfig()
	// Rack the cue ball inside the top-left pocket so every round scratches.
	cfg.Layout.Cue = config.Point{X: 20, Y: 20}
	g := billiards.NewWithConfig(billiards.VariantStandard, cfg)

	var seen []SimRound
	result, err := simulate(g, core.RuntimeConfig{TickRate: 60, Seed: 9}, 130, nil, func(r SimRound) {
		seen = append(seen, r)
	})
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if len(seen) < 2 {
		t.Fatalf("got %d rounds, expected a scratch before and after the re-rack", len(seen))
	}
	if len(seen) != len(result.Rounds) {
		t.Errorf("callback saw %d rounds, result has %d", len(seen), len(result.Rounds))
	}
	if first := seen[0]; first.Frame != 1 || first.Outcome != "scratch" {
		t.Errorf("first round = %+v, expected a scratch on frame 1", first)
	}
}

func TestWriteResult(t *testing.T) {
	result, err := simulate(newSimGame(), core.RuntimeConfig{TickRate: 60, Seed: 3}, 5, nil, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := writeResult(&buf, result, "json"); err != nil {
		t.Fatalf("writeResult(json) failed: %v", err)
	}
	var fromJSON SimResult
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if fromJSON.Hash != result.Hash || fromJSON.Frames != 5 {
		t.Errorf("decoded JSON = %s/%d, expected %s/5", fromJSON.Hash, fromJSON.Frames, result.Hash)
	}

	buf.Reset()
	if err := writeResult(&buf, result, "YAML"); err != nil {
		t.Fatalf("writeResult(yaml) failed: %v", err)
	}
	var fromYAML SimResult
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if fromYAML.Hash != result.Hash {
		t.Errorf("decoded YAML hash = %s, expected %s", fromYAML.Hash, result.Hash)
	}
	if !strings.Contains(buf.String(), "balls:") {
		t.Error("YAML output should include the final snapshot")
	}

	if err := writeResult(&buf, result, "xml"); err == nil {
		t.Error("writeResult(xml) should fail")
	}
}
