package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/games/billiards"
	"github.com/vovakirdan/tui-billiards/internal/platform/headless"
	"github.com/vovakirdan/tui-billiards/internal/storage"
)

var (
	flagFrames  uint64
	flagStrikes []string
	flagFormat  string
	flagRecord  bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a table headless and print the result",
	Long: `Run a table as fast as possible without a terminal or window and print
a summary with the final snapshot.

Strikes are given as [frame:]x,y in table units. Without a frame the
strike lands on frame 1. Use --seed for a reproducible rack.

Examples:
  billiards sim --seed 42 --frames 600 --strike 600,200
  billiards sim --strike 1:600,200 --strike 400:100,100 --format json
  billiards sim billiards_classic --frames 3000 --record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagFrames, "frames", 600, "Number of frames to simulate")
	simCmd.Flags().StringArrayVar(&flagStrikes, "strike", nil, "Strike as [frame:]x,y (repeatable)")
	simCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or json")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Save finished rounds to the history database")
}

// SimRound is a round that finished during a simulation.
type SimRound struct {
	Frame       uint64 `json:"frame" yaml:"frame"` // simulation frame the round ended on
	RoundFrames int    `json:"round_frames" yaml:"round_frames"`
	Outcome     string `json:"outcome" yaml:"outcome"`
	Pocketed    int    `json:"pocketed" yaml:"pocketed"`
	Strikes     int    `json:"strikes" yaml:"strikes"`
}

// SimResult is the summary printed by the sim command.
type SimResult struct {
	Game     string                   `json:"game" yaml:"game"`
	Seed     int64                    `json:"seed" yaml:"seed"`
	Frames   uint64                   `json:"frames" yaml:"frames"`
	Script   []headless.ScriptedPress `json:"script,omitempty" yaml:"script,omitempty"`
	Rounds   []SimRound               `json:"rounds" yaml:"rounds"`
	Pocketed int                      `json:"pocketed" yaml:"pocketed"`
	Final    billiards.Snapshot       `json:"final" yaml:"final"`
	Hash     string                   `json:"hash" yaml:"hash"`
}

// parseStrike parses "[frame:]x,y".
func parseStrike(s string) (headless.ScriptedPress, error) {
	press := headless.ScriptedPress{Frame: 1}

	coords := s
	if frame, rest, ok := strings.Cut(s, ":"); ok {
		f, err := strconv.ParseUint(strings.TrimSpace(frame), 10, 64)
		if err != nil || f == 0 {
			return press, fmt.Errorf("invalid strike %q: frame must be a positive integer", s)
		}
		press.Frame = f
		coords = rest
	}

	xs, ys, ok := strings.Cut(coords, ",")
	if !ok {
		return press, fmt.Errorf("invalid strike %q: expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return press, fmt.Errorf("invalid strike %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return press, fmt.Errorf("invalid strike %q: %w", s, err)
	}
	press.X, press.Y = x, y
	return press, nil
}

// simulate runs game for frames frames with the given script.
// onRound is called for every finished round and may be nil.
func simulate(game *billiards.Game, cfg core.RuntimeConfig, frames uint64, script []headless.ScriptedPress, onRound func(SimRound)) (SimResult, error) {
	runner := headless.NewRunner(game, cfg, headless.Options{
		MaxFrames: frames,
		Script:    script,
		Logger:    logger,
	})

	result := SimResult{
		Game:   game.ID(),
		Seed:   cfg.Seed,
		Script: script,
		Rounds: []SimRound{},
	}
	err := runner.Run(context.Background(), func(frame uint64, res core.StepResult) bool {
		for _, ev := range res.Events {
			if ev.Kind != core.EventRoundOver {
				continue
			}
			round := SimRound{
				Frame:       frame,
				RoundFrames: res.State.Frame,
				Outcome:     ev.Outcome.String(),
				Pocketed:    res.State.Score,
				Strikes:     res.State.Strikes,
			}
			result.Rounds = append(result.Rounds, round)
			result.Pocketed += round.Pocketed
			if onRound != nil {
				onRound(round)
			}
		}
		return true
	})
	if err != nil {
		return result, fmt.Errorf("sim: %w", err)
	}

	result.Frames = runner.Frame()
	result.Final = game.Snapshot()
	result.Hash = fmt.Sprintf("%016x", result.Final.Hash())
	return result, nil
}

// writeResult encodes result as YAML or JSON.
func writeResult(w io.Writer, result SimResult, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("sim: encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("sim: encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("sim: unknown format %q (want yaml or json)", format)
	}
}

func runSim(_ *cobra.Command, args []string) error {
	gameID := gameArg(args)
	game, ok := mustCreate(gameID).(*billiards.Game)
	if !ok {
		return fmt.Errorf("table %q cannot be simulated", gameID)
	}

	script := make([]headless.ScriptedPress, 0, len(flagStrikes))
	for _, s := range flagStrikes {
		press, err := parseStrike(s)
		if err != nil {
			return err
		}
		script = append(script, press)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: seed}

	var store *storage.Store
	if flagRecord {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	result, err := simulate(game, cfg, flagFrames, script, func(r SimRound) {
		if store == nil {
			return
		}
		_, err := store.SaveRound(storage.Round{
			GameID:   gameID,
			Outcome:  r.Outcome,
			Pocketed: r.Pocketed,
			Strikes:  r.Strikes,
			Frames:   r.RoundFrames,
			Seed:     seed,
			Source:   storage.SourceSim,
		})
		if err != nil {
			logger.Warn("could not save round", "error", err)
		}
	})
	if err != nil {
		return err
	}

	return writeResult(os.Stdout, result, flagFormat)
}
