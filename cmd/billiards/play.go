package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-billiards/internal/platform/desktop"
	"github.com/vovakirdan/tui-billiards/internal/platform/tui"
	"github.com/vovakirdan/tui-billiards/internal/registry"
	"github.com/vovakirdan/tui-billiards/internal/storage"
)

var flagScale float64

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a table in the terminal",
	Long: `Start playing the given table variant (default: billiards).

Controls:
  Mouse click  - Strike the cue ball toward the pointer
  P/Space      - Pause
  R            - Restart with a fresh rack
  Ctrl+S       - Save a screenshot
  B/Esc        - Back
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Wide pockets, balls roll longer
  normal - Default pockets and friction
  hard   - Narrow pockets, balls stop sooner
  fixed  - The canonical 800x400 table, config file ignored

Examples:
  billiards play
  billiards play billiards_classic
  billiards play --difficulty easy
  billiards play --config ./my-table.toml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

var desktopCmd = &cobra.Command{
	Use:   "desktop [variant]",
	Short: "Play a table in a window",
	Long: `Open the table in a desktop window.

Controls:
  Left click   - Strike the cue ball toward the pointer
  P/Space      - Pause
  R            - Restart with a fresh rack
  Esc/Q        - Quit

Examples:
  billiards desktop
  billiards desktop billiards_classic --scale 1.5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDesktop,
}

func init() {
	desktopCmd.Flags().Float64Var(&flagScale, "scale", 1, "Pixels per table unit")
}

// mustCreate creates the variant or exits with a hint.
func mustCreate(gameID string) registry.Game {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown table %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'billiards list' to see available tables.")
		os.Exit(1)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	return game
}

func runPlay(_ *cobra.Command, args []string) {
	game := mustCreate(gameArg(args))

	tuiLogger, closeLog := fileLogger()
	store := openStore()

	_, runErr := tui.Run(game, terminalConfig(), tui.Options{Store: store, Logger: tuiLogger})

	// Close before potential exit
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func runDesktop(_ *cobra.Command, args []string) {
	game := mustCreate(gameArg(args))
	store := openStore()

	cfg := terminalConfig()
	runErr := desktop.Run(game, cfg, desktop.Options{
		Store:  store,
		Logger: logger,
		Source: storage.SourceDesktop,
		Scale:  flagScale,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
