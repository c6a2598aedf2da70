// billiards is a single-table billiards simulation for the terminal,
// a desktop window, SSH sessions and WebSocket spectators.
//
// Usage:
//
//	billiards                    - Pick a table from the menu
//	billiards list               - List table variants
//	billiards play [variant]     - Play a table in the terminal
//	billiards desktop [variant]  - Play a table in a window
//	billiards serve              - Start SSH server for remote play
//	billiards watch [variant]    - Stream a table over HTTP/WebSocket
//	billiards sim [variant]      - Run a table headless and print the result
//	billiards history [variant]  - Show recorded rounds
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible racks
//	--db <path>          - Set database path (default: ~/.billiards/rounds.db)
//	--config <path>      - Table config file (YAML or TOML)
//	--difficulty <name>  - Preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-billiards/internal/games/billiards"
)

// defaultGame is the variant used when a command gets no argument.
const defaultGame = "billiards"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	logger *log.Logger
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", getEnv("BILLIARDS_DB", "~/.billiards/rounds.db"), "Path to round history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", getEnv("BILLIARDS_CONFIG", ""), "Path to table config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", getEnv("BILLIARDS_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "billiards",
	Short: "Billiards - a single-table pool simulation",
	Long: `Billiards racks fifteen object balls and a cue ball on a table with
six pockets. Click anywhere to strike the cue ball toward that point.
Pocket every object ball to clear the table; sink the cue ball and the
round is a scratch. Either way the table is re-racked after a second.

Available commands:
  list     - Show table variants
  play     - Play a table in the terminal
  desktop  - Play a table in a window
  serve    - Start SSH server for remote play
  watch    - Stream a table to WebSocket spectators
  sim      - Run a table headless
  history  - View recorded rounds

Without a command the interactive menu starts.

Examples:
  billiards
  billiards play billiards_classic
  billiards desktop --seed 42
  billiards watch --http :8080
  billiards sim --frames 600 --strike 1:600,200`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run:               runMenu,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup builds the logger and hands the config flags to the game package.
// A config file named on the command line must load.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	logger, err = newLogger(os.Stderr)
	if err != nil {
		return err
	}

	billiards.SetConfigPath(flagConfig)
	billiards.SetDifficultyPreset(flagDifficulty)
	if flagConfig != "" {
		if _, err := billiards.LoadConfig(); err != nil {
			return err
		}
	}
	return nil
}

// newLogger creates a logger at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "billiards",
		Level:           level,
	}), nil
}

// fileLogger returns a logger writing to ~/.billiards/billiards.log so that
// full-screen views are not garbled. Falls back to discarding output.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".billiards")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "billiards.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	l, err := newLogger(f)
	if err != nil {
		f.Close()
		return log.New(io.Discard), func() {}
	}
	return l, func() { f.Close() }
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// gameArg returns the variant named by args, or the default variant.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultGame
}
