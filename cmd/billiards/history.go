package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-billiards/internal/platform/tui"
	"github.com/vovakirdan/tui-billiards/internal/registry"
	"github.com/vovakirdan/tui-billiards/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryBest  bool
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [variant]",
	Short: "Show recorded rounds",
	Long: `Display recent rounds and totals for a table variant (default: billiards).

Examples:
  billiards history
  billiards history billiards_classic --best
  billiards history --tui
  billiards history --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of rounds to show")
	historyCmd.Flags().BoolVar(&flagHistoryBest, "best", false, "Sort by balls pocketed instead of recency")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the history interactively")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the variant's recorded rounds")
}

func runHistory(_ *cobra.Command, args []string) {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown table %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'billiards list' to see available tables.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening round history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryTUI {
		cfg := terminalConfig()
		if _, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if flagHistoryClear {
		if err := store.ClearRounds(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing rounds: %v\n", err)
			return
		}
		fmt.Printf("Cleared round history for %s\n", gameID)
		return
	}

	var rounds []storage.Round
	if flagHistoryBest {
		rounds, err = store.BestRounds(gameID, flagHistoryLimit)
	} else {
		rounds, err = store.RecentRounds(gameID, flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		return
	}

	fmt.Printf("Round History - %s\n", gameID)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'billiards play %s' to record the first round!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-7s  %-7s  %s\n", "#", "Outcome", "Pocketed", "Strikes", "Source", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-7s  %-7s  %s\n", "-", "-------", "--------", "-------", "------", "----")
	for i, r := range rounds {
		fmt.Printf("  %-4d  %-8s  %-8d  %-7d  %-7s  %s\n",
			i+1, r.Outcome, r.Pocketed, r.Strikes, r.Source, r.PlayedAt().Format("2006-01-02 15:04"))
	}

	if stats, err := store.GameStats(gameID); err == nil && stats.Rounds > 0 {
		fmt.Println()
		fmt.Printf("Rounds: %d  Clears: %d  Scratches: %d  Best: %d  Avg: %.1f\n",
			stats.Rounds, stats.Clears, stats.Scratches, stats.Best, stats.AvgPocketed)
	}
}
