package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/platform/tui"
	"github.com/vovakirdan/tui-billiards/internal/registry"
	"github.com/vovakirdan/tui-billiards/internal/storage"
)

// terminalConfig returns a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the round history. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open round history", "error", err)
		return nil
	}
	return store
}

func runMenu(_ *cobra.Command, _ []string) {
	tuiLogger, closeLog := fileLogger()
	defer closeLog()

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		goBack, err := tui.Run(game, cfg, tui.Options{Store: store, Logger: tuiLogger})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if !goBack {
			return
		}
	}
}
