package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/games/billiards"
	"github.com/vovakirdan/tui-billiards/internal/platform/headless"
	"github.com/vovakirdan/tui-billiards/internal/platform/stream"
)

var (
	flagHTTPAddr       string
	flagBroadcastEvery uint64
	flagAllowCommands  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [variant]",
	Short: "Stream a table to WebSocket spectators",
	Long: `Run one table in real time and serve it over HTTP.

Spectators connect to /ws and receive JSON snapshots. With --allow-commands
they may also send {"type":"strike","x":600,"y":200}, {"type":"pause"} or
{"type":"restart"}. The socket accepts connections from any origin, so any
web page a visitor opens can drive the table once commands are allowed.

Endpoints:
  GET /healthz            - Liveness and spectator count
  GET /ws                 - Live snapshots and commands
  GET /api/v1/state       - Latest snapshot
  GET /api/v1/rounds      - Recorded rounds (?game=&limit=)
  GET /api/v1/rounds/:id  - One round
  GET /api/v1/stats       - Per-variant aggregates

Examples:
  billiards watch
  billiards watch billiards_classic --http :9000 --every 4
  billiards watch --http 127.0.0.1:8080 --allow-commands`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	watchCmd.Flags().Uint64Var(&flagBroadcastEvery, "every", 2, "Frames between snapshot broadcasts")
	watchCmd.Flags().BoolVar(&flagAllowCommands, "allow-commands", false, "Let spectators strike, pause and restart the table")
}

func runWatch(_ *cobra.Command, args []string) {
	gameID := gameArg(args)
	game, ok := mustCreate(gameID).(*billiards.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: table %q cannot be streamed\n", gameID)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: seed}

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	streamLogger := logger.WithPrefix("billiards-watch")
	runner := headless.NewRunner(game, cfg, headless.Options{
		Realtime: true,
		Logger:   streamLogger,
	})
	server := stream.NewServer(game, runner, stream.Config{
		Address:        flagHTTPAddr,
		BroadcastEvery: flagBroadcastEvery,
		Store:          store,
		Logger:         streamLogger,
		AllowCommands:  flagAllowCommands,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Streaming %s on %s\n", game.Title(), flagHTTPAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
