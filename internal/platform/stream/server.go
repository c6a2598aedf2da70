// Package stream serves a running table over HTTP.
// Spectators get live snapshots over a WebSocket and, when commands are
// allowed, may send strikes back. A small JSON API exposes the current
// state and the round history.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/games/billiards"
	"github.com/vovakirdan/tui-billiards/internal/platform/headless"
	"github.com/vovakirdan/tui-billiards/internal/storage"
)

// Config holds configuration for the stream server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// BroadcastEvery is the number of frames between snapshot broadcasts.
	BroadcastEvery uint64

	// Store records finished rounds. May be nil.
	Store *storage.Store

	// Logger defaults to a discarding logger.
	Logger *log.Logger

	// AllowCommands lets spectators strike, pause and restart the table.
	// The socket accepts any origin, so leave it off on shared networks.
	AllowCommands bool
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:        ":8080",
		BroadcastEvery: 2,
	}
}

// Message is a server-to-client WebSocket message.
type Message struct {
	Type     string              `json:"type"`
	Snapshot *billiards.Snapshot `json:"snapshot,omitempty"`
	Event    string              `json:"event,omitempty"`
	Outcome  string              `json:"outcome,omitempty"`
	Text     string              `json:"message,omitempty"`
	Round    *storage.Round      `json:"round,omitempty"`
}

// Command is a client-to-server WebSocket message.
type Command struct {
	Type string  `json:"type"` // strike, pause, restart
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Server streams one table to any number of spectators.
type Server struct {
	config  Config
	startAt time.Time
	game    *billiards.Game
	runner  *headless.Runner
	store   *storage.Store
	logger  *log.Logger
	hub     *Hub
	engine  *gin.Engine

	mu     sync.RWMutex
	latest billiards.Snapshot
}

// NewServer creates a server streaming the table driven by runner.
// The runner must drive game.
func NewServer(game *billiards.Game, runner *headless.Runner, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.BroadcastEvery == 0 {
		cfg.BroadcastEvery = 1
	}

	s := &Server{
		config:  cfg,
		startAt: time.Now(),
		game:    game,
		runner:  runner,
		store:   cfg.Store,
		logger:  logger,
		hub:     NewHub(logger),
		latest:  game.Snapshot(),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler serving the API and the WebSocket.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Hub returns the spectator hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.handleHealth)
	router.GET("/ws", s.handleWebSocket)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/state", s.handleState)
		v1.GET("/rounds", s.handleRounds)
		v1.GET("/rounds/:id", s.handleRound)
		v1.GET("/stats", s.handleStats)
	}
	return router
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"game":       s.game.ID(),
		"spectators": s.hub.Len(),
		"uptime":     time.Since(s.startAt).String(),
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.Latest())
}

func (s *Server) handleRounds(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "round history is disabled"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	rounds, err := s.store.RecentRounds(c.Query("game"), limit)
	if err != nil {
		s.logger.Error("cannot load rounds", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load rounds"})
		return
	}
	if rounds == nil {
		rounds = []storage.Round{}
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

func (s *Server) handleRound(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "round history is disabled"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid round id"})
		return
	}
	round, err := s.store.RoundByID(id)
	if err != nil {
		s.logger.Error("cannot load round", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load round"})
		return
	}
	if round == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
		return
	}
	c.JSON(http.StatusOK, round)
}

func (s *Server) handleStats(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "round history is disabled"})
		return
	}
	stats, err := s.store.AllGamesStats()
	if err != nil {
		s.logger.Error("cannot load stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		addr: c.Request.RemoteAddr,
	}
	s.hub.register(client)

	latest := s.Latest()
	client.sendJSON(Message{Type: "snapshot", Snapshot: &latest})

	go client.writePump()
	go client.readPump(s.handleCommand)
}

// handleCommand turns a client message into runner input.
func (s *Server) handleCommand(c *Client, raw []byte) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		c.sendJSON(Message{Type: "error", Text: "invalid message"})
		return
	}

	in := core.NewInputFrame()
	switch cmd.Type {
	case "strike":
		in.Press(cmd.X, cmd.Y)
	case "pause":
		in.Set(core.ActionPause)
	case "restart":
		in.Set(core.ActionRestart)
	default:
		c.sendJSON(Message{Type: "error", Text: fmt.Sprintf("unknown message type %q", cmd.Type)})
		return
	}
	if !s.config.AllowCommands {
		c.sendJSON(Message{Type: "error", Text: "commands are disabled on this table"})
		return
	}

	if !s.runner.SendInput(in) {
		c.sendJSON(Message{Type: "error", Text: "table is busy, try again"})
	}
}

// Latest returns the most recent broadcast snapshot.
func (s *Server) Latest() billiards.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// OnFrame publishes a frame. It runs on the runner goroutine, so it may
// read the game directly.
func (s *Server) OnFrame(frame uint64, res core.StepResult) bool {
	for _, ev := range res.Events {
		switch ev.Kind {
		case core.EventRoundOver:
			s.recordRound(ev.Outcome, res.State)
		case core.EventNotify:
			s.logger.Info("round finished", "game", s.game.ID(), "outcome", ev.Outcome)
			s.hub.Broadcast(Message{
				Type:    "notice",
				Outcome: ev.Outcome.String(),
				Text:    ev.Outcome.Message(),
			})
		case core.EventReset:
			s.hub.Broadcast(Message{Type: "event", Event: ev.Kind.String()})
		}
	}

	if frame%s.config.BroadcastEvery == 0 || len(res.Events) > 0 {
		snap := s.game.Snapshot()
		s.mu.Lock()
		s.latest = snap
		s.mu.Unlock()
		s.hub.Broadcast(Message{Type: "snapshot", Snapshot: &snap})
	}
	return true
}

// recordRound saves a finished round and announces it.
func (s *Server) recordRound(o core.Outcome, st core.GameState) {
	round := storage.Round{
		GameID:   s.game.ID(),
		Outcome:  o.String(),
		Pocketed: st.Score,
		Strikes:  st.Strikes,
		Frames:   st.Frame,
		Source:   storage.SourceStream,
	}
	if s.store != nil {
		id, err := s.store.SaveRound(round)
		if err != nil {
			s.logger.Warn("could not save round", "error", err)
		}
		round.ID = id
	}
	s.hub.Broadcast(Message{Type: "round", Outcome: round.Outcome, Round: &round})
}

// Run serves HTTP and drives the table until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var listenErr error
	listenDone := make(chan struct{})
	go func() {
		defer close(listenDone)
		s.logger.Info("starting stream server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			// A failed listener stops the table too.
			listenErr = fmt.Errorf("stream: listen: %w", err)
			cancel()
		}
	}()

	runErr := s.runner.Run(runCtx, s.OnFrame)

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	s.hub.Close()
	shutdownErr := srv.Shutdown(shutdownCtx)
	<-listenDone

	switch {
	case listenErr != nil:
		return listenErr
	case shutdownErr != nil:
		return fmt.Errorf("stream: shutdown: %w", shutdownErr)
	case ctx.Err() != nil:
		return nil
	default:
		return runErr
	}
}
