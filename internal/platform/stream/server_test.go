package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-billiards/internal/config"
	"github.com/vovakirdan/tui-billiards/internal/core"
	"github.com/vovakirdan/tui-billiards/internal/games/billiards"
	"github.com/vovakirdan/tui-billiards/internal/platform/headless"
	"github.com/vovakirdan/tui-billiards/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, store *storage.Store) (*Server, *headless.Runner, *billiards.Game) {
	t.Helper()
	return newTestServerWith(t, Config{BroadcastEvery: 1, Store: store, AllowCommands: true})
}

func newTestServerWith(t *testing.T, cfg Config) (*Server, *headless.Runner, *billiards.Game) {
	t.Helper()
	g := billiards.NewWithConfig(billiards.VariantStandard, config.DefaultBilliardsConfig())
	r := headless.NewRunner(g, core.RuntimeConfig{TickRate: 60, Seed: 5}, headless.Options{Realtime: true})
	s := NewServer(g, r, cfg)
	return s, r, g
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t, nil)

	w := get(t, s.Handler(), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, expected 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body["status"] != "ok" || body["game"] != "billiards" {
		t.Errorf("health body = %v", body)
	}
}

func TestStateFollowsFrames(t *testing.T) {
	s, _, g := newTestServer(t, nil)

	g.Step(func() core.InputFrame {
		in := core.NewInputFrame()
		in.Press(500, 300)
		return in
	}())
	res := g.Step(core.NewInputFrame())
	s.OnFrame(2, res)

	w := get(t, s.Handler(), "/api/v1/state")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/state = %d, expected 200", w.Code)
	}
	var snap billiards.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if snap.Frame != 2 || snap.Strikes != 1 || len(snap.Balls) != 16 {
		t.Errorf("state = frame %d, strikes %d, %d balls", snap.Frame, snap.Strikes, len(snap.Balls))
	}
}

func TestRoundsEndpoints(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rounds.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	s, _, _ := newTestServer(t, store)
	s.recordRound(core.OutcomeScratch, core.GameState{Score: 4, Strikes: 6, Frame: 700})

	w := get(t, s.Handler(), "/api/v1/rounds?limit=5")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/rounds = %d, expected 200", w.Code)
	}
	var body struct {
		Rounds []storage.Round `json:"rounds"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(body.Rounds) != 1 || body.Rounds[0].Source != storage.SourceStream || body.Rounds[0].Pocketed != 4 {
		t.Fatalf("rounds = %+v, expected the streamed round", body.Rounds)
	}

	id := body.Rounds[0].ID
	if w := get(t, s.Handler(), "/api/v1/rounds/"+strconv.FormatInt(id, 10)); w.Code != http.StatusOK {
		t.Errorf("GET round %d = %d, expected 200", id, w.Code)
	}
	if w := get(t, s.Handler(), "/api/v1/rounds/999"); w.Code != http.StatusNotFound {
		t.Errorf("GET missing round = %d, expected 404", w.Code)
	}
	if w := get(t, s.Handler(), "/api/v1/rounds/abc"); w.Code != http.StatusBadRequest {
		t.Errorf("GET bad round id = %d, expected 400", w.Code)
	}
	if w := get(t, s.Handler(), "/api/v1/rounds?limit=-1"); w.Code != http.StatusBadRequest {
		t.Errorf("GET bad limit = %d, expected 400", w.Code)
	}
	if w := get(t, s.Handler(), "/api/v1/stats"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"billiards"`) {
		t.Errorf("GET /api/v1/stats = %d %s", w.Code, w.Body.String())
	}
}

func TestRoundsWithoutStore(t *testing.T) {
	s, _, _ := newTestServer(t, nil)

	for _, path := range []string{"/api/v1/rounds", "/api/v1/rounds/1", "/api/v1/stats"} {
		if w := get(t, s.Handler(), path); w.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s = %d, expected 503", path, w.Code)
		}
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return msg
}

func TestWebSocketSnapshotAndNotice(t *testing.T) {
	s, _, g := newTestServer(t, nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)

	first := readMessage(t, conn)
	if first.Type != "snapshot" || first.Snapshot == nil || len(first.Snapshot.Balls) != 16 {
		t.Fatalf("first message = %+v, expected the current snapshot", first)
	}

	s.OnFrame(1, core.StepResult{
		State:  g.State(),
		Events: []core.Event{{Kind: core.EventNotify, Outcome: core.OutcomeClear}},
	})

	notice := readMessage(t, conn)
	if notice.Type != "notice" || notice.Outcome != "clear" || notice.Text != core.OutcomeClear.Message() {
		t.Errorf("notice = %+v", notice)
	}
	if snap := readMessage(t, conn); snap.Type != "snapshot" {
		t.Errorf("message after notice = %q, expected snapshot", snap.Type)
	}
}

func TestWebSocketStrikeReachesTable(t *testing.T) {
	s, r, _ := newTestServer(t, nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	readMessage(t, conn)

	if err := conn.WriteJSON(Command{Type: "strike", X: 500, Y: 300}); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	struck := false
	_ = r.Run(ctx, func(_ uint64, res core.StepResult) bool {
		if res.Has(core.EventStrike) {
			struck = true
			return false
		}
		return true
	})
	if !struck {
		t.Error("strike sent over the websocket never reached the table")
	}
}

func TestWebSocketRejectsUnknownCommand(t *testing.T) {
	s, _, _ := newTestServer(t, nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	readMessage(t, conn)

	if err := conn.WriteJSON(Command{Type: "teleport"}); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != "error" {
		t.Errorf("reply = %+v, expected an error", msg)
	}
}

func TestWebSocketCommandsDisabledByDefault(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"strike", Command{Type: "strike", X: 500, Y: 300}},
		{"pause", Command{Type: "pause"}},
		{"restart", Command{Type: "restart"}},
	}

	s, r, _ := newTestServerWith(t, Config{BroadcastEvery: 1})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	readMessage(t, conn)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteJSON(tt.cmd); err != nil {
				t.Fatalf("WriteJSON() failed: %v", err)
			}
			msg := readMessage(t, conn)
			if msg.Type != "error" || !strings.Contains(msg.Text, "disabled") {
				t.Errorf("reply = %+v, expected commands to be refused", msg)
			}
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = r.Run(ctx, func(_ uint64, res core.StepResult) bool {
		if res.Has(core.EventStrike) || res.State.Paused {
			t.Errorf("refused command reached the table: %+v", res.State)
			return false
		}
		return true
	})
}
