package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"snake-arcade/game"
	"snake-arcade/store"
)

// fakeGame records actions and serves a canned snapshot.
type fakeGame struct {
	mu      sync.Mutex
	snap    game.Snapshot
	actions []string
	subs    []chan game.Signal
}

func (f *fakeGame) Dispatch(action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch action {
	case "pause":
		f.snap.Paused = !f.snap.Paused
	case "up", "down", "left", "right", "reset", "start":
	case "stopped":
		return game.ErrLoopStopped
	default:
		return fmt.Errorf("%w: %q", game.ErrUnknownAction, action)
	}
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeGame) Snapshot() game.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeGame) Subscribe(buffer int) (<-chan game.Signal, func()) {
	ch := make(chan game.Signal, buffer)
	f.mu.Lock()
	f.subs = append(f.subs, ch)
	f.mu.Unlock()
	return ch, func() {}
}

func (f *fakeGame) emit(s game.Signal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		ch <- s
	}
}

func (f *fakeGame) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func setupServer(t *testing.T) (*Server, *fakeGame, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "scores.db"), 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	g := &fakeGame{snap: game.Snapshot{RunID: uuid.New(), Score: 3, GridWidth: 20, GridHeight: 20}}
	return NewServer(g, st, 50, nil), g, st
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestStateEndpoint(t *testing.T) {
	srv, g, _ := setupServer(t)
	w := do(t, srv.Routes(), "GET", "/api/state", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var snap game.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.RunID != g.snap.RunID || snap.Score != 3 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestActionEndpoint(t *testing.T) {
	srv, g, _ := setupServer(t)
	h := srv.Routes()

	cases := []struct {
		body string
		want int
	}{
		{`{"action":"pause"}`, http.StatusOK},
		{`{"action":"up"}`, http.StatusOK},
		{`{"action":"fly"}`, http.StatusBadRequest},
		{`{"action":"stopped"}`, http.StatusServiceUnavailable},
		{`not json`, http.StatusBadRequest},
	}
	for _, c := range cases {
		if w := do(t, h, "POST", "/api/actions", c.body); w.Code != c.want {
			t.Errorf("%s: status = %d, want %d", c.body, w.Code, c.want)
		}
	}
	if len(g.actions) != 2 || !g.Snapshot().Paused {
		t.Errorf("actions = %v paused = %v", g.actions, g.Snapshot().Paused)
	}
}

func TestScoresEndpoints(t *testing.T) {
	srv, _, st := setupServer(t)
	h := srv.Routes()
	ctx := context.Background()
	for i, v := range []int{7, 2, 9} {
		rec := game.ScoreRecord{ID: uuid.New(), RunID: uuid.New(), Name: fmt.Sprintf("p%d", i), Score: v, Timestamp: time.Now()}
		if err := st.SaveScore(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	w := do(t, h, "GET", "/api/scores?limit=2", "")
	var top []store.Score
	if err := json.NewDecoder(w.Body).Decode(&top); err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].Score != 9 || top[1].Score != 7 {
		t.Fatalf("top = %+v", top)
	}

	if w := do(t, h, "GET", "/api/scores?limit=abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d", w.Code)
	}

	w = do(t, h, "GET", "/api/scores/stats", "")
	var stats store.Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.GamesRecorded != 3 || stats.MaxScore != 9 {
		t.Errorf("stats = %+v", stats)
	}

	if w := do(t, h, "DELETE", "/api/scores", ""); w.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d", w.Code)
	}
	w = do(t, h, "GET", "/api/scores", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("after clear body = %s", w.Body.String())
	}
}

func TestHeartbeat(t *testing.T) {
	srv, _, _ := setupServer(t)
	if w := do(t, srv.Routes(), "GET", "/health", ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestWebSocket(t *testing.T) {
	srv, g, _ := setupServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first ServerMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatal(err)
	}
	if first.Type != "state" || first.State == nil || first.State.RunID != g.snap.RunID {
		t.Fatalf("first frame = %+v", first)
	}

	if err := conn.WriteJSON(ActionRequest{Action: "pause"}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(ActionRequest{Action: "bogus"}); err != nil {
		t.Fatal(err)
	}

	for g.subscribers() == 0 {
		time.Sleep(time.Millisecond)
	}
	g.emit(game.Signal{Kind: game.SignalEat})

	var sawPaused, sawError, sawSignal bool
	for !(sawPaused && sawError && sawSignal) {
		var msg ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v (paused=%v error=%v signal=%v)", err, sawPaused, sawError, sawSignal)
		}
		switch msg.Type {
		case "state":
			sawPaused = sawPaused || msg.State.Paused
		case "error":
			sawError = strings.Contains(msg.Error, "unknown action")
		case "signal":
			sawSignal = msg.Signal.Kind == game.SignalEat
		}
	}
}
