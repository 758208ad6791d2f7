package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"snake-arcade/game"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// ServerMessage is every frame the websocket sends.
type ServerMessage struct {
	Type   string         `json:"type"`
	State  *game.Snapshot `json:"state,omitempty"`
	Signal *game.Signal   `json:"signal,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// handleWebSocket streams snapshots at the render rate and every signal as
// it happens. Client frames are actions.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	signals, unsubscribe := s.game.Subscribe(64)
	defer unsubscribe()

	var writeMu sync.Mutex
	safeWriteJSON := func(v ServerMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(v)
	}
	sendState := func() error {
		snap := s.game.Snapshot()
		return safeWriteJSON(ServerMessage{Type: "state", State: &snap})
	}

	if err := sendState(); err != nil {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			var msg ActionRequest
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Printf("read: %v", err)
				}
				return
			}
			if err := s.game.Dispatch(msg.Action); err != nil {
				safeWriteJSON(ServerMessage{Type: "error", Error: err.Error()})
				continue
			}
			sendState()
		}
	}()

	frames := time.NewTicker(time.Second / time.Duration(s.fps))
	defer frames.Stop()
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			if err := safeWriteJSON(ServerMessage{Type: "signal", Signal: &sig}); err != nil {
				return
			}
		case <-frames.C:
			if err := sendState(); err != nil {
				return
			}
		case <-pings.C:
			writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
