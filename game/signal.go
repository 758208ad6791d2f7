package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"snake-arcade/game/manager"
)

// SignalKind names a discrete notification for collaborators.
type SignalKind int

const (
	SignalEat SignalKind = iota
	SignalSpeedBoost
	SignalFreeze
	SignalPoison
	SignalBonus
	SignalGameOver
	SignalButton
	SignalPause
	SignalResume
	SignalNewGame
	SignalMusic
)

var signalNames = [...]string{
	SignalEat:        "eat",
	SignalSpeedBoost: "speedBoost",
	SignalFreeze:     "freeze",
	SignalPoison:     "poison",
	SignalBonus:      "bonus",
	SignalGameOver:   "gameOver",
	SignalButton:     "button",
	SignalPause:      "pause",
	SignalResume:     "resume",
	SignalNewGame:    "newGame",
	SignalMusic:      "music",
}

func (k SignalKind) String() string {
	if k < 0 || int(k) >= len(signalNames) {
		return fmt.Sprintf("SignalKind(%d)", int(k))
	}
	return signalNames[k]
}

func (k SignalKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *SignalKind) UnmarshalText(b []byte) error {
	for i, n := range signalNames {
		if n == string(b) {
			*k = SignalKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown signal %q", b)
}

// Signal is fire-and-forget. Collision is set on gameOver, Record on
// gameOver with a positive score, and On carries the music state.
type Signal struct {
	Kind      SignalKind        `json:"kind"`
	Collision manager.Collision `json:"collision,omitempty"`
	Record    *ScoreRecord      `json:"record,omitempty"`
	On        bool              `json:"on,omitempty"`
}

// ScoreRecord is handed to the high score collaborator when a run ends.
type ScoreRecord struct {
	ID        uuid.UUID `json:"id"`
	RunID     uuid.UUID `json:"runId"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// SignalSink receives signals synchronously from the engine.
type SignalSink interface {
	Emit(Signal)
}

// SinkFunc adapts a function to SignalSink.
type SinkFunc func(Signal)

func (f SinkFunc) Emit(s Signal) { f(s) }

type discardSink struct{}

func (discardSink) Emit(Signal) {}
