package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

var (
	// ErrGameOver is returned by Tick once the run has ended.
	ErrGameOver = errors.New("tick after game over")
	// ErrInvariant marks a RunState that no legal sequence of ticks produces.
	ErrInvariant = errors.New("run state invariant violated")
)

// RunState is everything that belongs to one run. It is replaced wholesale
// on start and reset.
type RunState struct {
	ID        uuid.UUID
	StartedAt time.Time
	Ticks     int

	Snake     *entity.Snake
	Foods     []entity.Food
	Obstacles []types.Point
	Events    []entity.SurpriseEvent
	Direction types.Point
	Score     int
	Interval  int // base movement interval in ms
	Effects   entity.Effects
	Paused    bool
	GameOver  bool
}

func newRunState(start time.Time) *RunState {
	return &RunState{
		ID:        uuid.New(),
		StartedAt: start,
		Snake:     entity.NewSnake(types.StartPosition),
		Direction: types.RIGHT.ToPoint(),
		Interval:  types.InitialInterval,
	}
}

// EffectiveInterval is the delay until the next movement tick.
func (rs *RunState) EffectiveInterval() time.Duration {
	return time.Duration(rs.Effects.Scale(rs.Interval)) * time.Millisecond
}

// Check verifies the invariants that must hold after every tick.
func (rs *RunState) Check(grid types.Grid) error {
	if rs.Snake == nil || rs.Snake.Len() < 1 {
		return fmt.Errorf("%w: empty snake", ErrInvariant)
	}
	if rs.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvariant, rs.Score)
	}
	if rs.Interval < types.MinInterval || rs.Interval > types.InitialInterval {
		return fmt.Errorf("%w: interval %d outside [%d,%d]", ErrInvariant, rs.Interval, types.MinInterval, types.InitialInterval)
	}
	if rs.Effects.SpeedBoost < 0 || rs.Effects.Freeze < 0 {
		return fmt.Errorf("%w: negative effect counter %+v", ErrInvariant, rs.Effects)
	}
	if !types.IsUnit(rs.Direction) {
		return fmt.Errorf("%w: direction %v", ErrInvariant, rs.Direction)
	}
	for _, f := range rs.Foods {
		if !grid.Contains(f.Pos) {
			return fmt.Errorf("%w: food at %v", ErrInvariant, f.Pos)
		}
	}
	for _, o := range rs.Obstacles {
		if !grid.Contains(o) {
			return fmt.Errorf("%w: obstacle at %v", ErrInvariant, o)
		}
	}
	for _, e := range rs.Events {
		if !grid.Contains(e.Pos) || e.Remaining <= 0 {
			return fmt.Errorf("%w: event %+v", ErrInvariant, e)
		}
	}
	return nil
}

// Snapshot is a read-only deep copy of the live run for renderers and the
// web server.
type Snapshot struct {
	RunID      uuid.UUID              `json:"runId"`
	Snake      []types.Point          `json:"snake"`
	Foods      []entity.Food          `json:"foods"`
	Obstacles  []types.Point          `json:"obstacles"`
	Events     []entity.SurpriseEvent `json:"events"`
	Direction  types.Point            `json:"direction"`
	Score      int                    `json:"score"`
	Interval   int                    `json:"interval"`
	Effects    entity.Effects         `json:"effects"`
	Paused     bool                   `json:"paused"`
	GameOver   bool                   `json:"gameOver"`
	Settings   types.Settings         `json:"settings"`
	Autopilot  bool                   `json:"autopilot"`
	Ticks      int                    `json:"ticks"`
	StartedAt  time.Time              `json:"startedAt"`
	GridWidth  int                    `json:"gridWidth"`
	GridHeight int                    `json:"gridHeight"`
}

// Head returns the first snake segment.
func (s Snapshot) Head() types.Point {
	if len(s.Snake) == 0 {
		return types.Point{}
	}
	return s.Snake[0]
}

func (rs *RunState) snapshot(settings types.Settings, grid types.Grid) Snapshot {
	return Snapshot{
		RunID:      rs.ID,
		Snake:      rs.Snake.Clone(),
		Foods:      append([]entity.Food(nil), rs.Foods...),
		Obstacles:  append([]types.Point(nil), rs.Obstacles...),
		Events:     append([]entity.SurpriseEvent(nil), rs.Events...),
		Direction:  rs.Direction,
		Score:      rs.Score,
		Interval:   int(rs.EffectiveInterval() / time.Millisecond),
		Effects:    rs.Effects,
		Paused:     rs.Paused,
		GameOver:   rs.GameOver,
		Settings:   settings,
		Ticks:      rs.Ticks,
		StartedAt:  rs.StartedAt,
		GridWidth:  grid.Width,
		GridHeight: grid.Height,
	}
}
