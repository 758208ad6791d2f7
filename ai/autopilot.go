package ai

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"sync"

	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
)

// Rewards for a single transition.
const (
	rewardDeath    = -10.0
	rewardScore    = 5.0
	rewardCloser   = 0.5
	rewardFurther  = -0.3
	saveEveryGames = 10
)

// Autopilot drives the snake with a QLearning agent and keeps learning
// while it plays.
type Autopilot struct {
	mu         sync.Mutex
	agent      *QLearning
	logger     *log.Logger
	path       string
	lastState  State
	lastAction Action
	games      int
	bestScore  int
}

// NewAutopilot loads the table at path when it exists. An empty path keeps
// the table in memory only.
func NewAutopilot(seed uint64, path string, logger *log.Logger) (*Autopilot, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	ap := &Autopilot{
		agent:  NewQLearning(manager.NewRand(seed)),
		logger: logger,
		path:   path,
	}
	if path == "" {
		return ap, nil
	}
	if err := ap.agent.LoadQTable(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		logger.Printf("no q-table at %s, starting fresh", path)
	} else {
		logger.Printf("loaded q-table %s (%d states)", path, ap.agent.Size())
	}
	return ap, nil
}

// Choose picks the next heading for the snapshot.
func (ap *Autopilot) Choose(s game.Snapshot) types.Direction {
	ap.mu.Lock()
	defer ap.mu.Unlock()

	state := Observe(s)
	action := ap.agent.GetAction(state)
	ap.lastState, ap.lastAction = state, action
	return types.Directions[action]
}

// Observe feeds the transition caused by the last Choose back to the agent.
func (ap *Autopilot) Observe(prev, next game.Snapshot) {
	ap.mu.Lock()
	defer ap.mu.Unlock()

	nextState := Observe(next)
	ap.agent.Update(ap.lastState, ap.lastAction, Reward(prev, next), nextState, next.GameOver)

	if !next.GameOver {
		return
	}
	ap.games++
	if next.Score > ap.bestScore {
		ap.bestScore = next.Score
	}
	if ap.path != "" && ap.games%saveEveryGames == 0 {
		if err := ap.agent.SaveQTable(ap.path); err != nil {
			ap.logger.Printf("save q-table: %v", err)
		}
	}
}

// Save writes the table to its path, if any.
func (ap *Autopilot) Save() error {
	if ap.path == "" {
		return nil
	}
	return ap.agent.SaveQTable(ap.path)
}

// Stats reports games finished under autopilot and the best score.
func (ap *Autopilot) Stats() (games, best int) {
	ap.mu.Lock()
	defer ap.mu.Unlock()
	return ap.games, ap.bestScore
}

// Reward scores a transition: death dominates, then score gained, then
// progress towards food.
func Reward(prev, next game.Snapshot) float64 {
	if next.GameOver {
		return rewardDeath
	}
	if next.Score > prev.Score {
		return rewardScore
	}
	before, _ := nearestFood(prev)
	after, _ := nearestFood(next)
	switch {
	case after < before:
		return rewardCloser
	case after > before:
		return rewardFurther
	}
	return 0
}

// Observe reduces a snapshot to a learning state.
func Observe(s game.Snapshot) State {
	head := s.Head()
	state := State{Heading: Action(indexOf(types.DirectionOf(s.Direction)))}

	dist, food := nearestFood(s)
	state.FoodDistance = dist
	if dist >= 0 {
		state.RelativeFoodDir = [2]int{sign(food.X - head.X), sign(food.Y - head.Y)}
	}

	grid := types.Grid{Width: s.GridWidth, Height: s.GridHeight}
	for i, d := range types.Directions {
		state.DangerDirs[i] = lethal(s, grid, head.Add(d.ToPoint()))
	}
	return state
}

func lethal(s game.Snapshot, grid types.Grid, pos types.Point) bool {
	if !grid.Contains(pos) {
		return true
	}
	for _, p := range s.Snake {
		if p == pos {
			return true
		}
	}
	for _, o := range s.Obstacles {
		if o == pos {
			return true
		}
	}
	for _, e := range s.Events {
		if e.Pos == pos && e.Kind == entity.Trap {
			return true
		}
	}
	return false
}

// nearestFood ignores poison. Distance is -1 when nothing is edible.
func nearestFood(s game.Snapshot) (int, types.Point) {
	head := s.Head()
	best, bestPos := -1, types.Point{}
	for _, f := range s.Foods {
		if f.Kind == entity.Poison {
			continue
		}
		d := abs(f.Pos.X-head.X) + abs(f.Pos.Y-head.Y)
		if best < 0 || d < best {
			best, bestPos = d, f.Pos
		}
	}
	return best, bestPos
}

func indexOf(d types.Direction) int {
	for i, dir := range types.Directions {
		if dir == d {
			return i
		}
	}
	return int(Right)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
