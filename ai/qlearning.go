package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/exp/rand"
)

// State is the compressed view the agent learns over.
type State struct {
	RelativeFoodDir [2]int  // sign of the food offset from the head (x, y)
	FoodDistance    int     // Manhattan distance to the nearest food
	DangerDirs      [4]bool // lethal cell in each direction (up, right, down, left)
	Heading         Action
}

// Key identifies the state in the Q-table. Distance is left out so the
// table stays small.
func (s State) Key() string {
	return fmt.Sprintf("%d,%d|%d%d%d%d|%d",
		s.RelativeFoodDir[0], s.RelativeFoodDir[1],
		boolToInt(s.DangerDirs[0]), boolToInt(s.DangerDirs[1]),
		boolToInt(s.DangerDirs[2]), boolToInt(s.DangerDirs[3]),
		s.Heading)
}

// Action indexes types.Directions.
type Action int

const (
	Up Action = iota
	Right
	Down
	Left
)

const numActions = 4

func (a Action) opposite() Action {
	return (a + 2) % numActions
}

type QTable map[string][numActions]float64

// QLearning is a tabular epsilon-greedy learner.
type QLearning struct {
	mu           sync.RWMutex
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64
	rng          *rand.Rand
}

func NewQLearning(rng *rand.Rand) *QLearning {
	return &QLearning{
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.05,
		rng:          rng,
	}
}

// GetAction explores with probability Epsilon, otherwise exploits. It never
// returns the reverse of the current heading.
func (q *QLearning) GetAction(state State) Action {
	if q.rng.Float64() < q.Epsilon {
		a := Action(q.rng.Intn(numActions))
		if a == state.Heading.opposite() {
			a = state.Heading
		}
		return a
	}
	return q.bestAction(state)
}

func (q *QLearning) bestAction(state State) Action {
	q.mu.RLock()
	values := q.QTable[state.Key()]
	q.mu.RUnlock()

	best := state.Heading
	bestValue := math.Inf(-1)
	for a := Up; a <= Left; a++ {
		if a == state.Heading.opposite() {
			continue
		}
		if values[a] > bestValue {
			best, bestValue = a, values[a]
		}
	}
	return best
}

// Update applies one Q-learning step and returns the updated value.
func (q *QLearning) Update(state State, action Action, reward float64, next State, terminal bool) float64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	maxNext := 0.0
	if !terminal {
		maxNext = math.Inf(-1)
		for _, v := range q.QTable[next.Key()] {
			maxNext = math.Max(maxNext, v)
		}
	}

	key := state.Key()
	values := q.QTable[key]
	values[action] += q.LearningRate * (reward + q.Discount*maxNext - values[action])
	q.QTable[key] = values
	q.TotalReward += reward
	return values[action]
}

// Value returns the learned value of an action in a state.
func (q *QLearning) Value(state State, action Action) float64 {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.QTable[state.Key()][action]
}

// SaveQTable writes the table as JSON, creating the directory if needed.
func (q *QLearning) SaveQTable(filename string) error {
	q.mu.RLock()
	data, err := json.MarshalIndent(q.QTable, "", "  ")
	q.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode q-table: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create q-table dir: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadQTable replaces the table with the file contents.
func (q *QLearning) LoadQTable(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	table := make(QTable)
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("decode q-table %s: %w", filename, err)
	}

	q.mu.Lock()
	q.QTable = table
	q.mu.Unlock()
	return nil
}

func (q *QLearning) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.QTable)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
