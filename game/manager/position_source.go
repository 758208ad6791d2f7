package manager

import (
	"time"

	"golang.org/x/exp/rand"

	"snake-arcade/game/types"
)

// PositionSource yields grid cells for new entities. Occupancy is not
// checked: a spawn may land on the snake or on another entity.
type PositionSource interface {
	Position() types.Point
}

// Roller provides the probability rolls used by spawning.
type Roller interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded generator. A zero seed picks a time based one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// RandomPositionSource draws cells uniformly over the grid.
type RandomPositionSource struct {
	grid types.Grid
	rng  Roller
}

func NewRandomPositionSource(grid types.Grid, rng Roller) *RandomPositionSource {
	return &RandomPositionSource{
		grid: grid,
		rng:  rng,
	}
}

func (ps *RandomPositionSource) Position() types.Point {
	return types.Point{
		X: ps.rng.Intn(ps.grid.Width),
		Y: ps.rng.Intn(ps.grid.Height),
	}
}
