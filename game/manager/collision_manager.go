package manager

import (
	"fmt"

	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// Collision classifies what a candidate head ran into.
type Collision int

const (
	NoCollision Collision = iota
	WallCollision
	SelfCollision
	ObstacleCollision
	TrapCollision
)

func (c Collision) String() string {
	switch c {
	case NoCollision:
		return "none"
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	case ObstacleCollision:
		return "obstacle"
	case TrapCollision:
		return "trap"
	}
	return fmt.Sprintf("Collision(%d)", int(c))
}

func (c Collision) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Collision) UnmarshalText(b []byte) error {
	for v := NoCollision; v <= TrapCollision; v++ {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown collision %q", b)
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Classify checks pos against the walls, the whole body (tail included),
// obstacles and traps, in that order. It has no side effects.
func (cm *CollisionManager) Classify(pos types.Point, body []types.Point, obstacles []types.Point, events []entity.SurpriseEvent) Collision {
	if cm.isWallCollision(pos) {
		return WallCollision
	}
	for _, segment := range body {
		if segment == pos {
			return SelfCollision
		}
	}
	for _, obstacle := range obstacles {
		if obstacle == pos {
			return ObstacleCollision
		}
	}
	for _, event := range events {
		if event.Kind == entity.Trap && event.Pos == pos {
			return TrapCollision
		}
	}
	return NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return pos.X < 0 || pos.X >= cm.grid.Width || pos.Y < 0 || pos.Y >= cm.grid.Height
}

// FoodAt returns the index of the first food on pos, or -1.
func (cm *CollisionManager) FoodAt(pos types.Point, foods []entity.Food) int {
	for i, food := range foods {
		if food.Pos == pos {
			return i
		}
	}
	return -1
}

// BonusEventAt returns the index of the first BonusEvent on pos, or -1.
func (cm *CollisionManager) BonusEventAt(pos types.Point, events []entity.SurpriseEvent) int {
	for i, event := range events {
		if event.Kind == entity.BonusEvent && event.Pos == pos {
			return i
		}
	}
	return -1
}
