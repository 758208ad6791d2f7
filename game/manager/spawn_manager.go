package manager

import (
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// SpawnManager creates food, obstacles and surprise events.
type SpawnManager struct {
	positions PositionSource
	rng       Roller
}

func NewSpawnManager(positions PositionSource, rng Roller) *SpawnManager {
	return &SpawnManager{
		positions: positions,
		rng:       rng,
	}
}

// GeneratePosition returns a uniformly random cell.
func (sm *SpawnManager) GeneratePosition() types.Point {
	return sm.positions.Position()
}

// GenerateFood picks a position and a kind. With power-ups on, half of the
// food is Normal and the rest splits evenly between Bonus, Freeze and Poison.
func (sm *SpawnManager) GenerateFood(settings types.Settings) entity.Food {
	food := entity.Food{Pos: sm.GeneratePosition(), Kind: entity.Normal}
	if !settings.PowerUps {
		return food
	}
	switch roll := sm.rng.Intn(6); {
	case roll < 3:
		food.Kind = entity.Normal
	case roll == 3:
		food.Kind = entity.Bonus
	case roll == 4:
		food.Kind = entity.Freeze
	default:
		food.Kind = entity.Poison
	}
	return food
}

// GenerateObstacles returns between MinObstacles and MaxObstacles cells, or
// nothing when obstacles are off.
func (sm *SpawnManager) GenerateObstacles(settings types.Settings) []types.Point {
	if !settings.Obstacles {
		return nil
	}
	count := types.MinObstacles + sm.rng.Intn(types.MaxObstacles-types.MinObstacles+1)
	obstacles := make([]types.Point, 0, count)
	for i := 0; i < count; i++ {
		obstacles = append(obstacles, sm.GeneratePosition())
	}
	return obstacles
}

// MaybeSpawnSurpriseEvent rolls once per surprise tick. Settings do not gate
// surprise events.
func (sm *SpawnManager) MaybeSpawnSurpriseEvent() (entity.SurpriseEvent, bool) {
	if sm.rng.Float64() >= types.SurpriseChance {
		return entity.SurpriseEvent{}, false
	}
	event := entity.SurpriseEvent{
		Pos:       sm.GeneratePosition(),
		Kind:      entity.Trap,
		Remaining: types.TrapDuration,
	}
	if sm.rng.Float64() < types.BonusEventChance {
		event.Kind = entity.BonusEvent
		event.Remaining = types.BonusEventDuration
	}
	return event, true
}

// ReplaceFood removes the food at index i and appends a fresh one, keeping
// the set size constant.
func (sm *SpawnManager) ReplaceFood(foods []entity.Food, i int, settings types.Settings) []entity.Food {
	foods[i] = foods[len(foods)-1]
	foods = foods[:len(foods)-1]
	return append(foods, sm.GenerateFood(settings))
}
