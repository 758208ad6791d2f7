package manager

import "snake-arcade/game/entity"

// EffectClock owns the slow bookkeeping: speed modifier decay and surprise
// event lifetimes.
type EffectClock struct {
	spawner *SpawnManager
}

func NewEffectClock(spawner *SpawnManager) *EffectClock {
	return &EffectClock{spawner: spawner}
}

// Decay runs on every decay tick, paused or not.
func (ec *EffectClock) Decay(effects *entity.Effects) {
	effects.Decay()
}

// Advance runs on every surprise tick: maybe spawn one event, then age all
// events and drop the expired ones. A freshly spawned event is aged in the
// same pass.
func (ec *EffectClock) Advance(events []entity.SurpriseEvent) []entity.SurpriseEvent {
	if event, ok := ec.spawner.MaybeSpawnSurpriseEvent(); ok {
		events = append(events, event)
	}
	return Expire(events)
}

// Expire decrements every event and removes those that reached zero.
func Expire(events []entity.SurpriseEvent) []entity.SurpriseEvent {
	kept := events[:0]
	for _, event := range events {
		event.Remaining--
		if event.Remaining > 0 {
			kept = append(kept, event)
		}
	}
	return kept
}
