package entity

import (
	"fmt"

	"snake-arcade/game/types"
)

// FoodKind selects the consumption rule applied when the head reaches a food.
type FoodKind int

const (
	Normal FoodKind = iota
	Bonus
	Freeze
	Poison
)

func (k FoodKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Bonus:
		return "bonus"
	case Freeze:
		return "freeze"
	case Poison:
		return "poison"
	}
	return fmt.Sprintf("FoodKind(%d)", int(k))
}

func (k FoodKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *FoodKind) UnmarshalText(b []byte) error {
	for v := Normal; v <= Poison; v++ {
		if v.String() == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown food kind %q", b)
}

type Food struct {
	Pos  types.Point `json:"pos"`
	Kind FoodKind    `json:"kind"`
}

// EventKind distinguishes collectible surprise events from lethal ones.
type EventKind int

const (
	BonusEvent EventKind = iota
	Trap
)

func (k EventKind) String() string {
	switch k {
	case BonusEvent:
		return "bonus"
	case Trap:
		return "trap"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "bonus":
		*k = BonusEvent
	case "trap":
		*k = Trap
	default:
		return fmt.Errorf("unknown event kind %q", b)
	}
	return nil
}

// SurpriseEvent is a temporary cell hazard or reward. Remaining counts
// surprise ticks left before it expires.
type SurpriseEvent struct {
	Pos       types.Point `json:"pos"`
	Kind      EventKind   `json:"kind"`
	Remaining int         `json:"remaining"`
}

// Effects holds the decay counters of the speed modifiers.
type Effects struct {
	SpeedBoost int `json:"speedBoost"`
	Freeze     int `json:"freeze"`
}

// Decay lowers every active counter by one.
func (e *Effects) Decay() {
	if e.SpeedBoost > 0 {
		e.SpeedBoost--
	}
	if e.Freeze > 0 {
		e.Freeze--
	}
}

// Scale applies the active modifier to a base interval. Speed boost wins
// over freeze when both are running.
func (e Effects) Scale(base int) int {
	switch {
	case e.SpeedBoost > 0:
		return base / 2
	case e.Freeze > 0:
		return base * 2
	}
	return base
}
