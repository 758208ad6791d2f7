package manager

import "snake-arcade/game/types"

// InputController buffers at most one direction change between ticks.
type InputController struct {
	pending    types.Point
	hasPending bool
}

func NewInputController() *InputController {
	return &InputController{}
}

// Request validates dir against the direction applied by the last tick and
// buffers it, replacing any earlier request. Perpendicular turns only.
func (ic *InputController) Request(current, dir types.Point) bool {
	if !types.IsUnit(dir) {
		return false
	}
	if (dir.X != 0 && current.X != 0) || (dir.Y != 0 && current.Y != 0) {
		return false
	}
	ic.pending = dir
	ic.hasPending = true
	return true
}

// Take returns the direction for the coming tick and clears the buffer.
func (ic *InputController) Take(current types.Point) types.Point {
	if !ic.hasPending {
		return current
	}
	ic.hasPending = false
	return ic.pending
}

// Pending reports the buffered direction, if any.
func (ic *InputController) Pending() (types.Point, bool) {
	return ic.pending, ic.hasPending
}

func (ic *InputController) Reset() {
	ic.pending = types.Point{}
	ic.hasPending = false
}
