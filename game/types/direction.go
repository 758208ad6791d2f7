package types

import "fmt"

// Direction is a cardinal heading
type Direction int

const (
	NONE Direction = iota
	UP
	RIGHT
	DOWN
	LEFT
)

// Directions lists the four headings in clockwise order.
var Directions = [4]Direction{UP, RIGHT, DOWN, LEFT}

// ToPoint converts a Direction into a movement vector. Y grows downwards.
func (d Direction) ToPoint() Point {
	switch d {
	case UP:
		return Point{X: 0, Y: -1}
	case RIGHT:
		return Point{X: 1, Y: 0}
	case DOWN:
		return Point{X: 0, Y: 1}
	case LEFT:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// TurnLeft returns the heading after a counter-clockwise quarter turn.
func (d Direction) TurnLeft() Direction {
	switch d {
	case UP:
		return LEFT
	case RIGHT:
		return UP
	case DOWN:
		return RIGHT
	case LEFT:
		return DOWN
	default:
		return d
	}
}

// TurnRight returns the heading after a clockwise quarter turn.
func (d Direction) TurnRight() Direction {
	switch d {
	case UP:
		return RIGHT
	case RIGHT:
		return DOWN
	case DOWN:
		return LEFT
	case LEFT:
		return UP
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case UP:
		return "up"
	case RIGHT:
		return "right"
	case DOWN:
		return "down"
	case LEFT:
		return "left"
	default:
		return "none"
	}
}

// DirectionOf maps a unit vector back to its heading, NONE otherwise.
func DirectionOf(p Point) Direction {
	for _, d := range Directions {
		if d.ToPoint() == p {
			return d
		}
	}
	return NONE
}

// ParseDirection accepts the names produced by Direction.String.
func ParseDirection(name string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == name {
			return d, nil
		}
	}
	return NONE, fmt.Errorf("unknown direction %q", name)
}

// IsUnit reports whether p is one of the four cardinal unit vectors.
func IsUnit(p Point) bool {
	return DirectionOf(p) != NONE
}
