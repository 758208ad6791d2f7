package entity

import "snake-arcade/game/types"

// Snake is an ordered body with the head at index 0.
type Snake struct {
	Body []types.Point
}

func NewSnake(startPos types.Point) *Snake {
	return &Snake{
		Body: []types.Point{startPos},
	}
}

// Move pushes a new head. The tail stays until RemoveTail is called.
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

// RemoveTail drops the last segment, never shrinking below one segment.
func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment sits on pos.
func (s *Snake) Occupies(pos types.Point) bool {
	for _, p := range s.Body {
		if p == pos {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the body.
func (s *Snake) Clone() []types.Point {
	out := make([]types.Point, len(s.Body))
	copy(out, s.Body)
	return out
}
