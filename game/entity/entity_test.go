package entity

import (
	"testing"

	"snake-arcade/game/types"
)

func TestSnakeMoveKeepsHeadFirst(t *testing.T) {
	s := NewSnake(types.Point{X: 10, Y: 10})
	s.Move(types.Point{X: 11, Y: 10})
	s.Move(types.Point{X: 12, Y: 10})

	want := []types.Point{{X: 12, Y: 10}, {X: 11, Y: 10}, {X: 10, Y: 10}}
	if len(s.Body) != len(want) {
		t.Fatalf("len = %d, want %d", len(s.Body), len(want))
	}
	for i := range want {
		if s.Body[i] != want[i] {
			t.Fatalf("body[%d] = %v, want %v", i, s.Body[i], want[i])
		}
	}

	s.RemoveTail()
	if s.Len() != 2 || s.GetHead() != (types.Point{X: 12, Y: 10}) {
		t.Fatalf("after RemoveTail: %v", s.Body)
	}
}

func TestSnakeNeverEmpties(t *testing.T) {
	s := NewSnake(types.Point{X: 0, Y: 0})
	s.RemoveTail()
	s.RemoveTail()
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestSnakeCloneIsIndependent(t *testing.T) {
	s := NewSnake(types.Point{X: 1, Y: 1})
	body := s.Clone()
	body[0] = types.Point{X: 9, Y: 9}
	if s.GetHead() != (types.Point{X: 1, Y: 1}) {
		t.Fatal("clone aliased snake body")
	}
}

func TestEffectsScaleAndDecay(t *testing.T) {
	cases := []struct {
		name string
		e    Effects
		want int
	}{
		{"none", Effects{}, 100},
		{"boost", Effects{SpeedBoost: 3}, 50},
		{"freeze", Effects{Freeze: 3}, 200},
		{"boost wins", Effects{SpeedBoost: 1, Freeze: 1}, 50},
	}
	for _, c := range cases {
		if got := c.e.Scale(100); got != c.want {
			t.Errorf("%s: Scale(100) = %d, want %d", c.name, got, c.want)
		}
	}

	e := Effects{SpeedBoost: 1, Freeze: 2}
	e.Decay()
	e.Decay()
	e.Decay()
	if e.SpeedBoost != 0 || e.Freeze != 0 {
		t.Fatalf("counters went wrong: %+v", e)
	}
}
