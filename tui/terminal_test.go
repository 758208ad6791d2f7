package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

func TestKeyAction(t *testing.T) {
	cases := []struct {
		name   string
		ev     *tcell.EventKey
		action string
		quit   bool
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "up", false},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "left", false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "reset", false},
		{"w", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), "up", false},
		{"D", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), "right", false},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "pause", false},
		{"obstacles", tcell.NewEventKey(tcell.KeyRune, 'o', tcell.ModNone), "toggle:obstacles", false},
		{"sound", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), "toggle:sound", false},
		{"autopilot", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), "autopilot", false},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), "", false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "", true},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := KeyAction(tc.ev)
			if action != tc.action || quit != tc.quit {
				t.Errorf("KeyAction = (%q, %v), want (%q, %v)", action, quit, tc.action, tc.quit)
			}
		})
	}
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(100, 30)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestDrawBoard(t *testing.T) {
	screen := newSimScreen(t)
	term := NewTerminal(screen, "ann")
	term.SetHighScores([]HighScore{{Name: "bob", Score: 12}})

	snap := game.Snapshot{
		Snake:      []types.Point{{X: 5, Y: 3}, {X: 4, Y: 3}},
		Foods:      []entity.Food{{Pos: types.Point{X: 8, Y: 8}, Kind: entity.Normal}},
		Obstacles:  []types.Point{{X: 1, Y: 1}},
		Events:     []entity.SurpriseEvent{{Pos: types.Point{X: 2, Y: 2}, Kind: entity.Trap, Remaining: 5}},
		Direction:  types.Point{X: 1, Y: 0},
		Settings:   types.Settings{Obstacles: true},
		GridWidth:  types.GridSize,
		GridHeight: types.GridSize,
	}
	term.Draw(snap)

	checks := []struct {
		name string
		x, y int
		want rune
	}{
		{"corner", 0, 0, '┌'},
		{"head", 1 + 5*2, 1 + 3, '▶'},
		{"body", 1 + 4*2, 1 + 3, '█'},
		{"food", 1 + 8*2, 1 + 8, '('},
		{"obstacle", 1 + 1*2, 1 + 1, '▓'},
		{"trap", 1 + 2*2, 1 + 2, 'X'},
		{"title", types.GridSize*2 + 4, 0, 'S'},
	}
	for _, c := range checks {
		if got := runeAt(screen, c.x, c.y); got != c.want {
			t.Errorf("%s at (%d,%d) = %q, want %q", c.name, c.x, c.y, got, c.want)
		}
	}
}

// The run keeps its obstacles after the setting is switched off, so they
// stay visible.
func TestDrawKeepsObstaclesWhenSettingOff(t *testing.T) {
	screen := newSimScreen(t)
	term := NewTerminal(screen, "ann")
	term.Draw(game.Snapshot{
		Snake:      []types.Point{{X: 10, Y: 10}},
		Obstacles:  []types.Point{{X: 1, Y: 1}},
		GridWidth:  types.GridSize,
		GridHeight: types.GridSize,
	})
	if got := runeAt(screen, 3, 2); got != '▓' {
		t.Errorf("obstacle cell = %q", got)
	}
}
