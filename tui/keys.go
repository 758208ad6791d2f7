package tui

import (
	"github.com/gdamore/tcell/v2"

	"snake-arcade/game"
)

// KeyAction maps a key event to a loop action. quit is set for Esc, Ctrl-C
// and q.
func KeyAction(ev *tcell.EventKey) (action string, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "", true
	case tcell.KeyUp:
		return "up", false
	case tcell.KeyDown:
		return "down", false
	case tcell.KeyLeft:
		return "left", false
	case tcell.KeyRight:
		return "right", false
	case tcell.KeyEnter:
		return "reset", false
	case tcell.KeyRune:
		if ev.Rune() == 'q' || ev.Rune() == 'Q' {
			return "", true
		}
		if a, ok := game.ActionForRune(ev.Rune()); ok {
			return a, false
		}
	}
	return "", false
}
