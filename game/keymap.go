package game

import "unicode"

// runeActions is the letter half of the keyboard layout shared by the
// desktop and terminal front ends. Arrow keys are mapped by each front end.
var runeActions = map[rune]string{
	'w': "up",
	'a': "left",
	's': "down",
	'd': "right",
	' ': "pause",
	'r': "reset",
	'o': "toggle:obstacles",
	'p': "toggle:powerUps",
	'm': "toggle:music",
	'n': "toggle:sound",
	'c': "toggle:darkMode",
	't': "toggle:classicMode",
	'g': "autopilot",
}

// ActionForRune returns the Dispatch action bound to a typed character.
func ActionForRune(r rune) (string, bool) {
	a, ok := runeActions[unicode.ToLower(r)]
	return a, ok
}
