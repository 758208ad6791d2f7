package ui

import (
	"snake-arcade/game/entity"
	"snake-arcade/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme is the palette for one combination of the dark mode setting.
type Theme struct {
	Background rl.Color
	GridLine   rl.Color
	Panel      rl.Color
	Text       rl.Color
	Muted      rl.Color
	Head       rl.Color
	Body       rl.Color
}

var (
	lightTheme = Theme{
		Background: rl.NewColor(0xf0, 0xf9, 0xff, 255),
		GridLine:   rl.NewColor(0xe5, 0xe7, 0xeb, 255),
		Panel:      rl.NewColor(0xff, 0xff, 0xff, 230),
		Text:       rl.NewColor(0x1f, 0x29, 0x37, 255),
		Muted:      rl.NewColor(0x4b, 0x55, 0x63, 255),
		Head:       rl.NewColor(0x05, 0x96, 0x69, 255),
		Body:       rl.NewColor(0x10, 0xb9, 0x81, 255),
	}
	darkTheme = Theme{
		Background: rl.NewColor(0x1a, 0x1a, 0x1a, 255),
		GridLine:   rl.NewColor(0x33, 0x33, 0x33, 255),
		Panel:      rl.NewColor(0x1f, 0x29, 0x37, 255),
		Text:       rl.White,
		Muted:      rl.NewColor(0xd1, 0xd5, 0xdb, 255),
		Head:       rl.NewColor(0x10, 0xb9, 0x81, 255),
		Body:       rl.NewColor(0x34, 0xd3, 0x99, 255),
	}

	obstacleColor = rl.NewColor(0x8b, 0x5c, 0xf6, 255)
	trapColor     = rl.NewColor(0xef, 0x44, 0x44, 255)
	bonusColor    = rl.NewColor(0xfb, 0xbf, 0x24, 255)
)

func themeFor(s types.Settings) Theme {
	if s.DarkMode {
		return darkTheme
	}
	return lightTheme
}

func foodColor(k entity.FoodKind) rl.Color {
	switch k {
	case entity.Bonus:
		return rl.NewColor(0xf5, 0x9e, 0x0b, 255)
	case entity.Freeze:
		return rl.NewColor(0x3b, 0x82, 0xf6, 255)
	case entity.Poison:
		return rl.NewColor(0xef, 0x44, 0x44, 255)
	default:
		return rl.NewColor(0x22, 0xc5, 0x5e, 255)
	}
}

func eventColor(k entity.EventKind) rl.Color {
	if k == entity.Trap {
		return trapColor
	}
	return bonusColor
}
