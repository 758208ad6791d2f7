package ui

import (
	"fmt"

	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const borderPadding = 10

// HighScore is one leaderboard line shown in the side panel.
type HighScore struct {
	Name  string
	Score int
}

// Panel carries what the side panel shows besides the run itself.
type Panel struct {
	Player     string
	HighScores []HighScore
	Games      int
}

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	// Side panel takes a third of the window
	r.statsPanel = r.screenWidth / 3
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight
}

// layout sizes the cells so the whole grid fits the game area.
func (r *Renderer) layout(width, height int) {
	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.gameHeight - borderPadding*2

	r.cellSize = max(min(availableWidth/int32(width), availableHeight/int32(height)), 1)
	r.totalGridWidth = r.cellSize * int32(width)
	r.totalGridHeight = r.cellSize * int32(height)
	r.offsetX = borderPadding + (availableWidth-r.totalGridWidth)/2
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2
}

func (r *Renderer) cell(p types.Point) (int32, int32) {
	return r.offsetX + int32(p.X)*r.cellSize, r.offsetY + int32(p.Y)*r.cellSize
}

// Draw paints one frame from a snapshot.
func (r *Renderer) Draw(snap game.Snapshot, panel Panel) {
	r.UpdateDimensions()
	r.layout(snap.GridWidth, snap.GridHeight)
	theme := themeFor(snap.Settings)
	classic := snap.Settings.ClassicMode

	rl.BeginDrawing()
	rl.ClearBackground(theme.Panel)

	rl.DrawRectangle(r.offsetX-2, r.offsetY-2, r.totalGridWidth+4, r.totalGridHeight+4, theme.GridLine)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, theme.Background)

	if classic {
		for x := 0; x < snap.GridWidth; x++ {
			for y := 0; y < snap.GridHeight; y++ {
				px, py := r.cell(types.Point{X: x, Y: y})
				rl.DrawRectangleLines(px, py, r.cellSize, r.cellSize, theme.GridLine)
			}
		}
	}

	for _, o := range snap.Obstacles {
		r.fillCell(o, obstacleColor)
	}

	for _, ev := range snap.Events {
		r.fillCell(ev.Pos, eventColor(ev.Kind))
	}

	for _, f := range snap.Foods {
		color := foodColor(f.Kind)
		if classic {
			r.fillCell(f.Pos, color)
			continue
		}
		px, py := r.cell(f.Pos)
		half := r.cellSize / 2
		rl.DrawCircle(px+half, py+half, float32(half-1), color)
	}

	for i := len(snap.Snake) - 1; i >= 0; i-- {
		color := theme.Body
		if i == 0 {
			color = theme.Head
		}
		p := snap.Snake[i]
		if classic {
			r.fillCell(p, color)
			continue
		}
		px, py := r.cell(p)
		rec := rl.NewRectangle(float32(px+1), float32(py+1), float32(r.cellSize-2), float32(r.cellSize-2))
		rl.DrawRectangleRounded(rec, 0.4, 4, color)
	}
	if len(snap.Snake) > 0 {
		r.drawHeading(snap.Head(), snap.Direction)
	}

	r.drawOverlay(snap)
	r.drawStatsPanel(snap, panel, theme)
	rl.EndDrawing()
}

func (r *Renderer) fillCell(p types.Point, color rl.Color) {
	px, py := r.cell(p)
	rl.DrawRectangle(px, py, r.cellSize-1, r.cellSize-1, color)
}

// drawHeading puts a small triangle on the head pointing where it moves.
func (r *Renderer) drawHeading(head, dir types.Point) {
	headX, headY := r.cell(head)
	x, y := float32(headX), float32(headY)
	c := float32(r.cellSize)
	h := c / 2
	q := c / 4

	var a, b, d rl.Vector2
	switch {
	case dir.X > 0:
		a, b, d = rl.NewVector2(x+c-2, y+h), rl.NewVector2(x+h, y+q), rl.NewVector2(x+h, y+c-q)
	case dir.X < 0:
		a, b, d = rl.NewVector2(x+2, y+h), rl.NewVector2(x+h, y+c-q), rl.NewVector2(x+h, y+q)
	case dir.Y > 0:
		a, b, d = rl.NewVector2(x+h, y+c-2), rl.NewVector2(x+c-q, y+h), rl.NewVector2(x+q, y+h)
	default:
		a, b, d = rl.NewVector2(x+h, y+2), rl.NewVector2(x+q, y+h), rl.NewVector2(x+c-q, y+h)
	}
	rl.DrawTriangle(a, b, d, rl.Yellow)
}

func (r *Renderer) drawOverlay(snap game.Snapshot) {
	var title, hint string
	switch {
	case snap.GameOver:
		title, hint = "Game Over", fmt.Sprintf("Score %d - press R to play again", snap.Score)
	case snap.Paused:
		title, hint = "Paused", "press Space to resume"
	default:
		return
	}

	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, rl.Fade(rl.Black, 0.5))
	titleSize := max(r.totalGridHeight/10, 12)
	hintSize := max(titleSize/3, 10)
	tw := rl.MeasureText(title, titleSize)
	hw := rl.MeasureText(hint, hintSize)
	cy := r.offsetY + r.totalGridHeight/2
	rl.DrawText(title, r.offsetX+(r.totalGridWidth-tw)/2, cy-titleSize, titleSize, rl.White)
	rl.DrawText(hint, r.offsetX+(r.totalGridWidth-hw)/2, cy+hintSize/2, hintSize, rl.White)
}

func (r *Renderer) drawStatsPanel(snap game.Snapshot, panel Panel, theme Theme) {
	fontSize := max(min(r.screenHeight/35, r.statsPanel/16), 10)
	lineHeight := fontSize + fontSize/2
	x := r.gameWidth + borderPadding
	y := int32(borderPadding * 2)

	line := func(text string, indent int32, color rl.Color) {
		rl.DrawText(text, x+indent, y, fontSize, color)
		y += lineHeight
	}

	line("Snake Master", 0, theme.Text)
	line("Player: "+panel.Player, 0, theme.Muted)
	y += lineHeight / 2
	line(fmt.Sprintf("Score: %d", snap.Score), 0, theme.Text)
	line(fmt.Sprintf("Length: %d", len(snap.Snake)), 0, theme.Text)
	line(fmt.Sprintf("Speed: %d ms", snap.Interval), 0, theme.Text)
	if snap.Effects.SpeedBoost > 0 {
		line(fmt.Sprintf("Speed boost: %d", snap.Effects.SpeedBoost), 5, foodColor(entity.Bonus))
	}
	if snap.Effects.Freeze > 0 {
		line(fmt.Sprintf("Freeze: %d", snap.Effects.Freeze), 5, foodColor(entity.Freeze))
	}
	if snap.Autopilot {
		line(fmt.Sprintf("Autopilot (%d games)", panel.Games), 0, rl.Yellow)
	}

	y += lineHeight / 2
	line("Settings:", 0, theme.Text)
	for _, s := range types.AllSettings {
		state := "off"
		if snap.Settings.Get(s) {
			state = "on"
		}
		line(fmt.Sprintf("%s: %s", s, state), 5, theme.Muted)
	}

	y += lineHeight / 2
	line("High Scores:", 0, theme.Text)
	if len(panel.HighScores) == 0 {
		line("no games yet", 5, theme.Muted)
	}
	for i, hs := range panel.HighScores {
		line(fmt.Sprintf("%2d. %-12s %d", i+1, hs.Name, hs.Score), 5, theme.Muted)
	}

	help := "Arrows/WASD move  Space pause  R reset  G autopilot"
	rl.DrawText(help, x, r.screenHeight-fontSize-borderPadding, max(fontSize*3/4, 8), theme.Muted)
}
