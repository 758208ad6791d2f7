package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-arcade/game"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
)

// Controller is the part of game.Loop the terminal needs.
type Controller interface {
	Dispatch(action string) error
	Snapshot() game.Snapshot
}

// HighScore is one leaderboard line in the side panel.
type HighScore struct {
	Name  string
	Score int
}

type palette struct {
	bg, border, grid, text, muted, head, body tcell.Style
}

func rgb(hex int32) tcell.Color {
	return tcell.NewRGBColor(hex>>16&0xff, hex>>8&0xff, hex&0xff)
}

func paletteFor(s types.Settings) palette {
	bg := rgb(0xf0f9ff)
	fg := rgb(0x1f2937)
	muted := rgb(0x4b5563)
	grid := rgb(0xe5e7eb)
	head, body := rgb(0x059669), rgb(0x10b981)
	if s.DarkMode {
		bg, fg, muted, grid = rgb(0x1a1a1a), tcell.ColorWhite, rgb(0xd1d5db), rgb(0x333333)
		head, body = rgb(0x10b981), rgb(0x34d399)
	}
	base := tcell.StyleDefault.Background(bg)
	return palette{
		bg:     base,
		border: base.Foreground(muted),
		grid:   base.Foreground(grid),
		text:   base.Foreground(fg).Bold(true),
		muted:  base.Foreground(muted),
		head:   base.Foreground(head),
		body:   base.Foreground(body),
	}
}

func foodStyle(base tcell.Style, k entity.FoodKind) tcell.Style {
	switch k {
	case entity.Bonus:
		return base.Foreground(rgb(0xf59e0b))
	case entity.Freeze:
		return base.Foreground(rgb(0x3b82f6))
	case entity.Poison:
		return base.Foreground(rgb(0xef4444))
	}
	return base.Foreground(rgb(0x22c55e))
}

// Terminal draws snapshots on a tcell screen. Each grid cell is two
// columns wide so the board looks square.
type Terminal struct {
	screen tcell.Screen
	player string

	mu     sync.Mutex
	scores []HighScore
}

func NewTerminal(screen tcell.Screen, player string) *Terminal {
	return &Terminal{screen: screen, player: player}
}

// SetHighScores replaces the leaderboard shown in the side panel.
func (t *Terminal) SetHighScores(scores []HighScore) {
	t.mu.Lock()
	t.scores = append([]HighScore(nil), scores...)
	t.mu.Unlock()
}

func (t *Terminal) put(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func (t *Terminal) cell(p types.Point, s string, style tcell.Style) {
	t.put(1+p.X*2, 1+p.Y, s, style)
}

// Draw renders one frame and shows it.
func (t *Terminal) Draw(snap game.Snapshot) {
	pal := paletteFor(snap.Settings)
	t.screen.SetStyle(pal.bg)
	t.screen.Clear()

	w, h := snap.GridWidth, snap.GridHeight
	for x := 0; x < w*2+2; x++ {
		t.screen.SetContent(x, 0, '─', nil, pal.border)
		t.screen.SetContent(x, h+1, '─', nil, pal.border)
	}
	for y := 0; y < h+2; y++ {
		t.screen.SetContent(0, y, '│', nil, pal.border)
		t.screen.SetContent(w*2+1, y, '│', nil, pal.border)
	}
	t.screen.SetContent(0, 0, '┌', nil, pal.border)
	t.screen.SetContent(w*2+1, 0, '┐', nil, pal.border)
	t.screen.SetContent(0, h+1, '└', nil, pal.border)
	t.screen.SetContent(w*2+1, h+1, '┘', nil, pal.border)

	if snap.Settings.ClassicMode {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				t.cell(types.Point{X: x, Y: y}, " ·", pal.grid)
			}
		}
	}

	for _, o := range snap.Obstacles {
		t.cell(o, "▓▓", pal.bg.Foreground(rgb(0x8b5cf6)))
	}
	for _, ev := range snap.Events {
		if ev.Kind == entity.Trap {
			t.cell(ev.Pos, "XX", pal.bg.Foreground(rgb(0xef4444)).Bold(true))
		} else {
			t.cell(ev.Pos, "$$", pal.bg.Foreground(rgb(0xfbbf24)).Bold(true))
		}
	}
	for _, f := range snap.Foods {
		glyph := "()"
		if snap.Settings.ClassicMode {
			glyph = "██"
		}
		t.cell(f.Pos, glyph, foodStyle(pal.bg, f.Kind))
	}
	for i := len(snap.Snake) - 1; i > 0; i-- {
		t.cell(snap.Snake[i], "██", pal.body)
	}
	if len(snap.Snake) > 0 {
		t.cell(snap.Head(), headGlyph(snap.Direction), pal.head.Reverse(true))
	}

	t.drawPanel(snap, pal, w*2+4)

	switch {
	case snap.GameOver:
		t.center(snap, fmt.Sprintf(" GAME OVER  score %d  (r to restart) ", snap.Score), pal.text.Reverse(true))
	case snap.Paused:
		t.center(snap, " PAUSED  (space to resume) ", pal.text.Reverse(true))
	}
	t.screen.Show()
}

func headGlyph(dir types.Point) string {
	switch types.DirectionOf(dir) {
	case types.UP:
		return "▲▲"
	case types.DOWN:
		return "▼▼"
	case types.LEFT:
		return "◀◀"
	}
	return "▶▶"
}

func (t *Terminal) center(snap game.Snapshot, msg string, style tcell.Style) {
	x := 1 + (snap.GridWidth*2-len(msg))/2
	t.put(max(x, 1), 1+snap.GridHeight/2, msg, style)
}

func (t *Terminal) drawPanel(snap game.Snapshot, pal palette, x int) {
	y := 0
	line := func(s string, style tcell.Style) {
		t.put(x, y, s, style)
		y++
	}

	line("SNAKE MASTER", pal.text)
	line("Player: "+t.player, pal.muted)
	y++
	line(fmt.Sprintf("Score:  %d", snap.Score), pal.text)
	line(fmt.Sprintf("Length: %d", len(snap.Snake)), pal.muted)
	line(fmt.Sprintf("Speed:  %d ms", snap.Interval), pal.muted)
	if snap.Effects.SpeedBoost > 0 {
		line(fmt.Sprintf("Boost:  %d", snap.Effects.SpeedBoost), foodStyle(pal.bg, entity.Bonus))
	}
	if snap.Effects.Freeze > 0 {
		line(fmt.Sprintf("Freeze: %d", snap.Effects.Freeze), foodStyle(pal.bg, entity.Freeze))
	}
	if snap.Autopilot {
		line("AUTOPILOT", pal.text)
	}
	y++
	for _, s := range types.AllSettings {
		mark := "[ ]"
		if snap.Settings.Get(s) {
			mark = "[x]"
		}
		line(mark+" "+s.String(), pal.muted)
	}
	y++
	line("High scores", pal.text)
	t.mu.Lock()
	scores := t.scores
	t.mu.Unlock()
	for i, hs := range scores {
		line(fmt.Sprintf("%2d. %-10.10s %4d", i+1, hs.Name, hs.Score), pal.muted)
	}
	y++
	line("arrows/wasd move, space pause", pal.muted)
	line("r reset, g autopilot, q quit", pal.muted)
	line("o p m n c t toggle settings", pal.muted)
}

// Run polls keys and redraws at fps until ctx ends or the user quits.
// onGameOver is called once per finished run, from the render goroutine.
func (t *Terminal) Run(ctx context.Context, ctl Controller, fps int, onGameOver func()) error {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		// PollEvent returns nil once the screen is finalized.
		for ev := t.screen.PollEvent(); ev != nil; ev = t.screen.PollEvent() {
			events <- ev
		}
	}()

	var lastRun game.Snapshot
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				action, stop := KeyAction(ev)
				if stop {
					return nil
				}
				if action != "" {
					if err := ctl.Dispatch(action); err != nil {
						return err
					}
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}

		case <-ticker.C:
			snap := ctl.Snapshot()
			if snap.GameOver && (!lastRun.GameOver || lastRun.RunID != snap.RunID) && onGameOver != nil {
				onGameOver()
			}
			lastRun = snap
			t.Draw(snap)
		}
	}
}
