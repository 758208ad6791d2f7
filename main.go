package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"snake-arcade/app"
	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// keyActions covers the keys that have no printable rune.
var keyActions = []struct {
	key    int32
	action string
}{
	{rl.KeyUp, "up"},
	{rl.KeyDown, "down"},
	{rl.KeyLeft, "left"},
	{rl.KeyRight, "right"},
	{rl.KeyEnter, "reset"},
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	session, err := app.Open(cfg, app.Options{Sound: true, LogOut: os.Stderr})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := session.Logger("desktop")

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- session.Run(ctx) }()

	rl.InitWindow(1280, 800, "Snake Master")
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetExitKey(rl.KeyEscape)
	rl.SetTargetFPS(int32(cfg.FPS))

	renderer := ui.NewRenderer()
	panel := ui.Panel{Player: cfg.PlayerName}
	refreshPanel := func() {
		top, err := session.HighScores(ctx)
		if err != nil {
			logger.Printf("load high scores: %v", err)
			return
		}
		panel.HighScores = panel.HighScores[:0]
		for _, s := range top {
			panel.HighScores = append(panel.HighScores, ui.HighScore{Name: s.Name, Score: s.Score})
		}
		panel.Games, _ = session.Pilot.Stats()
	}
	refreshPanel()

	// The store persists asynchronously, so the panel is reloaded shortly
	// after each game over instead of on the signal itself.
	signals, unsubscribe := session.Loop.Subscribe(8)
	var reloadAt time.Time

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}

		for _, k := range keyActions {
			if rl.IsKeyPressed(k.key) {
				dispatch(session.Loop, logger, k.action)
			}
		}
		for r := rl.GetCharPressed(); r != 0; r = rl.GetCharPressed() {
			if action, ok := game.ActionForRune(r); ok {
				dispatch(session.Loop, logger, action)
			}
		}

	drain:
		for {
			select {
			case sig := <-signals:
				if sig.Kind == game.SignalGameOver {
					reloadAt = time.Now().Add(200 * time.Millisecond)
				}
			default:
				break drain
			}
		}
		if !reloadAt.IsZero() && time.Now().After(reloadAt) {
			reloadAt = time.Time{}
			refreshPanel()
		}

		renderer.Draw(session.Loop.Snapshot(), panel)
	}

	unsubscribe()
	rl.CloseWindow()
	cancel()
	if err := <-runErr; err != nil {
		logger.Printf("loop: %v", err)
	}
	if err := session.Close(); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

func dispatch(loop *game.Loop, logger *log.Logger, action string) {
	if err := loop.Dispatch(action); err != nil && !errors.Is(err, game.ErrLoopStopped) {
		logger.Printf("action %s: %v", action, err)
	}
}
