package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-arcade/app"
	"snake-arcade/config"
	"snake-arcade/tui"
)

func main() {
	cfg, err := config.Parse("snake-tui", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The screen owns stdout, so logs go to a file next to the database.
	var logOut io.Writer = io.Discard
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755)
	if f, err := os.OpenFile(filepath.Join(filepath.Dir(cfg.DBPath), "snake-tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		defer f.Close()
		logOut = f
	}

	session, err := app.Open(cfg, app.Options{Sound: true, LogOut: logOut})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := session.Logger("tui")

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	loopCtx, cancelLoop := context.WithCancel(ctx)
	runErr := make(chan error, 1)
	go func() { runErr <- session.Run(loopCtx) }()

	term := tui.NewTerminal(screen, cfg.PlayerName)
	refresh := func() {
		top, err := session.HighScores(ctx)
		if err != nil {
			logger.Printf("load high scores: %v", err)
			return
		}
		scores := make([]tui.HighScore, len(top))
		for i, s := range top {
			scores[i] = tui.HighScore{Name: s.Name, Score: s.Score}
		}
		term.SetHighScores(scores)
	}
	refresh()

	err = term.Run(ctx, session.Loop, cfg.FPS, func() {
		// The store saves asynchronously, give it a moment.
		time.AfterFunc(200*time.Millisecond, refresh)
	})
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		logger.Printf("terminal: %v", err)
	}

	cancelLoop()
	if err := <-runErr; err != nil {
		logger.Printf("loop: %v", err)
	}
	if err := session.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
