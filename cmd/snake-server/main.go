package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snake-arcade/app"
	"snake-arcade/config"
	"snake-arcade/server"
)

func main() {
	logger := log.New(os.Stdout, "[main] ", log.LstdFlags)

	cfg, err := config.Parse("snake-server", os.Args[1:])
	if err != nil {
		logger.Fatal(err)
	}

	// Nobody hears a headless speaker.
	session, err := app.Open(cfg, app.Options{LogOut: os.Stdout})
	if err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := make(chan error, 1)
	go func() { runErr <- session.Run(ctx) }()

	srv := server.NewServer(session.Loop, session.Store, cfg.FPS, session.Logger("server"))
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("http: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
	if err := <-runErr; err != nil {
		logger.Printf("loop: %v", err)
	}
	if err := session.Close(); err != nil {
		logger.Printf("close: %v", err)
	}
}
