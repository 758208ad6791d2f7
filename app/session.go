package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"snake-arcade/ai"
	"snake-arcade/audio"
	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/store"
)

// Session wires one game loop to its collaborators: the leaderboard, the
// autopilot and, optionally, the speaker.
type Session struct {
	Config config.Config
	Loop   *game.Loop
	Store  *store.Store
	Pilot  *ai.Autopilot
	Sound  *audio.SoundManager

	logOut io.Writer
	logger *log.Logger
	wg     sync.WaitGroup
}

// Options selects the optional parts of a session.
type Options struct {
	Sound  bool
	LogOut io.Writer
}

func (o Options) logWriter() io.Writer {
	if o.LogOut == nil {
		return io.Discard
	}
	return o.LogOut
}

func newLogger(w io.Writer, name string) *log.Logger {
	return log.New(w, "["+name+"] ", log.LstdFlags)
}

// Open builds a session from cfg. Nothing runs until Run is called.
func Open(cfg config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	w := opts.logWriter()
	s := &Session{Config: cfg, logOut: w, logger: newLogger(w, "app")}

	st, err := store.New(cfg.DBPath, cfg.LeaderboardSize, newLogger(w, "store"))
	if err != nil {
		return nil, err
	}
	s.Store = st

	pilot, err := ai.NewAutopilot(cfg.Seed, cfg.QTablePath, newLogger(w, "ai"))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("autopilot: %w", err)
	}
	s.Pilot = pilot

	if opts.Sound {
		s.Sound = audio.NewSoundManager(newLogger(w, "audio"))
		if err := s.Sound.Initialize(); err != nil {
			// Keep playing without a device.
			s.logger.Printf("audio disabled: %v", err)
		}
	}

	s.Loop = game.NewLoop(game.Options{
		Settings:   cfg.Settings,
		PlayerName: cfg.PlayerName,
		Seed:       cfg.Seed,
	}, game.LoopConfig{
		Pilot:     pilot,
		Autopilot: cfg.Autopilot,
		Logger:    newLogger(w, "loop"),
	})
	return s, nil
}

// Run starts the collaborators and blocks in the game loop until ctx ends.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scores, unsubScores := s.Loop.Subscribe(16)
	defer unsubScores()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Store.Consume(ctx, scores); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Printf("score consumer: %v", err)
		}
	}()

	if s.Sound != nil {
		sounds, unsubSounds := s.Loop.Subscribe(32)
		defer unsubSounds()
		if s.Config.Settings.Music {
			s.Sound.StartMusic()
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.Sound.Consume(ctx, sounds, func() bool { return s.Loop.Snapshot().Settings.Sound })
		}()
	}

	err := s.Loop.Run(ctx)
	cancel()
	s.wg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// HighScores returns the leaderboard for side panels.
func (s *Session) HighScores(ctx context.Context) ([]store.Score, error) {
	return s.Store.Top(ctx, s.Config.LeaderboardSize)
}

// Close saves the autopilot table and releases the store and the speaker.
func (s *Session) Close() error {
	var errs []error
	if s.Pilot != nil {
		if err := s.Pilot.Save(); err != nil {
			errs = append(errs, fmt.Errorf("save q-table: %w", err))
		}
	}
	if s.Sound != nil {
		s.Sound.Cleanup()
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Logger returns a prefixed logger writing to the session's log output.
func (s *Session) Logger(name string) *log.Logger {
	return newLogger(s.logOut, name)
}
