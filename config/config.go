package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"snake-arcade/game/types"
)

// Config is shared by the desktop, terminal and web front ends.
type Config struct {
	PlayerName      string
	DBPath          string
	Addr            string
	QTablePath      string
	Autopilot       bool
	Settings        types.Settings
	Seed            uint64
	FPS             int
	LeaderboardSize int
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		PlayerName:      "Player",
		DBPath:          filepath.Join("data", "scores.db"),
		Addr:            ":8080",
		QTablePath:      filepath.Join("data", "qtable.json"),
		Settings:        types.DefaultSettings(),
		Seed:            0, // 0 means time based
		FPS:             60,
		LeaderboardSize: 10,
	}
}

// RegisterFlags binds every field to a command line flag on fs, using the
// current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.PlayerName, "name", c.PlayerName, "Player name recorded with scores")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite leaderboard file")
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address (server only)")
	fs.StringVar(&c.QTablePath, "qtable", c.QTablePath, "Autopilot Q-table file (empty disables persistence)")
	fs.BoolVar(&c.Autopilot, "autopilot", c.Autopilot, "Start with the autopilot steering")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Random seed (0 = time based)")
	fs.IntVar(&c.FPS, "fps", c.FPS, "Render frames per second")
	fs.IntVar(&c.LeaderboardSize, "leaderboard", c.LeaderboardSize, "Number of scores kept")

	fs.BoolVar(&c.Settings.Obstacles, "obstacles", c.Settings.Obstacles, "Start with obstacles on")
	fs.BoolVar(&c.Settings.PowerUps, "powerups", c.Settings.PowerUps, "Start with power-ups on")
	fs.BoolVar(&c.Settings.DarkMode, "dark", c.Settings.DarkMode, "Start in dark mode")
	fs.BoolVar(&c.Settings.ClassicMode, "classic", c.Settings.ClassicMode, "Start in classic mode")
	fs.BoolVar(&c.Settings.Music, "music", c.Settings.Music, "Start with music on")
	fs.BoolVar(&c.Settings.Sound, "sound", c.Settings.Sound, "Start with sound effects on")
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.PlayerName) == "" {
		errs = append(errs, errors.New("player name must not be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("database path must not be empty"))
	}
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps %d out of range [1, 240]", c.FPS))
	}
	if c.LeaderboardSize < 1 {
		errs = append(errs, fmt.Errorf("leaderboard size %d must be positive", c.LeaderboardSize))
	}
	return errors.Join(errs...)
}

// Parse registers the flags on a new FlagSet, parses args and validates.
func Parse(name string, args []string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.PlayerName = strings.TrimSpace(cfg.PlayerName)
	return cfg, cfg.Validate()
}
