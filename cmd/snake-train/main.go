package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"snake-arcade/ai"
	"snake-arcade/config"
)

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet("snake-train", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	episodes := fs.Int("episodes", 5000, "Number of training episodes")
	maxTicks := fs.Int("max-ticks", 2000, "Tick limit per episode")
	fs.Parse(os.Args[1:])

	logger := log.New(os.Stderr, "[train] ", log.LstdFlags)
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ap, err := ai.NewAutopilot(cfg.Seed, cfg.QTablePath, log.New(os.Stderr, "[ai] ", log.LstdFlags))
	if err != nil {
		logger.Fatal(err)
	}

	res, err := ai.Train(ctx, ap, ai.TrainOptions{
		Episodes: *episodes,
		MaxTicks: *maxTicks,
		Settings: cfg.Settings,
		Seed:     cfg.Seed,
		Progress: func(r ai.TrainResult) {
			logger.Printf("episode %d: best %d, average %.2f", r.Episodes, r.BestScore, r.Average)
		},
	})
	if err != nil {
		logger.Printf("training stopped: %v", err)
	}
	if err := ap.Save(); err != nil {
		logger.Fatalf("save q-table: %v", err)
	}
	logger.Printf("done after %d episodes: best %d, average %.2f", res.Episodes, res.BestScore, res.Average)
}
