package ai

import (
	"context"
	"errors"
	"fmt"

	"snake-arcade/game"
	"snake-arcade/game/types"
)

// TrainOptions configures an offline training session.
type TrainOptions struct {
	Episodes int
	// MaxTicks ends an episode that never dies.
	MaxTicks int
	Settings types.Settings
	Seed     uint64
	// SurpriseEvery is how many movement ticks pass per surprise tick.
	SurpriseEvery int
	// Progress, if set, is called after every batch of 50 episodes.
	Progress func(TrainResult)
}

// TrainResult summarises the episodes played so far.
type TrainResult struct {
	Episodes  int
	BestScore int
	Average   float64
}

const trainBatch = 50

// Train plays headless episodes against a bare Game, without timers, and
// lets the autopilot learn from each transition.
func Train(ctx context.Context, ap *Autopilot, opts TrainOptions) (TrainResult, error) {
	if opts.Episodes <= 0 {
		return TrainResult{}, fmt.Errorf("episodes must be positive, got %d", opts.Episodes)
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = 2000
	}
	if opts.SurpriseEvery <= 0 {
		// 5000 ms of surprise period against a 150 ms start interval
		opts.SurpriseEvery = types.SurprisePeriodMs / types.InitialInterval
	}

	g := game.NewGame(game.Options{Settings: opts.Settings, Seed: opts.Seed, PlayerName: "autopilot"})

	var res TrainResult
	total := 0
	for episode := 0; episode < opts.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		g.StartGame()

		for tick := 1; tick <= opts.MaxTicks && !g.GameOver(); tick++ {
			prev := g.Snapshot()
			g.RequestDirection(ap.Choose(prev).ToPoint())
			if _, err := g.Tick(); err != nil && !errors.Is(err, game.ErrGameOver) {
				return res, fmt.Errorf("episode %d tick %d: %w", episode, tick, err)
			}
			g.DecayEffects()
			if tick%opts.SurpriseEvery == 0 {
				g.EffectTick()
			}
			ap.Observe(prev, g.Snapshot())
		}

		score := g.Score()
		total += score
		res.Episodes = episode + 1
		res.BestScore = max(res.BestScore, score)
		res.Average = float64(total) / float64(res.Episodes)

		if opts.Progress != nil && res.Episodes%trainBatch == 0 {
			opts.Progress(res)
		}
	}
	return res, nil
}
