package ai

import (
	"context"
	"errors"
	"testing"

	"snake-arcade/game/types"
)

func TestTrainPlaysEveryEpisode(t *testing.T) {
	ap, err := NewAutopilot(3, "", nil)
	if err != nil {
		t.Fatal(err)
	}

	var batches int
	res, err := Train(context.Background(), ap, TrainOptions{
		Episodes: 100,
		MaxTicks: 300,
		Settings: types.DefaultSettings(),
		Seed:     3,
		Progress: func(TrainResult) { batches++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Episodes != 100 {
		t.Errorf("Episodes = %d, want 100", res.Episodes)
	}
	if batches != 2 {
		t.Errorf("progress called %d times, want 2", batches)
	}
	if res.Average < 0 || float64(res.BestScore) < res.Average {
		t.Errorf("inconsistent result %+v", res)
	}
	if ap.agent.Size() == 0 {
		t.Error("training left the q-table empty")
	}
	games, _ := ap.Stats()
	if games == 0 || games > 100 {
		t.Errorf("autopilot saw %d finished games", games)
	}
}

func TestTrainStopsOnCancel(t *testing.T) {
	ap, _ := NewAutopilot(1, "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Train(ctx, ap, TrainOptions{Episodes: 5}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestTrainRejectsZeroEpisodes(t *testing.T) {
	ap, _ := NewAutopilot(1, "", nil)
	if _, err := Train(context.Background(), ap, TrainOptions{}); err == nil {
		t.Fatal("expected error")
	}
}
