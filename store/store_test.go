package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"snake-arcade/game"
)

func setupTestStore(t *testing.T, keep int) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "scores.db"), keep, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func record(name string, score int, offset time.Duration) game.ScoreRecord {
	return game.ScoreRecord{
		ID:        uuid.New(),
		RunID:     uuid.New(),
		Name:      name,
		Score:     score,
		Timestamp: base.Add(offset),
	}
}

func TestSaveAndTop(t *testing.T) {
	s := setupTestStore(t, 10)
	ctx := context.Background()

	inputs := []game.ScoreRecord{
		record("ann", 5, 0),
		record("bob", 12, time.Minute),
		record("cyd", 5, -time.Minute),
		record("dee", 1, 2*time.Minute),
	}
	for _, r := range inputs {
		if err := s.SaveScore(ctx, r); err != nil {
			t.Fatalf("SaveScore(%s): %v", r.Name, err)
		}
	}

	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"bob", "cyd", "ann"}
	if len(top) != len(want) {
		t.Fatalf("len = %d, want %d", len(top), len(want))
	}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("top[%d] = %s, want %s", i, top[i].Name, name)
		}
	}
	if !top[0].CreatedAt.Equal(inputs[1].Timestamp) || top[0].ID != inputs[1].ID {
		t.Errorf("round trip lost data: %+v", top[0])
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	s := setupTestStore(t, 10)
	ctx := context.Background()
	r := record("ann", 3, 0)
	for i := 0; i < 3; i++ {
		if err := s.SaveScore(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	top, _ := s.Top(ctx, 0)
	if len(top) != 1 {
		t.Fatalf("len = %d, want 1", len(top))
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := setupTestStore(t, 10)
	ctx := context.Background()
	if err := s.SaveScore(ctx, record("zero", 0, 0)); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("zero score: err = %v", err)
	}
	noID := record("noid", 4, 0)
	noID.ID = uuid.Nil
	if err := s.SaveScore(ctx, noID); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("nil id: err = %v", err)
	}
}

func TestLeaderboardKeepsBest(t *testing.T) {
	s := setupTestStore(t, 3)
	ctx := context.Background()
	for i := 1; i <= 6; i++ {
		if err := s.SaveScore(ctx, record("p", i*10, time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
	}
	top, err := s.Top(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 3 || top[0].Score != 60 || top[2].Score != 40 {
		t.Fatalf("top = %+v", top)
	}

	high, err := s.IsHighScore(ctx, 35)
	if err != nil || high {
		t.Errorf("35 should not qualify: %v %v", high, err)
	}
	high, err = s.IsHighScore(ctx, 45)
	if err != nil || !high {
		t.Errorf("45 should qualify: %v %v", high, err)
	}
}

func TestStats(t *testing.T) {
	s := setupTestStore(t, 10)
	ctx := context.Background()

	st, err := s.Stats(ctx)
	if err != nil || st != (Stats{}) {
		t.Fatalf("empty stats = %+v, %v", st, err)
	}

	for i, v := range []int{4, 10, 1, 5} {
		s.SaveScore(ctx, record("p", v, time.Duration(i)*time.Second))
	}
	st, err = s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{GamesRecorded: 4, MaxScore: 10, AverageScore: 5, MedianScore: 4.5}
	if st != want {
		t.Fatalf("stats = %+v, want %+v", st, want)
	}
}

func TestClear(t *testing.T) {
	s := setupTestStore(t, 10)
	ctx := context.Background()
	s.SaveScore(ctx, record("ann", 2, 0))
	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	top, _ := s.Top(ctx, 10)
	if len(top) != 0 {
		t.Fatalf("len = %d after clear", len(top))
	}
}

func TestConsume(t *testing.T) {
	s := setupTestStore(t, 10)
	signals := make(chan game.Signal, 4)
	r := record("ann", 9, 0)
	signals <- game.Signal{Kind: game.SignalEat}
	signals <- game.Signal{Kind: game.SignalGameOver}
	signals <- game.Signal{Kind: game.SignalGameOver, Record: &r}
	close(signals)

	if err := s.Consume(context.Background(), signals); err != nil {
		t.Fatal(err)
	}
	top, err := s.Top(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Score != 9 || top[0].RunID != r.RunID {
		t.Fatalf("top = %+v", top)
	}
}
