package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"snake-arcade/game"
)

// DefaultKeep is how many scores the leaderboard retains.
const DefaultKeep = 10

// ErrInvalidRecord rejects records that could never come from a finished run.
var ErrInvalidRecord = errors.New("invalid score record")

type Score struct {
	ID        uuid.UUID `json:"id"`
	RunID     uuid.UUID `json:"runId"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats summarises every score currently stored.
type Stats struct {
	GamesRecorded int     `json:"gamesRecorded"`
	MaxScore      int     `json:"maxScore"`
	AverageScore  float64 `json:"averageScore"`
	MedianScore   float64 `json:"medianScore"`
}

// Store is the persistent high-score table.
type Store struct {
	db     *sql.DB
	keep   int
	logger *log.Logger
}

// New opens or creates a SQLite database at dbPath and runs migrations.
// keep <= 0 selects DefaultKeep.
func New(dbPath string, keep int, logger *log.Logger) (*Store, error) {
	if keep <= 0 {
		keep = DefaultKeep
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create dir for %s: %w", dbPath, err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&cache=shared", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, keep: keep, logger: logger}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dbPath, err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(score DESC, created_at ASC);`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveScore stores a record and prunes the table to the configured size.
// Saving the same record twice is a no-op.
func (s *Store) SaveScore(ctx context.Context, rec game.ScoreRecord) error {
	if rec.Score <= 0 || rec.ID == uuid.Nil {
		return fmt.Errorf("%w: %+v", ErrInvalidRecord, rec)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO scores (id, run_id, name, score, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.RunID.String(), rec.Name, rec.Score, rec.Timestamp.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return s.Prune(ctx, s.keep)
}

// Top returns up to limit scores, best first. Ties go to the older score.
func (s *Store) Top(ctx context.Context, limit int) ([]Score, error) {
	if limit <= 0 {
		limit = s.keep
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, name, score, created_at FROM scores
		 ORDER BY score DESC, created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	out := make([]Score, 0, limit)
	for rows.Next() {
		var (
			sc      Score
			id, run string
			created int64
		)
		if err := rows.Scan(&id, &run, &sc.Name, &sc.Score, &created); err != nil {
			return nil, err
		}
		if sc.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("score id %q: %w", id, err)
		}
		if sc.RunID, err = uuid.Parse(run); err != nil {
			return nil, fmt.Errorf("run id %q: %w", run, err)
		}
		sc.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Prune deletes everything outside the best keep scores.
func (s *Store) Prune(ctx context.Context, keep int) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY score DESC, created_at ASC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune scores: %w", err)
	}
	return nil
}

// Clear empties the leaderboard.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}
	return nil
}

// IsHighScore reports whether score would enter the leaderboard.
func (s *Store) IsHighScore(ctx context.Context, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	var count int
	var lowest sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), MIN(score) FROM scores`).Scan(&count, &lowest)
	if err != nil {
		return false, fmt.Errorf("query lowest score: %w", err)
	}
	return count < s.keep || int64(score) > lowest.Int64, nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT score FROM scores`)
	if err != nil {
		return Stats{}, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return Stats{}, err
		}
		scores = append(scores, v)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}
	return summarize(scores), nil
}

func summarize(scores []int) Stats {
	if len(scores) == 0 {
		return Stats{}
	}
	sort.Ints(scores)

	total := 0
	for _, v := range scores {
		total += v
	}
	st := Stats{
		GamesRecorded: len(scores),
		MaxScore:      scores[len(scores)-1],
		AverageScore:  float64(total) / float64(len(scores)),
	}
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		st.MedianScore = float64(scores[mid-1]+scores[mid]) / 2
	} else {
		st.MedianScore = float64(scores[mid])
	}
	return st
}

// Consume saves every score record carried by a game over signal until
// ctx ends or signals closes.
func (s *Store) Consume(ctx context.Context, signals <-chan game.Signal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			if sig.Kind != game.SignalGameOver || sig.Record == nil {
				continue
			}
			if err := s.SaveScore(ctx, *sig.Record); err != nil {
				s.logger.Printf("save score %d for %s: %v", sig.Record.Score, sig.Record.Name, err)
				continue
			}
			s.logger.Printf("saved score %d for %s", sig.Record.Score, sig.Record.Name)
		}
	}
}
