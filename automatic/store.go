package automatic

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	depth_a INTEGER NOT NULL,
	depth_b INTEGER NOT NULL,
	winner TEXT NOT NULL,
	plies INTEGER NOT NULL,
	transcript TEXT NOT NULL,
	final TEXT NOT NULL,
	think_secs REAL NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS games_game_id ON games(game_id);
`

// ResultStore keeps finished self-play games in a sqlite database.
type ResultStore struct {
	db *sql.DB
}

func OpenResultStore(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// one writer; concurrent games funnel through the same connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

// Save stores res, played with the given depths for A and B.
func (s *ResultStore) Save(ctx context.Context, res *GameResult, depths [2]int) error {
	var think float64
	for _, d := range res.MoveTimes {
		think += d.Seconds()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (game_id, depth_a, depth_b, winner, plies, transcript, final, think_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fmt.Sprintf("%016x", res.ID), depths[0], depths[1], res.Winner.String(),
		len(res.Moves), res.Transcript(), res.Final.String(), think)
	if err != nil {
		return fmt.Errorf("saving game %016x: %w", res.ID, err)
	}
	log.Debug().Uint64("game-id", res.ID).Msg("game-saved")
	return nil
}

// WinCounts tallies stored games by winner ("A", "B" or "empty").
func (s *ResultStore) WinCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT winner, COUNT(*) FROM games GROUP BY winner`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var w string
		var n int
		if err := rows.Scan(&w, &n); err != nil {
			return nil, err
		}
		counts[w] = n
	}
	return counts, rows.Err()
}

// Count returns how many games are stored.
func (s *ResultStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}
