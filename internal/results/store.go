// apps/go-server/internal/results/store.go
//
// SQLite-backed history of finished sessions.
// Responsibilities:
//   - Record summaries per player (and mark daily puzzle runs).
//   - List a player's recent results for the results screen.
//   - Rank a day's results per game for the daily leaderboard.
//
// The schema lives in assets/migrations and is applied by database.Migrate.

package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Record is a stored summary.
type Record struct {
	ID        int64     `json:"id"`
	PlayerID  string    `json:"playerId"`
	Date      string    `json:"date"` // YYYY-MM-DD, UTC
	Daily     bool      `json:"daily"`
	CreatedAt time.Time `json:"createdAt"`
	Summary
}

// LBRow is a leaderboard line.
type LBRow struct {
	PlayerID  string `json:"playerId"`
	Score     int    `json:"score"`
	TimeTaken int    `json:"timeTaken"`
}

// Store reads and writes the results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores r and returns its row id. Date defaults to today (UTC).
//
// A daily result is kept once per player, game and date: a repeat is
// ignored and Insert returns id 0 with no error.
func (s *Store) Insert(ctx context.Context, r Record) (int64, error) {
	if err := r.Summary.Validate(); err != nil {
		return 0, err
	}
	if r.Date == "" {
		r.Date = time.Now().UTC().Format("2006-01-02")
	}
	verb := "INSERT"
	if r.Daily {
		verb = "INSERT OR IGNORE"
	}
	res, err := s.db.ExecContext(ctx, verb+` INTO results (player_id, game_name, date, time_taken, score, total_possible, daily)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.PlayerID, r.GameName, r.Date, r.TimeTaken, r.Score, r.TotalPossible, r.Daily,
	)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, nil
	}
	return res.LastInsertId()
}

// AlreadyPlayed reports whether playerID has a daily result for gameName on date.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID, gameName, date string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM results
		WHERE player_id=? AND game_name=? AND date=? AND daily=1
		LIMIT 1`, playerID, gameName, date,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query played: %w", err)
	}
	return true, nil
}

// Recent returns playerID's latest results, newest first.
// Default limit is 20 if not specified.
func (s *Store) Recent(ctx context.Context, playerID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_id, game_name, date, time_taken, score, total_possible, daily, created_at
		FROM results
		WHERE player_id=?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, playerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		var created string
		if err := rows.Scan(&r.ID, &r.PlayerID, &r.GameName, &r.Date, &r.TimeTaken,
			&r.Score, &r.TotalPossible, &r.Daily, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Leaderboard ranks daily-puzzle results for gameName on date.
//
// Higher scores rank first, except for move-counting games where fewer
// moves is better. Ties go to the faster run, then the earlier one.
// Default limit is 20 if not specified.
func (s *Store) Leaderboard(ctx context.Context, gameName, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	order := "score DESC"
	if MovesBased(gameName) {
		order = "score ASC"
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, score, time_taken
		FROM results
		WHERE game_name=? AND date=? AND daily=1
		ORDER BY `+order+`, time_taken ASC, created_at ASC, id ASC
		LIMIT ?`, gameName, date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Score, &r.TimeTaken); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
