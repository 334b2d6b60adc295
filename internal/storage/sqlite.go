// Package storage keeps an in-memory SQLite ledger of the matches finished
// during a session.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/colosseum/internal/engine"
	"github.com/vovakirdan/colosseum/internal/score"
)

// Memory is the path of a ledger that lives only as long as the process.
const Memory = ":memory:"

// Store manages the SQLite database connection for the match ledger.
type Store struct {
	db *sql.DB
}

// MatchSummary is one finished match.
type MatchSummary struct {
	ID        int64
	MatchID   string
	StartedAt time.Time
	Duration  time.Duration
	Winner    string // empty when nobody was ranked
	Reason    string
	Players   int
}

// StatRow is one player's line in a recorded match.
type StatRow struct {
	Rank        int
	Name        string
	AttackPoint int
	KillPoint   int
	Survive     time.Duration
	Score       float64
	Alive       bool
}

// Standing aggregates a name's results across the ledger.
type Standing struct {
	Name     string
	Matches  int
	Wins     int
	Kills    int
	Attacks  int
	AvgScore float64
}

// ErrNotMemory is returned by Open for any path other than Memory. The
// ledger only lives as long as the session.
var ErrNotMemory = errors.New("storage: only in-memory ledgers are supported")

// Open creates an empty in-memory ledger. An empty path means Memory.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = Memory
	}
	if dbPath != Memory {
		return nil, fmt.Errorf("%w: %q", ErrNotMemory, dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			started_at INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			winner TEXT,
			reason TEXT NOT NULL DEFAULT '',
			players INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS match_stats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(match_id),
			rank INTEGER NOT NULL,
			name TEXT NOT NULL,
			attack_point INTEGER NOT NULL DEFAULT 0,
			kill_point INTEGER NOT NULL DEFAULT 0,
			survive_ms INTEGER NOT NULL DEFAULT 0,
			score REAL NOT NULL DEFAULT 0,
			alive INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_match_stats_match ON match_stats(match_id);
		CREATE INDEX IF NOT EXISTS idx_match_stats_name ON match_stats(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match and its final table in one transaction.
// Returns the ID of the inserted match row.
func (s *Store) SaveMatch(matchID string, startedAt time.Time, reason string, res score.Result) (id int64, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	var winner sql.NullString
	if w, ok := res.Winner(); ok {
		winner = sql.NullString{String: w.Name, Valid: true}
	}

	result, err := tx.Exec(
		`INSERT INTO matches (match_id, started_at, duration_ms, winner, reason, players)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		matchID, startedAt.UnixMilli(), res.Duration.Milliseconds(), winner, reason, len(res.Stats),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, st := range res.Stats {
		if _, err = tx.Exec(
			`INSERT INTO match_stats (match_id, rank, name, attack_point, kill_point, survive_ms, score, alive)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			matchID, st.Rank, st.Name, st.AttackPoint, st.KillPoint, st.Survive.Milliseconds(), st.Score, st.Alive,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save stat row: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return id, nil
}

// RecordEnded saves a match the engine just finished.
// Pass it to engine.WithMatchEnd through a closure that handles the error.
func (s *Store) RecordEnded(e engine.Ended) error {
	_, err := s.SaveMatch(e.ID.String(), e.Start, e.Reason, e.Result)
	return err
}

// RecentMatches retrieves the most recently recorded matches.
func (s *Store) RecentMatches(limit int) ([]MatchSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, started_at, duration_ms, winner, reason, players
		 FROM matches
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []MatchSummary
	for rows.Next() {
		var m MatchSummary
		var startedAt, durationMs int64
		var winner sql.NullString
		if err := rows.Scan(&m.ID, &m.MatchID, &startedAt, &durationMs, &winner, &m.Reason, &m.Players); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.StartedAt = time.UnixMilli(startedAt).UTC()
		m.Duration = time.Duration(durationMs) * time.Millisecond
		if winner.Valid {
			m.Winner = winner.String
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// MatchStats retrieves the final table of one match in rank order.
func (s *Store) MatchStats(matchID string) ([]StatRow, error) {
	rows, err := s.db.Query(
		`SELECT rank, name, attack_point, kill_point, survive_ms, score, alive
		 FROM match_stats
		 WHERE match_id = ?
		 ORDER BY rank`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match stats: %w", err)
	}
	defer rows.Close()

	var stats []StatRow
	for rows.Next() {
		var r StatRow
		var surviveMs int64
		if err := rows.Scan(&r.Rank, &r.Name, &r.AttackPoint, &r.KillPoint, &surviveMs, &r.Score, &r.Alive); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Survive = time.Duration(surviveMs) * time.Millisecond
		stats = append(stats, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Leaderboard aggregates every name in the ledger, most wins first.
func (s *Store) Leaderboard(limit int) ([]Standing, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT name,
		        COUNT(*),
		        SUM(CASE WHEN rank = 1 THEN 1 ELSE 0 END) AS wins,
		        SUM(kill_point),
		        SUM(attack_point),
		        AVG(score)
		 FROM match_stats
		 GROUP BY name
		 ORDER BY wins DESC, AVG(score) DESC, name
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Name, &st.Matches, &st.Wins, &st.Kills, &st.Attacks, &st.AvgScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan leaderboard row: %w", err)
		}
		standings = append(standings, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return standings, nil
}

// MatchCount returns the number of recorded matches.
func (s *Store) MatchCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count matches: %w", err)
	}
	return n, nil
}

// Clear deletes every recorded match.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM match_stats; DELETE FROM matches;"); err != nil {
		return fmt.Errorf("storage: cannot clear ledger: %w", err)
	}
	return nil
}
