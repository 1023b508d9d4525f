// Package storage provides SQLite-based persistence for match results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only finished matches are stored; game state is never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/flaky-snakey/internal/arena"
)

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// MatchRecord is one stored match with its roster.
type MatchRecord struct {
	ID         int64
	MatchID    string
	GameID     string
	Humans     int
	AI         int
	Tier       string
	Width      int
	Height     int
	Ticks      int64
	WinnerSlot int    // arena.Draw or arena.NoWinner when nobody won
	WinnerName string // empty for a draw
	Duration   time.Duration
	CreatedAt  time.Time
	Players    []PlayerRecord
}

// PlayerRecord is one snake's line in a stored match.
type PlayerRecord struct {
	MatchID string
	Slot    int
	Name    string
	Human   bool
	Score   int
	Size    int
	Alive   bool
}

// ScoreEntry is a single player score with the match it came from.
type ScoreEntry struct {
	MatchID   string
	Name      string
	Human     bool
	Score     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			game_id TEXT NOT NULL,
			humans INTEGER NOT NULL,
			ai INTEGER NOT NULL,
			tier TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			winner_slot INTEGER NOT NULL,
			winner_name TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);

		CREATE TABLE IF NOT EXISTS match_players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
			slot INTEGER NOT NULL,
			name TEXT NOT NULL,
			human INTEGER NOT NULL,
			score INTEGER NOT NULL,
			size INTEGER NOT NULL,
			alive INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_match_players_match ON match_players(match_id);
		CREATE INDEX IF NOT EXISTS idx_match_players_top ON match_players(score DESC);
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

// SaveMatch records a match and its roster in one transaction.
// Returns the ID of the inserted match row.
func (s *Store) SaveMatch(gameID string, r arena.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	var winnerName sql.NullString
	if name := r.WinnerName(); name != "" {
		winnerName = sql.NullString{String: name, Valid: true}
	}

	res, err := tx.Exec(
		`INSERT INTO matches
		 (match_id, game_id, humans, ai, tier, width, height, ticks, winner_slot, winner_name, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, gameID, r.Humans, r.AI, r.Tier, r.Width, r.Height,
		int64(r.Ticks), r.Winner, winnerName, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, p := range r.Players {
		if _, err := tx.Exec(
			`INSERT INTO match_players (match_id, slot, name, human, score, size, alive)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, p.Slot, p.Name, p.Human, p.Score, p.Size, p.Alive,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save player %d: %w", p.Slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return id, nil
}

const matchColumns = `id, match_id, game_id, humans, ai, tier, width, height,
	ticks, winner_slot, winner_name, duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var (
		m          MatchRecord
		winnerName sql.NullString
		durationMs int64
		createdAt  any
	)
	err := row.Scan(
		&m.ID, &m.MatchID, &m.GameID, &m.Humans, &m.AI, &m.Tier, &m.Width, &m.Height,
		&m.Ticks, &m.WinnerSlot, &winnerName, &durationMs, &createdAt,
	)
	if err != nil {
		return m, err
	}
	m.WinnerName = winnerName.String
	m.Duration = time.Duration(durationMs) * time.Millisecond
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// parseTime handles both time.Time and the SQLite text form.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match and its roster. Returns nil if absent.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	m, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	if m.Players, err = s.players(m.MatchID); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches for a game, newest
// first, each with its roster. An empty gameID matches every game.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range matches {
		if matches[i].Players, err = s.players(matches[i].MatchID); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (s *Store) players(matchID string) ([]PlayerRecord, error) {
	rows, err := s.db.Query(
		`SELECT match_id, slot, name, human, score, size, alive
		 FROM match_players
		 WHERE match_id = ?
		 ORDER BY slot`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		if err := rows.Scan(&p.MatchID, &p.Slot, &p.Name, &p.Human, &p.Score, &p.Size, &p.Alive); err != nil {
			return nil, fmt.Errorf("storage: cannot scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// TopScores retrieves the best N player scores for a game.
// With humansOnly set, AI snakes are left out.
func (s *Store) TopScores(gameID string, limit int, humansOnly bool) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT p.match_id, p.name, p.human, p.score, m.created_at
		 FROM match_players p
		 JOIN matches m ON m.match_id = p.match_id
		 WHERE m.game_id = ? AND (? = 0 OR p.human = 1)
		 ORDER BY p.score DESC, m.id ASC
		 LIMIT ?`,
		gameID, humansOnly, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.MatchID, &e.Name, &e.Human, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest player score for the given game.
// Returns 0 if no matches exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(p.score)
		 FROM match_players p
		 JOIN matches m ON m.match_id = p.match_id
		 WHERE m.game_id = ?`,
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearMatches deletes all matches for the given game.
func (s *Store) ClearMatches(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(
		`DELETE FROM match_players WHERE match_id IN (SELECT match_id FROM matches WHERE game_id = ?)`,
		gameID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear players: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM matches WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Matches    int
	Draws      int
	HighScore  int
	AvgScore   float64
	AvgTicks   float64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(winner_slot = ?), 0), COALESCE(AVG(ticks), 0), MAX(created_at)
		 FROM matches WHERE game_id = ?`,
		arena.Draw, gameID,
	).Scan(&stats.Matches, &stats.Draws, &stats.AvgTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	err = s.db.QueryRow(
		`SELECT COALESCE(MAX(p.score), 0), COALESCE(AVG(p.score), 0)
		 FROM match_players p
		 JOIN matches m ON m.match_id = p.match_id
		 WHERE m.game_id = ?`,
		gameID,
	).Scan(&stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get score stats: %w", err)
	}

	return stats, nil
}
