// Package storage provides a SQLite journal of recorded play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/replay"
)

var (
	// ErrSessionNotFound is returned when no session matches an id.
	ErrSessionNotFound = errors.New("storage: session not found")
	// ErrAmbiguousID is returned when an id prefix matches several sessions.
	ErrAmbiguousID = errors.New("storage: ambiguous session id")
)

// DefaultPath is the journal location used when no --db flag is given.
const DefaultPath = "~/.blockfall/sessions.db"

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// SessionSummary is one row of the session list.
type SessionSummary struct {
	ID         string
	GameID     string
	Seed       int64
	Steps      uint64
	FinalScore int
	Lines      int
	StartedAt  time.Time
	EndedAt    time.Time
}

// Duration returns the wall-clock length of the session.
func (s SessionSummary) Duration() time.Duration {
	if s.EndedAt.Before(s.StartedAt) {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Stats contains aggregated statistics for a game.
type Stats struct {
	GameID     string
	Sessions   int
	BestScore  int
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			final_score INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS session_inputs (
			session_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			actions TEXT NOT NULL,
			PRIMARY KEY (session_id, step)
		);
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

// SaveSession writes a recording and its input events in one transaction.
// Saving an id that already exists replaces it.
func (s *Store) SaveSession(rec replay.Recording) error {
	cfgYAML, err := config.Marshal(rec.Config)
	if err != nil {
		return fmt.Errorf("storage: cannot encode config: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec("DELETE FROM session_inputs WHERE session_id = ?", rec.ID); err != nil {
		return fmt.Errorf("storage: cannot replace inputs: %w", err)
	}

	_, err = tx.Exec(
		`INSERT OR REPLACE INTO sessions
		 (id, game_id, seed, tick_rate, config, steps, final_score, lines, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.GameID,
		rec.Seed,
		rec.TickRate,
		string(cfgYAML),
		int64(rec.Steps),
		rec.FinalScore,
		rec.Lines,
		formatTime(rec.StartedAt),
		formatTime(rec.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO session_inputs (session_id, step, actions) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range rec.Events {
		if _, err := stmt.Exec(rec.ID, int64(ev.Step), encodeActions(ev.Actions)); err != nil {
			return fmt.Errorf("storage: cannot save input at step %d: %w", ev.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return nil
}

// Session loads a full recording. The id may be a unique prefix.
func (s *Store) Session(id string) (replay.Recording, error) {
	fullID, err := s.resolveID(id)
	if err != nil {
		return replay.Recording{}, err
	}

	var (
		rec                replay.Recording
		cfgYAML            string
		steps              int64
		startedAt, endedAt string
	)
	err = s.db.QueryRow(
		`SELECT id, game_id, seed, tick_rate, config, steps, final_score, lines, started_at, ended_at
		 FROM sessions
		 WHERE id = ?`,
		fullID,
	).Scan(&rec.ID, &rec.GameID, &rec.Seed, &rec.TickRate, &cfgYAML, &steps,
		&rec.FinalScore, &rec.Lines, &startedAt, &endedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Recording{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query session: %w", err)
	}

	rec.Steps = uint64(steps)
	rec.StartedAt = parseTime(startedAt)
	rec.EndedAt = parseTime(endedAt)
	if rec.Config, err = config.Parse([]byte(cfgYAML)); err != nil {
		return replay.Recording{}, fmt.Errorf("storage: session %s has a bad config: %w", rec.ID, err)
	}

	if rec.Events, err = s.sessionEvents(rec.ID); err != nil {
		return replay.Recording{}, err
	}
	return rec, nil
}

// sessionEvents loads the input events of a session in step order.
func (s *Store) sessionEvents(id string) ([]replay.Event, error) {
	rows, err := s.db.Query(
		`SELECT step, actions FROM session_inputs WHERE session_id = ? ORDER BY step`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var events []replay.Event
	for rows.Next() {
		var step int64
		var actions string
		if err := rows.Scan(&step, &actions); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input row: %w", err)
		}
		decoded, err := decodeActions(actions)
		if err != nil {
			return nil, fmt.Errorf("storage: input at step %d: %w", step, err)
		}
		events = append(events, replay.Event{Step: uint64(step), Actions: decoded})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return events, nil
}

// RecentSessions lists the most recently started sessions.
func (s *Store) RecentSessions(limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, steps, final_score, lines, started_at, ended_at
		 FROM sessions
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var steps int64
		var startedAt, endedAt string
		if err := rows.Scan(&sum.ID, &sum.GameID, &sum.Seed, &steps, &sum.FinalScore,
			&sum.Lines, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sum.Steps = uint64(steps)
		sum.StartedAt = parseTime(startedAt)
		sum.EndedAt = parseTime(endedAt)
		sessions = append(sessions, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// DeleteSession removes a session and its inputs. The id may be a unique prefix.
func (s *Store) DeleteSession(id string) error {
	fullID, err := s.resolveID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec("DELETE FROM session_inputs WHERE session_id = ?", fullID); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", fullID); err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// GameStats retrieves aggregated statistics for a game.
func (s *Store) GameStats(gameID string) (*Stats, error) {
	stats := &Stats{GameID: gameID}

	var lastPlayed sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(final_score), 0), COALESCE(AVG(final_score), 0),
		        COALESCE(SUM(lines), 0), MAX(started_at)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Sessions, &stats.BestScore, &stats.AvgScore, &stats.TotalLines, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}

	return stats, nil
}

// resolveID expands a unique id prefix to the full session id.
func (s *Store) resolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrSessionNotFound)
	}

	rows, err := s.db.Query(
		`SELECT id FROM sessions WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot look up session: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

func encodeActions(actions []core.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, ",")
}

func decodeActions(s string) ([]core.Action, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	actions := make([]core.Action, 0, len(parts))
	for _, p := range parts {
		a, err := core.ParseAction(p)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts the stored form and SQLite's own datetime format.
func parseTime(v string) time.Time {
	if parsed, err := time.Parse(timeLayout, v); err == nil {
		return parsed
	}
	if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
		return parsed
	}
	return time.Time{}
}
