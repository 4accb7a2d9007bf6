package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
	_ "github.com/lib/pq"
)

// Store implements ports.SessionStore on PostgreSQL. Session metadata
// lives in the sessions table; turns live in session_turns with their
// item lists as JSONB.
type Store struct {
	db *sql.DB
}

// New opens a PostgreSQL connection and bootstraps the schema.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := &Store{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session tables: %w", err)
	}
	return store, nil
}

// NewFromDB wraps an existing connection (used by tests).
func NewFromDB(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create session tables: %w", err)
	}
	return store, nil
}

func (s *Store) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS sessions (
			id           TEXT PRIMARY KEY,
			device_id    TEXT,
			scenario_id  TEXT NOT NULL,
			language     TEXT NOT NULL,
			started_at   TIMESTAMPTZ NOT NULL,
			completed_at TIMESTAMPTZ,
			score        DOUBLE PRECISION,
			report       JSONB
		);
		CREATE TABLE IF NOT EXISTS session_turns (
			session_id      TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			turn_index      INTEGER NOT NULL,
			node_key        TEXT NOT NULL,
			user_text       TEXT NOT NULL,
			matched_items   JSONB NOT NULL,
			missed_items    JSONB NOT NULL,
			critical_missed JSONB NOT NULL,
			PRIMARY KEY (session_id, turn_index)
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_device_id ON sessions(device_id);
	`
	_, err := s.db.Exec(query)
	return err
}

// Save upserts the session row and rewrites its turns.
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	var report []byte
	if session.Report != nil {
		report, err = json.Marshal(session.Report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, device_id, scenario_id, language, started_at, completed_at, score, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			completed_at = EXCLUDED.completed_at,
			score        = EXCLUDED.score,
			report       = EXCLUDED.report
	`, session.ID, nullString(session.DeviceID), session.ScenarioID, session.Language,
		session.StartedAt, session.CompletedAt, session.Score, report)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	// Turns are append-only per session; rewriting them keeps Save
	// idempotent for the whole record.
	if _, err := tx.ExecContext(ctx, `DELETE FROM session_turns WHERE session_id = $1`, session.ID); err != nil {
		return fmt.Errorf("failed to clear turns: %w", err)
	}
	for _, turn := range session.Turns {
		matched, err := json.Marshal(turn.MatchedItems)
		if err != nil {
			return fmt.Errorf("failed to marshal matched items: %w", err)
		}
		missed, err := json.Marshal(turn.MissedItems)
		if err != nil {
			return fmt.Errorf("failed to marshal missed items: %w", err)
		}
		critical, err := json.Marshal(turn.CriticalMissed)
		if err != nil {
			return fmt.Errorf("failed to marshal critical missed: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO session_turns (session_id, turn_index, node_key, user_text, matched_items, missed_items, critical_missed)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, session.ID, turn.Index, turn.NodeKey, turn.UserText, matched, missed, critical)
		if err != nil {
			return fmt.Errorf("failed to insert turn %d: %w", turn.Index, err)
		}
	}

	return tx.Commit()
}

// Load retrieves a session with its turns ordered by turn index.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, device_id, scenario_id, language, started_at, completed_at, score, report
		FROM sessions WHERE id = $1
	`, sessionID)

	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := s.loadTurns(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Store) loadTurns(ctx context.Context, session *domain.Session) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT turn_index, node_key, user_text, matched_items, missed_items, critical_missed
		FROM session_turns WHERE session_id = $1 ORDER BY turn_index
	`, session.ID)
	if err != nil {
		return fmt.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	session.Turns = []domain.Turn{}
	for rows.Next() {
		var turn domain.Turn
		var matched, missed, critical []byte
		if err := rows.Scan(&turn.Index, &turn.NodeKey, &turn.UserText, &matched, &missed, &critical); err != nil {
			return fmt.Errorf("failed to scan turn: %w", err)
		}
		if err := json.Unmarshal(matched, &turn.MatchedItems); err != nil {
			return fmt.Errorf("failed to decode matched items: %w", err)
		}
		if err := json.Unmarshal(missed, &turn.MissedItems); err != nil {
			return fmt.Errorf("failed to decode missed items: %w", err)
		}
		if err := json.Unmarshal(critical, &turn.CriticalMissed); err != nil {
			return fmt.Errorf("failed to decode critical missed: %w", err)
		}
		session.Turns = append(session.Turns, turn)
	}
	return rows.Err()
}

// Delete removes the session and its turns.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	return err
}

// List returns all stored session IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Recent returns up to limit sessions, newest first, optionally filtered
// by device.
func (s *Store) Recent(ctx context.Context, deviceID string, limit int) ([]*domain.Session, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, device_id, scenario_id, language, started_at, completed_at, score, report
		FROM sessions
	`
	args := []any{}
	if deviceID != "" {
		query += ` WHERE device_id = $1 ORDER BY started_at DESC LIMIT $2`
		args = append(args, deviceID, limit)
	} else {
		query += ` ORDER BY started_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, session := range sessions {
		if err := s.loadTurns(ctx, session); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var session domain.Session
	var deviceID sql.NullString
	var completedAt sql.NullTime
	var score sql.NullFloat64
	var report []byte

	err := row.Scan(&session.ID, &deviceID, &session.ScenarioID, &session.Language,
		&session.StartedAt, &completedAt, &score, &report)
	if err != nil {
		return nil, err
	}

	session.DeviceID = deviceID.String
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		session.CompletedAt = &t
	}
	if score.Valid {
		session.Score = &score.Float64
	}
	if len(report) > 0 {
		session.Report = &domain.SessionReport{}
		if err := json.Unmarshal(report, session.Report); err != nil {
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}
	}
	return &session, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
