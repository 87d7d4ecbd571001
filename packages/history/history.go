// Package history persists finalized verification sessions to SQLite so
// soft-assertion results can be inspected after a run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/verityhq/verity/packages/verify"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	finalized_at TIMESTAMP NOT NULL,
	passed       INTEGER NOT NULL,
	failed       INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	id              TEXT PRIMARY KEY,
	session_id      TEXT NOT NULL REFERENCES sessions(id),
	seq             INTEGER NOT NULL,
	passed          INTEGER NOT NULL,
	message         TEXT NOT NULL,
	diff_style      INTEGER NOT NULL,
	expected        TEXT NOT NULL,
	actual          TEXT NOT NULL,
	wait_seconds    INTEGER NOT NULL,
	interval_millis INTEGER NOT NULL,
	attempts        INTEGER NOT NULL,
	elapsed_millis  INTEGER NOT NULL,
	created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_session ON records(session_id, seq);
`

// Store is a durable log of finalized sessions. It implements
// verify.SessionSink.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db, timeout: 30 * time.Second}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession writes a finalized session and its records in one transaction.
func (s *Store) SaveSession(sessionID string, records []verify.Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	passed, failed := 0, 0
	for _, r := range records {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, finalized_at, passed, failed) VALUES (?, ?, ?, ?)`,
		sessionID, time.Now().UTC(), passed, failed,
	); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records
		(id, session_id, seq, passed, message, diff_style, expected, actual,
		 wait_seconds, interval_millis, attempts, elapsed_millis, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for seq, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID, sessionID, seq, r.Passed, r.Message, r.DiffStyle, r.Expected, r.Actual,
			r.WaitSeconds, r.IntervalMillis, r.Attempts, r.ElapsedMillis, r.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", seq, err)
		}
	}

	return tx.Commit()
}

// Session summarizes one finalized queue.
type Session struct {
	ID          string
	FinalizedAt time.Time
	Passed      int
	Failed      int
}

// Sessions lists finalized sessions, most recent first.
func (s *Store) Sessions() ([]Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, finalized_at, passed, failed FROM sessions ORDER BY finalized_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.FinalizedAt, &sess.Passed, &sess.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SessionRecords returns a session's records in original insertion order.
func (s *Store) SessionRecords(sessionID string) ([]verify.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, passed, message, diff_style, expected, actual,
		        wait_seconds, interval_millis, attempts, elapsed_millis, created_at
		 FROM records WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []verify.Record
	for rows.Next() {
		var r verify.Record
		if err := rows.Scan(&r.ID, &r.Passed, &r.Message, &r.DiffStyle, &r.Expected, &r.Actual,
			&r.WaitSeconds, &r.IntervalMillis, &r.Attempts, &r.ElapsedMillis, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
