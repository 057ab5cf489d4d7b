// Package sqlite implements session.Store on top of SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hupe1980/agentzero/core"
	"github.com/hupe1980/agentzero/session"
)

// Store implements session.Store using SQLite.
type Store struct {
	db *sql.DB
}

// Verify interface compliance at compile time.
var _ session.Store = (*Store)(nil)

// New opens (or creates) a SQLite database at the given path and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		seq INTEGER NOT NULL,
		UNIQUE (session_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session_seq ON messages(session_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records msg as the next entry of the session.
func (s *Store) Append(ctx context.Context, sessionID string, msg core.Message) error {
	if sessionID == "" {
		return session.ErrEmptySessionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	// Get next sequence number.
	var maxSeq int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM messages WHERE session_id=?`,
		sessionID,
	).Scan(&maxSeq); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (id, session_id, role, content, created_at, seq)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionID, string(msg.Role), msg.Content, time.Now().UTC(), maxSeq+1,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// Messages returns the session's transcript in append order.
func (s *Store) Messages(ctx context.Context, sessionID string) ([]core.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content FROM messages WHERE session_id=? ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []core.Message{}
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, err
		}
		msg, err := core.NewMessage(core.Role(role), content)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", sessionID, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// Sessions returns the ids of all stored sessions in lexical order.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT session_id FROM messages ORDER BY session_id`)
	if err != nil {
		return nil, err
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
