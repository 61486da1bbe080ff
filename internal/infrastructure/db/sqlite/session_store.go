// Package sqlite persists the client session in a local SQLite file, one
// row per entry, keyed by origin (the API base URL).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/domain"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

// SessionStore implements ports.SessionStore on SQLite.
type SessionStore struct {
	db     *sql.DB
	origin string
	log    zerolog.Logger
}

var _ ports.SessionStore = (*SessionStore)(nil)

// Open creates the database file if needed and prepares the schema.
func Open(path, origin string, log zerolog.Logger) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping session database: %w", err)
	}

	s := &SessionStore{db: db, origin: origin, log: log}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SessionStore) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS session_entries (
		origin TEXT NOT NULL,
		key    TEXT NOT NULL,
		value  TEXT NOT NULL,
		PRIMARY KEY (origin, key)
	);`)
	return err
}

// Save rewrites the origin's entries in one transaction.
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	if !sess.Complete() {
		return domain.ErrIncompleteSession
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_entries WHERE origin = ?`, s.origin); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	entries := [][2]string{
		{ports.KeyToken, sess.Token},
		{ports.KeyEmail, sess.Email},
		{ports.KeyName, sess.Name},
		{ports.KeyRole, string(sess.Role)},
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_entries (origin, key, value) VALUES (?, ?, ?)`,
			s.origin, e[0], e[1]); err != nil {
			return fmt.Errorf("save session entry %s: %w", e[0], err)
		}
	}
	return tx.Commit()
}

func (s *SessionStore) Load(ctx context.Context) (domain.Session, bool) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM session_entries WHERE origin = ?`, s.origin)
	if err != nil {
		s.log.Warn().Err(err).Msg("session load failed")
		return domain.Session{}, false
	}
	defer rows.Close()

	entries := make(map[string]string, 4)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			s.log.Warn().Err(err).Msg("session row scan failed")
			return domain.Session{}, false
		}
		entries[k] = v
	}
	if err := rows.Err(); err != nil {
		s.log.Warn().Err(err).Msg("session rows failed")
		return domain.Session{}, false
	}
	return ports.SessionFromEntries(entries)
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_entries WHERE origin = ?`, s.origin); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
