package tokenstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS acs_token (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	token       TEXT    NOT NULL,
	acquired_at INTEGER NOT NULL
)`

// SQLiteStore keeps the token in a single-row SQLite table. It suits
// setups where several tools share one state database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteStore opens (and if needed creates) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create token table: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Get() (Token, bool) {
	var token string
	err := s.db.QueryRow(`SELECT token FROM acs_token WHERE id = 1`).Scan(&token)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warnf("tokenstore: failed to read token: %v", err)
		}
		return "", false
	}
	if token == "" {
		return "", false
	}
	return Token(token), true
}

// AcquiredAt returns when the cached token was stored.
func (s *SQLiteStore) AcquiredAt() (time.Time, bool) {
	var ts int64
	if err := s.db.QueryRow(`SELECT acquired_at FROM acs_token WHERE id = 1`).Scan(&ts); err != nil {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

func (s *SQLiteStore) Put(t Token) error {
	_, err := s.db.Exec(`INSERT INTO acs_token (id, token, acquired_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, acquired_at = excluded.acquired_at`,
		string(t), s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Invalidate() error {
	if _, err := s.db.Exec(`DELETE FROM acs_token WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
