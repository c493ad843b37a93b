// Package share turns finished session artifacts into shareable links:
// persistent short URLs, per-platform share links and QR codes.
package share

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound means the short id has never been issued.
var ErrNotFound = errors.New("short url not found")

const shortIDLength = 8

// Store is the short-URL registry. Ids survive restarts; re-registering the
// same target returns the previously issued id.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and migrates) the registry at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open short url store: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", p, err)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS short_urls (
		id         TEXT PRIMARY KEY,
		target     TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate short url store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Shorten issues a short id for target, reusing the existing id when the
// target was registered before.
func (s *Store) Shorten(ctx context.Context, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", errors.New("empty target url")
	}

	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM short_urls WHERE target = ?", target).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("lookup short url: %w", err)
	}

	id = newShortID()
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO short_urls (id, target) VALUES (?, ?)", id, target); err != nil {
		return "", fmt.Errorf("insert short url: %w", err)
	}
	return id, nil
}

// Resolve returns the target registered under id.
func (s *Store) Resolve(ctx context.Context, id string) (string, error) {
	var target string
	err := s.db.QueryRowContext(ctx, "SELECT target FROM short_urls WHERE id = ?", id).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve short url: %w", err)
	}
	return target, nil
}

func newShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:shortIDLength]
}
