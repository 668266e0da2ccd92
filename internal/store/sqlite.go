package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the node tree in a single table, for local development
// and tests when no Firebase credentials are configured. Every node is one
// row keyed by (parent, key); seq preserves insertion order the way RTDB
// push keys do.
const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	seq    INTEGER PRIMARY KEY AUTOINCREMENT,
	parent TEXT NOT NULL,
	key    TEXT NOT NULL,
	value  TEXT NOT NULL,
	UNIQUE(parent, key)
);
CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetSubtree(ctx context.Context, path string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM nodes WHERE parent = ? ORDER BY seq`, path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		entries = append(entries, Entry{Key: key, Value: json.RawMessage(value)})
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Push(ctx context.Context, path string, value interface{}) (string, error) {
	buf, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}

	key := "-" + strings.ReplaceAll(uuid.New().String(), "-", "")
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO nodes (parent, key, value) VALUES (?, ?, ?)`,
		path, key, string(buf))
	if err != nil {
		return "", fmt.Errorf("push %s: %w", path, err)
	}
	return key, nil
}

func (s *SQLiteStore) Set(ctx context.Context, path string, value interface{}) error {
	buf, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	parent, key := splitPath(path)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO nodes (parent, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(parent, key) DO UPDATE SET value = excluded.value`,
		parent, key, string(buf))
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	parent, key := splitPath(path)

	merged := map[string]interface{}{}
	var current string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM nodes WHERE parent = ? AND key = ?`,
		parent, key).Scan(&current)
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(current), &merged); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		// Blind update on a missing node creates it, as RTDB does.
	default:
		return fmt.Errorf("update %s: %w", path, err)
	}

	for k, v := range fields {
		merged[k] = v
	}

	return s.Set(ctx, path, merged)
}

func (s *SQLiteStore) Delete(ctx context.Context, path string) error {
	parent, key := splitPath(path)
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM nodes WHERE (parent = ? AND key = ?) OR parent = ? OR parent LIKE ?`,
		parent, key, path, path+"/%")
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func splitPath(path string) (parent, key string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
