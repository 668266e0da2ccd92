package store

import (
	"context"
	"encoding/json"
	"strings"
)

// Entry is one immediate child of a store path: its key and its raw JSON
// value.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Client is the hierarchical store contract. Paths are slash-delimited and
// case-sensitive. Every operation is remote (or at least out-of-process)
// I/O and may fail; callers treat any failure as terminal for the current
// message.
type Client interface {
	// GetSubtree returns the immediate children of path in insertion
	// order, or an empty slice when the path has none.
	GetSubtree(ctx context.Context, path string) ([]Entry, error)

	// Push appends value under path with a fresh store-generated key,
	// never reusing one, and returns that key.
	Push(ctx context.Context, path string, value interface{}) (string, error)

	// Set replaces the value at path entirely.
	Set(ctx context.Context, path string, value interface{}) error

	// Update merges fields into the value at path at one level, leaving
	// unnamed fields untouched. A missing node is created.
	Update(ctx context.Context, path string, fields map[string]interface{}) error

	// Delete removes the node at path and everything below it.
	Delete(ctx context.Context, path string) error
}

// Join builds a slash path from segments.
func Join(parts ...string) string {
	return strings.Join(parts, "/")
}
