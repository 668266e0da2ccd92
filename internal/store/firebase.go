package store

import (
	"context"
	"encoding/json"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseStore is the production backend, talking to a Firebase Realtime
// Database instance.
type FirebaseStore struct {
	client *db.Client
}

// NewFirebaseStore authenticates with a service-account JSON blob and
// connects to the database at databaseURL.
func NewFirebaseStore(ctx context.Context, credentialsJSON []byte, databaseURL string) (*FirebaseStore, error) {
	app, err := firebase.NewApp(ctx,
		&firebase.Config{DatabaseURL: databaseURL},
		option.WithCredentialsJSON(credentialsJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init database client: %w", err)
	}

	return &FirebaseStore{client: client}, nil
}

func (s *FirebaseStore) GetSubtree(ctx context.Context, path string) ([]Entry, error) {
	// Push keys are chronological, so key order is insertion order.
	nodes, err := s.client.NewRef(path).OrderByKey().GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		var raw json.RawMessage
		if err := n.Unmarshal(&raw); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", path, n.Key(), err)
		}
		entries = append(entries, Entry{Key: n.Key(), Value: raw})
	}
	return entries, nil
}

func (s *FirebaseStore) Push(ctx context.Context, path string, value interface{}) (string, error) {
	ref, err := s.client.NewRef(path).Push(ctx, value)
	if err != nil {
		return "", fmt.Errorf("push %s: %w", path, err)
	}
	return ref.Key, nil
}

func (s *FirebaseStore) Set(ctx context.Context, path string, value interface{}) error {
	if err := s.client.NewRef(path).Set(ctx, value); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func (s *FirebaseStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := s.client.NewRef(path).Update(ctx, fields); err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return nil
}

func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	if err := s.client.NewRef(path).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}
