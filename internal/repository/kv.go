package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/pulseplan/internal/db"
)

// KV is the flat key-value store backing all entity repositories.
// Values are JSON-serialized records; keys are namespaced by entity.
type KV struct {
	db db.DBTX
}

// NewKV creates a KV store over the given connection or transaction.
func NewKV(conn db.DBTX) *KV {
	return &KV{db: conn}
}

// Get unmarshals the value at key into out. Returns ErrNotFound when the
// key does not exist.
func (s *KV) Get(ctx context.Context, key string, out any) error {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return fmt.Errorf("reading key %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decoding key %q: %w", key, err)
	}
	return nil
}

// Set upserts the JSON serialization of v at key.
func (s *KV) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding key %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *KV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// listPrefix returns raw values for keys with the given prefix, ordered
// by key. Keys embed sortable timestamps so key order is record order.
func (s *KV) listPrefix(ctx context.Context, prefix string, descending bool, limit int) ([]string, error) {
	order := "ASC"
	if descending {
		order = "DESC"
	}
	query := fmt.Sprintf(`SELECT value FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key %s`, order)
	args := []any{escapeLike(prefix) + "%"}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning prefix %q: %w", prefix, err)
		}
		values = append(values, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prefix %q: %w", prefix, err)
	}
	return values, nil
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

func decodeAll[T any](raws []string) ([]T, error) {
	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}
