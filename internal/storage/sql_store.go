package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/quickcards/internal/database"
)

const (
	selectEntryQuery = "SELECT value FROM kv_entries WHERE name = ?"

	sqliteUpsertQuery = "INSERT INTO kv_entries (name, value, updated_at) VALUES (?, ?, ?) " +
		"ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
	mysqlUpsertQuery = "INSERT INTO kv_entries (name, value, updated_at) VALUES (?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)"
)

// SQLStore implements KeyValueStore on the kv_entries table.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStore creates a new SQLStore. The schema must already be migrated.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	if err := s.db.GetContext(ctx, &value, s.db.Rebind(selectEntryQuery), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.upsertQuery(), key, string(value), s.now().UTC()); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) SetAll(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	updatedAt := s.now().UTC()
	query := s.upsertQuery()
	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, entry := range entries {
			if _, err := tx.ExecContext(ctx, query, entry.Key, string(entry.Value), updatedAt); err != nil {
				return fmt.Errorf("upsert %s: %w", entry.Key, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) upsertQuery() string {
	if s.db.DriverName() == database.MySQLDriver {
		return mysqlUpsertQuery
	}
	return s.db.Rebind(sqliteUpsertQuery)
}
