package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type sqliteKeyValue struct {
	conn *sql.DB
}

// NewSQLiteKeyValue expects the kv table created by storage.Storage.Init.
func NewSQLiteKeyValue(conn *sql.DB) KeyValue {
	return &sqliteKeyValue{
		conn: conn,
	}
}

func (that *sqliteKeyValue) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM kv WHERE key = ?`

	var value string

	err := that.conn.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("can't get key %s: %w", key, err)
	}

	return value, nil
}

func (that *sqliteKeyValue) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	_, err := that.conn.ExecContext(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("can't set key %s: %w", key, err)
	}

	return nil
}
