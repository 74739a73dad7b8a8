// Package persisted keeps a single value in memory and writes it through to a
// key-value store on every change.
package persisted

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
)

// Value is read once from its key when loaded and written back on every Set.
// It is not safe for concurrent use.
type Value[T any] struct {
	store   repository.KeyValue
	key     string
	current T
}

// Load reads key from store. An absent key yields defaultValue and writes nothing.
func Load[T any](ctx context.Context, store repository.KeyValue, key string, defaultValue T) (*Value[T], error) {
	value := &Value[T]{
		store:   store,
		key:     key,
		current: defaultValue,
	}

	raw, err := store.Get(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return value, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var stored T
	if err = json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	value.current = stored

	return value, nil
}

func (that *Value[T]) Key() string {
	return that.key
}

func (that *Value[T]) Get() T {
	return that.current
}

// Set replaces the in-memory value and then writes it to the store.
// A failed write leaves the new value in memory.
func (that *Value[T]) Set(ctx context.Context, value T) error {
	that.current = value

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", that.key, err)
	}

	if err = that.store.Set(ctx, that.key, string(encoded)); err != nil {
		return fmt.Errorf("failed to write %s: %w", that.key, err)
	}

	return nil
}

// Restore replaces the in-memory value without writing it.
func (that *Value[T]) Restore(value T) {
	that.current = value
}
