package repository

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyValue is an external string store. Get returns ErrKeyNotFound for absent keys.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
