package repository

import (
	"context"
	"sync"
)

type memoryKeyValue struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKeyValue keeps values for the lifetime of the process only.
func NewMemoryKeyValue() KeyValue {
	return &memoryKeyValue{
		values: make(map[string]string),
	}
}

func (that *memoryKeyValue) Get(_ context.Context, key string) (string, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}

	return value, nil
}

func (that *memoryKeyValue) Set(_ context.Context, key, value string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values[key] = value

	return nil
}
