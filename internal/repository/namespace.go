package repository

import "context"

type namespacedKeyValue struct {
	prefix string
	store  KeyValue
}

// WithNamespace prefixes every key with "namespace:". An empty namespace
// returns store unchanged.
func WithNamespace(store KeyValue, namespace string) KeyValue {
	if namespace == "" {
		return store
	}

	return &namespacedKeyValue{
		prefix: namespace + ":",
		store:  store,
	}
}

func (that *namespacedKeyValue) Get(ctx context.Context, key string) (string, error) {
	return that.store.Get(ctx, that.prefix+key)
}

func (that *namespacedKeyValue) Set(ctx context.Context, key, value string) error {
	return that.store.Set(ctx, that.prefix+key, value)
}
