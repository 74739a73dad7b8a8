package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-history/internal/persisted"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
)

// FormField is a text input whose value survives restarts.
type FormField struct {
	logger *slog.Logger
	value  *persisted.Value[string]
}

func LoadFormField(ctx context.Context, logger *slog.Logger, store repository.KeyValue, key, defaultValue string) (*FormField, error) {
	value, err := persisted.Load(ctx, store, key, defaultValue)
	if err != nil {
		return nil, fmt.Errorf("failed to load field: %w", err)
	}

	return &FormField{
		logger: logger.With("component", "form_field", "key", key),
		value:  value,
	}, nil
}

func (that *FormField) Key() string {
	return that.value.Key()
}

func (that *FormField) Value() string {
	return that.value.Get()
}

// Change stores value, even when it equals the current one.
func (that *FormField) Change(ctx context.Context, value string) error {
	if err := that.value.Set(ctx, value); err != nil {
		return fmt.Errorf("failed to save field: %w", err)
	}

	that.logger.Debug("field changed", "length", len(value))

	return nil
}
