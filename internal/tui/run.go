package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Run blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, game gameHistory, field formField) error {
	program := tea.NewProgram(New(ctx, logger, game, field), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui failed: %w", err)
	}

	return nil
}
