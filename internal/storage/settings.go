package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

const initialBalanceKey = "initial_balance"

// GetInitialBalance returns the configured starting balance, defaulting to
// zero when never set.
func (s *SQLiteStorage) GetInitialBalance(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, initialBalanceKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get initial balance: %w", err)
	}

	balance, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupted initial balance %q: %w", value, err)
	}
	return balance, nil
}

// SetInitialBalance stores the starting balance.
func (s *SQLiteStorage) SetInitialBalance(ctx context.Context, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		initialBalanceKey,
		strconv.FormatFloat(amount, 'f', -1, 64),
	)
	if err != nil {
		return fmt.Errorf("failed to set initial balance: %w", err)
	}
	return nil
}
