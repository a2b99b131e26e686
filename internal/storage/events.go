package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/walletfy/walletfy/internal/common"
	"github.com/walletfy/walletfy/internal/model"
)

// AddEvent inserts a new event record.
func (s *SQLiteStorage) AddEvent(ctx context.Context, event model.Event) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEvent(&event); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, nombre, descripcion, cantidad, fecha, tipo, adjunto)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Nombre,
		event.Descripcion,
		event.Cantidad,
		event.Fecha,
		string(event.Tipo),
		event.Adjunto,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("event %s: %w", event.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert event %s: %w", event.ID, err)
	}
	return nil
}

// UpdateEvent replaces an existing event record.
func (s *SQLiteStorage) UpdateEvent(ctx context.Context, event model.Event) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEvent(&event); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET nombre = ?, descripcion = ?, cantidad = ?, fecha = ?, tipo = ?, adjunto = ?
		WHERE id = ?`,
		event.Nombre,
		event.Descripcion,
		event.Cantidad,
		event.Fecha,
		string(event.Tipo),
		event.Adjunto,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", event.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("event %s: %w", event.ID, common.ErrNotFound)
	}
	return nil
}

// DeleteEvent removes an event by id.
func (s *SQLiteStorage) DeleteEvent(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("event %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// GetEventByID retrieves a single event.
func (s *SQLiteStorage) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, descripcion, cantidad, fecha, tipo, adjunto
		FROM events WHERE id = ?`, id)

	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	return event, nil
}

// ListEvents returns all events in chronological order, with insertion order
// as tie-break for events on the same date.
func (s *SQLiteStorage) ListEvents(ctx context.Context) ([]model.Event, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, descripcion, cantidad, fecha, tipo, adjunto
		FROM events
		ORDER BY fecha, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var event model.Event
	var tipo string
	if err := row.Scan(
		&event.ID,
		&event.Nombre,
		&event.Descripcion,
		&event.Cantidad,
		&event.Fecha,
		&tipo,
		&event.Adjunto,
	); err != nil {
		return nil, err
	}
	event.Tipo = model.EventType(tipo)
	return &event, nil
}
