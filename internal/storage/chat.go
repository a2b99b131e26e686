package storage

import (
	"context"
	"fmt"

	"github.com/walletfy/walletfy/internal/model"
)

// SaveChatMessage appends a chat turn to the persisted history.
func (s *SQLiteStorage) SaveChatMessage(ctx context.Context, msg model.ChatMessage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(msg.ID, "message id"); err != nil {
		return err
	}
	if msg.Role != "user" && msg.Role != "assistant" {
		return fmt.Errorf("invalid chat role %q", msg.Role)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, role, content, created_at)
		VALUES (?, ?, ?, ?)`,
		msg.ID, msg.Role, msg.Content, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save chat message %s: %w", msg.ID, err)
	}
	return nil
}

// ListChatMessages returns the chat history in chronological order.
func (s *SQLiteStorage) ListChatMessages(ctx context.Context) ([]model.ChatMessage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, content, created_at
		FROM chat_messages
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []model.ChatMessage
	for rows.Next() {
		var msg model.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat messages: %w", err)
	}
	return messages, nil
}

// ClearChatMessages wipes the persisted chat history.
func (s *SQLiteStorage) ClearChatMessages(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return nil
}
