// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/walletfy/walletfy/internal/model"
)

// EventStore defines the contract for the persistence layer. Mutations are
// mirrored to durable storage in the same logical transaction.
type EventStore interface {
	// Event operations
	AddEvent(ctx context.Context, event model.Event) error
	UpdateEvent(ctx context.Context, event model.Event) error
	DeleteEvent(ctx context.Context, id string) error
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)

	// Balance settings
	GetInitialBalance(ctx context.Context) (float64, error)
	SetInitialBalance(ctx context.Context, amount float64) error

	// Chat history
	SaveChatMessage(ctx context.Context, msg model.ChatMessage) error
	ListChatMessages(ctx context.Context) ([]model.ChatMessage, error)
	ClearChatMessages(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Backup is the portable snapshot of all persisted user data.
type Backup struct {
	Events         []model.Event `json:"events"`
	InitialBalance float64       `json:"initialBalance"`
}
