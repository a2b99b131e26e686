package storage

import (
	"context"
	"fmt"

	"github.com/walletfy/walletfy/internal/common"
	"github.com/walletfy/walletfy/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context must not be nil")
	}
	return nil
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	return nil
}

func validateEvent(event *model.Event) error {
	if event == nil {
		return fmt.Errorf("%w: event must not be nil", common.ErrInvalidEvent)
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidEvent, err)
	}
	return nil
}
