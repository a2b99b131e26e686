// Package session drives the multi-turn conversational workflow around
// destructive operations. All transitions are pure functions from the
// current pending state and an input to a new state plus a description of
// side effects; the caller owns the state and performs the effects.
package session

import "github.com/walletfy/walletfy/internal/model"

// Step identifies where a pending deletion sits in the workflow.
type Step string

// Workflow steps. There is no explicit idle step: an absent PendingDeletion
// record is the idle state.
const (
	// StepSearch means results were shown and a disambiguating selection is
	// awaited.
	StepSearch Step = "search"
	// StepConfirm means a single candidate is selected and a yes/no reply is
	// awaited.
	StepConfirm Step = "confirm"
)

// PendingDeletion tracks a not-yet-confirmed delete request across turns.
// It lives only for the duration of the conversation session.
//
// Candidates retains the ranked result list shown to the user so that a
// numeric selection in the search step resolves to a concrete event without
// re-running the search.
type PendingDeletion struct {
	EventID    string
	EventName  string
	Step       Step
	Candidates []model.EventSearchResult
}
