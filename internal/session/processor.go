package session

import (
	"strconv"
	"strings"

	"github.com/walletfy/walletfy/internal/command"
	"github.com/walletfy/walletfy/internal/model"
	"github.com/walletfy/walletfy/internal/search"
)

// ActionType names the side effect the caller must perform for an outcome.
type ActionType int

// Possible side effects.
const (
	ActionNone ActionType = iota
	// ActionCreate asks the caller to validate and store Outcome.Event, then
	// reply with CreatedMessage or CreateFailedMessage.
	ActionCreate
	// ActionDelete asks the caller to delete Outcome.EventID, clear the
	// pending state on success, and reply with DeletedMessage or
	// DeleteFailedMessage.
	ActionDelete
)

// Outcome describes one state-machine transition: the next pending state,
// the assistant reply to show (when no action decides it), and the side
// effect the caller must perform.
type Outcome struct {
	Pending   *PendingDeletion
	Event     *model.Event
	Reply     string
	EventID   string
	EventName string
	Action    ActionType
}

// Processor interprets completed assistant text against the current events
// and pending deletion state.
type Processor struct {
	extractor *command.Extractor
}

// NewProcessor creates a command processor around the given extractor.
func NewProcessor(extractor *command.Extractor) *Processor {
	return &Processor{extractor: extractor}
}

// ProcessAssistantText scans assistant text for command tags in the fixed
// priority order create → search → confirm → delete and returns the outcome
// of the first tag that parses. The ordering matters: assistant prose may
// echo more than one tag, and only one action per turn may fire. The second
// return value is false when no command was found.
//
// The function is pure; it must only be invoked once a streamed response is
// known to be complete.
func (p *Processor) ProcessAssistantText(content string, events []model.Event, pending *PendingDeletion) (Outcome, bool) {
	if event := p.extractor.ParseCreateEvent(content); event != nil {
		return Outcome{Action: ActionCreate, Event: event, Pending: pending}, true
	}

	if criteria := p.extractor.ParseSearchEvents(content); criteria != nil {
		return p.processSearch(*criteria, events, pending), true
	}

	if confirm := p.extractor.ParseConfirmDelete(content); confirm != nil {
		return Outcome{
			Reply: ConfirmDataMessage(*confirm),
			Pending: &PendingDeletion{
				EventID:   confirm.ID,
				EventName: confirm.Name,
				Step:      StepConfirm,
			},
		}, true
	}

	if id, ok := command.ParseDeleteEvent(content); ok {
		return Outcome{Action: ActionDelete, EventID: id, Pending: pending}, true
	}

	return Outcome{Pending: pending}, false
}

// processSearch ranks the events and branches on the candidate count:
// zero reports no matches, one goes straight to confirmation, several ask
// for a numeric selection.
func (p *Processor) processSearch(criteria model.SearchCriteria, events []model.Event, pending *PendingDeletion) Outcome {
	results := search.Events(events, criteria)

	switch {
	case len(results) == 0:
		return Outcome{Reply: NoMatchesMessage(), Pending: pending}
	case len(results) == 1:
		event := results[0].Event
		return Outcome{
			Reply: ConfirmMessage(event),
			Pending: &PendingDeletion{
				EventID:   event.ID,
				EventName: event.Nombre,
				Step:      StepConfirm,
			},
		}
	default:
		candidates := results
		if len(candidates) > maxShownCandidates {
			candidates = candidates[:maxShownCandidates]
		}
		return Outcome{
			Reply: SelectMessage(results),
			Pending: &PendingDeletion{
				Step:       StepSearch,
				Candidates: candidates,
			},
		}
	}
}

// Affirmative and negative reply tokens for the confirm step.
var (
	affirmativeReplies = map[string]struct{}{"sí": {}, "si": {}, "yes": {}}
	negativeReplies    = map[string]struct{}{"no": {}, "cancelar": {}, "cancel": {}}
)

// HandleUserReply interprets a user utterance while a deletion is pending.
// The second return value is false when the reply matches none of the
// expected tokens; the state is then left unchanged and the caller should
// treat the message as a new, unrelated turn.
func HandleUserReply(pending *PendingDeletion, input string) (Outcome, bool) {
	if pending == nil {
		return Outcome{}, false
	}

	reply := strings.ToLower(strings.TrimSpace(input))

	switch pending.Step {
	case StepConfirm:
		if _, ok := affirmativeReplies[reply]; ok {
			return Outcome{
				Action:    ActionDelete,
				EventID:   pending.EventID,
				EventName: pending.EventName,
				Pending:   pending,
			}, true
		}
		if _, ok := negativeReplies[reply]; ok {
			return Outcome{Reply: CancelledMessage()}, true
		}

	case StepSearch:
		if n, err := strconv.Atoi(reply); err == nil {
			limit := len(pending.Candidates)
			if limit > maxShownCandidates {
				limit = maxShownCandidates
			}
			if n >= 1 && n <= limit {
				chosen := pending.Candidates[n-1].Event
				return Outcome{
					Reply: ConfirmMessage(chosen),
					Pending: &PendingDeletion{
						EventID:   chosen.ID,
						EventName: chosen.Nombre,
						Step:      StepConfirm,
					},
				}, true
			}
		}
		if reply == "cancelar" || reply == "cancel" {
			return Outcome{Reply: SearchCancelledMessage()}, true
		}
	}

	return Outcome{Pending: pending}, false
}
