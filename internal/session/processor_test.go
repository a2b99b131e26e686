package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletfy/walletfy/internal/command"
	"github.com/walletfy/walletfy/internal/dates"
	"github.com/walletfy/walletfy/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testProcessor() *Processor {
	now := date(2024, time.March, 15)
	seq := 0
	extractor := command.NewExtractor(dates.NewParser(dates.FixedClock(now)), func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	})
	return NewProcessor(extractor)
}

func testEvents() []model.Event {
	return []model.Event{
		{
			ID:       "evt-1",
			Nombre:   "Salario",
			Cantidad: 3000,
			Fecha:    date(2023, time.September, 1),
			Tipo:     model.TypeIngreso,
		},
		{
			ID:       "evt-2",
			Nombre:   "Salario",
			Cantidad: 3000,
			Fecha:    date(2023, time.October, 1),
			Tipo:     model.TypeIngreso,
		},
		{
			ID:       "evt-3",
			Nombre:   "Salario",
			Cantidad: 3000,
			Fecha:    date(2023, time.November, 1),
			Tipo:     model.TypeIngreso,
		},
	}
}

func TestProcessor_NoCommand(t *testing.T) {
	pending := &PendingDeletion{EventID: "evt-1", Step: StepConfirm}

	outcome, handled := testProcessor().ProcessAssistantText("Tu balance actual es de $500.", nil, pending)

	assert.False(t, handled)
	assert.Equal(t, pending, outcome.Pending, "pending state survives plain prose")
}

func TestProcessor_CreateCommand(t *testing.T) {
	content := `Perfecto. [CREATE_EVENT: nombre="Cine", cantidad=12, tipo="egreso"]`

	outcome, handled := testProcessor().ProcessAssistantText(content, nil, nil)

	require.True(t, handled)
	assert.Equal(t, ActionCreate, outcome.Action)
	require.NotNil(t, outcome.Event)
	assert.Equal(t, "Cine", outcome.Event.Nombre)
	assert.Nil(t, outcome.Pending)
}

func TestProcessor_CreateTakesPriorityOverOtherTags(t *testing.T) {
	content := `[CREATE_EVENT: nombre="Cine", cantidad=12, tipo="egreso"] [DELETE_EVENT: id="evt-1"]`

	outcome, handled := testProcessor().ProcessAssistantText(content, nil, nil)

	require.True(t, handled)
	assert.Equal(t, ActionCreate, outcome.Action)
}

func TestProcessor_SearchSingleMatchGoesToConfirm(t *testing.T) {
	events := testEvents()[:1]
	content := `Buscando... [SEARCH_EVENTS: keywords="salario"]`

	outcome, handled := testProcessor().ProcessAssistantText(content, events, nil)

	require.True(t, handled)
	assert.Equal(t, ActionNone, outcome.Action)
	require.NotNil(t, outcome.Pending)
	assert.Equal(t, StepConfirm, outcome.Pending.Step)
	assert.Equal(t, "evt-1", outcome.Pending.EventID)
	assert.Equal(t, "Salario", outcome.Pending.EventName)
	assert.Contains(t, outcome.Reply, "Encontré este evento")
	assert.Contains(t, outcome.Reply, "Salario - +$3000 - 01/09/2023")
}

func TestProcessor_SearchMultipleMatchesGoToSelection(t *testing.T) {
	content := `[SEARCH_EVENTS: keywords="salario"]`

	outcome, handled := testProcessor().ProcessAssistantText(content, testEvents(), nil)

	require.True(t, handled)
	require.NotNil(t, outcome.Pending)
	assert.Equal(t, StepSearch, outcome.Pending.Step)
	require.Len(t, outcome.Pending.Candidates, 3)
	assert.Contains(t, outcome.Reply, "Encontré 3 eventos")
	assert.Contains(t, outcome.Reply, "1. Salario - +$3000 - 01/09/2023")
	assert.Contains(t, outcome.Reply, "3. Salario - +$3000 - 01/11/2023")
}

func TestProcessor_SearchCapsShownCandidates(t *testing.T) {
	var events []model.Event
	for i := 1; i <= 8; i++ {
		events = append(events, model.Event{
			ID:       fmt.Sprintf("evt-%d", i),
			Nombre:   "Salario",
			Cantidad: 3000,
			Fecha:    date(2023, time.Month(i), 1),
			Tipo:     model.TypeIngreso,
		})
	}

	outcome, handled := testProcessor().ProcessAssistantText(`[SEARCH_EVENTS: keywords="salario"]`, events, nil)

	require.True(t, handled)
	require.NotNil(t, outcome.Pending)
	assert.Len(t, outcome.Pending.Candidates, 5)
	// The headline count reflects all matches, the list only the first five.
	assert.Contains(t, outcome.Reply, "Encontré 8 eventos")
	assert.Contains(t, outcome.Reply, "5. ")
	assert.NotContains(t, outcome.Reply, "6. ")
}

func TestProcessor_SearchNoMatches(t *testing.T) {
	pending := &PendingDeletion{EventID: "evt-9", Step: StepConfirm}

	outcome, handled := testProcessor().ProcessAssistantText(`[SEARCH_EVENTS: keywords="inexistente"]`, testEvents(), pending)

	require.True(t, handled)
	assert.Equal(t, NoMatchesMessage(), outcome.Reply)
	assert.Equal(t, pending, outcome.Pending, "a failed search leaves prior state alone")
}

func TestProcessor_ConfirmDeleteCommand(t *testing.T) {
	content := `[CONFIRM_DELETE: id="evt-1", name="Salario", amount=3000, date="01/09/2023"]`

	outcome, handled := testProcessor().ProcessAssistantText(content, testEvents(), nil)

	require.True(t, handled)
	require.NotNil(t, outcome.Pending)
	assert.Equal(t, StepConfirm, outcome.Pending.Step)
	assert.Equal(t, "evt-1", outcome.Pending.EventID)
	assert.Contains(t, outcome.Reply, "Confirmar eliminación")
}

func TestProcessor_DeleteCommand(t *testing.T) {
	outcome, handled := testProcessor().ProcessAssistantText(`[DELETE_EVENT: id="evt-1"]`, testEvents(), nil)

	require.True(t, handled)
	assert.Equal(t, ActionDelete, outcome.Action)
	assert.Equal(t, "evt-1", outcome.EventID)
}

func TestHandleUserReply_ConfirmStep(t *testing.T) {
	pending := &PendingDeletion{EventID: "evt-1", EventName: "Salario", Step: StepConfirm}

	tests := []struct {
		name        string
		input       string
		wantHandled bool
		wantAction  ActionType
		wantReply   string
	}{
		{name: "sí deletes", input: "sí", wantHandled: true, wantAction: ActionDelete},
		{name: "si without accent deletes", input: "si", wantHandled: true, wantAction: ActionDelete},
		{name: "yes deletes", input: "Yes", wantHandled: true, wantAction: ActionDelete},
		{name: "padded affirmative deletes", input: "  SÍ  ", wantHandled: true, wantAction: ActionDelete},
		{name: "no cancels", input: "no", wantHandled: true, wantReply: CancelledMessage()},
		{name: "cancelar cancels", input: "cancelar", wantHandled: true, wantReply: CancelledMessage()},
		{name: "anything else is unhandled", input: "cuéntame un chiste", wantHandled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, handled := HandleUserReply(pending, tt.input)

			require.Equal(t, tt.wantHandled, handled)
			if !handled {
				assert.Equal(t, pending, outcome.Pending, "unrecognized replies leave state unchanged")
				return
			}

			assert.Equal(t, tt.wantAction, outcome.Action)
			if tt.wantAction == ActionDelete {
				assert.Equal(t, "evt-1", outcome.EventID)
				assert.Equal(t, "Salario", outcome.EventName)
			} else {
				assert.Equal(t, tt.wantReply, outcome.Reply)
				assert.Nil(t, outcome.Pending, "cancellation clears the pending state")
			}
		})
	}
}

func TestHandleUserReply_SearchStep(t *testing.T) {
	results := []model.EventSearchResult{
		{Event: testEvents()[0], Score: 60},
		{Event: testEvents()[1], Score: 60},
		{Event: testEvents()[2], Score: 60},
	}
	pending := &PendingDeletion{Step: StepSearch, Candidates: results}

	t.Run("valid selection advances to confirm", func(t *testing.T) {
		outcome, handled := HandleUserReply(pending, "2")

		require.True(t, handled)
		require.NotNil(t, outcome.Pending)
		assert.Equal(t, StepConfirm, outcome.Pending.Step)
		assert.Equal(t, "evt-2", outcome.Pending.EventID)
		assert.Contains(t, outcome.Reply, "01/10/2023")
	})

	t.Run("out of range selection is unhandled", func(t *testing.T) {
		outcome, handled := HandleUserReply(pending, "7")

		assert.False(t, handled)
		assert.Equal(t, pending, outcome.Pending)
	})

	t.Run("zero is unhandled", func(t *testing.T) {
		_, handled := HandleUserReply(pending, "0")
		assert.False(t, handled)
	})

	t.Run("cancelar clears the search", func(t *testing.T) {
		outcome, handled := HandleUserReply(pending, "cancelar")

		require.True(t, handled)
		assert.Equal(t, SearchCancelledMessage(), outcome.Reply)
		assert.Nil(t, outcome.Pending)
	})

	t.Run("prose is unhandled", func(t *testing.T) {
		outcome, handled := HandleUserReply(pending, "mejor el primero")

		assert.False(t, handled)
		assert.Equal(t, pending, outcome.Pending)
	})
}

func TestHandleUserReply_NoPendingState(t *testing.T) {
	_, handled := HandleUserReply(nil, "sí")
	assert.False(t, handled)
}

func TestDeletionWorkflowEndToEnd(t *testing.T) {
	processor := testProcessor()
	events := testEvents()

	// The assistant searches; three salaries match.
	outcome, handled := processor.ProcessAssistantText(`[SEARCH_EVENTS: keywords="salario"]`, events, nil)
	require.True(t, handled)
	pending := outcome.Pending
	require.NotNil(t, pending)
	require.Equal(t, StepSearch, pending.Step)

	// The user picks the third candidate.
	outcome, handled = HandleUserReply(pending, "3")
	require.True(t, handled)
	pending = outcome.Pending
	require.NotNil(t, pending)
	require.Equal(t, StepConfirm, pending.Step)
	require.Equal(t, "evt-3", pending.EventID)

	// The user confirms; the caller is asked to delete.
	outcome, handled = HandleUserReply(pending, "sí")
	require.True(t, handled)
	assert.Equal(t, ActionDelete, outcome.Action)
	assert.Equal(t, "evt-3", outcome.EventID)
	assert.Equal(t, "Salario", outcome.EventName)
}
