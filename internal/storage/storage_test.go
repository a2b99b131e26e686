package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletfy/walletfy/internal/common"
	"github.com/walletfy/walletfy/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testEvent(id string) model.Event {
	return model.Event{
		ID:       id,
		Nombre:   "Salario",
		Cantidad: 3000,
		Fecha:    time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
		Tipo:     model.TypeIngreso,
	}
}

func TestSQLiteStorage_EventLifecycle(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	event := testEvent("evt-1")
	event.Descripcion = "Pago mensual"
	require.NoError(t, store.AddEvent(ctx, event))

	got, err := store.GetEventByID(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, event.Nombre, got.Nombre)
	assert.Equal(t, event.Descripcion, got.Descripcion)
	assert.Equal(t, event.Cantidad, got.Cantidad)
	assert.Equal(t, event.Tipo, got.Tipo)
	assert.True(t, event.Fecha.Equal(got.Fecha))

	got.Nombre = "Salario neto"
	got.Cantidad = 2800
	require.NoError(t, store.UpdateEvent(ctx, *got))

	updated, err := store.GetEventByID(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "Salario neto", updated.Nombre)
	assert.Equal(t, 2800.0, updated.Cantidad)

	require.NoError(t, store.DeleteEvent(ctx, "evt-1"))

	_, err = store.GetEventByID(ctx, "evt-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_AddEventRejectsDuplicates(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.AddEvent(ctx, testEvent("evt-1")))

	err := store.AddEvent(ctx, testEvent("evt-1"))
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestSQLiteStorage_AddEventRejectsInvalid(t *testing.T) {
	store := newTestStorage(t)

	event := testEvent("evt-1")
	event.Cantidad = -5

	err := store.AddEvent(context.Background(), event)
	assert.ErrorIs(t, err, common.ErrInvalidEvent)
}

func TestSQLiteStorage_DeleteMissingEvent(t *testing.T) {
	store := newTestStorage(t)

	err := store.DeleteEvent(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_UpdateMissingEvent(t *testing.T) {
	store := newTestStorage(t)

	err := store.UpdateEvent(context.Background(), testEvent("no-such-id"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_ListEventsOrder(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	later := testEvent("evt-later")
	later.Fecha = time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.AddEvent(ctx, later))

	earlier := testEvent("evt-earlier")
	earlier.Fecha = time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.AddEvent(ctx, earlier))

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "evt-earlier", events[0].ID)
	assert.Equal(t, "evt-later", events[1].ID)
}

func TestSQLiteStorage_InitialBalance(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// Unset balance reads as zero.
	balance, err := store.GetInitialBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)

	require.NoError(t, store.SetInitialBalance(ctx, 1500.50))

	balance, err = store.GetInitialBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500.50, balance)

	// Setting again overwrites.
	require.NoError(t, store.SetInitialBalance(ctx, 200))

	balance, err = store.GetInitialBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200.0, balance)
}

func TestSQLiteStorage_ChatMessages(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := model.ChatMessage{
		ID:        "msg-1",
		Role:      "user",
		Content:   "hola",
		Timestamp: time.Now().UTC(),
	}
	second := model.ChatMessage{
		ID:        "msg-2",
		Role:      "assistant",
		Content:   "¡Hola! ¿En qué puedo ayudarte?",
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, store.SaveChatMessage(ctx, first))
	require.NoError(t, store.SaveChatMessage(ctx, second))

	messages, err := store.ListChatMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "msg-1", messages[0].ID)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "msg-2", messages[1].ID)

	require.NoError(t, store.ClearChatMessages(ctx))

	messages, err = store.ListChatMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSQLiteStorage_SaveChatMessageRejectsUnknownRole(t *testing.T) {
	store := newTestStorage(t)

	err := store.SaveChatMessage(context.Background(), model.ChatMessage{
		ID:        "msg-1",
		Role:      "system",
		Content:   "x",
		Timestamp: time.Now(),
	})
	assert.Error(t, err)
}

func TestSQLiteStorage_MigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)

	// Second migration run must be a no-op.
	require.NoError(t, store.Migrate(context.Background()))
}

func TestSQLiteStorage_RequiresContext(t *testing.T) {
	store := newTestStorage(t)

	//nolint:staticcheck // deliberately exercising the nil-context guard
	err := store.AddEvent(nil, testEvent("evt-1"))
	assert.Error(t, err)
}
