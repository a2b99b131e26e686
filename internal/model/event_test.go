package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() Event {
	return Event{
		ID:       "evt-1",
		Nombre:   "Salario",
		Cantidad: 3000,
		Fecha:    time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
		Tipo:     TypeIngreso,
	}
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Event)
		wantErr string
	}{
		{
			name:   "valid event",
			modify: func(_ *Event) {},
		},
		{
			name:   "nombre at max length",
			modify: func(e *Event) { e.Nombre = strings.Repeat("a", MaxNombreLen) },
		},
		{
			name:   "descripcion at max length",
			modify: func(e *Event) { e.Descripcion = strings.Repeat("d", MaxDescripcionLen) },
		},
		{
			name:    "missing id",
			modify:  func(e *Event) { e.ID = "" },
			wantErr: "ID is required",
		},
		{
			name:    "empty nombre",
			modify:  func(e *Event) { e.Nombre = "" },
			wantErr: "nombre",
		},
		{
			name:    "nombre too long",
			modify:  func(e *Event) { e.Nombre = strings.Repeat("a", MaxNombreLen+1) },
			wantErr: "nombre",
		},
		{
			name:    "descripcion too long",
			modify:  func(e *Event) { e.Descripcion = strings.Repeat("d", MaxDescripcionLen+1) },
			wantErr: "descripcion",
		},
		{
			name:    "zero cantidad",
			modify:  func(e *Event) { e.Cantidad = 0 },
			wantErr: "cantidad",
		},
		{
			name:    "negative cantidad",
			modify:  func(e *Event) { e.Cantidad = -10 },
			wantErr: "cantidad",
		},
		{
			name:    "unknown tipo",
			modify:  func(e *Event) { e.Tipo = "transferencia" },
			wantErr: "tipo",
		},
		{
			name:    "zero fecha",
			modify:  func(e *Event) { e.Fecha = time.Time{} },
			wantErr: "fecha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validEvent()
			tt.modify(&event)

			err := event.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEvent_ValidateCountsRunesNotBytes(t *testing.T) {
	event := validEvent()
	// 20 multibyte runes is within the limit even though it exceeds 20 bytes.
	event.Nombre = strings.Repeat("ñ", MaxNombreLen)

	assert.NoError(t, event.Validate())
}

func TestParseEventType(t *testing.T) {
	tipo, ok := ParseEventType("ingreso")
	require.True(t, ok)
	assert.Equal(t, TypeIngreso, tipo)

	tipo, ok = ParseEventType("egreso")
	require.True(t, ok)
	assert.Equal(t, TypeEgreso, tipo)

	_, ok = ParseEventType("Ingreso")
	assert.False(t, ok, "type tokens are case sensitive")

	_, ok = ParseEventType("")
	assert.False(t, ok)
}

func TestEvent_DisplayLine(t *testing.T) {
	event := validEvent()
	assert.Equal(t, "Salario - +$3000 - 01/09/2023", event.DisplayLine())

	event.Tipo = TypeEgreso
	event.Nombre = "Renta"
	event.Cantidad = 850.5
	assert.Equal(t, "Renta - -$850.5 - 01/09/2023", event.DisplayLine())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "3000", FormatAmount(3000))
	assert.Equal(t, "12.5", FormatAmount(12.5))
	assert.Equal(t, "0.01", FormatAmount(0.01))
}
