// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// EventType distinguishes income from expense events.
type EventType string

// The two event type variants.
const (
	TypeIngreso EventType = "ingreso"
	TypeEgreso  EventType = "egreso"
)

// ParseEventType validates a raw type token.
func ParseEventType(s string) (EventType, bool) {
	switch EventType(s) {
	case TypeIngreso:
		return TypeIngreso, true
	case TypeEgreso:
		return TypeEgreso, true
	default:
		return "", false
	}
}

// Valid reports whether the type is one of the two known variants.
func (t EventType) Valid() bool {
	switch t {
	case TypeIngreso, TypeEgreso:
		return true
	}
	return false
}

// Sign returns the display sign for amounts of this type.
func (t EventType) Sign() string {
	if t == TypeIngreso {
		return "+"
	}
	return "-"
}

// Field length limits enforced by the event schema.
const (
	MaxNombreLen      = 20
	MaxDescripcionLen = 100
)

// Event represents a single dated income or expense record.
type Event struct {
	Fecha       time.Time
	ID          string
	Nombre      string
	Descripcion string
	Adjunto     string
	Cantidad    float64
	Tipo        EventType
}

// Validate checks the event against the schema rules applied before any
// store mutation: nombre 1-20 characters, descripcion up to 100, positive
// cantidad, valid tipo and a usable fecha.
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event ID is required")
	}
	nombreLen := utf8.RuneCountInString(e.Nombre)
	if nombreLen < 1 || nombreLen > MaxNombreLen {
		return fmt.Errorf("nombre must be 1-%d characters, got %d", MaxNombreLen, nombreLen)
	}
	if utf8.RuneCountInString(e.Descripcion) > MaxDescripcionLen {
		return fmt.Errorf("descripcion must be at most %d characters", MaxDescripcionLen)
	}
	if e.Cantidad <= 0 {
		return fmt.Errorf("cantidad must be positive, got %v", e.Cantidad)
	}
	if !e.Tipo.Valid() {
		return fmt.Errorf("tipo must be %q or %q, got %q", TypeIngreso, TypeEgreso, e.Tipo)
	}
	if e.Fecha.IsZero() {
		return fmt.Errorf("fecha is required")
	}
	return nil
}

// DisplayLine renders the event in the chat display form
// "nombre - ±$cantidad - DD/MM/YYYY".
func (e Event) DisplayLine() string {
	return fmt.Sprintf("%s - %s$%s - %s",
		e.Nombre,
		e.Tipo.Sign(),
		FormatAmount(e.Cantidad),
		e.Fecha.Format("02/01/2006"))
}

// FormatAmount renders an amount without trailing zeros, matching the
// conversational display style ("3000", "12.5").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
