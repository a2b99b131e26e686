package session

import (
	"fmt"
	"strings"

	"github.com/walletfy/walletfy/internal/command"
	"github.com/walletfy/walletfy/internal/model"
)

// maxShownCandidates caps the disambiguation list; longer result sets are
// truncated, not paginated.
const maxShownCandidates = 5

// Assistant-voiced messages for the deletion workflow, in the application's
// Spanish conversational register.

// CreatedMessage acknowledges a successfully created event.
func CreatedMessage(e model.Event) string {
	return fmt.Sprintf("✅ Evento creado exitosamente: %s - $%s", e.Nombre, model.FormatAmount(e.Cantidad))
}

// CreateFailedMessage reports a rejected event creation.
func CreateFailedMessage() string {
	return "❌ Error al crear el evento. Por favor, verifica los datos."
}

// NoMatchesMessage reports an empty search result.
func NoMatchesMessage() string {
	return "❌ No se encontraron eventos que coincidan con tu búsqueda. Intenta con otros términos o fechas."
}

// ConfirmMessage asks for a yes/no on a single candidate.
func ConfirmMessage(e model.Event) string {
	return fmt.Sprintf("🔍 Encontré este evento:\n\n📋 %s\n\n¿Estás seguro de que quieres eliminarlo? Escribe 'sí' para confirmar o 'no' para cancelar.", e.DisplayLine())
}

// SelectMessage lists up to five candidates for a numeric selection.
func SelectMessage(results []model.EventSearchResult) string {
	shown := results
	if len(shown) > maxShownCandidates {
		shown = shown[:maxShownCandidates]
	}
	var lines []string
	for i, r := range shown {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, r.Event.DisplayLine()))
	}
	return fmt.Sprintf("🔍 Encontré %d eventos que coinciden:\n\n%s\n\n¿Cuál quieres eliminar? Escribe el número o 'cancelar' para cancelar.",
		len(results), strings.Join(lines, "\n"))
}

// ConfirmDataMessage asks for a yes/no on an assistant-supplied candidate.
func ConfirmDataMessage(c command.ConfirmDelete) string {
	return fmt.Sprintf("⚠️ Confirmar eliminación\n\n📋 %s - $%s - %s\n\n¿Estás seguro de que quieres eliminar este evento? Escribe 'sí' para confirmar o 'no' para cancelar.",
		c.Name, model.FormatAmount(c.Amount), c.Date)
}

// DeletedMessage acknowledges a completed deletion.
func DeletedMessage(name string) string {
	if name == "" {
		return "✅ ¡Eliminado exitosamente! El evento ha sido borrado de tu registro financiero."
	}
	return fmt.Sprintf("✅ ¡Eliminado exitosamente! El evento %q ha sido borrado de tu registro financiero.", name)
}

// DeleteFailedMessage reports a store-rejected deletion.
func DeleteFailedMessage() string {
	return "❌ Error al eliminar el evento. Por favor, inténtalo de nuevo."
}

// CancelledMessage acknowledges a cancelled confirmation.
func CancelledMessage() string {
	return "✅ Eliminación cancelada. El evento no ha sido modificado."
}

// SearchCancelledMessage acknowledges a cancelled selection.
func SearchCancelledMessage() string {
	return "✅ Búsqueda cancelada."
}
