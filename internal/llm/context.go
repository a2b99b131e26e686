package llm

import (
	"sort"
	"time"

	"github.com/walletfy/walletfy/internal/balance"
	"github.com/walletfy/walletfy/internal/dates"
	"github.com/walletfy/walletfy/internal/model"
)

// recentEventCount is how many of the latest events ride along in the prompt.
const recentEventCount = 5

// BuildFinancialContext assembles the prompt context from the full event
// history and the configured initial balance.
func BuildFinancialContext(events []model.Event, initialBalance float64, now time.Time) FinancialContext {
	fc := FinancialContext{
		GeneratedAt:    now,
		InitialBalance: initialBalance,
		CurrentBalance: balance.Current(events, initialBalance),
	}

	for _, event := range events {
		switch event.Tipo {
		case model.TypeIngreso:
			fc.TotalIngresos++
			fc.IngresosAmount += event.Cantidad
		case model.TypeEgreso:
			fc.TotalEgresos++
			fc.EgresosAmount += event.Cantidad
		}
	}

	for _, month := range balance.CalculateFlow(events, initialBalance) {
		fc.BalanceFlow = append(fc.BalanceFlow, MonthSummary{
			Month:         month.MonthName,
			Ingresos:      month.TotalIngresos,
			Egresos:       month.TotalEgresos,
			Balance:       month.MonthlyBalance,
			GlobalBalance: month.GlobalBalance,
		})
	}

	recent := make([]model.Event, len(events))
	copy(recent, events)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Fecha.After(recent[j].Fecha)
	})
	if len(recent) > recentEventCount {
		recent = recent[:recentEventCount]
	}
	for _, event := range recent {
		fc.RecentEvents = append(fc.RecentEvents, EventSummary{
			ID:          event.ID,
			Nombre:      event.Nombre,
			Descripcion: event.Descripcion,
			Cantidad:    event.Cantidad,
			Fecha:       dates.Format(event.Fecha),
			Tipo:        string(event.Tipo),
		})
	}

	return fc
}
