// Package balance computes monthly income/expense totals and the running
// global balance across the full event history.
package balance

import (
	"fmt"
	"sort"

	"github.com/walletfy/walletfy/internal/dates"
	"github.com/walletfy/walletfy/internal/model"
)

// MonthlyBalance summarizes one calendar month of activity plus the global
// balance accumulated through that month.
type MonthlyBalance struct {
	MonthKey       string
	MonthName      string
	Events         []model.Event
	TotalIngresos  float64
	TotalEgresos   float64
	MonthlyBalance float64
	GlobalBalance  float64
}

// CalculateFlow groups events by calendar month (ascending) and threads the
// running global balance from the initial balance through each month.
func CalculateFlow(events []model.Event, initialBalance float64) []MonthlyBalance {
	grouped := make(map[string][]model.Event)
	for _, event := range events {
		key := monthKey(event)
		grouped[key] = append(grouped[key], event)
	}

	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	running := initialBalance
	flow := make([]MonthlyBalance, 0, len(keys))
	for _, key := range keys {
		monthEvents := grouped[key]
		ingresos, egresos := monthTotals(monthEvents)
		monthly := ingresos - egresos
		running += monthly

		flow = append(flow, MonthlyBalance{
			MonthKey:       key,
			MonthName:      monthName(monthEvents[0]),
			Events:         monthEvents,
			TotalIngresos:  ingresos,
			TotalEgresos:   egresos,
			MonthlyBalance: monthly,
			GlobalBalance:  running,
		})
	}

	return flow
}

// Current returns the latest global balance, or the initial balance when
// there are no events.
func Current(events []model.Event, initialBalance float64) float64 {
	flow := CalculateFlow(events, initialBalance)
	if len(flow) == 0 {
		return initialBalance
	}
	return flow[len(flow)-1].GlobalBalance
}

// monthTotals sums ingresos and egresos for one month's events.
func monthTotals(events []model.Event) (float64, float64) {
	var ingresos, egresos float64
	for _, event := range events {
		switch event.Tipo {
		case model.TypeIngreso:
			ingresos += event.Cantidad
		case model.TypeEgreso:
			egresos += event.Cantidad
		}
	}
	return ingresos, egresos
}

func monthKey(event model.Event) string {
	return event.Fecha.Format("2006-01")
}

func monthName(event model.Event) string {
	return fmt.Sprintf("%s %d", dates.MonthName(event.Fecha.Month()), event.Fecha.Year())
}
