package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletfy/walletfy/internal/dates"
	"github.com/walletfy/walletfy/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQueryParser_ParseDeleteQuery(t *testing.T) {
	// Fixed reference: Friday 15 March 2024.
	now := date(2024, time.March, 15)
	ingreso := model.TypeIngreso
	egreso := model.TypeEgreso

	tests := []struct {
		name string
		raw  string
		want model.SearchCriteria
	}{
		{
			name: "salario with month and year",
			raw:  "eliminar el salario de septiembre 2023",
			want: model.SearchCriteria{
				Keywords: []string{"salario", "septiembre", "2023"},
				Tipo:     &ingreso,
				DateRange: &model.DateRange{
					Start: date(2023, time.September, 1),
					End:   date(2023, time.September, 30),
				},
			},
		},
		{
			name: "expense signal",
			raw:  "borrar el gasto de netflix",
			want: model.SearchCriteria{
				Keywords: []string{"gasto", "netflix"},
				Tipo:     &egreso,
			},
		},
		{
			name: "income signal wins over expense signal",
			raw:  "quitar el ingreso que registré como gasto",
			want: model.SearchCriteria{
				Keywords: []string{"ingreso", "registré", "como", "gasto"},
				Tipo:     &ingreso,
			},
		},
		{
			name: "explicit amount",
			raw:  "eliminar la compra de $49.99",
			want: model.SearchCriteria{
				Keywords: []string{"compra", "$49.99"},
				Amount:   &model.AmountCriterion{Value: 49.99, Tolerance: 0.01},
			},
		},
		{
			name: "amount with comma decimals",
			raw:  "borrar pago 49,99",
			want: model.SearchCriteria{
				Keywords: []string{"pago", "49,99"},
				Amount:   &model.AmountCriterion{Value: 49.99, Tolerance: 0.01},
			},
		},
		{
			name: "this month range",
			raw:  "eliminar gastos de este mes",
			want: model.SearchCriteria{
				Keywords: []string{"gastos", "este", "mes"},
				Tipo:     &egreso,
				DateRange: &model.DateRange{
					Start: date(2024, time.March, 1),
					End:   date(2024, time.March, 31),
				},
			},
		},
		{
			name: "last month range",
			raw:  "borrar la renta del mes pasado",
			want: model.SearchCriteria{
				Keywords: []string{"renta", "mes", "pasado"},
				DateRange: &model.DateRange{
					Start: date(2024, time.February, 1),
					End:   date(2024, time.February, 29),
				},
			},
		},
		{
			name: "this week range",
			raw:  "quitar el cafe de esta semana",
			want: model.SearchCriteria{
				Keywords: []string{"cafe", "esta", "semana"},
				DateRange: &model.DateRange{
					Start: date(2024, time.March, 11),
					End:   date(2024, time.March, 17),
				},
			},
		},
		{
			name: "stop words and short words removed",
			raw:  "eliminar el de la en",
			want: model.SearchCriteria{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewQueryParser(dates.FixedClock(now)).ParseDeleteQuery(tt.raw)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryParser_MonthYearIsNotAnAmount(t *testing.T) {
	// The year of a month-year phrase must never be read as a money amount.
	got := NewQueryParser(dates.FixedClock(date(2024, time.March, 15))).
		ParseDeleteQuery("eliminar el salario de septiembre 2023")

	assert.Nil(t, got.Amount)
	require.NotNil(t, got.DateRange)
	assert.Equal(t, date(2023, time.September, 1), got.DateRange.Start)
}
