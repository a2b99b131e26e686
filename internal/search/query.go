// Package search builds search criteria from free text and ranks candidate
// events against them.
package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/walletfy/walletfy/internal/dates"
	"github.com/walletfy/walletfy/internal/model"
)

// stopWords are articles, prepositions and command verbs stripped from
// deletion queries before keyword extraction.
var stopWords = map[string]struct{}{
	"eliminar": {}, "borrar": {}, "delete": {}, "remove": {}, "quitar": {},
	"el": {}, "la": {}, "los": {}, "las": {}, "de": {}, "del": {},
	"en": {}, "que": {}, "por": {},
}

var (
	amountRe    = regexp.MustCompile(`\$?\d+(?:[.,]\d{2})?`)
	monthYearRe = regexp.MustCompile(`(enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre|january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{4})`)
)

// QueryParser interprets a user's free-text deletion request into
// normalized search criteria.
type QueryParser struct {
	parser *dates.Parser
}

// NewQueryParser creates a query parser using the given clock for relative
// date ranges.
func NewQueryParser(clock dates.Clock) *QueryParser {
	return &QueryParser{parser: dates.NewParser(clock)}
}

// ParseDeleteQuery extracts keywords, an event-type signal, a monetary
// amount and a date range from a raw deletion request such as
// "eliminar el salario de septiembre 2023".
func (q *QueryParser) ParseDeleteQuery(raw string) model.SearchCriteria {
	lower := strings.ToLower(raw)
	criteria := model.SearchCriteria{}

	var keywords []string
	for _, word := range strings.Fields(lower) {
		if len([]rune(word)) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	if len(keywords) > 0 {
		criteria.Keywords = keywords
	}

	// Expense signal is checked before income, so a query carrying both
	// resolves to income. This precedence is load-bearing.
	if containsAny(lower, "gasto", "egreso", "expense") {
		tipo := model.TypeEgreso
		criteria.Tipo = &tipo
	}
	if containsAny(lower, "ingreso", "income", "salario") {
		tipo := model.TypeIngreso
		criteria.Tipo = &tipo
	}

	criteria.DateRange = q.parseDateRange(lower)

	// A month-year phrase's 4-digit year must not be mistaken for a
	// monetary amount, so the phrase is stripped before the amount scan.
	amountText := lower
	if loc := monthYearRe.FindStringIndex(lower); loc != nil {
		amountText = lower[:loc[0]] + lower[loc[1]:]
	}
	if m := amountRe.FindString(amountText); m != "" {
		cleaned := strings.ReplaceAll(strings.TrimPrefix(m, "$"), ",", ".")
		if value, err := strconv.ParseFloat(cleaned, 64); err == nil {
			criteria.Amount = &model.AmountCriterion{Value: value, Tolerance: 0.01}
		}
	}

	return criteria
}

// parseDateRange resolves a date range from the query, trying in order:
// explicit month-name + year, "este mes", "mes pasado", "esta semana".
func (q *QueryParser) parseDateRange(lower string) *model.DateRange {
	if m := monthYearRe.FindStringSubmatch(lower); m != nil {
		month, ok := dates.MonthFromName(m[1])
		year, err := strconv.Atoi(m[2])
		if ok && err == nil {
			start, end := dates.MonthRange(year, month)
			return &model.DateRange{Start: start, End: end}
		}
	}

	if containsAny(lower, "este mes", "this month") {
		start, end := q.parser.CurrentMonthRange()
		return &model.DateRange{Start: start, End: end}
	}
	if containsAny(lower, "mes pasado", "last month") {
		start, end := q.parser.PreviousMonthRange()
		return &model.DateRange{Start: start, End: end}
	}
	if containsAny(lower, "esta semana", "this week") {
		start, end := q.parser.CurrentWeekRange()
		return &model.DateRange{Start: start, End: end}
	}

	return nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
