// Package dates turns conversational and explicit date tokens into calendar
// dates. All results are normalized to midnight UTC; the package has no
// dependencies on the rest of the application.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// explicitLayouts is the ordered list of formats tried for explicit dates.
// First layout that parses to a valid calendar date wins.
var explicitLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"01/02/2006",
	"02/01/06",
	"02-01-06",
}

// fallbackLayouts is tried last, for inputs outside the conversational
// formats the assistant is instructed to use.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

var dayMonthNameRe = regexp.MustCompile(`^(\d{1,2})\s+([a-záéíóúñ]+)\.?\s+(\d{4})$`)

// Parser resolves conversational date tokens against an injected clock.
type Parser struct {
	clock Clock
}

// NewParser creates a date parser. A nil clock falls back to the system clock.
func NewParser(clock Clock) *Parser {
	if clock == nil {
		clock = SystemClock()
	}
	return &Parser{clock: clock}
}

// Today returns the current calendar date.
func (p *Parser) Today() time.Time {
	return DateOf(p.clock.Now())
}

// Parse interprets a conversational date token. It recognizes relative
// tokens (hoy/ayer/mañana and their English forms), then a fixed ordered
// list of explicit formats, then a small set of general fallbacks. The
// second return value is false when no interpretation yields a valid date;
// Parse never panics or errors on arbitrary input.
func (p *Parser) Parse(input string) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return time.Time{}, false
	}

	today := p.Today()
	switch s {
	case "hoy", "today":
		return today, true
	case "ayer", "yesterday":
		return today.AddDate(0, 0, -1), true
	case "mañana", "tomorrow":
		return today.AddDate(0, 0, 1), true
	}

	for _, layout := range explicitLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}

	if t, ok := parseDayMonthName(s); ok {
		return t, true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}

	return time.Time{}, false
}

// parseDayMonthName handles "15 enero 2024" and "15 ene 2024" style inputs.
func parseDayMonthName(s string) (time.Time, bool) {
	m := dayMonthNameRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := MonthFromName(m[2])
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days; reject those.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// DateOf truncates an instant to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Format renders a date in the display form DD/MM/YYYY.
func Format(t time.Time) string {
	return t.Format("02/01/2006")
}
