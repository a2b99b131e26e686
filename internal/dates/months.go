package dates

import (
	"strings"
	"time"
)

// monthNames maps Spanish and English month names (and Spanish
// abbreviations) to their calendar month.
var monthNames = map[string]time.Month{
	"enero": time.January, "january": time.January, "ene": time.January,
	"febrero": time.February, "february": time.February, "feb": time.February,
	"marzo": time.March, "march": time.March, "mar": time.March,
	"abril": time.April, "april": time.April, "abr": time.April,
	"mayo": time.May, "may": time.May,
	"junio": time.June, "june": time.June, "jun": time.June,
	"julio": time.July, "july": time.July, "jul": time.July,
	"agosto": time.August, "august": time.August, "ago": time.August,
	"septiembre": time.September, "september": time.September, "sep": time.September,
	"octubre": time.October, "october": time.October, "oct": time.October,
	"noviembre": time.November, "november": time.November, "nov": time.November,
	"diciembre": time.December, "december": time.December, "dic": time.December,
}

// spanishMonths indexes display names by month for formatting.
var spanishMonths = [...]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// MonthFromName resolves a Spanish or English month name.
func MonthFromName(name string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// MonthName returns the Spanish display name for a month.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return spanishMonths[m]
}
