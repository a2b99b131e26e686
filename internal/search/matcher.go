package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/walletfy/walletfy/internal/dates"
	"github.com/walletfy/walletfy/internal/model"
)

// Score contributions per criterion. The total is a relative relevance
// value, not a probability.
const (
	keywordWeight     = 40.0
	typeWeight        = 20.0
	amountExactWeight = 30.0
	amountCloseWeight = 20.0
	dateRangeWeight   = 25.0
)

// Events scores a set of events against search criteria and returns the
// matches ordered by descending score. Events contributing no score are
// excluded entirely. The function is pure: identical inputs yield identical
// results, and equal-score events keep their input order.
func Events(events []model.Event, criteria model.SearchCriteria) []model.EventSearchResult {
	var results []model.EventSearchResult

	for _, event := range events {
		var score float64
		var reasons []string

		if len(criteria.Keywords) > 0 {
			eventText := strings.ToLower(event.Nombre + " " + event.Descripcion)
			var matched []string
			for _, keyword := range criteria.Keywords {
				if strings.Contains(eventText, strings.ToLower(keyword)) {
					matched = append(matched, keyword)
				}
			}
			if len(matched) > 0 {
				score += float64(len(matched)) / float64(len(criteria.Keywords)) * keywordWeight
				reasons = append(reasons, "Coincide con: "+strings.Join(matched, ", "))
			}
		}

		if criteria.Tipo != nil && event.Tipo == *criteria.Tipo {
			score += typeWeight
			reasons = append(reasons, "Tipo: "+string(event.Tipo))
		}

		if criteria.Amount != nil {
			diff := math.Abs(event.Cantidad - criteria.Amount.Value)
			tolerance := criteria.Amount.Tolerance
			if tolerance == 0 {
				tolerance = 0.01
			}
			switch {
			case diff <= tolerance:
				score += amountExactWeight
				reasons = append(reasons, fmt.Sprintf("Cantidad exacta: $%s", model.FormatAmount(event.Cantidad)))
			case diff <= criteria.Amount.Value*0.1:
				score += amountCloseWeight
				reasons = append(reasons, fmt.Sprintf("Cantidad similar: $%s", model.FormatAmount(event.Cantidad)))
			}
		}

		if criteria.DateRange != nil {
			day := dates.DateOf(event.Fecha)
			start := dates.DateOf(criteria.DateRange.Start)
			end := dates.DateOf(criteria.DateRange.End)
			if !day.Before(start) && !day.After(end) {
				score += dateRangeWeight
				reasons = append(reasons, "Fecha en rango: "+dates.Format(event.Fecha))
			}
		}

		if score > 0 {
			results = append(results, model.EventSearchResult{
				Event:        event,
				Score:        score,
				MatchReasons: reasons,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}
