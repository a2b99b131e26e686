package model

import "time"

// DateRange is an inclusive calendar-date range at day granularity.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// AmountCriterion matches amounts within an absolute tolerance of a value.
type AmountCriterion struct {
	Value     float64
	Tolerance float64
}

// SearchCriteria holds normalized search parameters for ranking candidate
// events. All fields are optional; an empty criteria yields no matches.
type SearchCriteria struct {
	DateRange *DateRange
	Amount    *AmountCriterion
	Tipo      *EventType
	Keywords  []string
}

// Empty reports whether no criterion is populated.
func (c SearchCriteria) Empty() bool {
	return len(c.Keywords) == 0 && c.DateRange == nil && c.Amount == nil && c.Tipo == nil
}

// EventSearchResult is one scored candidate from a search. Score is a
// relative relevance value; MatchReasons explain the contributing matches
// for display during disambiguation.
type EventSearchResult struct {
	Event        Event
	MatchReasons []string
	Score        float64
}

// ChatMessage is a single chat turn persisted with the conversation history.
type ChatMessage struct {
	Timestamp time.Time
	ID        string
	Role      string
	Content   string
}
