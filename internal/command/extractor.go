// Package command extracts bracketed command tags from assistant text and
// parses them into structured records. Every parsing function is total over
// arbitrary input: malformed or partial tags yield an absent result, never
// an error, because the text originates from an LLM and cannot be trusted
// to be well-formed.
package command

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/walletfy/walletfy/internal/dates"
	"github.com/walletfy/walletfy/internal/model"
)

var (
	createTagRe  = regexp.MustCompile(`\[CREATE_EVENT:\s*([^\]]+)\]`)
	searchTagRe  = regexp.MustCompile(`\[SEARCH_EVENTS:\s*([^\]]+)\]`)
	confirmTagRe = regexp.MustCompile(`\[CONFIRM_DELETE:\s*([^\]]+)\]`)
	deleteTagRe  = regexp.MustCompile(`\[DELETE_EVENT:\s*id="([^"]+)"\]`)

	// key=value pairs; values are double-quoted or bare tokens delimited by
	// whitespace or comma.
	paramRe = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|([^\s,]+))`)
)

// ConfirmDelete carries the four fields of a CONFIRM_DELETE tag verbatim,
// with amount coerced to a number.
type ConfirmDelete struct {
	ID     string
	Name   string
	Date   string
	Amount float64
}

// Extractor parses command tags. Dates inside tags are resolved through the
// conversational date parser; new event ids come from the injected
// generator.
type Extractor struct {
	parser *dates.Parser
	newID  func() string
}

// NewExtractor creates an extractor. A nil id generator defaults to UUIDs.
func NewExtractor(parser *dates.Parser, newID func() string) *Extractor {
	if parser == nil {
		parser = dates.NewParser(nil)
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Extractor{parser: parser, newID: newID}
}

// parseParams parses a tag's parameter list. Unknown keys are kept (callers
// ignore them); duplicate keys resolve to the last occurrence.
func parseParams(body string) map[string]string {
	params := make(map[string]string)
	for _, m := range paramRe.FindAllStringSubmatch(body, -1) {
		key, quoted, bare := m[1], m[2], m[3]
		if bare != "" {
			params[key] = bare
		} else {
			params[key] = quoted
		}
	}
	return params
}

// ParseCreateEvent extracts a CREATE_EVENT tag and synthesizes a complete
// event record, including a freshly minted id. It returns nil when the tag
// is absent, a required parameter is missing, cantidad does not parse as a
// positive number, tipo is not a known variant, or a supplied fecha cannot
// be resolved. An absent fecha defaults to the current date; nombre is
// truncated to the display-name limit rather than rejected.
func (e *Extractor) ParseCreateEvent(content string) *model.Event {
	m := createTagRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	params := parseParams(m[1])

	if params["nombre"] == "" || params["cantidad"] == "" || params["tipo"] == "" {
		return nil
	}

	cantidad, err := strconv.ParseFloat(params["cantidad"], 64)
	if err != nil || cantidad <= 0 {
		return nil
	}

	tipo, ok := model.ParseEventType(params["tipo"])
	if !ok {
		return nil
	}

	var fecha time.Time
	if raw, present := params["fecha"]; present && raw != "" {
		parsed, ok := e.parser.Parse(raw)
		if !ok {
			return nil
		}
		fecha = parsed
	} else {
		fecha = e.parser.Today()
	}

	return &model.Event{
		ID:          e.newID(),
		Nombre:      truncateRunes(params["nombre"], model.MaxNombreLen),
		Descripcion: params["descripcion"],
		Cantidad:    cantidad,
		Fecha:       fecha,
		Tipo:        tipo,
		Adjunto:     params["adjunto"],
	}
}

// ParseSearchEvents extracts a SEARCH_EVENTS tag into search criteria. It
// never fails once the tag is present: invalid optional parameters are
// simply omitted, and a tag with no usable parameters still returns an
// empty criteria signaling that a search was requested.
func (e *Extractor) ParseSearchEvents(content string) *model.SearchCriteria {
	m := searchTagRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	params := parseParams(m[1])

	criteria := &model.SearchCriteria{}

	if kw := strings.TrimSpace(params["keywords"]); kw != "" {
		criteria.Keywords = strings.Fields(strings.ToLower(kw))
	}

	if tipo, ok := model.ParseEventType(params["tipo"]); ok {
		criteria.Tipo = &tipo
	}

	if raw := params["amount"]; raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			criteria.Amount = &model.AmountCriterion{Value: value, Tolerance: 0.01}
		}
	}

	// month and year are only usable together; month is 1-indexed on the wire.
	if params["month"] != "" && params["year"] != "" {
		month, merr := strconv.Atoi(params["month"])
		year, yerr := strconv.Atoi(params["year"])
		if merr == nil && yerr == nil && month >= 1 && month <= 12 {
			start, end := dates.MonthRange(year, time.Month(month))
			criteria.DateRange = &model.DateRange{Start: start, End: end}
		}
	}

	return criteria
}

// ParseConfirmDelete extracts a CONFIRM_DELETE tag. All four of id, name,
// amount and date are required; amount must parse as a number.
func (e *Extractor) ParseConfirmDelete(content string) *ConfirmDelete {
	m := confirmTagRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	params := parseParams(m[1])

	if params["id"] == "" || params["name"] == "" || params["amount"] == "" || params["date"] == "" {
		return nil
	}

	amount, err := strconv.ParseFloat(params["amount"], 64)
	if err != nil {
		return nil
	}

	return &ConfirmDelete{
		ID:     params["id"],
		Name:   params["name"],
		Amount: amount,
		Date:   params["date"],
	}
}

// ParseDeleteEvent extracts the id from a DELETE_EVENT tag.
func ParseDeleteEvent(content string) (string, bool) {
	m := deleteTagRe.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
