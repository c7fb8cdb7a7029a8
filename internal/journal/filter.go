package journal

import (
	"fmt"
	"strings"

	"trade-journal-go/internal/models"
)

// Result selects trades by outcome.
type Result string

const (
	ResultAll  Result = "all"
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
)

// ParseResult maps the result selector to a Result. Empty means all.
func ParseResult(s string) (Result, error) {
	switch r := Result(strings.ToLower(strings.TrimSpace(s))); r {
	case "", ResultAll:
		return ResultAll, nil
	case ResultWin, ResultLoss:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidResult, s)
}

// Criteria are the table filters. Zero values disable a filter.
type Criteria struct {
	Result    Result `json:"result"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Active reports whether any filter narrows the trade list.
func (c Criteria) Active() bool {
	return (c.Result != "" && c.Result != ResultAll) || c.StartDate != "" || c.EndDate != ""
}

func (c Criteria) match(tr models.Trade) bool {
	switch c.Result {
	case ResultWin:
		if !tr.IsWin() {
			return false
		}
	case ResultLoss:
		if !tr.IsLoss() {
			return false
		}
	}
	// ISO dates compare correctly as strings.
	if c.StartDate != "" && tr.Date < c.StartDate {
		return false
	}
	if c.EndDate != "" && tr.Date > c.EndDate {
		return false
	}
	return true
}

// Filter returns the trades matching every criterion, in their original order.
func Filter(trades []models.Trade, c Criteria) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, tr := range trades {
		if c.match(tr) {
			out = append(out, tr)
		}
	}
	return out
}
