package journal

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

const dateLayout = "2006-01-02"

// RawTrade is the trade-entry form as submitted, every field still text.
type RawTrade struct {
	Date      string `json:"date"`
	Direction string `json:"direction"`
	Symbol    string `json:"symbol"`
	Entry     string `json:"entry"`
	Stop      string `json:"stop"`
	Target    string `json:"target"`
	Exit      string `json:"exit"`
	Quantity  string `json:"quantity"`
	Notes     string `json:"notes"`
}

// IDSource hands out trade identifiers.
type IDSource interface {
	NextID() int64
}

// ClockIDs derives ids from the wall clock in milliseconds, bumping the
// value when two trades land in the same millisecond.
type ClockIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewClockIDs returns an IDSource backed by time.Now.
func NewClockIDs() *ClockIDs {
	return &ClockIDs{now: time.Now}
}

// NextID returns a value strictly greater than any previously returned one.
func (c *ClockIDs) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// Builder turns raw form input into Trade records.
type Builder struct {
	ids IDSource
}

// NewBuilder creates a Builder drawing ids from ids.
func NewBuilder(ids IDSource) *Builder {
	if ids == nil {
		ids = NewClockIDs()
	}
	return &Builder{ids: ids}
}

// Build validates raw and computes the derived fields. It never touches the
// store; a validation failure means no trade exists.
func (b *Builder) Build(raw RawTrade) (*models.Trade, error) {
	date := strings.TrimSpace(raw.Date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, raw.Date)
	}

	direction, err := ParseDirection(raw.Direction)
	if err != nil {
		return nil, err
	}

	symbol := strings.ToUpper(strings.TrimSpace(raw.Symbol))
	if symbol == "" {
		return nil, ErrMissingSymbol
	}

	entry, err := parsePositive("entry", raw.Entry)
	if err != nil {
		return nil, err
	}
	stop, err := parsePositive("stop", raw.Stop)
	if err != nil {
		return nil, err
	}
	target, err := parsePositive("target", raw.Target)
	if err != nil {
		return nil, err
	}
	exit, err := parsePositive("exit", raw.Exit)
	if err != nil {
		return nil, err
	}
	qty, err := parsePositive("quantity", raw.Quantity)
	if err != nil {
		return nil, err
	}

	risk := entry.Sub(stop).Abs()
	reward := target.Sub(entry).Abs()

	move := exit.Sub(entry)
	if direction == models.DirectionShort {
		move = entry.Sub(exit)
	}

	tr := &models.Trade{
		ID:        b.ids.NextID(),
		Date:      date,
		Direction: direction,
		Symbol:    symbol,
		Entry:     entry.InexactFloat64(),
		Stop:      stop.InexactFloat64(),
		Target:    target.InexactFloat64(),
		Exit:      exit.InexactFloat64(),
		Quantity:  qty.InexactFloat64(),
		Notes:     raw.Notes,
		Risk:      risk.InexactFloat64(),
		Reward:    reward.InexactFloat64(),
		PL:        move.Mul(qty).Round(2).InexactFloat64(),
	}
	if !risk.IsZero() {
		rr := reward.Div(risk).Round(2).InexactFloat64()
		tr.RR = &rr
	}
	return tr, nil
}

// ParseDirection accepts "long" or "short" in any case.
func ParseDirection(s string) (models.Direction, error) {
	switch models.Direction(strings.ToLower(strings.TrimSpace(s))) {
	case models.DirectionLong:
		return models.DirectionLong, nil
	case models.DirectionShort:
		return models.DirectionShort, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func parsePositive(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &InvalidNumericFieldError{Field: field, Value: raw, Err: err}
	}
	// The value must also survive conversion to float64.
	if f := d.InexactFloat64(); !d.IsPositive() || f <= 0 || math.IsInf(f, 0) {
		return decimal.Zero, &InvalidNumericFieldError{Field: field, Value: raw}
	}
	return d, nil
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
