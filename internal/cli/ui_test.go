package cli

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
)

func init() {
	// Plain output so assertions don't depend on the terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestEquitySegments(t *testing.T) {
	segs := EquitySegments([]float64{0, 100, 50, 50, 80})

	ups := make([]bool, 0, len(segs))
	for _, s := range segs {
		ups = append(ups, s.Up())
	}
	assert.Equal(t, []bool{true, false, false, true}, ups)
	assert.Nil(t, EquitySegments([]float64{0}))
}

func TestRenderEquityCurve(t *testing.T) {
	out := RenderEquityCurve([]float64{0, 100, 50, 80})

	assert.Contains(t, out, "Equity ")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "+80.00")
	assert.Contains(t, out, "(min 0.00, max 100.00)")

	assert.Contains(t, RenderEquityCurve([]float64{0}), "no trades")
}

func TestRenderTrades(t *testing.T) {
	rr := 2.0
	v := &journal.View{
		Trades: []models.Trade{
			{ID: 7, Date: "2024-01-02", Direction: models.DirectionShort, Symbol: "TSLA",
				Entry: 100, Stop: 105, Target: 90, Exit: 92, Quantity: 5, RR: &rr, PL: 40, Notes: "fade"},
			{ID: 8, Date: "2024-01-03", Direction: models.DirectionLong, Symbol: "AAPL",
				Entry: 10, Stop: 10, Target: 12, Exit: 9.5, Quantity: 1, PL: -0.5},
		},
		Criteria:      journal.Criteria{Result: journal.ResultAll, StartDate: "2024-01-01"},
		FiltersActive: true,
		Total:         3,
	}

	out := RenderTrades(v)

	assert.Contains(t, out, "Trades (2 of 3)")
	assert.Contains(t, out, "[from 2024-01-01]")
	assert.Contains(t, out, "TSLA")
	assert.Contains(t, out, "SHORT")
	assert.Contains(t, out, "+40.00")
	assert.Contains(t, out, "-0.50")
	assert.Contains(t, out, "fade")
	assert.Contains(t, out, " - ")

	assert.Contains(t, RenderTrades(&journal.View{}), "No trades.")
}

func TestRenderSummary(t *testing.T) {
	s := journal.Summarize(nil)
	s.TotalTrades, s.Wins, s.Losses, s.WinRate = 3, 2, 1, 66.67

	out := RenderSummary(&s)

	assert.Contains(t, out, "3 (2 W / 1 L)")
	assert.Contains(t, out, "66.67%")
}

func TestFormatPL(t *testing.T) {
	assert.Equal(t, "+1.50", FormatPL(1.5))
	assert.Equal(t, "-2.00", FormatPL(-2))
	assert.Equal(t, "0.00", FormatPL(0))
}
