// Package cli renders journal data for the terminal.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Width(12)

	profitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
)

// RenderTrades renders the trade table, newest last.
func RenderTrades(v *journal.View) string {
	var b strings.Builder

	title := fmt.Sprintf("Trades (%d of %d)", len(v.Trades), v.Total)
	if v.FiltersActive {
		title += " " + mutedStyle.Render(describeCriteria(v.Criteria))
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if len(v.Trades) == 0 {
		b.WriteString(mutedStyle.Render("No trades."))
		b.WriteString("\n")
		return b.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("ID", "Date", "Symbol", "Dir", "Entry", "Stop", "Target", "Exit", "Qty", "R:R", "P/L", "Notes").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, tr := range v.Trades {
		t.Row(
			strconv.FormatInt(tr.ID, 10),
			tr.Date,
			tr.Symbol,
			strings.ToUpper(string(tr.Direction)),
			num(tr.Entry),
			num(tr.Stop),
			num(tr.Target),
			num(tr.Exit),
			num(tr.Quantity),
			FormatRR(tr),
			FormatPL(tr.PL),
			tr.Notes,
		)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// RenderSummary renders the statistics box.
func RenderSummary(s *journal.Summary) string {
	rows := []struct {
		label string
		value string
	}{
		{"Trades", fmt.Sprintf("%d (%d W / %d L)", s.TotalTrades, s.Wins, s.Losses)},
		{"Win rate", fmt.Sprintf("%.2f%%", s.WinRate)},
		{"Total P/L", FormatPL(s.TotalPL)},
		{"Avg win", fmt.Sprintf("%.2f", s.AvgWin)},
		{"Avg loss", fmt.Sprintf("%.2f", s.AvgLoss)},
		{"Expectancy", FormatPL(s.Expectancy)},
		{"Avg R:R", fmt.Sprintf("%.2f", s.AvgRR)},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r.label), r.value))
	}
	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// Segment is one step of the equity curve.
type Segment struct {
	From float64
	To   float64
}

// Up reports whether equity rose over the segment. Flat counts as down.
func (s Segment) Up() bool {
	return s.To > s.From
}

// EquitySegments splits a curve into consecutive segments.
func EquitySegments(curve []float64) []Segment {
	if len(curve) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		segs = append(segs, Segment{From: curve[i-1], To: curve[i]})
	}
	return segs
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// RenderEquityCurve draws the curve as a sparkline, one bar per point after
// the start. Rising segments are green, flat or falling ones red.
func RenderEquityCurve(curve []float64) string {
	segs := EquitySegments(curve)
	if len(segs) == 0 {
		return mutedStyle.Render("Equity curve: no trades") + "\n"
	}

	lo, hi := curve[0], curve[0]
	for _, v := range curve {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var bars strings.Builder
	for _, s := range segs {
		level := 0
		if hi > lo {
			level = int((s.To - lo) / (hi - lo) * float64(len(sparks)-1))
		}
		style := lossStyle
		if s.Up() {
			style = profitStyle
		}
		bars.WriteString(style.Render(string(sparks[level])))
	}

	last := curve[len(curve)-1]
	return fmt.Sprintf("Equity %s %s  %s\n",
		bars.String(),
		FormatPL(last),
		mutedStyle.Render(fmt.Sprintf("(min %.2f, max %.2f)", lo, hi)))
}

// RenderWarning formats a non-fatal server warning.
func RenderWarning(msg string) string {
	return warnStyle.Render("warning: "+msg) + "\n"
}

// FormatPL renders a P/L value with sign and colour.
func FormatPL(pl float64) string {
	s := fmt.Sprintf("%+.2f", pl)
	switch {
	case pl > 0:
		return profitStyle.Render(s)
	case pl < 0:
		return lossStyle.Render(s)
	}
	return fmt.Sprintf("%.2f", pl)
}

// FormatRR renders the reward-to-risk ratio, or a dash when undefined.
func FormatRR(tr models.Trade) string {
	if !tr.HasRR() {
		return "-"
	}
	return fmt.Sprintf("%.2f", *tr.RR)
}

func describeCriteria(c journal.Criteria) string {
	var parts []string
	if c.Result != "" && c.Result != journal.ResultAll {
		parts = append(parts, "result="+string(c.Result))
	}
	if c.StartDate != "" {
		parts = append(parts, "from "+c.StartDate)
	}
	if c.EndDate != "" {
		parts = append(parts, "to "+c.EndDate)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
