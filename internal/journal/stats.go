package journal

import (
	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

// Summary holds the aggregate metrics of a set of trades.
type Summary struct {
	TotalTrades int     `json:"total_trades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"` // percent, 2 decimals
	TotalPL     float64 `json:"total_pl"`
	AvgWin      float64 `json:"avg_win"`
	AvgLoss     float64 `json:"avg_loss"`
	Expectancy  float64 `json:"expectancy"`
	AvgRR       float64 `json:"avg_rr"`

	// EquityCurve starts at 0 and adds each trade's P/L in order.
	EquityCurve []float64 `json:"equity_curve"`
}

// Summarize computes the statistics of trades.
func Summarize(trades []models.Trade) Summary {
	s := Summary{
		TotalTrades: len(trades),
		EquityCurve: make([]float64, 0, len(trades)+1),
	}

	equity := decimal.Zero
	s.EquityCurve = append(s.EquityCurve, 0)

	var winSum, lossSum, rrSum float64
	var rrCount int
	for _, tr := range trades {
		equity = equity.Add(decimal.NewFromFloat(tr.PL))
		s.EquityCurve = append(s.EquityCurve, equity.InexactFloat64())

		switch {
		case tr.IsWin():
			s.Wins++
			winSum += tr.PL
		case tr.IsLoss():
			s.Losses++
			lossSum += tr.PL
		}
		if tr.HasRR() {
			rrSum += *tr.RR
			rrCount++
		}
	}

	if s.TotalTrades == 0 {
		return s
	}

	s.TotalPL = equity.Round(2).InexactFloat64()
	s.WinRate = Round2(100 * float64(s.Wins) / float64(s.TotalTrades))
	if s.Wins > 0 {
		s.AvgWin = winSum / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = lossSum / float64(s.Losses)
	}
	if rrCount > 0 {
		s.AvgRR = Round2(rrSum / float64(rrCount))
	}

	// Both weights come from the rounded percentage.
	s.Expectancy = (s.WinRate/100)*s.AvgWin + (1-s.WinRate/100)*s.AvgLoss
	return s
}
