package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"trade-journal-go/internal/models"
)

// ExportFilename is the suggested download name for WriteCSV output.
const ExportFilename = "trades.csv"

var csvHeader = []string{"Date", "Symbol", "Direction", "Entry", "Stop", "Target", "Exit", "Quantity", "RR", "PL"}

// WriteCSV writes trades with a header row. Fields are quoted where needed,
// so symbols or directions containing commas survive a round trip.
func WriteCSV(w io.Writer, trades []models.Trade) error {
	if len(trades) == 0 {
		return ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tr := range trades {
		if err := cw.Write(csvRow(tr)); err != nil {
			return fmt.Errorf("write csv row %d: %w", tr.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func csvRow(tr models.Trade) []string {
	rr := ""
	if tr.HasRR() {
		rr = fixed2(*tr.RR)
	}
	return []string{
		tr.Date,
		tr.Symbol,
		string(tr.Direction),
		num(tr.Entry),
		num(tr.Stop),
		num(tr.Target),
		num(tr.Exit),
		num(tr.Quantity),
		rr,
		fixed2(tr.PL),
	}
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func fixed2(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
