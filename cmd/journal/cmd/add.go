package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trade-journal-go/internal/cli"
	"trade-journal-go/internal/journal"
)

var addForm journal.RawTrade

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a closed trade",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	f := addCmd.Flags()
	f.StringVar(&addForm.Date, "date", time.Now().Format("2006-01-02"), "trade date (YYYY-MM-DD)")
	f.StringVar(&addForm.Direction, "direction", "long", "long or short")
	f.StringVar(&addForm.Symbol, "symbol", "", "instrument symbol")
	f.StringVar(&addForm.Entry, "entry", "", "entry price")
	f.StringVar(&addForm.Stop, "stop", "", "stop price")
	f.StringVar(&addForm.Target, "target", "", "target price")
	f.StringVar(&addForm.Exit, "exit", "", "exit price")
	f.StringVar(&addForm.Quantity, "qty", "", "position size")
	f.StringVar(&addForm.Notes, "notes", "", "free-form notes")
	_ = addCmd.MarkFlagRequired("symbol")
}

func runAdd(cmd *cobra.Command, args []string) error {
	tr, warning, err := api.AddTrade(cmd.Context(), addForm)
	if err != nil {
		return err
	}
	printWarning(cmd, warning)

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded trade %d: %s %s  R:R %s  P/L %s\n",
		tr.ID, tr.Symbol, tr.Direction, cli.FormatRR(*tr), cli.FormatPL(tr.PL))
	return nil
}
