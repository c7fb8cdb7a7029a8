package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trade-journal-go/internal/journal"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download every trade as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", journal.ExportFilename, "output file, - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := api.ExportCSV(cmd.Context())
	if errors.Is(err, journal.ErrNothingToExport) {
		fmt.Fprintln(cmd.ErrOrStderr(), "No trades to export")
		return nil
	}
	if err != nil {
		return err
	}

	if exportOutput == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOutput)
	return nil
}
