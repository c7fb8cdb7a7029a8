package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trade-journal-go/internal/cli"
	"trade-journal-go/internal/journal"
)

var (
	filterResult string
	filterStart  string
	filterEnd    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the trade table with summary statistics",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics and the equity curve",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)

	for _, c := range []*cobra.Command{listCmd, statsCmd} {
		c.Flags().StringVar(&filterResult, "result", "all", "all, win or loss")
		c.Flags().StringVar(&filterStart, "start", "", "first date to include (YYYY-MM-DD)")
		c.Flags().StringVar(&filterEnd, "end", "", "last date to include (YYYY-MM-DD)")
	}
}

func criteria() (journal.Criteria, error) {
	result, err := journal.ParseResult(filterResult)
	if err != nil {
		return journal.Criteria{}, err
	}
	return journal.Criteria{Result: result, StartDate: filterStart, EndDate: filterEnd}, nil
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := criteria()
	if err != nil {
		return err
	}
	view, err := api.ListTrades(cmd.Context(), c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, cli.RenderTrades(view))
	fmt.Fprint(out, cli.RenderSummary(&view.Summary))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	c, err := criteria()
	if err != nil {
		return err
	}
	summary, err := api.Stats(cmd.Context(), c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, cli.RenderSummary(summary))
	fmt.Fprint(out, cli.RenderEquityCurve(summary.EquityCurve))
	return nil
}
