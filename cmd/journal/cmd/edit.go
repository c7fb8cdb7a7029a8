package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

var notesCmd = &cobra.Command{
	Use:   "notes <trade-id> <text>",
	Short: "Replace the notes of a trade",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runNotes,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every trade",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid trade id %q", s)
	}
	return id, nil
}

func runNotes(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	warning, err := api.UpdateNotes(cmd.Context(), id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	printWarning(cmd, warning)
	fmt.Fprintf(cmd.OutOrStdout(), "Updated notes of trade %d\n", id)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	warning, err := api.DeleteTrade(cmd.Context(), id)
	if err != nil {
		return err
	}
	printWarning(cmd, warning)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted trade %d\n", id)
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		fmt.Fprint(cmd.OutOrStdout(), "Delete ALL trades? This cannot be undone. [y/N] ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	warning, err := api.Clear(cmd.Context())
	if err != nil {
		return err
	}
	printWarning(cmd, warning)
	fmt.Fprintln(cmd.OutOrStdout(), "All trades deleted")
	return nil
}
