package main

import (
	"fmt"

	"github.com/rankmath/repair-action-scheduler/internal/interfaces/console"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Forget the stored repair outcome and re-enable the tool",
	Long: `Delete the stored repair record and the disabled flag.

The next invocation runs a fresh repair. Archived tables from earlier
resets are left in place.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, console.NewNotifier(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.repair.Clean(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Repair record cleared.")
	return nil
}
