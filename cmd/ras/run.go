package main

import (
	"fmt"
	"log"

	"github.com/rankmath/repair-action-scheduler/internal/domain"
	"github.com/rankmath/repair-action-scheduler/internal/interfaces/console"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Invoke the repair tool once (the default command)",
	Long: `Invoke the repair tool once.

The first invocation repairs the tables and stores what it did.
The next invocation prints that audit trail and disables the tool.
Further invocations do nothing.`,
	RunE: runRepair,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, console.NewNotifier(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.repair.Invoke(ctx)
	if err != nil {
		return err
	}

	switch result.State {
	case domain.RepairStatePendingNotice:
		fmt.Fprintln(cmd.OutOrStdout(), "Repair recorded. Run ras again to see what was done.")
	case domain.RepairStateDone:
		if result.Notice == nil {
			log.Printf("🔒 Repair tool is disabled, nothing to do")
		}
	}
	return nil
}
