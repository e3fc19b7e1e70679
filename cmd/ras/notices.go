package main

import (
	"fmt"

	"github.com/rankmath/repair-action-scheduler/internal/application/services"
	"github.com/rankmath/repair-action-scheduler/internal/interfaces/console"
	"github.com/spf13/cobra"
)

var noticesCmd = &cobra.Command{
	Use:   "notices",
	Short: "Show the stored repair outcome without consuming it",
	RunE:  runNotices,
}

func init() {
	rootCmd.AddCommand(noticesCmd)
}

func runNotices(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notifier := console.NewNotifier(cmd.OutOrStdout())
	a, err := newApp(ctx, notifier)
	if err != nil {
		return err
	}
	defer a.Close()

	state, record, err := a.repair.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "State: %s\n", state)
	if record == nil || len(record.Entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No pending notice.")
		return nil
	}
	if record.RunID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Run:   %s (%s)\n", record.RunID, record.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return notifier.Notify(ctx, services.RenderNotice(record))
}
