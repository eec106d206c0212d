package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventorysync/internal/app"
	"inventorysync/internal/reconcile"
)

// NewSyncCommand creates the sync:execute command. It reports the outcome
// on stdout and always exits zero once the run has started.
func NewSyncCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "sync:execute",
		Short: "Sync products and stock from the inventory feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(a *app.App) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Updating inventory...")

				report := a.Sync.Run(cmd.Context())
				switch report.State {
				case reconcile.StateDone:
					fmt.Fprintln(out, "Inventory sync completed successfully.")
					fmt.Fprintf(out, "Products: %d created, %d updated, %d failed\n", report.Created, report.Updated, report.Failed)
					if report.CommitErr != nil {
						fmt.Fprintf(out, "Stock was not saved: %v\n", report.CommitErr)
					}
					for id, err := range report.IndexErrors {
						fmt.Fprintf(out, "Index %s failed: %v\n", id, err)
					}
				case reconcile.StateDisabled:
					fmt.Fprintf(out, "Inventory sync skipped: %v\n", report.Err)
				default:
					fmt.Fprintf(out, "Inventory sync failed: %v\n", report.Err)
				}
				return nil
			})
		},
	}
}
