// Package cli provides the inventorysync command tree.
package cli

import (
	"github.com/spf13/cobra"

	"inventorysync/internal/app"
)

// Loader opens the application. Commands call it lazily so that --help
// never touches the database.
type Loader func() (*app.App, error)

// NewRootCommand creates the inventorysync root command.
func NewRootCommand(load Loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "inventorysync",
		Short:         "Reconcile the catalog against the inventory feed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		NewSyncCommand(load),
		NewIndexerStatusCommand(load),
		NewIndexerSetModeCommand(load),
		NewIndexerReindexCommand(load),
		NewConfigSetCommand(load),
	)
	return root
}

// withApp opens the application for the duration of fn.
func withApp(load Loader, fn func(a *app.App) error) error {
	a, err := load()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
