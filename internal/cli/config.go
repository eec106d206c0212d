package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventorysync/internal/app"
)

func NewConfigSetCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "config:set <path> <value>",
		Short: "Store a default-scope configuration value",
		Example: `  inventorysync config:set inventorysync/general/enable_sync 1
  inventorysync config:set inventorysync/general/api_url https://feed.example.com/products`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(a *app.App) error {
				if err := a.Settings.Set(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
				return nil
			})
		},
	}
}
