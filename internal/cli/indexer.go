package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"inventorysync/internal/app"
	"inventorysync/internal/models"
)

func NewIndexerStatusCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "indexer:status",
		Short: "Show mode and status of every index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(a *app.App) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tMODE\tSTATUS\tUPDATED")
				for _, id := range a.Registry.IDs() {
					state, err := a.Registry.State(cmd.Context(), id)
					if err != nil {
						return err
					}
					updated := "-"
					if !state.UpdatedAt.IsZero() {
						updated = state.UpdatedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, state.Mode, state.Status, updated)
				}
				return w.Flush()
			})
		},
	}
}

func NewIndexerSetModeCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "indexer:set-mode <realtime|schedule> [ids...]",
		Short: "Switch indexes between realtime and scheduled rebuilds",
		Example: `  inventorysync indexer:set-mode schedule catalogsearch_fulltext
  inventorysync indexer:set-mode realtime`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := models.IndexerMode(args[0])
			if mode != models.IndexerModeRealtime && mode != models.IndexerModeSchedule {
				return fmt.Errorf("invalid mode %q: want %s or %s", args[0], models.IndexerModeRealtime, models.IndexerModeSchedule)
			}

			return withApp(load, func(a *app.App) error {
				ids := args[1:]
				if len(ids) == 0 {
					ids = a.Registry.IDs()
				}
				for _, id := range ids {
					if err := a.Registry.SetMode(cmd.Context(), id, mode); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Index %s set to %s\n", id, mode)
				}
				return nil
			})
		},
	}
}

func NewIndexerReindexCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "indexer:reindex [ids...]",
		Short: "Rebuild indexes regardless of their mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(load, func(a *app.App) error {
				ids := args
				if len(ids) == 0 {
					ids = a.Registry.IDs()
				}

				failed := 0
				for _, id := range ids {
					if err := a.Registry.ReindexAll(cmd.Context(), id); err != nil {
						failed++
						fmt.Fprintf(cmd.OutOrStdout(), "Error reindexing %s: %v\n", id, err)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Reindexed: %s\n", id)
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d indexes failed", failed, len(ids))
				}
				return nil
			})
		},
	}
}
