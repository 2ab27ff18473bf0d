package cli

import (
	"github.com/spf13/cobra"

	"SpiderSQLAgent/app/explorer"
)

func newExploreCommand() *cobra.Command {
	var (
		list      bool
		quick     bool
		maxTables int
	)

	cmd := &cobra.Command{
		Use:   "explore [database]",
		Short: "Print schema trees and sample rows for Spider databases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			exp := explorer.New(app.Store, cmd.OutOrStdout())

			if list || len(args) == 0 {
				return exp.ListDatabases()
			}
			if quick {
				return exp.Quick(cmd.Context(), args[0], maxTables)
			}
			return exp.Explore(cmd.Context(), args[0])
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list available databases instead of exploring one")
	cmd.Flags().BoolVar(&quick, "quick", false, "show only the first few tables with short samples")
	cmd.Flags().IntVar(&maxTables, "max-tables", 3, "table cap for --quick")
	return cmd
}
