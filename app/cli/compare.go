package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"SpiderSQLAgent/app/evaluation"
)

func newCompareCommand() *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "compare <expected-sql> <agent-sql>",
		Short: "Execute two queries and report whether their results match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			comparison := evaluation.CompareQueryResults(cmd.Context(), app.Store, args[0], args[1], database)

			encoded, err := json.MarshalIndent(comparison, "", "  ")
			if err != nil {
				return fmt.Errorf("encode comparison: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVarP(&database, "database", "d", "concert_singer", "Spider database to run both queries against")
	return cmd
}
