package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"SpiderSQLAgent/app/agent"
)

func newAskCommand() *cobra.Command {
	var (
		database string
		enhanced bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a natural-language question against one Spider database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newModelApp()
			if err != nil {
				return err
			}
			if verbose {
				app.Agent.SetTrace(cmd.ErrOrStderr())
			}

			question := args[0]
			log.Printf("🤔 Question: %s (database: %s)\n", question, database)

			var result *agent.RunResult
			if enhanced {
				result, err = app.Agent.RunEnhanced(cmd.Context(), question, database)
			} else {
				result, err = app.Agent.Run(cmd.Context(), question, database)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nAnswer: %s\n", result.Answer)
			if result.ImprovedSQL != "" {
				fmt.Fprintf(out, "\nImproved SQL: %s\n", result.ImprovedSQL)
				fmt.Fprintf(out, "Improved result:\n%s\n", result.ImprovedResult)
			}
			if result.Status != agent.StatusDone {
				fmt.Fprintf(out, "\n(run ended %s after %d exchanges)\n", result.Status, len(result.History)/2)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&database, "database", "d", "concert_singer", "Spider database to query")
	cmd.Flags().BoolVar(&enhanced, "enhanced", false, "post-process the final SQL and re-execute it")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "stream the reasoning trace to stderr")
	return cmd
}
