package cli

import (
	"log"

	"github.com/spf13/cobra"

	"SpiderSQLAgent/app/evaluation"
)

func newTestCommand() *cobra.Command {
	var (
		limit    int
		database string
		enhanced bool
		file     string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the agent against Spider benchmark examples",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newModelApp()
			if err != nil {
				return err
			}

			benchmarkFile := file
			if benchmarkFile == "" {
				benchmarkFile = app.Config.BenchmarkFile
			}

			examples, err := evaluation.LoadExamples(benchmarkFile, limit)
			if err != nil {
				return err
			}
			if database != "" {
				examples = evaluation.FilterByDatabase(examples, database)
			}
			log.Printf("🧪 Evaluating %d examples from %s\n", len(examples), benchmarkFile)

			evaluator := evaluation.NewEvaluator(app.Agent, app.Store, enhanced)
			report := evaluator.Evaluate(cmd.Context(), examples)

			evaluation.PrintSummary(cmd.OutOrStdout(), report)
			if output != "" {
				if err := evaluation.SaveReport(report, output); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of examples to run (0 = all)")
	cmd.Flags().StringVarP(&database, "database", "d", "", "only run examples for this database")
	cmd.Flags().BoolVar(&enhanced, "enhanced", false, "also evaluate post-processed SQL")
	cmd.Flags().StringVarP(&file, "file", "f", "", "benchmark JSON file (defaults to config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON report to this path")
	return cmd
}
