package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"SpiderSQLAgent/app/agent"
	"SpiderSQLAgent/app/optimizer"
	"SpiderSQLAgent/app/storage"
	"SpiderSQLAgent/app/utils"
)

// Example is one Spider benchmark item.
type Example struct {
	DBID     string `json:"db_id"`
	Question string `json:"question"`
	Query    string `json:"query"`
}

type Detail struct {
	DBID             string      `json:"db_id"`
	Question         string      `json:"question"`
	ExpectedSQL      string      `json:"expected_sql"`
	AgentAnswer      string      `json:"agent_answer"`
	AgentSQL         string      `json:"agent_sql"`
	Status           string      `json:"status"`
	ResultStatus     string      `json:"result_status,omitempty"`
	ResultComparison *Comparison `json:"result_comparison,omitempty"`

	ImprovedSQL        string      `json:"improved_sql,omitempty"`
	ImprovedStatus     string      `json:"improved_status,omitempty"`
	ImprovedComparison *Comparison `json:"improved_comparison,omitempty"`
}

type Report struct {
	Total                  int      `json:"total"`
	Successful             int      `json:"successful"`
	Failed                 int      `json:"failed"`
	CorrectResults         int      `json:"correct_results"`
	ImprovedCorrectResults int      `json:"improved_correct_results,omitempty"`
	Details                []Detail `json:"details"`
}

const (
	statusSuccess = "success"
	statusFailed  = "failed"

	resultCorrect   = "correct"
	resultIncorrect = "incorrect"
	resultNoSQL     = "no_sql"
)

// LoadExamples reads a Spider JSON file, optionally truncated to limit items.
func LoadExamples(path string, limit int) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read benchmark file: %w", err)
	}
	var examples []Example
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parse benchmark file: %w", err)
	}
	if limit > 0 && limit < len(examples) {
		examples = examples[:limit]
	}
	return examples, nil
}

// FilterByDatabase keeps only the examples targeting one database.
func FilterByDatabase(examples []Example, dbID string) []Example {
	var filtered []Example
	for _, example := range examples {
		if example.DBID == dbID {
			filtered = append(filtered, example)
		}
	}
	return filtered
}

// Runner is the slice of the agent the evaluator drives.
type Runner interface {
	Run(ctx context.Context, question, dbName string) (*agent.RunResult, error)
	RunEnhanced(ctx context.Context, question, dbName string) (*agent.RunResult, error)
}

// Evaluator feeds benchmark items through the agent and grades the extracted
// SQL against the reference query by result equivalence.
type Evaluator struct {
	agent    Runner
	store    storage.Interface
	enhanced bool
}

func NewEvaluator(a Runner, store storage.Interface, enhanced bool) *Evaluator {
	return &Evaluator{agent: a, store: store, enhanced: enhanced}
}

// Evaluate runs every example and aggregates the report. Per-item failures
// are recorded and the batch continues; only context cancellation stops it.
func (e *Evaluator) Evaluate(ctx context.Context, examples []Example) Report {
	report := Report{Details: []Detail{}}

	for i, example := range examples {
		if ctx.Err() != nil {
			break
		}
		log.Printf("🧪 Test %d/%d: %s | %s", i+1, len(examples), example.DBID, utils.Truncate(example.Question, 60))

		report.Total++
		detail := Detail{
			DBID:        example.DBID,
			Question:    example.Question,
			ExpectedSQL: example.Query,
		}

		var result *agent.RunResult
		var err error
		if e.enhanced {
			result, err = e.agent.RunEnhanced(ctx, example.Question, example.DBID)
		} else {
			result, err = e.agent.Run(ctx, example.Question, example.DBID)
		}
		if err != nil {
			log.Printf("❌ Example failed: %v", err)
			report.Failed++
			detail.AgentAnswer = fmt.Sprintf("Error: %v", err)
			detail.Status = statusFailed
			report.Details = append(report.Details, detail)
			continue
		}

		report.Successful++
		detail.Status = statusSuccess
		detail.AgentAnswer = result.Answer
		detail.AgentSQL = ExtractSQL(result.Conversation)

		if detail.AgentSQL != "" && optimizer.IsSelect(detail.AgentSQL) {
			comparison := CompareQueryResults(ctx, e.store, example.Query, detail.AgentSQL, example.DBID)
			detail.ResultComparison = &comparison
			if comparison.Match {
				report.CorrectResults++
				detail.ResultStatus = resultCorrect
			} else {
				detail.ResultStatus = resultIncorrect
			}
		} else {
			detail.ResultStatus = resultNoSQL
		}

		if e.enhanced && result.ImprovedSQL != "" {
			detail.ImprovedSQL = result.ImprovedSQL
			comparison := CompareQueryResults(ctx, e.store, example.Query, result.ImprovedSQL, example.DBID)
			detail.ImprovedComparison = &comparison
			if comparison.Match {
				report.ImprovedCorrectResults++
				detail.ImprovedStatus = resultCorrect
			} else {
				detail.ImprovedStatus = resultIncorrect
			}
		}

		report.Details = append(report.Details, detail)
	}

	return report
}

// PrintSummary writes the human-readable evaluation recap.
func PrintSummary(w io.Writer, report Report) {
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "EVALUATION SUMMARY")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Total tests: %d\n", report.Total)
	fmt.Fprintf(w, "Successful: %d\n", report.Successful)
	fmt.Fprintf(w, "Failed: %d\n", report.Failed)
	if report.Total > 0 {
		fmt.Fprintf(w, "Success rate: %.1f%%\n", float64(report.Successful)/float64(report.Total)*100)
	}
	fmt.Fprintf(w, "Correct results: %d\n", report.CorrectResults)
	if report.Successful > 0 {
		fmt.Fprintf(w, "Result accuracy: %.1f%%\n", float64(report.CorrectResults)/float64(report.Successful)*100)
	}

	improvedTotal := 0
	for _, detail := range report.Details {
		if detail.ImprovedSQL != "" {
			improvedTotal++
		}
	}
	if improvedTotal > 0 {
		fmt.Fprintf(w, "Improved correct results: %d\n", report.ImprovedCorrectResults)
		fmt.Fprintf(w, "Improved accuracy: %.1f%%\n", float64(report.ImprovedCorrectResults)/float64(improvedTotal)*100)
	}

	printCases(w, report, statusFailed, "Failed cases")
	printIncorrect(w, report)
}

func printCases(w io.Writer, report Report, status, header string) {
	var cases []Detail
	for _, detail := range report.Details {
		if detail.Status == status {
			cases = append(cases, detail)
		}
	}
	if len(cases) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", header, len(cases))
	for _, detail := range cases {
		fmt.Fprintf(w, "  - %s: %s\n", detail.DBID, utils.Truncate(detail.Question, 50))
	}
}

func printIncorrect(w io.Writer, report Report) {
	var cases []Detail
	for _, detail := range report.Details {
		if detail.ResultStatus == resultIncorrect {
			cases = append(cases, detail)
		}
	}
	if len(cases) == 0 {
		return
	}
	fmt.Fprintf(w, "\nIncorrect results (%d):\n", len(cases))
	for _, detail := range cases {
		fmt.Fprintf(w, "  - %s: %s\n", detail.DBID, utils.Truncate(detail.Question, 50))
		if detail.ResultComparison != nil {
			fmt.Fprintf(w, "    Reason: %s\n", detail.ResultComparison.Details)
		}
	}
}

// SaveReport writes the JSON report to disk with the stable wire shape.
func SaveReport(report Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Printf("💾 Results saved to %s", path)
	return nil
}
