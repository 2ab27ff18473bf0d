package evaluation

import (
	"context"
	"fmt"

	"SpiderSQLAgent/app/storage"
)

// Comparison is the graded outcome of running a reference query and an agent
// query against the same database. Two error outcomes never count as a match.
type Comparison struct {
	Match           bool          `json:"match"`
	ExpectedResults []storage.Row `json:"expected_results"`
	AgentResults    []storage.Row `json:"agent_results"`
	ExpectedError   string        `json:"expected_error,omitempty"`
	AgentError      string        `json:"agent_error,omitempty"`
	Details         string        `json:"details"`
}

// CompareQueryResults executes both queries and decides result equivalence
// over the normalized row bags.
func CompareQueryResults(ctx context.Context, store storage.Interface, expectedSQL, agentSQL, dbName string) Comparison {
	comparison := Comparison{}

	expected := store.ExecuteQuery(ctx, dbName, expectedSQL)
	if expected.Failed() {
		comparison.ExpectedError = expected.Observation()
	} else {
		comparison.ExpectedResults = expected.Rows
	}

	agent := store.ExecuteQuery(ctx, dbName, agentSQL)
	if agent.Failed() {
		comparison.AgentError = agent.Observation()
	} else {
		comparison.AgentResults = agent.Rows
	}

	switch {
	case !expected.Failed() && !agent.Failed():
		expectedNormalized := Normalize(comparison.ExpectedResults)
		agentNormalized := Normalize(comparison.AgentResults)
		comparison.Match = Equal(expectedNormalized, agentNormalized)
		if comparison.Match {
			comparison.Details = "Results match perfectly"
		} else {
			comparison.Details = fmt.Sprintf("Results differ. Expected %d rows, got %d rows",
				len(expectedNormalized), len(agentNormalized))
		}
	case expected.Failed() && agent.Failed():
		comparison.Details = "Both queries failed"
	case expected.Failed():
		comparison.Details = fmt.Sprintf("Expected query failed: %s", comparison.ExpectedError)
	default:
		comparison.Details = fmt.Sprintf("Agent query failed: %s", comparison.AgentError)
	}

	return comparison
}
