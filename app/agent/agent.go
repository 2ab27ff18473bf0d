package agent

import (
	"context"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"SpiderSQLAgent/app/models"
	"SpiderSQLAgent/app/optimizer"
	"SpiderSQLAgent/app/storage"
	"SpiderSQLAgent/app/tools"
	"SpiderSQLAgent/app/utils"
)

type Status string

const (
	// StatusDone means the model produced a terminal answer.
	StatusDone Status = "done"
	// StatusHalted means the loop stopped early: no parseable action or an
	// unknown tool.
	StatusHalted Status = "halted"
	// StatusExhausted means the iteration budget ran out.
	StatusExhausted Status = "exhausted"
)

const (
	answerMarker      = "Answer:"
	observationMarker = "Observation:"

	fallbackAnswer    = "I'm not sure - couldn't complete the analysis within the allowed iterations."
	correctiveMessage = "SYSTEM: You wrote a fake observation. Only use real SQL tool results. Continue with another Action if needed."
)

// Config are the per-agent knobs of the reasoning loop.
type Config struct {
	MaxIterations int
	GuardEnforce  bool
	ModelTimeout  time.Duration
}

// RunResult is everything one invocation produced. It never outlives the
// caller: a fresh result is built per run and no state is shared between runs.
type RunResult struct {
	RunID        uuid.UUID
	Question     string
	Database     string
	Answer       string
	Status       Status
	History      []string
	Conversation string

	// Enhanced mode only: the post-processed final SQL and its re-execution
	// observation, when the rewrite changed the query.
	ImprovedSQL    string
	ImprovedResult string
}

// ReactAgent drives the model through the bounded reason/act loop. One model
// call and at most one tool call happen per iteration; history only grows.
type ReactAgent struct {
	model  models.Interface
	store  storage.Interface
	parser Parser
	rules  []optimizer.Rule
	cfg    Config
	trace  io.Writer
}

func New(model models.Interface, store storage.Interface, cfg Config) *ReactAgent {
	return &ReactAgent{
		model:  model,
		store:  store,
		parser: MarkerParser{},
		rules:  optimizer.DefaultRules,
		cfg:    cfg,
		trace:  io.Discard,
	}
}

// SetTrace directs the thinking stream (model replies and tool results) to w.
func (a *ReactAgent) SetTrace(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	a.trace = w
}

func (a *ReactAgent) tracef(format string, args ...any) {
	fmt.Fprintf(a.trace, format+"\n", args...)
}

// Run answers a question against the named database. Model-interface errors
// are fatal to the run and propagate; tool failures become observations and
// the loop continues.
func (a *ReactAgent) Run(ctx context.Context, question, dbName string) (*RunResult, error) {
	result := &RunResult{
		RunID:    uuid.New(),
		Question: question,
		Database: dbName,
	}

	toolkit := tools.Toolkit(a.store, dbName)
	basePrompt := BuildPrompt(question)

	var history []string
	var conversation []string
	finalize := func(answer string, status Status) *RunResult {
		result.Answer = answer
		result.Status = status
		result.History = history
		result.Conversation = strings.Join(conversation, "\n\n")
		return result
	}

	for iteration := 0; iteration < a.cfg.MaxIterations; iteration++ {
		fullPrompt := basePrompt + "\n" + strings.Join(history, "\n")
		reply, err := a.completion(ctx, fullPrompt)
		if err != nil {
			return nil, fmt.Errorf("model call failed on iteration %d: %w", iteration+1, err)
		}

		a.tracef("🧠 Iteration %d:\n%s", iteration+1, reply)
		conversation = append(conversation, fmt.Sprintf("Iteration %d:\n%s", iteration+1, reply))

		if strings.Contains(reply, answerMarker) {
			parts := strings.Split(reply, answerMarker)
			answer := strings.TrimSpace(parts[len(parts)-1])
			a.tracef("✅ Final Answer: %s", answer)
			return finalize(answer, StatusDone), nil
		}

		// The model wrote an observation no tool produced. Push back and let
		// it retry; this still consumes an iteration.
		if strings.Contains(reply, observationMarker) {
			log.Printf("⚠️ Fabricated observation detected, reminding model to use real tool results")
			history = append(history, strings.TrimSpace(reply), correctiveMessage)
			continue
		}

		action, ok := a.parser.Parse(reply)
		if !ok {
			log.Printf("⚠️ No valid action found, halting run %s", result.RunID)
			return finalize(fallbackAnswer, StatusHalted), nil
		}

		tool, exists := toolkit[action.Tool]
		if !exists {
			log.Printf("⚠️ Unknown tool %q, halting run %s", action.Tool, result.RunID)
			return finalize(fallbackAnswer, StatusHalted), nil
		}

		input := utils.StripSQLFence(action.Input)
		if valid, reason := optimizer.ValidateSQL(input); !valid {
			log.Printf("⚠️ SQL validation warning: %s", reason)
			if a.cfg.GuardEnforce {
				blocked := "SQL validation failed: " + reason
				history = append(history, strings.TrimSpace(reply), observationMarker+" "+blocked)
				conversation = append(conversation, "Tool Result: "+blocked)
				continue
			}
		}

		a.tracef("🔧 Running Tool [%s] with input: %s", tool.Name, input)
		observation := tool.HandlerFunc(ctx, input)
		a.tracef("👀 Observation: %s", observation)

		history = append(history, strings.TrimSpace(reply), observationMarker+" "+observation)
		conversation = append(conversation, "Tool Result: "+observation)
	}

	log.Printf("🚧 Maximum iterations (%d) reached for question: %s", a.cfg.MaxIterations, utils.Truncate(question, 80))
	return finalize(fallbackAnswer, StatusExhausted), nil
}

var actionInputPattern = regexp.MustCompile(`(?i)Action Input:[ \t]*(.*)`)

func lastActionInput(conversation string) string {
	matches := actionInputPattern.FindAllStringSubmatch(conversation, -1)
	if len(matches) == 0 {
		return ""
	}
	return strings.TrimSpace(matches[len(matches)-1][1])
}

// RunEnhanced runs the loop, then passes the final read query through the
// post-processing rules and re-executes it when the rewrite changed anything.
// Re-execution failures are attached to the result, never raised.
func (a *ReactAgent) RunEnhanced(ctx context.Context, question, dbName string) (*RunResult, error) {
	result, err := a.Run(ctx, question, dbName)
	if err != nil {
		return nil, err
	}

	lastSQL := lastActionInput(result.Conversation)
	if lastSQL == "" || !optimizer.IsSelect(lastSQL) {
		return result, nil
	}

	improved := optimizer.ApplyRules(a.rules, lastSQL, question, dbName)
	if improved == lastSQL {
		return result, nil
	}

	a.tracef("🔧 Post-processed SQL: %s", improved)
	result.ImprovedSQL = improved
	result.ImprovedResult = a.store.ExecuteQuery(ctx, dbName, improved).Observation()
	return result, nil
}

func (a *ReactAgent) completion(ctx context.Context, prompt string) (string, error) {
	if a.cfg.ModelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.ModelTimeout)
		defer cancel()
	}
	return a.model.Completion(ctx, []models.Message{{Role: "user", Content: prompt}})
}
