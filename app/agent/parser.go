package agent

import (
	"regexp"
	"strings"
)

// Action is one structured (tool, input) request extracted from a model reply.
type Action struct {
	Tool  string
	Input string
}

// Parser extracts an Action from free-form model text. The text is untrusted;
// implementations must treat it adversarially and report absence rather than
// guessing.
type Parser interface {
	Parse(reply string) (*Action, bool)
}

// MarkerParser matches the literal "Action:" / "Action Input:" marker pair.
// The input runs until the first blank line, "Observation:" line, "Answer:"
// line, or end of text. Only the most recent pair in the reply counts.
type MarkerParser struct{}

var _ Parser = MarkerParser{}

var actionPattern = regexp.MustCompile(`(?s)Action:[ \t]*(.+?)\s*\nAction Input:[ \t]*(.+?)(?:\n\n|\nObservation:|\nAnswer:|$)`)

func (MarkerParser) Parse(reply string) (*Action, bool) {
	matches := actionPattern.FindAllStringSubmatch(reply, -1)
	if len(matches) == 0 {
		return nil, false
	}
	last := matches[len(matches)-1]
	action := &Action{
		Tool:  strings.TrimSpace(last[1]),
		Input: strings.TrimSpace(last[2]),
	}
	if action.Tool == "" || action.Input == "" {
		return nil, false
	}
	return action, true
}
