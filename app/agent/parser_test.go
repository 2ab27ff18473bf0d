package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserExtractsPair(t *testing.T) {
	reply := "Thought: I should count the singers\nAction: SQLQuery\nAction Input: SELECT COUNT(*) FROM singer"
	action, ok := MarkerParser{}.Parse(reply)
	require.True(t, ok)
	assert.Equal(t, "SQLQuery", action.Tool)
	assert.Equal(t, "SELECT COUNT(*) FROM singer", action.Input)
}

func TestParserTakesLastPair(t *testing.T) {
	reply := "Action: SQLQuery\nAction Input: SELECT 1\n\n" +
		"Thought: better to check the schema first\n" +
		"Action: SQLQuery\nAction Input: PRAGMA table_info(singer)\n\n"
	action, ok := MarkerParser{}.Parse(reply)
	require.True(t, ok)
	assert.Equal(t, "PRAGMA table_info(singer)", action.Input)
}

func TestParserInputTerminators(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "blank_line",
			reply: "Action: SQLQuery\nAction Input: SELECT 1\n\ntrailing text",
			want:  "SELECT 1",
		},
		{
			name:  "observation_marker",
			reply: "Action: SQLQuery\nAction Input: SELECT 1\nObservation: fake",
			want:  "SELECT 1",
		},
		{
			name:  "answer_marker",
			reply: "Action: SQLQuery\nAction Input: SELECT 1\nAnswer: 42",
			want:  "SELECT 1",
		},
		{
			name:  "end_of_text",
			reply: "Action: SQLQuery\nAction Input: SELECT 1",
			want:  "SELECT 1",
		},
		{
			name: "multiline_input",
			reply: "Action: SQLQuery\nAction Input: SELECT Name\nFROM singer\nWHERE Age > 30\n\ndone",
			want: "SELECT Name\nFROM singer\nWHERE Age > 30",
		},
	}
	for _, cse := range cases {
		t.Run(cse.name, func(t *testing.T) {
			action, ok := MarkerParser{}.Parse(cse.reply)
			require.True(t, ok)
			assert.Equal(t, cse.want, action.Input)
		})
	}
}

func TestParserRejectsMalformedText(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"no_markers", "Thought: just thinking out loud"},
		{"action_without_input", "Action: SQLQuery\nno input line here"},
		{"input_without_action", "Action Input: SELECT 1"},
		{"empty", ""},
		{"marker_mid_word", "Reaction: SQLQueryAction Input:"},
	}
	for _, cse := range cases {
		t.Run(cse.name, func(t *testing.T) {
			_, ok := MarkerParser{}.Parse(cse.reply)
			assert.False(t, ok)
		})
	}
}
