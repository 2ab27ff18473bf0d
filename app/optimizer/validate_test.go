package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSQL(t *testing.T) {
	cases := []struct {
		name   string
		sql    string
		valid  bool
		reason string
	}{
		{
			name:  "simple_select",
			sql:   "SELECT * FROM singer",
			valid: true,
		},
		{
			name:  "max_subquery_is_valid",
			sql:   "SELECT * FROM t WHERE a=(SELECT MAX(a) FROM t)",
			valid: true,
		},
		{
			name:  "pragma",
			sql:   "PRAGMA table_info(singer)",
			valid: true,
		},
		{
			name:  "lowercase_keyword",
			sql:   "select name from singer",
			valid: true,
		},
		{
			name:   "no_sql_keyword",
			sql:    "EXPLAIN QUERY PLAN SELECT 1",
			valid:  false,
			reason: "SQL must start with a valid SQL keyword",
		},
		{
			name:   "unbalanced_parens",
			sql:    "SELECT COUNT( FROM singer",
			valid:  false,
			reason: "Unbalanced parentheses in SQL",
		},
		{
			name:   "chained_drop",
			sql:    "SELECT * FROM t; DROP TABLE t",
			valid:  false,
			reason: "Potentially dangerous SQL pattern detected: ;DROP",
		},
		{
			name:   "line_comment",
			sql:    "SELECT * FROM t -- sneak",
			valid:  false,
			reason: "Potentially dangerous SQL pattern detected: --",
		},
		{
			name:   "block_comment",
			sql:    "SELECT /* hidden */ * FROM t",
			valid:  false,
			reason: "Potentially dangerous SQL pattern detected: /*",
		},
		{
			name:   "exec_call",
			sql:    "SELECT a FROM t WHERE EXEC(x) = 1",
			valid:  false,
			reason: "Potentially dangerous SQL pattern detected: EXEC(",
		},
	}
	for _, cse := range cases {
		t.Run(cse.name, func(t *testing.T) {
			valid, reason := ValidateSQL(cse.sql)
			assert.Equal(t, cse.valid, valid)
			if cse.reason != "" {
				assert.Equal(t, cse.reason, reason)
			}
		})
	}
}

func TestValidateSQLFirstFailureWins(t *testing.T) {
	// Unbalanced parens are checked before the block-list.
	valid, reason := ValidateSQL("SELECT COUNT( FROM t -- x")
	assert.False(t, valid)
	assert.Equal(t, "Unbalanced parentheses in SQL", reason)
}
