package optimizer

import (
	"fmt"
	"regexp"
	"strings"
)

var validStarts = []string{"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER", "PRAGMA"}

// Chaining and comment tokens that have no business in a single agent query.
// Matching tolerates whitespace inside the token so "; DROP" is caught too.
var dangerousPatterns = []struct {
	token string
	re    *regexp.Regexp
}{
	{";DROP", regexp.MustCompile(`;\s*DROP`)},
	{";DELETE", regexp.MustCompile(`;\s*DELETE`)},
	{";UPDATE", regexp.MustCompile(`;\s*UPDATE`)},
	{";INSERT", regexp.MustCompile(`;\s*INSERT`)},
	{"EXEC(", regexp.MustCompile(`EXEC\s*\(`)},
	{"EXECUTE(", regexp.MustCompile(`EXECUTE\s*\(`)},
	{"--", regexp.MustCompile(`--`)},
	{"/*", regexp.MustCompile(`/\*`)},
}

// ValidateSQL is an advisory syntactic and safety check over a candidate SQL
// string. Rules run in order and the first failure wins; callers decide
// whether a failure blocks execution.
func ValidateSQL(sql string) (bool, string) {
	upper := strings.ToUpper(strings.TrimSpace(sql))

	valid := false
	for _, keyword := range validStarts {
		if strings.HasPrefix(upper, keyword) {
			valid = true
			break
		}
	}
	if !valid {
		return false, "SQL must start with a valid SQL keyword"
	}

	if strings.Count(upper, "(") != strings.Count(upper, ")") {
		return false, "Unbalanced parentheses in SQL"
	}

	for _, pattern := range dangerousPatterns {
		if pattern.re.MatchString(upper) {
			return false, fmt.Sprintf("Potentially dangerous SQL pattern detected: %s", pattern.token)
		}
	}

	return true, "SQL syntax appears valid"
}
