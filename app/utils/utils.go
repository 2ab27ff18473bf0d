package utils

import "strings"

// StripSQLFence removes markdown code-fence wrapping from a SQL snippet.
func StripSQLFence(sql string) string {
	sql = strings.TrimSpace(sql)
	if strings.HasPrefix(sql, "```sql") && strings.HasSuffix(sql, "```") && len(sql) > 9 {
		return strings.TrimSpace(sql[6 : len(sql)-3])
	}
	if strings.HasPrefix(sql, "```") && strings.HasSuffix(sql, "```") && len(sql) > 6 {
		return strings.TrimSpace(sql[3 : len(sql)-3])
	}
	return sql
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
