package evaluation

import (
	"regexp"
	"strings"
)

var sqlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Action Input:\s*(SELECT[^;` + "\n" + `]*?)(?:\s*` + "\n" + `|$)`),
	regexp.MustCompile("(?is)```sql\\s*(SELECT.*?)\\s*```"),
	regexp.MustCompile("(?is)```\\s*(SELECT.*?)\\s*```"),
	regexp.MustCompile(`(?i)(SELECT[^;` + "\n" + `]*)`),
}

// ExtractSQL pulls the agent's final SELECT out of a run transcript. Several
// increasingly loose patterns are tried and the most recent hit wins; an
// empty string means the transcript carried no usable query.
func ExtractSQL(conversation string) string {
	if conversation == "" {
		return ""
	}

	var found []string
	for _, pattern := range sqlPatterns {
		for _, match := range pattern.FindAllStringSubmatch(conversation, -1) {
			cleaned := strings.TrimSpace(match[1])
			if idx := strings.Index(cleaned, "Observation:"); idx >= 0 {
				cleaned = strings.TrimSpace(cleaned[:idx])
			}
			if strings.Contains(cleaned, "\n") {
				cleaned = strings.TrimSpace(strings.SplitN(cleaned, "\n", 2)[0])
			}
			if cleaned != "" && strings.HasPrefix(strings.ToUpper(cleaned), "SELECT") {
				found = append(found, cleaned)
			}
		}
	}

	if len(found) == 0 {
		return ""
	}
	return found[len(found)-1]
}
