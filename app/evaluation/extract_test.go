package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSQLFromActionInput(t *testing.T) {
	conversation := "Iteration 1:\nThought: count\nAction: SQLQuery\nAction Input: SELECT COUNT(*) FROM singer\n\nTool Result: 5"
	assert.Equal(t, "SELECT COUNT(*) FROM singer", ExtractSQL(conversation))
}

func TestExtractSQLLastQueryWins(t *testing.T) {
	conversation := "Action Input: SELECT name FROM sqlite_master\n" +
		"Tool Result: [...]\n" +
		"Action Input: SELECT Name FROM singer ORDER BY Age DESC LIMIT 1\n" +
		"Tool Result: [...]"
	assert.Equal(t, "SELECT Name FROM singer ORDER BY Age DESC LIMIT 1", ExtractSQL(conversation))
}

func TestExtractSQLFromCodeFence(t *testing.T) {
	conversation := "The final query was:\n```sql\nSELECT Name FROM singer\n```"
	assert.Equal(t, "SELECT Name FROM singer", ExtractSQL(conversation))
}

func TestExtractSQLIgnoresNonSelect(t *testing.T) {
	assert.Equal(t, "", ExtractSQL("Action Input: PRAGMA table_info(singer)"))
	assert.Equal(t, "", ExtractSQL("nothing SQL-shaped here"))
	assert.Equal(t, "", ExtractSQL(""))
}

func TestExtractSQLCutsTrailingObservation(t *testing.T) {
	conversation := "SELECT Name FROM singer Observation: fake"
	got := ExtractSQL(conversation)
	assert.Equal(t, "SELECT Name FROM singer", got)
}
