package evaluation

import (
	"slices"
	"sort"
	"strings"

	"SpiderSQLAgent/app/storage"
)

// nullSentinel stands in for SQL NULL inside a normalized row. It contains a
// NUL byte so it can never collide with a real column value, and in
// particular is never the string "None".
const nullSentinel = "\x00null"

// NormalizedRow is the ordered tuple of one row's stringified values, sorted
// by column name.
type NormalizedRow []string

// Normalize canonicalizes a result set for comparison: each row becomes its
// values ordered by column name, then the rows are sorted lexicographically.
// Duplicates are kept, so equality over the output is bag equality.
func Normalize(rows []storage.Row) []NormalizedRow {
	normalized := make([]NormalizedRow, 0, len(rows))
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		tuple := make(NormalizedRow, 0, len(keys))
		for _, key := range keys {
			if row[key] == nil {
				tuple = append(tuple, nullSentinel)
			} else {
				tuple = append(tuple, *row[key])
			}
		}
		normalized = append(normalized, tuple)
	}

	sort.Slice(normalized, func(i, j int) bool {
		return compareTuples(normalized[i], normalized[j]) < 0
	})
	return normalized
}

func compareTuples(a, b NormalizedRow) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// Equal reports element-wise equality of two normalized sequences. Because
// Normalize keeps duplicates, this is multiset equality: multiplicity counts.
func Equal(a, b []NormalizedRow) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
