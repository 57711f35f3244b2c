// Package sequence derives human-readable document numbers such as
// "INV-12" from the numbers already issued under a prefix.
package sequence

import (
	"strconv"
	"strings"
)

const separator = "-"

// Format renders the n-th document number for prefix.
func Format(prefix string, n int64) string {
	return prefix + separator + strconv.FormatInt(n, 10)
}

// Parse extracts the numeric suffix of id. It reports false when id does not
// carry prefix or the suffix is not a positive integer.
func Parse(id, prefix string) (int64, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(id), prefix+separator)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Max returns the largest suffix among ids, or 0 when none parse.
func Max(ids []string, prefix string) int64 {
	var max int64
	for _, id := range ids {
		if n, ok := Parse(id, prefix); ok && n > max {
			max = n
		}
	}
	return max
}

// NextID returns the number that follows the highest one in ids. An empty
// list, or one where no suffix parses, starts the sequence at 1.
func NextID(ids []string, prefix string) string {
	return Format(prefix, Max(ids, prefix)+1)
}
