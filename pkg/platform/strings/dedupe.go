// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// DedupeAndUpper is like DedupeAndTrim but also strips inner whitespace and
// uppercases each element, matching the canonical form of waste and EWC codes.
//
// Example:
//
//	DedupeAndUpper([]string{" b1010 ", "B1010", "b 3020"})
//	// Returns: []string{"B1010", "B3020"}
func DedupeAndUpper(values []string) []string {
	return dedupe(values, func(v string) string {
		return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(v), " ", ""))
	})
}

func dedupe(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			result = append(result, n)
		}
	}

	return result
}
