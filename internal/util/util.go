// Package util provides small string helpers shared by the CLI argument
// parser and the command handlers.
package util

import "strings"

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// SplitKeyValue splits "key=value" at the first '='. The key is trimmed;
// the value is unquoted but otherwise kept as given.
func SplitKeyValue(s string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(s, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), FixEscapeQuotes(TrimQuotes(value)), true
}

// SplitList splits a comma-separated list, trimming each element and
// dropping empty ones. An empty string is an empty list.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
