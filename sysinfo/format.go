// Package sysinfo - Formatting utilities
package sysinfo

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fact text longer than maxFactLength graphemes is cut to truncatedLength plus an ellipsis.
const (
	maxFactLength   = 41
	truncatedLength = 37
	ellipsis        = "..."
)

// FormatBytes converts a byte count to a human-readable string in decimal units.
//
// Parameters:
//   - bytes: The number of bytes to format
//
// Returns:
//   - A formatted string with the most appropriate SI unit
//
// Example: FormatBytes(1536) returns "1.5 kB"
func FormatBytes(bytes uint64) string {
	return humanize.Bytes(bytes)
}

// TruncateString cuts s to keep graphemes and appends "..." when s is longer than limit
// graphemes. Multi-codepoint characters such as emoji are never split.
//
// Parameters:
//   - s: The string to truncate
//   - limit: Longest length returned unchanged
//   - keep: Number of graphemes kept when truncating
//
// Returns:
//   - s when its grapheme count is at most limit
//   - The first keep graphemes of s followed by "..." otherwise
//
// Example: TruncateString("Hello World", 8, 5) returns "Hello..."
func TruncateString(s string, limit, keep int) string {
	if uniseg.GraphemeClusterCount(s) <= limit {
		return s
	}
	return firstGraphemes(s, keep) + ellipsis
}

// truncateFact applies the release/kernel/song display limit to trimmed command output.
func truncateFact(s string) string {
	return TruncateString(trimOutput(s), maxFactLength, truncatedLength)
}

// firstGraphemes returns the leading n grapheme clusters of s.
func firstGraphemes(s string, n int) string {
	var b strings.Builder
	state := -1
	rest := s
	for i := 0; i < n && rest != ""; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		b.WriteString(cluster)
	}
	return b.String()
}

// UpperFirst upper-cases the first character of s and leaves the rest alone.
func UpperFirst(s string) string {
	first, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	if first == "" {
		return ""
	}
	return cases.Upper(language.Und).String(first) + rest
}

// trimOutput strips the trailing newline and surrounding whitespace from command output.
func trimOutput(s string) string {
	return strings.TrimSpace(s)
}
