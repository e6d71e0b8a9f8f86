// Package ascii draws the rounded box framing the greeter's report.
// Widths are counted in grapheme clusters so emoji and accented text pad the
// same as plain ASCII.
package ascii

import (
	"strings"

	"github.com/rivo/uniseg"

	"hello/sysinfo"
)

// Row widths in graphemes, excluding the closing border glyph. The header width
// includes the colour sequences wrapped around the hostname.
const (
	BodyWidth   = 45
	HeaderWidth = 55
)

// Box-drawing glyphs.
const (
	Vertical    = "│"
	Horizontal  = "─"
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
)

// headerPrefix is the visible text before the hostname.
const headerPrefix = TopLeft + Horizontal

// Pad fills s with fill up to width graphemes. Content already wider than width is
// cut to width rather than left overflowing.
//
// Parameters:
//   - s: The text to pad
//   - width: Target length in grapheme clusters
//   - fill: A single-grapheme padding string
//
// Returns:
//   - A string exactly width graphemes long
func Pad(s string, width int, fill string) string {
	n := uniseg.GraphemeClusterCount(s)
	if n > width {
		return clip(s, width)
	}
	return s + strings.Repeat(fill, width-n)
}

// Row formats one body row: "│ text", padded to BodyWidth, then "│".
func Row(text string) string {
	return Pad(Vertical+" "+text, BodyWidth, " ") + Vertical
}

// Header formats the top border carrying the hostname in green.
func Header(hostname string) string {
	colour := uniseg.GraphemeClusterCount(sysinfo.ColorGreen + sysinfo.ColorReset)
	room := HeaderWidth - uniseg.GraphemeClusterCount(headerPrefix) - colour
	hostname = clip(hostname, room)
	return Pad(headerPrefix+sysinfo.ColorGreen+hostname+sysinfo.ColorReset, HeaderWidth, Horizontal) + TopRight
}

// Footer returns the bottom border.
func Footer() string {
	return BottomLeft + strings.Repeat(Horizontal, BodyWidth) + BottomRight
}

// clip returns the first n graphemes of s.
func clip(s string, n int) string {
	var b strings.Builder
	state := -1
	for i := 0; i < n && s != ""; i++ {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		b.WriteString(cluster)
	}
	return b.String()
}
