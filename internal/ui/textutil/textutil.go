// Package textutil provides unicode- and style-aware text utilities for
// fixed-width terminal layout.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
// Embedded style codes are ignored.
func VisualWidth(s string) int {
	return ansi.StringWidth(s)
}

// Strip removes every escape sequence from s.
func Strip(s string) string {
	return ansi.Strip(s)
}

// Truncate shortens s to at most maxWidth visible columns, appending an
// ellipsis when anything was cut. Style codes are preserved.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= runewidth.StringWidth(TruncateEllipsis) {
		return TruncateEllipsis
	}
	return ansi.Truncate(s, maxWidth, TruncateEllipsis)
}

// PadRight pads s with spaces to width visible columns, truncating when s is
// already wider.
func PadRight(s string, width int) string {
	w := VisualWidth(s)
	if w > width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// PadLeft pads s on the left to width visible columns.
func PadLeft(s string, width int) string {
	w := VisualWidth(s)
	if w > width {
		return Truncate(s, width)
	}
	return strings.Repeat(" ", width-w) + s
}

// Center places s in the middle of width columns; odd remainders go right.
func Center(s string, width int) string {
	w := VisualWidth(s)
	if w >= width {
		return Truncate(s, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// Lines splits s into lines. An empty string yields no lines.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// MaxWidth returns the widest visible line in lines.
func MaxWidth(lines []string) int {
	max := 0
	for _, l := range lines {
		if w := VisualWidth(l); w > max {
			max = w
		}
	}
	return max
}

// Wrap breaks plain text into lines of at most width columns on word
// boundaries. Words longer than width are hard-split.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head := runewidth.Truncate(word, width, "")
				out = append(out, head)
				word = word[len(head):]
			}
			switch {
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
