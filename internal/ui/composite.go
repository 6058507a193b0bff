package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"secretsui/internal/ui/render"
)

const sgrReset = "\x1b[0m"

// cell is one terminal column of a parsed line. A wide grapheme occupies
// its first cell; the following cells have an empty text and width 0.
type cell struct {
	text  string
	style string
	width int
}

var blank = cell{text: " ", width: 1}

// parseCells splits line into per-column cells, recording for each the SGR
// sequences in effect. SGR codes accumulate until a reset; other escape
// sequences are dropped.
func parseCells(line string) []cell {
	var cells []cell
	var style string
	var state byte
	for len(line) > 0 {
		seq, width, n, next := ansi.DecodeSequence(line, state, nil)
		if n <= 0 {
			break
		}
		state = next
		line = line[n:]
		switch {
		case width > 0:
			cells = append(cells, cell{text: seq, style: style, width: width})
			for i := 1; i < width; i++ {
				cells = append(cells, cell{style: style})
			}
		case ansi.HasCsiPrefix(seq) && strings.HasSuffix(seq, "m"):
			style = applySGR(style, seq)
		}
	}
	return cells
}

func applySGR(cur, seq string) string {
	params := seq[strings.IndexByte(seq, '[')+1 : len(seq)-1]
	switch {
	case params == "" || params == "0" || params == "00":
		return ""
	case strings.HasPrefix(params, "0;"):
		return seq
	default:
		return cur + seq
	}
}

// fit pads cells with blanks or cuts them to exactly width columns.
func fit(cells []cell, width int) []cell {
	if len(cells) >= width {
		return cells[:width]
	}
	out := make([]cell, width)
	copy(out, cells)
	for i := len(cells); i < width; i++ {
		out[i] = blank
	}
	return out
}

// writeCells writes columns [from, to) re-emitting the style of each run,
// and ends with a reset if any style was emitted. Wide graphemes cut by a
// segment edge are replaced by spaces.
func writeCells(b *strings.Builder, cells []cell, from, to int) {
	cur := ""
	for col := from; col < to; col++ {
		c := cells[col]
		if c.style != cur {
			if cur != "" {
				b.WriteString(sgrReset)
			}
			b.WriteString(c.style)
			cur = c.style
		}
		switch {
		case c.width == 0:
			if col == from {
				b.WriteByte(' ')
			}
		case col+c.width > to:
			b.WriteString(strings.Repeat(" ", to-col))
		default:
			b.WriteString(c.text)
		}
	}
	if cur != "" {
		b.WriteString(sgrReset)
	}
}

// Composite draws popup centered over base on a terminal of the given size.
// Every base row is padded to the full width. On rows the popup covers, the
// base columns left and right of it keep their own styling and the popup
// line is emitted verbatim between resets, so no style bleeds across the
// popup edges. The result has exactly size.Rows lines.
func Composite(base, popup string, size render.Size) string {
	width, height := size.Cols, size.Rows
	baseLines := strings.Split(base, "\n")
	if height <= 0 {
		height = len(baseLines)
	}

	popLines := strings.Split(popup, "\n")
	popW := 0
	for _, l := range popLines {
		popW = max(popW, ansi.StringWidth(l))
	}
	popW = min(popW, width)
	popH := min(len(popLines), height)
	if popup == "" {
		popH = 0
	}
	x := max((width-popW)/2, 0)
	y := max((height-popH)/2, 0)

	out := make([]string, height)
	for r := range height {
		line := ""
		if r < len(baseLines) {
			line = baseLines[r]
		}
		if r < y || r >= y+popH || popW == 0 {
			out[r] = padLine(line, width)
			continue
		}

		cells := fit(parseCells(line), width)
		var b strings.Builder
		writeCells(&b, cells, 0, x)
		b.WriteString(sgrReset)
		b.WriteString(padLine(popLines[r-y], popW))
		b.WriteString(sgrReset)
		writeCells(&b, cells, x+popW, width)
		out[r] = b.String()
	}
	return strings.Join(out, "\n")
}

// padLine pads or truncates line to exactly width columns.
func padLine(line string, width int) string {
	w := ansi.StringWidth(line)
	switch {
	case w > width:
		return ansi.Truncate(line, width, "")
	case w < width:
		return line + strings.Repeat(" ", width-w)
	}
	return line
}
