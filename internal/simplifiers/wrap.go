package simplifiers

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap reflows text into lines at most width display columns wide. Every
// whitespace run becomes a single break opportunity, and words wider than
// width are split. A width of zero or less only collapses whitespace.
func Wrap(text string, width int) string {
	words := strings.Fields(text)
	if width <= 0 {
		return strings.Join(words, " ")
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
		}
		line.Reset()
		lineWidth = 0
	}

	for _, word := range words {
		w := runewidth.StringWidth(word)
		switch {
		case line.Len() > 0 && lineWidth+1+w <= width:
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + w
		case w <= width:
			flush()
			line.WriteString(word)
			lineWidth = w
		default:
			flush()
			for _, chunk := range splitWidth(word, width) {
				flush()
				line.WriteString(chunk)
				lineWidth = runewidth.StringWidth(chunk)
			}
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

// splitWidth cuts s into pieces of at most width columns. A single rune wider
// than width gets a piece of its own.
func splitWidth(s string, width int) []string {
	var out []string
	var cur strings.Builder
	curWidth := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if curWidth > 0 && curWidth+rw > width {
			out = append(out, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteRune(r)
		curWidth += rw
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
