package render

import "strings"

// GlyphWidth is the advance of one character of text in logical pixels.
const GlyphWidth = 6

// Columns returns how many characters fit in width logical pixels.
func Columns(width float64) int {
	n := int(width) / GlyphWidth
	if n < 1 {
		return 1
	}
	return n
}

// Wrap word-wraps s to at most width runes per line. Existing line breaks are
// kept. A space where a line breaks becomes the '\n', so the result has the
// same rune count as s unless a single word is longer than width and has to
// be split.
func Wrap(s string, width int) string {
	if width < 1 {
		return s
	}
	paragraphs := strings.Split(s, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapLine([]rune(p), width)
	}
	return strings.Join(paragraphs, "\n")
}

func wrapLine(line []rune, width int) string {
	var b strings.Builder
	for len(line) > width {
		cut := -1
		for i := width; i > 0; i-- {
			if line[i] == ' ' {
				cut = i
				break
			}
		}
		if cut < 0 {
			b.WriteString(string(line[:width]))
			b.WriteByte('\n')
			line = line[width:]
			continue
		}
		b.WriteString(string(line[:cut]))
		b.WriteByte('\n')
		line = line[cut+1:]
	}
	b.WriteString(string(line))
	return b.String()
}
