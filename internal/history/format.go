package history

import "strings"

// AddMarker prefixes every line of message with glyph. Every output line,
// including the last, ends with a newline.
func AddMarker(message, glyph string) string {
	var b strings.Builder
	for _, line := range splitLines(message) {
		b.WriteString(glyph)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func (t *Transcript) decorate(s string) string {
	if !t.opts.Marker {
		return s
	}
	return AddMarker(s, t.opts.MarkerGlyph)
}

// splitLines splits on \n without producing a trailing empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
