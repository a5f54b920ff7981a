package render

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/line-history/internal/history"
)

const (
	colorReset   = "\033[0m"
	colorHeader  = "\033[1;34m" // bold blue
	colorDim     = "\033[2m"
	colorMark    = "\033[1;43m" // bold on yellow
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// Kind tells Render how to read the query output.
type Kind int

const (
	KindBlock    Kind = iota // date block, random day, forward range
	KindKeyword              // keyword hits
	KindCalendar             // month calendar
)

type Options struct {
	Color       bool
	Width       int    // wrap width (0 = no wrap)
	Keyword     string // highlighted in KindKeyword output
	MarkerGlyph string // stripped before a line is classified, when non-empty
}

var (
	countPattern   = regexp.MustCompile(`^\d+(` + history.LineCountSuffix + `|` + history.MatchCountSuffix + `)$`)
	hitDatePattern = regexp.MustCompile(`^\d{4}/\d{2}/\d{2} `)
	calMarkPattern = regexp.MustCompile(`_\d+`)
)

// Render decorates query output for a terminal. With Color off and Width 0
// it returns out unchanged.
func Render(out string, kind Kind, opts Options) string {
	if !opts.Color && opts.Width <= 0 {
		return out
	}

	lines := strings.Split(out, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i == len(lines)-1 && line == "" {
			break
		}
		if opts.Color {
			line = colorLine(line, kind, opts)
		}
		for j, wl := range wrapLine(line, opts.Width) {
			if j > 0 || i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(wl)
		}
	}
	if strings.HasSuffix(out, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}

func colorLine(line string, kind Kind, opts Options) string {
	prefix := ""
	body := line
	if opts.MarkerGlyph != "" && strings.HasPrefix(line, opts.MarkerGlyph) {
		prefix = colorDim + opts.MarkerGlyph + colorReset
		body = line[len(opts.MarkerGlyph):]
	}

	switch {
	case countPattern.MatchString(body):
		body = colorDim + body + colorReset
	case kind == KindCalendar:
		body = calMarkPattern.ReplaceAllStringFunc(body, func(m string) string {
			return colorMark + m + colorReset
		})
	case history.IsHeader(body):
		body = colorHeader + body + colorReset
	case kind == KindKeyword && hitDatePattern.MatchString(body):
		date := body[:10]
		body = colorDim + date + colorReset + highlightKeyword(body[10:], opts.Keyword)
	}
	return prefix + body
}

// highlightKeyword wraps literal, case-sensitive matches of keyword in bold red.
func highlightKeyword(text, keyword string) string {
	if keyword == "" {
		return text
	}
	return strings.ReplaceAll(text, keyword, colorBoldRed+keyword+colorReset)
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth && visW > 0 {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// Width returns the display width of s, ignoring ANSI escape sequences.
func Width(s string) int {
	w := 0
	for i := 0; i < len(s); {
		if i+1 < len(s) && s[i] == '\033' && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j + 1
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		w += runewidth.RuneWidth(r)
		i += size
	}
	return w
}
