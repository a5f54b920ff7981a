package history

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinKeywordLength is the shortest keyword, in characters, that is searched.
	MinKeywordLength = 1

	maxSnippetRunes = 60
	timestampRunes  = 6 // "HH:MM" and the delimiter after it
	ellipsis        = "…"
)

// SearchByKeyword returns every content line containing keyword, prefixed
// with the date of the block it sits in, under a leading match count.
//
// A line's date is the latest header date seen so far, so a stray earlier
// header does not move the annotation backwards. Lines before any header are
// dated 0001/01/01.
func (t *Transcript) SearchByKeyword(keyword string) string {
	if utf8.RuneCountInString(keyword) < MinKeywordLength {
		return t.decorate(KeywordTooShortMessage)
	}

	var (
		b       strings.Builder
		count   int
		current time.Time
	)
	for _, line := range t.lines {
		if d, ok := parseHeader(line); ok {
			if !d.Before(current) {
				current = d
			}
			continue
		}
		if !strings.Contains(line, keyword) {
			continue
		}
		count++
		b.WriteString(current.Format(ymdLayout))
		b.WriteByte(' ')
		b.WriteString(snippet(line))
		b.WriteByte('\n')
	}

	body := b.String()
	if body == "" {
		body = NotFoundMessage
	}
	return t.decorate(fmt.Sprintf("%d%s\n%s", count, MatchCountSuffix, body))
}

// snippet drops a leading HH:MM timestamp and caps the line at 60 characters.
func snippet(line string) string {
	if timestampPattern.MatchString(line) {
		line = dropRunes(line, timestampRunes)
	}
	if utf8.RuneCountInString(line) > maxSnippetRunes {
		line = string([]rune(line)[:maxSnippetRunes]) + ellipsis
	}
	return line
}

func dropRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}
