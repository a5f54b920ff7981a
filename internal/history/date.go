package history

import (
	"fmt"
	"strings"
	"time"
)

// Soft results returned as ordinary payloads.
const (
	NoHistoryMessage       = "There is no history of this date.\n"
	NotFoundMessage        = "Not found."
	KeywordTooShortMessage = "Please enter more than one character."

	LineCountSuffix  = "行"
	MatchCountSuffix = "件"
)

// blockBounds returns the [start, end) line range of the date block for day:
// the first header dated day up to the next header dated later, or end of
// transcript. Headers are assumed to be in non-decreasing date order.
func (t *Transcript) blockBounds(day time.Time) (int, int, bool) {
	start := -1
	for i, line := range t.lines {
		d, ok := parseHeader(line)
		if !ok {
			continue
		}
		if start < 0 {
			if d.Equal(day) {
				start = i
			}
			continue
		}
		if d.After(day) {
			return start, i, true
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, len(t.lines), true
}

func (t *Transcript) renderBlock(start, end int) string {
	var b strings.Builder
	for _, line := range t.lines[start:end] {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d%s\n", end-start, LineCountSuffix)
	return b.String()
}

// SearchByDate returns the date block for day followed by its line count, or
// NoHistoryMessage when no header carries that date. Only the calendar date
// of day is used.
func (t *Transcript) SearchByDate(day time.Time) string {
	start, end, ok := t.blockBounds(civil(day))
	if !ok {
		return t.decorate(NoHistoryMessage)
	}
	return t.decorate(t.renderBlock(start, end))
}

// RangeAfter returns every line from the first header dated on or after day
// through the end of the transcript. It is empty when no such header exists.
func (t *Transcript) RangeAfter(day time.Time) string {
	day = civil(day)
	for i, line := range t.lines {
		d, ok := parseHeader(line)
		if !ok || d.Before(day) {
			continue
		}
		var b strings.Builder
		for _, l := range t.lines[i:] {
			b.WriteString(l)
			b.WriteByte('\n')
		}
		return t.decorate(b.String())
	}
	return t.decorate("")
}
