package history

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Zuo-Peng/line-history/internal/errors"
)

const ymdLayout = "2006/01/02"

var (
	headerPattern    = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}\(.+\)$`)
	timestampPattern = regexp.MustCompile(`^\d{2}:\d{2}`)
)

// IsHeader reports whether line opens a date block.
func IsHeader(line string) bool {
	_, ok := parseHeader(line)
	return ok
}

// parseHeader returns the date of a header line. Lines that match the shape
// but carry an impossible date (2023/02/30) are content lines.
func parseHeader(line string) (time.Time, bool) {
	if !headerPattern.MatchString(line) {
		return time.Time{}, false
	}
	d, err := time.Parse(ymdLayout, line[:10])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// civil drops the clock and zone of t, keeping its calendar date.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var (
	dateLayouts  = []string{"2006-01-02", ymdLayout}
	monthLayouts = []string{"2006-01", "2006/01"}
)

// ParseDate parses YYYY-MM-DD or YYYY/MM/DD.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, errors.NewInvalidArgument(fmt.Sprintf("invalid date %q: want YYYY-MM-DD", s))
}

// ParseMonth parses YYYY-MM or YYYY/MM into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	for _, layout := range monthLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, errors.NewInvalidArgument(fmt.Sprintf("invalid month %q: want YYYY-MM", s))
}
