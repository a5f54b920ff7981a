package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Zuo-Peng/line-history/internal/errors"
)

// dayWidth is the column width of one day cell.
const dayWidth = 4

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// CreateCalendar renders the month of month as a text grid. The year label
// and every day with history get an underscore in place of their leading
// space ("_2023", "_15").
func (t *Transcript) CreateCalendar(month time.Time) (string, error) {
	if month.IsZero() {
		return "", errors.NewInvalidArgument("calendar month must be a date")
	}

	year, mon := month.Year(), month.Month()
	y := strconv.Itoa(year)
	cal := strings.ReplaceAll(FormatMonth(year, mon), " "+y, "_"+y)
	for _, day := range t.DaysWithHistory(year, mon) {
		d := strconv.Itoa(day)
		cal = strings.Replace(cal, " "+d, "_"+d, 1)
	}
	return t.decorate(cal), nil
}

// DaysWithHistory returns the days of year/month that have a header, in the
// order found. Scanning stops at the first header of a later month once the
// target month has been seen.
func (t *Transcript) DaysWithHistory(year int, month time.Month) []int {
	target := year*12 + int(month)
	seen := make(map[int]bool)
	var days []int
	found := false
	for _, line := range t.lines {
		d, ok := parseHeader(line)
		if !ok {
			continue
		}
		switch ym := d.Year()*12 + int(d.Month()); {
		case ym == target:
			found = true
			if !seen[d.Day()] {
				seen[d.Day()] = true
				days = append(days, d.Day())
			}
		case found && ym > target:
			return days
		}
	}
	return days
}

// MonthGrid returns the weeks of a month, Monday first. Cells outside the
// month are 0.
func MonthGrid(year int, month time.Month) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	lead := (int(first.Weekday()) + 6) % 7

	var weeks [][]int
	week := make([]int, 7)
	col := lead
	for day := 1; day <= last; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// FormatMonth renders an unmarked month grid: a centred "Month YYYY" title,
// a weekday header and one row per week, trailing spaces trimmed.
func FormatMonth(year int, month time.Month) string {
	width := 7*(dayWidth+1) - 1

	var b strings.Builder
	writeRow := func(s string) {
		b.WriteString(strings.TrimRight(s, " "))
		b.WriteByte('\n')
	}

	writeRow(center(fmt.Sprintf("%s %d", month, year), width))

	names := make([]string, len(weekOrder))
	for i, wd := range weekOrder {
		names[i] = center(wd.String()[:3], dayWidth)
	}
	writeRow(strings.Join(names, " "))

	for _, week := range MonthGrid(year, month) {
		cells := make([]string, len(week))
		for i, day := range week {
			if day == 0 {
				cells[i] = strings.Repeat(" ", dayWidth)
				continue
			}
			cells[i] = center(fmt.Sprintf("%2d", day), dayWidth)
		}
		writeRow(strings.Join(cells, " "))
	}
	return b.String()
}

// center pads s to width, putting the odd space on the left only when both
// the padding and width are odd.
func center(s string, width int) string {
	marg := width - len(s)
	if marg <= 0 {
		return s
	}
	left := marg/2 + (marg & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", marg-left)
}
