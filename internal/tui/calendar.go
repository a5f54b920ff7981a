package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/line-history/internal/history"
)

// calendarWidth is the visible width of the month grid: 7 cells of 3 columns.
const calendarWidth = 7 * 3

var weekdayLabels = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// renderCalendar renders the left panel: the cursor's month with days that
// have history highlighted and the cursor day reversed.
func (m model) renderCalendar(width, height int) string {
	year, month, cursorDay := m.day.Date()
	marked := make(map[int]bool)
	days := m.tr.DaysWithHistory(year, month)
	for _, d := range days {
		marked[d] = true
	}

	var lines []string
	title := fmt.Sprintf("%s %d", month, year)
	lines = append(lines, styleTitle.Render(padCenter(title, calendarWidth)))

	var hdr []string
	for _, w := range weekdayLabels {
		hdr = append(hdr, styleWeekday.Render(fmt.Sprintf("%2s", w)))
	}
	lines = append(lines, strings.Join(hdr, " "))

	for _, week := range history.MonthGrid(year, month) {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, formatCell(d, d == cursorDay, marked[d]))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render(fmt.Sprintf("%d days with history", len(days))))
	lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render(truncate(m.day.Format("Mon 2006-01-02"), width)))

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func formatCell(day int, cursor, marked bool) string {
	if day == 0 {
		return "  "
	}
	s := fmt.Sprintf("%2d", day)
	switch {
	case cursor:
		return styleCursor.Render(s)
	case marked:
		return styleHasHistory.Render(s)
	default:
		return styleDay.Render(s)
	}
}

func padCenter(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s
}

// shiftMonth moves day by n months, clamping to the last day of the target month.
func shiftMonth(day time.Time, n int) time.Time {
	year, month, d := day.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// dateOf returns the calendar date of t as UTC midnight.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
