package history

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/line-history/internal/errors"
)

func TestFormatMonth(t *testing.T) {
	want := "          February 2024\n" +
		"Mon  Tue  Wed  Thu  Fri  Sat  Sun\n" +
		"                 1    2    3    4\n" +
		"  5    6    7    8    9   10   11\n" +
		" 12   13   14   15   16   17   18\n" +
		" 19   20   21   22   23   24   25\n" +
		" 26   27   28   29\n"
	require.Equal(t, want, FormatMonth(2024, time.February))
}

func TestFormatMonth_SundayStart(t *testing.T) {
	want := "           January 2023\n" +
		"Mon  Tue  Wed  Thu  Fri  Sat  Sun\n" +
		"                                1\n" +
		"  2    3    4    5    6    7    8\n" +
		"  9   10   11   12   13   14   15\n" +
		" 16   17   18   19   20   21   22\n" +
		" 23   24   25   26   27   28   29\n" +
		" 30   31\n"
	require.Equal(t, want, FormatMonth(2023, time.January))
}

func TestMonthGrid(t *testing.T) {
	weeks := MonthGrid(2023, time.April)

	require.Len(t, weeks, 5)
	require.Equal(t, []int{0, 0, 0, 0, 0, 1, 2}, weeks[0])
	require.Equal(t, []int{24, 25, 26, 27, 28, 29, 30}, weeks[4])
}

func TestCreateCalendar_MarksDaysWithHistory(t *testing.T) {
	text := "2023/03/31(Fri)\nbefore\n2023/04/01(Sat)\na\n2023/04/15(Sat)\nb\n2023/05/02(Tue)\nc\n"
	tr := mustNew(t, text, Options{})

	got, err := tr.CreateCalendar(day(2023, 4, 1))
	require.NoError(t, err)

	want := "            April_2023\n" +
		"Mon  Tue  Wed  Thu  Fri  Sat  Sun\n" +
		"                          _1    2\n" +
		"  3    4    5    6    7    8    9\n" +
		" 10   11   12   13   14  _15   16\n" +
		" 17   18   19   20   21   22   23\n" +
		" 24   25   26   27   28   29   30\n"
	require.Equal(t, want, got)
	require.Equal(t, 3, strings.Count(got, "_"))
}

func TestCreateCalendar_NoHistoryMarksOnlyYear(t *testing.T) {
	tr := mustNew(t, exportText, Options{})

	got, err := tr.CreateCalendar(day(2023, 5, 10))
	require.NoError(t, err)
	require.Equal(t, strings.Replace(FormatMonth(2023, time.May), " 2023", "_2023", 1), got)
}

func TestCreateCalendar_RejectsZeroDate(t *testing.T) {
	tr := mustNew(t, exportText, Options{})

	_, err := tr.CreateCalendar(time.Time{})
	require.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestCreateCalendar_Marker(t *testing.T) {
	tr := mustNew(t, sample, Options{Marker: true, MarkerGlyph: "＊"})

	got, err := tr.CreateCalendar(day(2023, 4, 1))
	require.NoError(t, err)
	for _, line := range splitLines(got) {
		assert.True(t, strings.HasPrefix(line, "＊"), line)
	}
}

func TestDaysWithHistory(t *testing.T) {
	text := "2023/03/30(Thu)\n" +
		"2023/04/01(Sat)\n" +
		"2023/04/01(Sat)\n" +
		"2023/04/10(Mon)\n" +
		"2023/05/01(Mon)\n" +
		"2023/04/20(Thu)\n" // after a later month: not scanned
	tr := mustNew(t, text, Options{})

	require.Equal(t, []int{1, 10}, tr.DaysWithHistory(2023, time.April))
	require.Empty(t, tr.DaysWithHistory(2022, time.April))
}

func TestDaysWithHistory_YearBoundary(t *testing.T) {
	text := "2022/12/30(Fri)\n2022/12/31(Sat)\n2023/01/01(Sun)\n2023/12/05(Tue)\n"
	tr := mustNew(t, text, Options{})

	require.Equal(t, []int{30, 31}, tr.DaysWithHistory(2022, time.December))
	require.Equal(t, []int{5}, tr.DaysWithHistory(2023, time.December))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "Mon ", center("Mon", 4))
	assert.Equal(t, "  1 ", center(" 1", 4))
	assert.Equal(t, "toolong", center("toolong", 4))
}
