package tui

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/line-history/internal/history"
)

const sample = "2023/04/01(Sat)\n" +
	"09:15\tRiku\tgood morning\n" +
	"2023/04/02(Sun)\n" +
	"12:00\tAoi\tlunch?\n" +
	"12:01\tRiku\tlunch!\n" +
	"2023/04/10(Mon)\n" +
	"20:00\tAoi\tgood night\n"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestModel(t *testing.T, hopts history.Options) model {
	t.Helper()
	tr, err := history.New(sample, hopts)
	require.NoError(t, err)
	return initialModel(tr, Options{
		Path:    "/tmp/history.txt",
		History: hopts,
		Now:     func() time.Time { return time.Date(2023, 4, 20, 8, 0, 0, 0, time.UTC) },
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestInitialModel_StartsOnLastHistoryDay(t *testing.T) {
	m := newTestModel(t, history.Options{})

	require.Equal(t, date(2023, 4, 10), m.day)
	require.Equal(t, m.tr.SearchByDate(date(2023, 4, 10)), m.plain)
}

func TestInitialModel_EmptyTranscriptStartsToday(t *testing.T) {
	tr, err := history.New("no headers here\n", history.Options{})
	require.NoError(t, err)

	m := initialModel(tr, Options{Now: func() time.Time { return time.Date(2024, 2, 3, 23, 0, 0, 0, time.UTC) }})
	require.Equal(t, date(2024, 2, 3), m.day)
	require.Equal(t, history.NoHistoryMessage, m.plain)
}

func TestUpdate_Navigation(t *testing.T) {
	m := newTestModel(t, history.Options{})

	m = press(t, m, runes("h"))
	require.Equal(t, date(2023, 4, 9), m.day)
	require.Equal(t, history.NoHistoryMessage, m.plain)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, date(2023, 4, 2), m.day)
	require.Contains(t, m.plain, "lunch!")

	m = press(t, m, runes("l"), runes("j"))
	require.Equal(t, date(2023, 4, 10), m.day)

	m = press(t, m, runes("]"))
	require.Equal(t, date(2023, 5, 10), m.day)

	m = press(t, m, runes("t"))
	require.Equal(t, date(2023, 4, 20), m.day)
}

func TestUpdate_KeywordSearch(t *testing.T) {
	m := newTestModel(t, history.Options{})

	m = press(t, m, runes("/"))
	require.Equal(t, modeSearch, m.mode)

	// keys go to the input while searching
	m = press(t, m, runes("l"), runes("u"), runes("n"), runes("c"), runes("h"))
	require.Equal(t, date(2023, 4, 10), m.day)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeBrowse, m.mode)
	require.Equal(t, previewKeyword, m.previewKind)
	require.Equal(t, "lunch", m.keyword)
	require.Equal(t, m.tr.SearchByKeyword("lunch"), m.plain)
	require.True(t, strings.HasPrefix(m.plain, "2件\n"))

	// moving the cursor goes back to the day view
	m = press(t, m, runes("h"))
	require.Equal(t, previewDay, m.previewKind)
}

func TestUpdate_SearchEscCancels(t *testing.T) {
	m := newTestModel(t, history.Options{})

	m = press(t, m, runes("/"), runes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeBrowse, m.mode)
	require.False(t, m.quitting)
	require.Equal(t, previewDay, m.previewKind)
}

func TestUpdate_Random(t *testing.T) {
	hopts := history.Options{
		Now:      func() time.Time { return time.Date(2023, 4, 20, 8, 0, 0, 0, time.UTC) },
		Location: time.UTC,
		Rand:     rand.New(rand.NewPCG(7, 8)),
	}
	m := newTestModel(t, hopts)

	m = press(t, m, runes("r"))
	require.False(t, m.statusErr, m.status)
	require.Contains(t, []time.Time{date(2023, 4, 1), date(2023, 4, 2), date(2023, 4, 10)}, m.day)
	require.Equal(t, m.tr.SearchByDate(m.day), m.plain)
}

func TestUpdate_RandomWithoutHistory(t *testing.T) {
	tr, err := history.New("nothing\n", history.Options{})
	require.NoError(t, err)
	m := initialModel(tr, Options{})

	m = press(t, m, runes("r"))
	require.True(t, m.statusErr)
	require.Contains(t, m.status, "NO_HISTORY_IN_RANGE")
}

func TestUpdate_Copy(t *testing.T) {
	m := newTestModel(t, history.Options{})
	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}

	m = press(t, m, runes("y"))
	require.Equal(t, m.plain, copied)
	require.Equal(t, "copied to clipboard", m.status)

	m.copyFn = func(string) error { return errors.New("no clipboard") }
	m = press(t, m, runes("y"))
	require.True(t, m.statusErr)
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(t, history.Options{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, next.(model).quitting)
	require.NotNil(t, cmd)
}

func TestUpdate_Reloaded(t *testing.T) {
	m := newTestModel(t, history.Options{})

	tr, err := history.New(sample+"2023/04/11(Tue)\nnew\n", history.Options{})
	require.NoError(t, err)
	m = press(t, m, transcriptReloadedMsg{tr: tr})
	require.Same(t, tr, m.tr)
	require.Contains(t, m.status, "reloaded")

	m = press(t, m, transcriptReloadedMsg{err: errors.New("gone")})
	require.Same(t, tr, m.tr)
	require.True(t, m.statusErr)
}

func TestView(t *testing.T) {
	m := newTestModel(t, history.Options{})
	require.Empty(t, m.View())

	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	require.Contains(t, view, "April 2023")
	require.Contains(t, view, "3 days with history")
	require.Contains(t, view, "good night")
}

func TestShiftMonth(t *testing.T) {
	tests := []struct {
		in   time.Time
		n    int
		want time.Time
	}{
		{date(2023, 3, 31), -1, date(2023, 2, 28)},
		{date(2024, 3, 31), -1, date(2024, 2, 29)},
		{date(2023, 1, 31), 1, date(2023, 2, 28)},
		{date(2023, 12, 15), 1, date(2024, 1, 15)},
		{date(2023, 1, 15), -1, date(2022, 12, 15)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shiftMonth(tt.in, tt.n), "%s %+d", tt.in.Format("2006-01-02"), tt.n)
	}
}

func TestDayFromBlock(t *testing.T) {
	d, ok := dayFromBlock("2023/04/02(Sun)\nx\n2行\n", "")
	require.True(t, ok)
	require.Equal(t, date(2023, 4, 2), d)

	d, ok = dayFromBlock("＊2023/04/02(Sun)\n＊2行\n", "＊")
	require.True(t, ok)
	require.Equal(t, date(2023, 4, 2), d)

	_, ok = dayFromBlock(history.NoHistoryMessage, "")
	require.False(t, ok)
}

func TestIsChange(t *testing.T) {
	path := filepath.Clean("/tmp/chat/history.txt")

	assert.True(t, isChange(fsnotify.Event{Name: path, Op: fsnotify.Write}, path))
	assert.True(t, isChange(fsnotify.Event{Name: path, Op: fsnotify.Create}, path))
	assert.False(t, isChange(fsnotify.Event{Name: path, Op: fsnotify.Chmod}, path))
	assert.False(t, isChange(fsnotify.Event{Name: "/tmp/chat/other.txt", Op: fsnotify.Write}, path))
}

func TestSettle(t *testing.T) {
	events := make(chan fsnotify.Event, 3)
	events <- fsnotify.Event{Name: "a"}
	events <- fsnotify.Event{Name: "b"}

	settle(events, 10*time.Millisecond)
	require.Empty(t, events)
}
