package history

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByKeyword(t *testing.T) {
	tr := mustNew(t, exportText, Options{})

	got := tr.SearchByKeyword("Riku")
	want := "3件\n" +
		"2023/04/01 Riku\tgood morning\n" +
		"2023/04/02 Riku\tlunch?\n" +
		"2023/04/15 Riku\tok\n"
	require.Equal(t, want, got)
}

func TestSearchByKeyword_NotFound(t *testing.T) {
	tr := mustNew(t, exportText, Options{})

	require.Equal(t, "0件\nNot found.", tr.SearchByKeyword("umbrella"))
}

func TestSearchByKeyword_TooShort(t *testing.T) {
	tr := mustNew(t, exportText, Options{})

	require.Equal(t, KeywordTooShortMessage, tr.SearchByKeyword(""))
}

func TestSearchByKeyword_SkipsHeaderLines(t *testing.T) {
	tr := mustNew(t, exportText, Options{})

	// "Sat" only appears in header lines.
	require.Equal(t, "0件\nNot found.", tr.SearchByKeyword("Sat"))
}

func TestSearchByKeyword_MatchesInsideTimestamp(t *testing.T) {
	tr := mustNew(t, sample, Options{})

	require.Equal(t, "2件\n2023/04/01 hello\n2023/04/02 world\n", tr.SearchByKeyword("00:00"))
}

func TestSearchByKeyword_NoTimestamp(t *testing.T) {
	tr := mustNew(t, "2023/04/01(Sat)\nplain line here\n", Options{})

	require.Equal(t, "1件\n2023/04/01 plain line here\n", tr.SearchByKeyword("line"))
}

func TestSearchByKeyword_Truncation(t *testing.T) {
	long := strings.Repeat("あ", 64) + "x" // 65 characters
	tr := mustNew(t, "2023/04/01(Sat)\n10:00 "+long+"\n", Options{})

	got := tr.SearchByKeyword("x")
	lines := splitLines(got)
	require.Len(t, lines, 2)

	text := strings.TrimPrefix(lines[1], "2023/04/01 ")
	require.Equal(t, 61, utf8.RuneCountInString(text))
	require.Equal(t, strings.Repeat("あ", 60)+"…", text)
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"timestamp stripped", "09:15\tRiku\thi", "Riku\thi"},
		{"bare timestamp", "09:15", ""},
		{"no timestamp", "hello", "hello"},
		{"60 chars kept", strings.Repeat("a", 60), strings.Repeat("a", 60)},
		{"61 chars truncated", strings.Repeat("a", 61), strings.Repeat("a", 60) + "…"},
		{"timestamp then long", "12:34 " + strings.Repeat("b", 65), strings.Repeat("b", 60) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, snippet(tt.in))
		})
	}
}

func TestSearchByKeyword_UsesLatestDateSeen(t *testing.T) {
	text := "2023/04/05(Wed)\na hit\n2023/04/01(Sat)\nanother hit\n2023/04/06(Thu)\nlast hit\n"
	tr := mustNew(t, text, Options{})

	want := "3件\n2023/04/05 a hit\n2023/04/05 another hit\n2023/04/06 last hit\n"
	require.Equal(t, want, tr.SearchByKeyword("hit"))
}

func TestSearchByKeyword_LinesNeverLackKeyword(t *testing.T) {
	tr := mustNew(t, exportText, Options{})

	for _, kw := range []string{"o", "Aoi", "station", "!"} {
		lines := splitLines(tr.SearchByKeyword(kw))
		for _, line := range lines[1:] {
			if line == NotFoundMessage {
				continue
			}
			assert.Contains(t, line, kw)
		}
	}
}
