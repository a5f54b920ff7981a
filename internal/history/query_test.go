package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/line-history/internal/errors"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		arg  string
		want Query
	}{
		{"", Random()},
		{"2023-04-01", ByDate(day(2023, 4, 1))},
		{"2023/04/01", ByDate(day(2023, 4, 1))},
		{"lunch", ByKeyword("lunch")},
		{"2023-04", ByKeyword("2023-04")},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.arg))
		})
	}
}

func TestSearchBy_Dispatch(t *testing.T) {
	now := time.Date(2023, 4, 20, 12, 0, 0, 0, time.UTC)
	tr := mustNew(t, exportText, fixedOptions(now, 5))

	got, err := tr.SearchBy(ByDate(day(2023, 4, 2)))
	require.NoError(t, err)
	require.Equal(t, tr.SearchByDate(day(2023, 4, 2)), got)

	got, err = tr.SearchBy(ByKeyword("lunch"))
	require.NoError(t, err)
	require.Equal(t, tr.SearchByKeyword("lunch"), got)

	got, err = tr.SearchBy(Random())
	require.NoError(t, err)
	require.NotEqual(t, NoHistoryMessage, got)
}

func TestSearchBy_UnknownKind(t *testing.T) {
	tr := mustNew(t, exportText, Options{})

	_, err := tr.SearchBy(Query{Kind: QueryKind(42)})
	require.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestQueryKind_String(t *testing.T) {
	assert.Equal(t, "date", QueryDate.String())
	assert.Equal(t, "keyword", QueryKeyword.String())
	assert.Equal(t, "random", QueryRandom.String())
	assert.Equal(t, "QueryKind(9)", QueryKind(9).String())
}
