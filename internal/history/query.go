package history

import (
	"fmt"
	"time"

	"github.com/Zuo-Peng/line-history/internal/errors"
)

// QueryKind selects the search SearchBy runs.
type QueryKind int

const (
	QueryRandom QueryKind = iota
	QueryDate
	QueryKeyword
)

func (k QueryKind) String() string {
	switch k {
	case QueryRandom:
		return "random"
	case QueryDate:
		return "date"
	case QueryKeyword:
		return "keyword"
	default:
		return fmt.Sprintf("QueryKind(%d)", int(k))
	}
}

// Query is a date, keyword or random search.
type Query struct {
	Kind    QueryKind
	Date    time.Time
	Keyword string
}

// ByDate queries the block of day.
func ByDate(day time.Time) Query { return Query{Kind: QueryDate, Date: day} }

// ByKeyword queries lines containing keyword.
func ByKeyword(keyword string) Query { return Query{Kind: QueryKeyword, Keyword: keyword} }

// Random queries a random date.
func Random() Query { return Query{Kind: QueryRandom} }

// ParseQuery turns free-form input into a Query: empty input is a random
// search, a parseable date is a date search and anything else a keyword.
func ParseQuery(arg string) Query {
	if arg == "" {
		return Random()
	}
	if d, err := ParseDate(arg); err == nil {
		return ByDate(d)
	}
	return ByKeyword(arg)
}

// SearchBy runs q.
func (t *Transcript) SearchBy(q Query) (string, error) {
	switch q.Kind {
	case QueryDate:
		return t.SearchByDate(q.Date), nil
	case QueryKeyword:
		return t.SearchByKeyword(q.Keyword), nil
	case QueryRandom:
		return t.SearchByRandom()
	default:
		return "", errors.NewInvalidArgument(fmt.Sprintf("unknown query kind %s", q.Kind))
	}
}
