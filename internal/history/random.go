package history

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Zuo-Peng/line-history/internal/errors"
)

// SearchByRandom returns the block of a random date between the first header
// and today. Timestamps are drawn uniformly from that span and redrawn while
// they land on a date without history.
//
// Draws are capped at MaxRandomAttempts; past the cap a date is picked
// directly from the in-span header dates, so the call always ends with a
// block. It fails with NO_HISTORY_IN_RANGE only when the span holds no
// header date at all.
func (t *Transcript) SearchByRandom() (string, error) {
	dates := t.Dates()
	if len(dates) == 0 {
		return "", errors.NewNoHistoryInRange(time.Time{}, time.Time{})
	}

	loc := t.opts.Location
	now := t.opts.Now().In(loc)
	today := civil(now)
	first := dates[0]

	candidates := distinctInRange(dates, first, today)
	if len(candidates) == 0 {
		return "", errors.NewNoHistoryInRange(first, today)
	}

	lo := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc).Unix()
	hi := now.Unix()
	if hi < lo {
		hi = lo
	}

	for attempt := 1; attempt <= t.opts.MaxRandomAttempts; attempt++ {
		ts := lo + t.int64N(hi-lo+1)
		day := civil(time.Unix(ts, 0).In(loc))
		if start, end, ok := t.blockBounds(day); ok {
			t.log.Debug("random date found",
				slog.String("date", day.Format(ymdLayout)),
				slog.Int("attempts", attempt))
			return t.decorate(t.renderBlock(start, end)), nil
		}
	}

	day := candidates[t.intN(len(candidates))]
	t.log.Debug("random sampling exhausted, picking a history date directly",
		slog.Int("attempts", t.opts.MaxRandomAttempts),
		slog.String("date", day.Format(ymdLayout)))
	start, end, _ := t.blockBounds(day)
	return t.decorate(t.renderBlock(start, end)), nil
}

// distinctInRange returns the unique dates within [from, to], in first-seen order.
func distinctInRange(dates []time.Time, from, to time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	var out []time.Time
	for _, d := range dates {
		if d.Before(from) || d.After(to) || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

func (t *Transcript) int64N(n int64) int64 {
	if t.opts.Rand != nil {
		return t.opts.Rand.Int64N(n)
	}
	return rand.Int64N(n)
}

func (t *Transcript) intN(n int) int {
	if t.opts.Rand != nil {
		return t.opts.Rand.IntN(n)
	}
	return rand.IntN(n)
}
