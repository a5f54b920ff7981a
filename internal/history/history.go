// Package history parses an exported chat transcript and answers date,
// keyword, random-date, calendar and forward-range queries against it.
//
// A transcript is a sequence of lines. Lines shaped like `2023/04/01(Sat)`
// open a date block; every following line up to the next header belongs to
// that date. Queries rescan the lines on each call and never mutate the
// Transcript.
package history

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/Zuo-Peng/line-history/internal/errors"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

// bannerLines is the size of the export header: title, saved-at line, blank.
const bannerLines = 3

// Defaults applied to zero-valued Options fields.
const (
	DefaultMarkerGlyph       = "*"
	DefaultMaxRandomAttempts = 10000
)

// DefaultBannerMarkers are substrings that identify the first line of an export banner.
var DefaultBannerMarkers = []string{"のトーク履歴", "[LINE] Chat history"}

// Options configures a Transcript. The zero value is ready to use.
type Options struct {
	// Marker prefixes every output line with MarkerGlyph.
	Marker      bool
	MarkerGlyph string

	// Strict rejects text without any date header instead of answering "no history".
	Strict bool

	BannerMarkers     []string
	MaxRandomAttempts int

	// Location is used to turn random timestamps and Now into calendar dates.
	Location *time.Location
	Now      func() time.Time
	Rand     *rand.Rand

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.MarkerGlyph == "" {
		o.MarkerGlyph = DefaultMarkerGlyph
	}
	if o.BannerMarkers == nil {
		o.BannerMarkers = DefaultBannerMarkers
	}
	if o.MaxRandomAttempts <= 0 {
		o.MaxRandomAttempts = DefaultMaxRandomAttempts
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Transcript is an immutable, parsed chat history.
type Transcript struct {
	lines          []string
	bannerStripped bool
	opts           Options
	log            *slog.Logger
}

// New parses text into a Transcript.
func New(text string, opts Options) (*Transcript, error) {
	return Load(strings.NewReader(text), opts)
}

// LoadFile reads and parses the transcript at path.
func LoadFile(path string, opts Options) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Load reads a transcript from r. The caller is responsible for decoding; the
// bytes are taken as UTF-8 text and split on newlines (a trailing \r is dropped).
func Load(r io.Reader, opts Options) (*Transcript, error) {
	opts = opts.withDefaults()

	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	headers := 0
	for _, line := range lines {
		if IsHeader(line) {
			headers++
		}
	}
	if headers == 0 && opts.Strict {
		return nil, errors.NewInvalidFormat("no date header found; not a chat history export")
	}

	t := &Transcript{opts: opts, log: opts.Logger}
	if len(lines) > 0 && hasBanner(lines[0], opts.BannerMarkers) {
		t.bannerStripped = true
		lines = lines[min(bannerLines, len(lines)):]
	}
	t.lines = lines

	t.log.Debug("loaded transcript",
		slog.Int("lines", len(lines)),
		slog.Int("headers", headers),
		slog.Bool("banner", t.bannerStripped))
	return t, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func hasBanner(first string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(first, m) {
			return true
		}
	}
	return false
}

// Len returns the number of transcript lines after banner stripping.
func (t *Transcript) Len() int {
	return len(t.lines)
}

// Lines returns a copy of the transcript lines.
func (t *Transcript) Lines() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// BannerStripped reports whether an export banner was removed on load.
func (t *Transcript) BannerStripped() bool {
	return t.bannerStripped
}

// Dates returns the date of every header line, in file order.
func (t *Transcript) Dates() []time.Time {
	var dates []time.Time
	for _, line := range t.lines {
		if d, ok := parseHeader(line); ok {
			dates = append(dates, d)
		}
	}
	return dates
}

// HeaderLine returns the 1-based line number, in the original text, of the
// first header for day.
func (t *Transcript) HeaderLine(day time.Time) (int, bool) {
	start, _, ok := t.blockBounds(civil(day))
	if !ok {
		return 0, false
	}
	offset := 0
	if t.bannerStripped {
		offset = bannerLines
	}
	return start + offset + 1, true
}
