package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Zuo-Peng/line-history/internal/history"
	"github.com/Zuo-Peng/line-history/internal/render"
)

type previewKind int

const (
	previewDay previewKind = iota
	previewKeyword
)

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// refreshPreview recomputes the preview for the current mode and cursor.
func (m *model) refreshPreview() {
	var (
		out  string
		kind render.Kind
	)
	switch m.previewKind {
	case previewKeyword:
		out = m.tr.SearchByKeyword(m.keyword)
		kind = render.KindKeyword
	default:
		out = m.tr.SearchByDate(m.day)
		kind = render.KindBlock
	}
	m.setPreview(out, kind)
}

func (m *model) setPreview(out string, kind render.Kind) {
	m.plain = out
	m.preview.SetContent(render.Render(out, kind, render.Options{
		Color:       true,
		Width:       m.previewWidth(),
		Keyword:     m.keyword,
		MarkerGlyph: m.markerGlyph(),
	}))
	m.preview.GotoTop()
}

func (m model) markerGlyph() string {
	if !m.opts.History.Marker {
		return ""
	}
	if m.opts.History.MarkerGlyph == "" {
		return history.DefaultMarkerGlyph
	}
	return m.opts.History.MarkerGlyph
}

// dayFromBlock reads the date of the header that opens a block result.
func dayFromBlock(out, glyph string) (time.Time, bool) {
	first, _, _ := strings.Cut(out, "\n")
	first = strings.TrimPrefix(first, glyph)
	if !history.IsHeader(first) {
		return time.Time{}, false
	}
	d, err := history.ParseDate(first[:10])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
