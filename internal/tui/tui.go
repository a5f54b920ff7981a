package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/Zuo-Peng/line-history/internal/history"
	"github.com/Zuo-Peng/line-history/internal/render"
)

type Options struct {
	Path    string // transcript file, shown in the title and watched
	Watch   bool
	History history.Options
	Now     func() time.Time
	Logger  *slog.Logger
}

type tuiMode int

const (
	modeBrowse tuiMode = iota
	modeSearch
)

// model

type model struct {
	tr          *history.Transcript
	opts        Options
	log         *slog.Logger
	watcher     *fsnotify.Watcher
	mode        tuiMode
	day         time.Time
	previewKind previewKind
	keyword     string
	plain       string // last query output, without colour
	searchInput textinput.Model
	preview     viewport.Model
	status      string
	statusErr   bool
	width       int
	height      int
	ready       bool
	quitting    bool

	// copyFn writes to the clipboard.
	copyFn func(string) error
}

func initialModel(tr *history.Transcript, opts Options) model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "keyword..."
	ti.Prompt = "/ "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	day := dateOf(opts.Now())
	if dates := tr.Dates(); len(dates) > 0 {
		day = dates[len(dates)-1]
	}

	m := model{
		tr:          tr,
		opts:        opts,
		log:         logger,
		day:         day,
		searchInput: ti,
		preview:     newViewport(0, 0),
		copyFn:      clipboard.WriteAll,
	}
	m.refreshPreview()
	return m
}

// Run starts the browser and blocks until it exits.
func Run(tr *history.Transcript, opts Options) error {
	m := initialModel(tr, opts)
	if opts.Watch && opts.Path != "" {
		w, err := newWatcher(opts.Path)
		if err != nil {
			return err
		}
		defer w.Close()
		m.watcher = w
		m.log.Debug("watching transcript", slog.String("path", opts.Path))
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Init starts the file watcher, when there is one.
func (m model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForChange(m.watcher, m.opts.Path, m.opts.History)
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeSearch {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, nil

	case transcriptReloadedMsg:
		if msg.err != nil {
			m.setStatus("reload failed: "+msg.err.Error(), true)
		} else {
			m.tr = msg.tr
			m.refreshPreview()
			m.setStatus(fmt.Sprintf("reloaded %d lines", m.tr.Len()), false)
			m.log.Debug("transcript reloaded", slog.Int("lines", m.tr.Len()))
		}
		return m, m.Init()

	case watchErrMsg:
		m.setStatus("watch: "+msg.err.Error(), true)
		m.log.Warn("transcript watcher error", slog.String("error", msg.err.Error()))
		return m, m.Init()
	}

	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.searchInput.Blur()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.keyword = m.searchInput.Value()
		m.previewKind = previewKeyword
		m.refreshPreview()
		m.setStatus(fmt.Sprintf("keyword %q", m.keyword), false)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.PrevDay):
		m.moveTo(m.day.AddDate(0, 0, -1))
	case key.Matches(msg, keys.NextDay):
		m.moveTo(m.day.AddDate(0, 0, 1))
	case key.Matches(msg, keys.PrevWeek):
		m.moveTo(m.day.AddDate(0, 0, -7))
	case key.Matches(msg, keys.NextWeek):
		m.moveTo(m.day.AddDate(0, 0, 7))
	case key.Matches(msg, keys.PrevMonth):
		m.moveTo(shiftMonth(m.day, -1))
	case key.Matches(msg, keys.NextMonth):
		m.moveTo(shiftMonth(m.day, 1))
	case key.Matches(msg, keys.Today):
		m.moveTo(dateOf(m.opts.Now()))

	case key.Matches(msg, keys.Random):
		out, err := m.tr.SearchByRandom()
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		if d, ok := dayFromBlock(out, m.markerGlyph()); ok {
			m.day = d
		}
		m.previewKind = previewDay
		m.setPreview(out, render.KindBlock)
		m.setStatus("random "+m.day.Format("2006-01-02"), false)

	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case key.Matches(msg, keys.Copy):
		if err := m.copyFn(m.plain); err != nil {
			m.setStatus("copy failed: "+err.Error(), true)
		} else {
			m.setStatus("copied to clipboard", false)
		}

	case key.Matches(msg, keys.PreviewUp):
		m.preview.LineUp(m.panelHeight() / 2)
	case key.Matches(msg, keys.PreviewDn):
		m.preview.LineDown(m.panelHeight() / 2)
	case key.Matches(msg, keys.PageUp):
		m.preview.LineUp(m.panelHeight())
	case key.Matches(msg, keys.PageDown):
		m.preview.LineDown(m.panelHeight())
	}
	return m, nil
}

// moveTo puts the cursor on day and shows its block.
func (m *model) moveTo(day time.Time) {
	m.day = dateOf(day)
	m.previewKind = previewDay
	m.status = ""
	m.statusErr = false
	m.refreshPreview()
}

func (m *model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	calW := m.calendarPanelWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	var top string
	if m.mode == modeSearch {
		top = m.searchInput.View()
	} else {
		top = styleTitle.Render(truncate(m.title(), m.width))
	}

	calPanel := stylePanelBorder.
		Width(calW).
		Height(panelH).
		Render(m.renderCalendar(calW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, calPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, top, panels, m.statusBar())
}

func (m model) title() string {
	name := m.opts.Path
	if name == "" {
		name = "transcript"
	}
	if m.previewKind == previewKeyword {
		return fmt.Sprintf("%s  keyword: %s", name, m.keyword)
	}
	return fmt.Sprintf("%s  %s", name, m.day.Format("2006-01-02 (Mon)"))
}

// helper methods

func (m model) calendarPanelWidth() int {
	return calendarWidth + 2
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	// rest of the screen, minus both panels' borders
	w := m.width - m.calendarPanelWidth() - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract title row (1) + status bar (1) + borders (2)
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func (m model) statusBar() string {
	if m.status != "" {
		if m.statusErr {
			return styleStatusError.Render(m.status)
		}
		return styleStatusBar.Render(m.status)
	}
	parts := []string{
		"←→↑↓/hjkl move",
		"[ ] month",
		"t today",
		"r random",
		"/ keyword",
		"y copy",
		"C-u/C-d scroll",
		"Esc quit",
	}
	if m.watcher != nil {
		parts = append(parts, "watching")
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
