package tui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Zuo-Peng/line-history/internal/history"
)

const reloadDelay = 300 * time.Millisecond

// transcriptReloadedMsg carries a transcript re-read after its file changed.
type transcriptReloadedMsg struct {
	tr  *history.Transcript
	err error
}

type watchErrMsg struct {
	err error
}

// newWatcher watches the directory holding path, so editors that replace
// the file by rename are still seen.
func newWatcher(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return w, nil
}

// waitForChange blocks until path is written or recreated, waits for the
// writes to settle, then reloads the transcript.
func waitForChange(w *fsnotify.Watcher, path string, opts history.Options) tea.Cmd {
	path = filepath.Clean(path)
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return nil
				}
				if !isChange(event, path) {
					continue
				}
				settle(w.Events, reloadDelay)
				tr, err := history.LoadFile(path, opts)
				return transcriptReloadedMsg{tr: tr, err: err}

			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func isChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// settle drains events until none arrive for d.
func settle(events <-chan fsnotify.Event, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			timer.Reset(d)
		case <-timer.C:
			return
		}
	}
}
