package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/Zuo-Peng/line-history/internal/errors"
	"github.com/Zuo-Peng/line-history/internal/history"
)

// OpenDay opens the transcript file in $EDITOR (default less) at the header
// line of day. A day without history is NO_HISTORY_IN_RANGE.
func OpenDay(tr *history.Transcript, path string, day time.Time) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}

	lineNum, ok := tr.HeaderLine(day)
	if !ok {
		return errors.NewNoHistoryOn(day)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	name, args := editorArgs(editor, path, lineNum)
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// editorArgs builds the command line that opens filePath at lineNum.
func editorArgs(editor, filePath string, lineNum int) (string, []string) {
	base := editor
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}

	switch {
	case strings.Contains(base, "vim") || strings.Contains(base, "nvim"):
		return editor, []string{"+" + strconv.Itoa(lineNum), filePath}
	case strings.Contains(base, "code"):
		return editor, []string{"--goto", filePath + ":" + strconv.Itoa(lineNum)}
	case strings.Contains(base, "less"):
		return editor, []string{"+" + strconv.Itoa(lineNum), filePath}
	default:
		return editor, []string{filePath}
	}
}
