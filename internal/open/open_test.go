package open

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/line-history/internal/errors"
	"github.com/Zuo-Peng/line-history/internal/history"
)

func TestEditorArgs(t *testing.T) {
	tests := []struct {
		editor   string
		wantArgs []string
	}{
		{"vim", []string{"+12", "/tmp/h.txt"}},
		{"/usr/bin/nvim", []string{"+12", "/tmp/h.txt"}},
		{"code", []string{"--goto", "/tmp/h.txt:12"}},
		{"less", []string{"+12", "/tmp/h.txt"}},
		{"nano", []string{"/tmp/h.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			name, args := editorArgs(tt.editor, "/tmp/h.txt", 12)
			assert.Equal(t, tt.editor, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOpenDay_MissingFile(t *testing.T) {
	tr, err := history.New("2023/04/01(Sat)\nhi\n", history.Options{})
	require.NoError(t, err)

	err = OpenDay(tr, filepath.Join(t.TempDir(), "absent.txt"), time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	require.Contains(t, err.Error(), "file not found")
}

func TestOpenDay_NoHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.txt")
	require.NoError(t, os.WriteFile(path, []byte("2023/04/01(Sat)\nhi\n"), 0o644))
	tr, err := history.LoadFile(path, history.Options{})
	require.NoError(t, err)

	err = OpenDay(tr, path, time.Date(2023, 4, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, errors.Is(err, errors.ErrNoHistoryInRange))
}
