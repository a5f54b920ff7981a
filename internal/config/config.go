package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Zuo-Peng/line-history/internal/history"
)

type Config struct {
	Transcript        string   `toml:"transcript"`
	ExportDir         string   `toml:"export_dir"`
	Marker            bool     `toml:"marker"`
	MarkerGlyph       string   `toml:"marker_glyph"`
	Strict            bool     `toml:"strict"`
	MaxRandomAttempts int      `toml:"max_random_attempts"`
	BannerMarkers     []string `toml:"banner_markers"`
	LogLevel          string   `toml:"log_level"`
}

// DefaultPath returns ~/.config/lh/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lh", "config.toml"), nil
}

// Load reads the config at path, or at DefaultPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Transcript:        filepath.Join(home, "Documents", "line", "history.txt"),
		ExportDir:         filepath.Join(home, "Documents", "line"),
		MarkerGlyph:       history.DefaultMarkerGlyph,
		MaxRandomAttempts: history.DefaultMaxRandomAttempts,
		LogLevel:          "info",
	}

	cfgPath := path
	if cfgPath == "" {
		cfgPath = filepath.Join(home, ".config", "lh", "config.toml")
	}
	cfgPath = expandHome(cfgPath, home)
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	} else if path != "" {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}

	// expand ~ in paths
	cfg.Transcript = expandHome(cfg.Transcript, home)
	cfg.ExportDir = expandHome(cfg.ExportDir, home)

	if strings.TrimSpace(cfg.MarkerGlyph) == "" {
		cfg.MarkerGlyph = history.DefaultMarkerGlyph
	}
	if cfg.MaxRandomAttempts <= 0 {
		cfg.MaxRandomAttempts = history.DefaultMaxRandomAttempts
	}

	return cfg, nil
}

// HistoryOptions maps the config onto transcript options.
func (c *Config) HistoryOptions(logger *slog.Logger) history.Options {
	return history.Options{
		Marker:            c.Marker,
		MarkerGlyph:       c.MarkerGlyph,
		Strict:            c.Strict,
		BannerMarkers:     c.BannerMarkers,
		MaxRandomAttempts: c.MaxRandomAttempts,
		Logger:            logger,
	}
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
