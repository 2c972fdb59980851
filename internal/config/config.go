package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tailpane/internal/keeper"
)

// Config captures the pane limits and the demo sources.
type Config struct {
	HeightLimit   int
	NewHeight     int
	RowHeight     int
	TopInset      int
	Tracking      bool
	LogLevel      string
	Producers     int
	Interval      time.Duration
	FollowFile    string
	BackfillLines int
}

const (
	defaultConfigPath    = "~/.config/tailpane/config.toml"
	defaultRowHeight     = 1
	defaultLogLevel      = "info"
	defaultProducers     = 2
	defaultInterval      = 250 * time.Millisecond
	defaultBackfillLines = 200
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		HeightLimit:   keeper.DefaultHeightLimit,
		NewHeight:     keeper.DefaultNewHeight,
		RowHeight:     defaultRowHeight,
		Tracking:      true,
		LogLevel:      defaultLogLevel,
		Producers:     defaultProducers,
		Interval:      defaultInterval,
		BackfillLines: defaultBackfillLines,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		HeightLimit   *int   `toml:"height_limit"`
		NewHeight     *int   `toml:"new_height"`
		RowHeight     *int   `toml:"row_height"`
		TopInset      *int   `toml:"top_inset"`
		Tracking      *bool  `toml:"tracking"`
		LogLevel      string `toml:"log_level"`
		Producers     *int   `toml:"producers"`
		Interval      string `toml:"interval"`
		FollowFile    string `toml:"follow_file"`
		BackfillLines *int   `toml:"backfill_lines"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setInt(&cfg.HeightLimit, raw.HeightLimit)
	setInt(&cfg.NewHeight, raw.NewHeight)
	setInt(&cfg.RowHeight, raw.RowHeight)
	setInt(&cfg.TopInset, raw.TopInset)
	setInt(&cfg.Producers, raw.Producers)
	setInt(&cfg.BackfillLines, raw.BackfillLines)
	if raw.Tracking != nil {
		cfg.Tracking = *raw.Tracking
	}

	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if interval := strings.TrimSpace(raw.Interval); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: interval: %w", err)
		}
		cfg.Interval = d
	}
	if follow := strings.TrimSpace(raw.FollowFile); follow != "" {
		cfg.FollowFile = mustExpand(follow)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the height policy and the source settings.
func (c Config) Validate() error {
	if _, err := keeper.NewPolicy(c.HeightLimit, c.NewHeight); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if c.RowHeight < 1 {
		return fmt.Errorf("validate config: row_height %d must be positive: %w", c.RowHeight, keeper.ErrInvalidArgument)
	}
	if c.TopInset < 0 {
		return fmt.Errorf("validate config: top_inset %d must not be negative: %w", c.TopInset, keeper.ErrInvalidArgument)
	}
	if c.Producers < 0 {
		return fmt.Errorf("validate config: producers %d must not be negative: %w", c.Producers, keeper.ErrInvalidArgument)
	}
	if c.Producers > 0 && c.Interval <= 0 {
		return fmt.Errorf("validate config: interval %s must be positive: %w", c.Interval, keeper.ErrInvalidArgument)
	}
	return nil
}

// Policy returns the keeper policy described by the config.
func (c Config) Policy() keeper.Policy {
	return keeper.Policy{HeightLimit: c.HeightLimit, NewHeight: c.NewHeight}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
