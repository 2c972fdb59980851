package ingest

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Hook is a logrus hook that formats each entry and publishes it to a Bridge,
// so application logs land in the pane.
type Hook struct {
	bridge    *Bridge
	formatter logrus.Formatter
	levels    []logrus.Level
}

// NewHook returns a hook for the given levels (all levels when none are given).
func NewHook(b *Bridge, levels ...logrus.Level) *Hook {
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}
	return &Hook{
		bridge: b,
		formatter: &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		},
		levels: levels,
	}
}

// SetFormatter replaces the entry formatter.
func (h *Hook) SetFormatter(f logrus.Formatter) {
	if f != nil {
		h.formatter = f
	}
}

func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

func (h *Hook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return fmt.Errorf("format log entry: %w", err)
	}
	h.bridge.Publish(string(line))
	return nil
}
