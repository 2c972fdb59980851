package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/tailpane/internal/logtail"
	"github.com/five82/tailpane/internal/state"
)

// Publisher accepts text from any goroutine.
type Publisher interface {
	Publish(message string)
}

// StartFollower backfills the last backfill lines of path into pub, then
// follows the file from where the backfill stopped in a background goroutine
// until ctx is done. Read failures are recorded in store and logged once per
// failure streak.
func StartFollower(ctx context.Context, log logrus.FieldLogger, pub Publisher, store *state.Store, path string, backfill int) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	lines, offset, err := logtail.Read(path, backfill)
	if err != nil {
		return fmt.Errorf("follow %s: %w", path, err)
	}
	if len(lines) > 0 {
		pub.Publish(strings.Join(lines, "\n") + "\n")
	}

	entry := log.WithField("file", path)
	failing := false
	report := func(err error) {
		store.ReportSource(err)
		switch {
		case err != nil && !failing:
			entry.WithError(err).Warn("follow failed")
		case err == nil && failing:
			entry.Info("follow recovered")
		}
		failing = err != nil
	}

	go func() {
		err := logtail.Follow(ctx, path, offset, func(line string) {
			pub.Publish(line + "\n")
		}, report)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			store.ReportSource(err)
			entry.WithError(err).Error("follow stopped")
		}
	}()
	entry.WithField("backfill", len(lines)).Debug("following file")
	return nil
}
