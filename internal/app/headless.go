package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/tailpane/internal/eventloop"
	"github.com/five82/tailpane/internal/logging"
	"github.com/five82/tailpane/internal/state"
)

const (
	defaultHeadlessWidth = 80
	defaultHeadlessRows  = 24
	defaultReportEvery   = time.Second
)

// RunHeadless hosts the pane on a plain event loop with a fixed geometry and
// reports its counters to opts.Out until ctx is done or opts.Duration
// elapses. It is the host used when stdout is not a terminal.
func RunHeadless(ctx context.Context, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	width, rows := opts.Width, opts.Rows
	if width <= 0 {
		width = defaultHeadlessWidth
	}
	if rows <= 0 {
		rows = defaultHeadlessRows
	}
	every := opts.ReportEvery
	if every <= 0 {
		every = defaultReportEvery
	}

	loop := eventloop.New()
	s, err := newSession(opts, loop)
	if err != nil {
		return err
	}
	report, err := logging.New(out, "info")
	if err != nil {
		return fmt.Errorf("init report logging: %w", err)
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if opts.Duration > 0 {
		runCtx, cancel = context.WithTimeout(ctx, opts.Duration)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	loop.Schedule(func() { s.pane.Relayout(width, rows) })

	producers, err := s.start(runCtx)
	if err != nil {
		return err
	}

	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
			}
			loop.Schedule(func() { s.store.Update(s.pane.Stats()) })
			logSnapshot(report, "pane", s.store.Snapshot(), producers)
		}
	}()

	err = loop.Run(runCtx)
	cancel()
	producers.Wait()
	<-reporterDone

	// The loop has stopped, so this goroutine is the only one left reading
	// pane state.
	s.store.Update(s.pane.Stats())
	logSnapshot(report, "final", s.store.Snapshot(), producers)

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func logSnapshot(log logrus.FieldLogger, msg string, snap state.Snapshot, producers *Producers) {
	if !snap.HasStats {
		return
	}
	st := snap.Pane
	fields := logrus.Fields{
		"runes":     st.Runes,
		"rows":      st.Rows,
		"height":    st.Height,
		"value":     st.Value,
		"extent":    st.Extent,
		"tracking":  st.Tracking,
		"trims":     st.Trims,
		"removed":   st.RemovedRunes,
		"published": st.Bridge.Published,
		"appends":   st.Bridge.Appends,
		"emitted":   producers.Emitted(),
	}
	entry := log.WithFields(fields)
	if snap.LastError != nil {
		entry = entry.WithError(snap.LastError)
	}
	if snap.IsStalled() {
		entry.Warn(msg + " (source stalled)")
		return
	}
	entry.Info(msg)
}
