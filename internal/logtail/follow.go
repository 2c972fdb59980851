package logtail

import (
	"context"
	"fmt"
	"io"

	"github.com/nxadm/tail"
)

// Follow tails path from offset until ctx is done, passing each complete line
// to fn without its line ending. The file may not exist yet; it is picked up
// when created, and reopened when rotated or truncated. Per-line read errors
// go to onErr, which may be nil; after a failure the next good line reports a
// nil error so callers can clear their failure state.
func Follow(ctx context.Context, path string, offset int64, fn func(line string), onErr func(error)) error {
	t, err := tail.TailFile(path, tail.Config{
		Location:      &tail.SeekInfo{Offset: offset, Whence: io.SeekStart},
		ReOpen:        true,
		MustExist:     false,
		Follow:        true,
		CompleteLines: true,
		Logger:        tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("follow log: %w", err)
	}
	defer t.Cleanup()

	report := func(err error) {
		if onErr != nil {
			onErr(err)
		}
	}
	failing := false
	for {
		select {
		case <-ctx.Done():
			// Keep the tailer from blocking on a send while it shuts down.
			go func() {
				for range t.Lines {
				}
			}()
			_ = t.Stop()
			return ctx.Err()

		case line, ok := <-t.Lines:
			if !ok {
				if err := t.Wait(); err != nil {
					return fmt.Errorf("follow log: %w", err)
				}
				return nil
			}
			if line.Err != nil {
				failing = true
				report(line.Err)
				continue
			}
			if failing {
				failing = false
				report(nil)
			}
			fn(trimEOL(line.Text))
		}
	}
}
