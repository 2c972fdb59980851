package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/five82/tailpane/internal/logging"
	"github.com/five82/tailpane/internal/state"
)

type recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *recorder) Publish(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func TestStartFollower_BackfillThenFollow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\nd\ne\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	store := &state.Store{}
	require.NoError(t, StartFollower(ctx, logging.Discard(), rec, store, path, 3))
	require.Equal(t, []string{"c\nd\ne\n"}, rec.all(), "backfill arrives as one message")

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("f\ng\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return strings.Join(rec.all(), "") == "c\nd\ne\nf\ng\n"
	}, 3*time.Second, 20*time.Millisecond)
	require.Nil(t, store.Snapshot().LastError)
}

func TestStartFollower_EmptyPathIsNoop(t *testing.T) {
	rec := &recorder{}
	require.NoError(t, StartFollower(context.Background(), logging.Discard(), rec, &state.Store{}, "  ", 10))
	require.Empty(t, rec.all())
}

func TestStartFollower_MissingFileWaits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.log")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	require.NoError(t, StartFollower(ctx, logging.Discard(), rec, &state.Store{}, path, 10))
	require.Empty(t, rec.all())

	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Join(rec.all(), "") == "hello\n"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestStartFollower_PartialLineIsNotBackfilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\npart"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	require.NoError(t, StartFollower(ctx, logging.Discard(), rec, &state.Store{}, path, 10))
	require.Equal(t, []string{"a\nb\n"}, rec.all())

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("ial\nnext\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return strings.Join(rec.all(), "") == "a\nb\npartial\nnext\n"
	}, 3*time.Second, 20*time.Millisecond)
	require.Never(t, func() bool {
		return strings.Count(strings.Join(rec.all(), ""), "next") > 1
	}, 200*time.Millisecond, 20*time.Millisecond)
}
