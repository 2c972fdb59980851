package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/five82/tailpane/internal/eventloop"
)

type recordingAppender struct {
	mu       sync.Mutex
	appends  []string
	onAppend func(string)
}

func (r *recordingAppender) Append(text string) {
	r.mu.Lock()
	r.appends = append(r.appends, text)
	r.mu.Unlock()
	if r.onAppend != nil {
		r.onAppend(text)
	}
}

func (r *recordingAppender) joined() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.appends, "")
}

type manualScheduler struct {
	mu     sync.Mutex
	onLoop bool
	queued []func()
}

func (s *manualScheduler) Schedule(task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, task)
}

func (s *manualScheduler) OnLoop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onLoop
}

func (s *manualScheduler) run() {
	s.mu.Lock()
	tasks := s.queued
	s.queued = nil
	s.onLoop = true
	s.mu.Unlock()
	for _, task := range tasks {
		task()
	}
	s.mu.Lock()
	s.onLoop = false
	s.mu.Unlock()
}

func TestPublish_OffLoopCoalescesIntoOneAppend(t *testing.T) {
	out := &recordingAppender{}
	sched := &manualScheduler{}
	b := NewBridge(out, sched)

	b.Publish("a")
	b.Publish("b")
	b.Publish("c")
	require.Len(t, sched.queued, 1, "one deferred flush outstanding")
	require.Empty(t, out.appends)

	sched.run()
	require.Equal(t, []string{"abc"}, out.appends)
	require.Equal(t, Stats{Published: 3, Flushes: 1, Appends: 1}, b.Stats())
	require.Equal(t, 0, b.Pending())
}

func TestPublish_SingleMessageMatchesBatchedResult(t *testing.T) {
	single := &recordingAppender{}
	sched := &manualScheduler{}
	b := NewBridge(single, sched)
	b.Publish("only\n")
	sched.run()
	require.Equal(t, []string{"only\n"}, single.appends)

	batched := &recordingAppender{}
	sched2 := &manualScheduler{}
	b2 := NewBridge(batched, sched2)
	b2.Publish("on")
	b2.Publish("ly\n")
	sched2.run()
	require.Equal(t, single.joined(), batched.joined())
}

func TestPublish_OnLoopFlushesImmediately(t *testing.T) {
	out := &recordingAppender{}
	sched := &manualScheduler{onLoop: true}
	b := NewBridge(out, sched)

	b.Publish("now\n")
	require.Equal(t, []string{"now\n"}, out.appends)
	require.Empty(t, sched.queued)
}

func TestPublish_SchedulesAgainAfterFlush(t *testing.T) {
	out := &recordingAppender{}
	sched := &manualScheduler{}
	b := NewBridge(out, sched)

	b.Publish("1")
	sched.run()
	b.Publish("2")
	require.Len(t, sched.queued, 1)
	sched.run()
	require.Equal(t, []string{"1", "2"}, out.appends)
}

func TestFlush_EmptyIsNoop(t *testing.T) {
	out := &recordingAppender{}
	b := NewBridge(out, &manualScheduler{onLoop: true})
	b.Flush()
	require.Empty(t, out.appends)
	require.Equal(t, uint64(0), b.Stats().Flushes)
}

func TestPublish_FromInsideAppendIsDeferred(t *testing.T) {
	sched := &manualScheduler{onLoop: true}
	out := &recordingAppender{}
	b := NewBridge(out, sched)
	out.onAppend = func(text string) {
		if text == "outer" {
			b.Publish("inner")
		}
	}

	b.Publish("outer")
	require.Equal(t, []string{"outer"}, out.appends)
	require.Len(t, sched.queued, 1)

	sched.run()
	require.Equal(t, []string{"outer", "inner"}, out.appends)
}

func TestPublish_ConcurrentProducersKeepPerProducerOrder(t *testing.T) {
	loop := eventloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	out := &recordingAppender{}
	b := NewBridge(out, loop)

	const producers, each = 8, 500
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				b.Publish(fmt.Sprintf("%d:%d\n", p, i))
			}
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return strings.Count(out.joined(), "\n") == producers*each
	}, 5*time.Second, 10*time.Millisecond)

	next := make([]int, producers)
	for _, line := range strings.Split(strings.TrimSuffix(out.joined(), "\n"), "\n") {
		var p, i int
		_, err := fmt.Sscanf(line, "%d:%d", &p, &i)
		require.NoError(t, err)
		require.Equal(t, next[p], i, "producer %d out of order", p)
		next[p]++
	}

	stats := b.Stats()
	require.Equal(t, uint64(producers*each), stats.Published)
	require.LessOrEqual(t, stats.Appends, stats.Published)
}

func TestHook_PublishesFormattedEntries(t *testing.T) {
	out := &recordingAppender{}
	b := NewBridge(out, &manualScheduler{onLoop: true})

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(NewHook(b))
	logger.WithField("component", "test").Info("hello pane")

	require.Len(t, out.appends, 1)
	line := out.appends[0]
	require.Contains(t, line, "level=info")
	require.Contains(t, line, `msg="hello pane"`)
	require.Contains(t, line, "component=test")
	require.True(t, strings.HasSuffix(line, "\n"))
}

func TestHook_Levels(t *testing.T) {
	b := NewBridge(&recordingAppender{}, &manualScheduler{})
	require.Equal(t, logrus.AllLevels, NewHook(b).Levels())
	require.Equal(t, []logrus.Level{logrus.ErrorLevel}, NewHook(b, logrus.ErrorLevel).Levels())
}

func TestHook_CustomFormatter(t *testing.T) {
	out := &recordingAppender{}
	b := NewBridge(out, &manualScheduler{onLoop: true})
	hook := NewHook(b)
	hook.SetFormatter(&logrus.JSONFormatter{})

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(hook)
	logger.Warn("json please")

	require.Len(t, out.appends, 1)
	require.Contains(t, out.appends[0], `"msg":"json please"`)
}
