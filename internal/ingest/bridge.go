package ingest

import (
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/five82/tailpane/internal/eventloop"
	"github.com/five82/tailpane/internal/logging"
)

// Appender receives flushed text. Only called on the loop.
type Appender interface {
	Append(text string)
}

// Stats counts bridge activity.
type Stats struct {
	Published uint64
	Flushes   uint64
	Appends   uint64
}

// Bridge moves messages from any goroutine into a buffer owned by the loop.
type Bridge struct {
	queue Queue
	out   Appender
	sched eventloop.Scheduler
	log   logrus.FieldLogger

	// pending is set while a deferred flush is queued on the loop.
	pending atomic.Bool
	// flushing guards against publishes made from inside an append.
	flushing bool
	scratch  strings.Builder

	published atomic.Uint64
	flushes   atomic.Uint64
	appends   atomic.Uint64
}

// Option customizes a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Bridge) { b.log = l }
}

// NewBridge returns a bridge appending to out on sched's loop.
func NewBridge(out Appender, sched eventloop.Scheduler, opts ...Option) *Bridge {
	b := &Bridge{out: out, sched: sched}
	for _, opt := range opts {
		opt(b)
	}
	b.log = logging.OrDiscard(b.log)
	return b
}

// Publish queues message. On the loop it is flushed before Publish returns;
// elsewhere a flush is scheduled. Publish never blocks on a flush.
func (b *Bridge) Publish(message string) {
	b.queue.Push(message)
	b.published.Add(1)

	if b.sched.OnLoop() && !b.flushing {
		b.Flush()
		return
	}
	if b.pending.CompareAndSwap(false, true) {
		b.sched.Schedule(b.deferredFlush)
	}
}

func (b *Bridge) deferredFlush() {
	// Clear before draining so a message pushed mid-drain schedules again.
	b.pending.Store(false)
	b.Flush()
}

// Flush appends everything queued as a single mutation. Loop only.
func (b *Bridge) Flush() {
	if b.flushing {
		return
	}
	b.flushing = true
	defer func() { b.flushing = false }()

	switch n := b.queue.Len(); {
	case n <= 0:
		return
	case n == 1:
		msg, ok := b.queue.Pop()
		if !ok {
			return
		}
		b.append(msg)
	default:
		b.scratch.Reset()
		taken := b.queue.DrainTo(&b.scratch)
		if taken == 0 {
			return
		}
		b.log.WithField("messages", taken).Trace("coalesced flush")
		b.append(b.scratch.String())
	}
}

// Pending returns the number of queued, unflushed messages.
func (b *Bridge) Pending() int {
	return b.queue.Len()
}

// Stats returns activity counters. Safe from any goroutine.
func (b *Bridge) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Flushes:   b.flushes.Load(),
		Appends:   b.appends.Load(),
	}
}

func (b *Bridge) append(text string) {
	b.flushes.Add(1)
	if text == "" {
		return
	}
	b.appends.Add(1)
	b.out.Append(text)
}
