package eventloop

import (
	"context"
	"sync"
	"sync/atomic"
)

// Scheduler defers work onto the single goroutine that owns pane state.
type Scheduler interface {
	// Schedule queues task to run later on the loop goroutine. It never blocks.
	Schedule(task func())
	// OnLoop reports whether the caller is running on the loop goroutine.
	OnLoop() bool
}

// Do runs task immediately when already on the loop, otherwise schedules it.
func Do(s Scheduler, task func()) {
	if s.OnLoop() {
		task()
		return
	}
	s.Schedule(task)
}

// Loop is a channel-fed single consumer of tasks. Tasks run one at a time, in
// the order they were scheduled, on the goroutine that called Run.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	owner   Owner
	ran     atomic.Uint64
}

var _ Scheduler = (*Loop)(nil)

// New returns a loop that is not yet running.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Schedule queues task. Tasks scheduled before Run starts are kept and run
// once it does. A nil task is ignored.
func (l *Loop) Schedule(task func()) {
	if task == nil {
		return
	}
	l.mu.Lock()
	l.pending = append(l.pending, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// OnLoop reports whether the caller is the goroutine executing Run.
func (l *Loop) OnLoop() bool {
	return l.owner.Held()
}

// Executed returns the number of tasks run so far.
func (l *Loop) Executed() uint64 {
	return l.ran.Load()
}

// Run consumes tasks until ctx is done and returns ctx.Err(). Only one Run may
// be active at a time.
func (l *Loop) Run(ctx context.Context) error {
	l.owner.Claim()
	defer l.owner.Release()

	for {
		if err := l.drain(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Bind makes the calling goroutine the loop goroutine without running it.
// Hosts with their own event loop call Bind once from that loop, then Drain
// whenever Wake fires.
func (l *Loop) Bind() {
	l.owner.Claim()
}

// Wake fires after tasks are scheduled. Several schedules may share one wake.
func (l *Loop) Wake() <-chan struct{} {
	return l.wake
}

// Drain runs every queued task, including tasks queued while draining, and
// returns how many ran. It must be called from the bound goroutine.
func (l *Loop) Drain() int {
	before := l.ran.Load()
	_ = l.drain(context.Background())
	return int(l.ran.Load() - before)
}

func (l *Loop) drain(ctx context.Context) error {
	for {
		batch := l.take()
		if len(batch) == 0 {
			return nil
		}
		for i, task := range batch {
			if err := ctx.Err(); err != nil {
				l.requeue(batch[i:])
				return err
			}
			task()
			l.ran.Add(1)
		}
	}
}

func (l *Loop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	batch := l.pending
	l.pending = nil
	return batch
}

// requeue puts unrun tasks back in front of anything queued since.
func (l *Loop) requeue(tasks []func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(append([]func(){}, tasks...), l.pending...)
}
