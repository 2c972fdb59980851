package keeper

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/tailpane/internal/eventloop"
	"github.com/five82/tailpane/internal/logging"
)

// Geometry is the rendered size of the text component at the moment of a
// resize notification.
type Geometry struct {
	Height    int
	Width     int
	RowHeight int
	TopInset  int
}

// Layout maps a point in the rendered text to a buffer offset. The offset is
// always the last character of a rendered row. ok is false when no layout is
// available yet.
type Layout interface {
	RowAlignedOffsetFor(x, y int) (offset int, ok bool)
}

// Host is the text component the keeper is attached to.
type Host interface {
	Layout
	Geometry() Geometry
}

// Buffer is the text the keeper trims.
type Buffer interface {
	Len() int
	RemovePrefix(n int)
}

// Range is the scroll position the keeper compensates after a trim.
type Range interface {
	Value() int
	SetValue(v int)
}

// Trim records what one eviction did.
type Trim struct {
	ChopHeight  int
	LastOffset  int
	Removed     int
	RowsChopped int
	RealChop    int
	OldValue    int
	NewValue    int
}

// Keeper bounds the rendered height of a text component by removing whole
// rows from the head of its buffer, then shifts the scroll value by the
// removed height so the visible rows stay where they were.
type Keeper struct {
	policy guardedPolicy

	host  Host
	buf   Buffer
	rng   Range
	sched eventloop.Scheduler
	log   logrus.FieldLogger

	observers []func(Trim)
}

// Option customizes a Keeper.
type Option func(*Keeper)

// WithLogger sets the logger used for trim records.
func WithLogger(l logrus.FieldLogger) Option {
	return func(k *Keeper) { k.log = l }
}

// WithTrimObserver registers fn to be called after each trim, on the loop.
func WithTrimObserver(fn func(Trim)) Option {
	return func(k *Keeper) {
		if fn != nil {
			k.observers = append(k.observers, fn)
		}
	}
}

// New returns a keeper enforcing policy. It fails with ErrInvalidArgument when
// the policy is invalid.
func New(host Host, buf Buffer, rng Range, sched eventloop.Scheduler, policy Policy, opts ...Option) (*Keeper, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("new keeper: %w", err)
	}
	if host == nil || buf == nil || rng == nil || sched == nil {
		return nil, fmt.Errorf("new keeper: nil collaborator: %w", ErrInvalidArgument)
	}
	k := &Keeper{host: host, buf: buf, rng: rng, sched: sched}
	k.policy.store(policy)
	for _, opt := range opts {
		opt(k)
	}
	k.log = logging.OrDiscard(k.log)
	return k, nil
}

// Policy returns the current limits. Safe from any goroutine.
func (k *Keeper) Policy() Policy {
	return k.policy.load()
}

// Configure replaces the limits and re-evaluates the current height as if the
// component had just been resized. Safe from any goroutine; the re-evaluation
// runs on the loop.
func (k *Keeper) Configure(heightLimit, newHeight int) error {
	p, err := NewPolicy(heightLimit, newHeight)
	if err != nil {
		return fmt.Errorf("configure keeper: %w", err)
	}
	k.policy.store(p)
	eventloop.Do(k.sched, k.Reevaluate)
	return nil
}

// Reevaluate runs the trim check against the host's current geometry.
// Loop only.
func (k *Keeper) Reevaluate() {
	k.OnRenderedHeightChanged(k.host.Geometry())
}

// OnRenderedHeightChanged trims the buffer head when g.Height has reached the
// height limit. It reports the trim and whether one happened. Loop only.
func (k *Keeper) OnRenderedHeightChanged(g Geometry) (Trim, bool) {
	p := k.policy.load()
	if g.Height < p.HeightLimit || g.RowHeight <= 0 {
		return Trim{}, false
	}

	t := Trim{ChopHeight: g.Height - p.NewHeight}

	// Bottom-right corner of the region to drop.
	offset, ok := k.host.RowAlignedOffsetFor(g.Width-1, t.ChopHeight-1)
	if !ok || offset < 0 {
		k.log.WithField("chop_height", t.ChopHeight).Debug("trim skipped: no layout")
		return Trim{}, false
	}
	t.LastOffset = offset

	bufLen := k.buf.Len()
	if bufLen <= 0 {
		return Trim{}, false
	}
	t.Removed = min(offset+1, bufLen)

	t.OldValue = k.rng.Value()
	k.buf.RemovePrefix(t.Removed)

	t.RowsChopped, t.RealChop = realChop(t.ChopHeight, g.RowHeight, g.TopInset)
	t.NewValue = t.OldValue - t.RealChop
	k.rng.SetValue(t.NewValue)

	k.log.WithFields(logrus.Fields{
		"height":       g.Height,
		"removed":      t.Removed,
		"rows_chopped": t.RowsChopped,
		"real_chop":    t.RealChop,
		"value":        t.NewValue,
	}).Debug("trimmed buffer head")

	for _, fn := range k.observers {
		fn(t)
	}
	return t, true
}

// realChop rounds the chopped height up to whole rows so the scroll
// compensation is never smaller than what was removed.
func realChop(chopHeight, rowHeight, topInset int) (rows, height int) {
	rows = floorDiv(chopHeight-topInset, rowHeight) + 1
	return rows, rowHeight*rows + topInset
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
