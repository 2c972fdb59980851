// Package rangemodel models the vertical scroll range of a pane: a window of
// size Extent positioned at Value inside [Minimum, Maximum], plus the
// Adjusting flag that is set only while a person drags the scroll knob.
package rangemodel

// Range is a point-in-time copy of a model's fields.
type Range struct {
	Minimum   int
	Maximum   int
	Value     int
	Extent    int
	Adjusting bool
}

// TouchesMax reports whether the visible window reaches the end of the range.
func (r Range) TouchesMax() bool {
	return r.Value+r.Extent >= r.Maximum
}

// Model is the scroll range capability the keeper and tracker work against.
type Model interface {
	Snapshot() Range
	Value() int
	SetValue(v int)
	Adjusting() bool
	SetAdjusting(adjusting bool)
	// OnChange registers fn to run after any field changes.
	OnChange(fn func())
}

// Bounded is the default Model. Writes are normalized so that
// Minimum <= Value <= Value+Extent <= Maximum always holds.
// It is not safe for concurrent use.
type Bounded struct {
	r         Range
	listeners []func()
}

var _ Model = (*Bounded)(nil)

// NewBounded returns a model with the given fields, normalized.
func NewBounded(minimum, maximum, value, extent int) *Bounded {
	return &Bounded{r: normalize(Range{Minimum: minimum, Maximum: maximum, Value: value, Extent: extent})}
}

func (b *Bounded) OnChange(fn func()) {
	if fn != nil {
		b.listeners = append(b.listeners, fn)
	}
}

func (b *Bounded) Snapshot() Range { return b.r }
func (b *Bounded) Value() int      { return b.r.Value }
func (b *Bounded) Adjusting() bool { return b.r.Adjusting }

// SetValue moves the window, clamped to [Minimum, Maximum-Extent].
func (b *Bounded) SetValue(v int) {
	next := b.r
	next.Value = v
	b.set(next)
}

func (b *Bounded) SetAdjusting(adjusting bool) {
	next := b.r
	next.Adjusting = adjusting
	b.set(next)
}

// SetRange replaces the bounds, value and extent in one change notification.
// The Adjusting flag is left as is.
func (b *Bounded) SetRange(minimum, maximum, value, extent int) {
	b.set(Range{Minimum: minimum, Maximum: maximum, Value: value, Extent: extent, Adjusting: b.r.Adjusting})
}

func (b *Bounded) set(next Range) {
	next = normalize(next)
	if next == b.r {
		return
	}
	b.r = next
	for _, fn := range b.listeners {
		fn()
	}
}

func normalize(r Range) Range {
	if r.Maximum < r.Minimum {
		r.Maximum = r.Minimum
	}
	if r.Extent < 0 {
		r.Extent = 0
	}
	if span := r.Maximum - r.Minimum; r.Extent > span {
		r.Extent = span
	}
	if hi := r.Maximum - r.Extent; r.Value > hi {
		r.Value = hi
	}
	if r.Value < r.Minimum {
		r.Value = r.Minimum
	}
	return r
}
