// Package textbuf holds the append-only character stream shown by a log pane.
//
// Offsets and lengths are counted in runes. The buffer only grows at the end
// and only shrinks from the front, so every mutation is either an insert at
// Len() or a removal of a prefix.
package textbuf

// ChangeKind distinguishes inserts from removals.
type ChangeKind int

const (
	Inserted ChangeKind = iota
	Removed
)

func (k ChangeKind) String() string {
	if k == Removed {
		return "removed"
	}
	return "inserted"
}

// Change describes a single mutation.
type Change struct {
	Kind   ChangeKind
	Offset int
	Length int
}

// Buffer is not safe for concurrent use. All mutation is expected to happen
// on the rendering goroutine.
type Buffer struct {
	runes     []rune
	listeners []func(Change)
	mutations uint64
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// OnChange registers fn to be called after every mutation.
func (b *Buffer) OnChange(fn func(Change)) {
	if fn == nil {
		return
	}
	b.listeners = append(b.listeners, fn)
}

// Len returns the number of runes held.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Mutations returns how many appends and removals have been applied.
func (b *Buffer) Mutations() uint64 {
	return b.mutations
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.runes)
}

// Runes returns the backing runes. Callers must not modify the slice and must
// not retain it across mutations.
func (b *Buffer) Runes() []rune {
	return b.runes
}

// Append writes text at the end of the buffer. Empty text is ignored.
func (b *Buffer) Append(text string) {
	if text == "" {
		return
	}
	offset := len(b.runes)
	b.runes = append(b.runes, []rune(text)...)
	b.notify(Change{Kind: Inserted, Offset: offset, Length: len(b.runes) - offset})
}

// RemovePrefix drops the first n runes. n is clamped to Len(); a non-positive
// n or an empty buffer is a no-op.
func (b *Buffer) RemovePrefix(n int) {
	if n <= 0 || len(b.runes) == 0 {
		return
	}
	if n > len(b.runes) {
		n = len(b.runes)
	}
	// Copy down so the dropped head can be collected.
	remaining := copy(b.runes, b.runes[n:])
	clear(b.runes[remaining:])
	b.runes = b.runes[:remaining]
	b.notify(Change{Kind: Removed, Offset: 0, Length: n})
}

// Clear removes everything. Listeners see a Removed change covering the
// whole buffer; there is no separate kind for it.
func (b *Buffer) Clear() {
	b.RemovePrefix(len(b.runes))
}

func (b *Buffer) notify(c Change) {
	b.mutations++
	for _, fn := range b.listeners {
		fn(c)
	}
}
