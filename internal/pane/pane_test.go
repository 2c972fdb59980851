package pane

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/tailpane/internal/keeper"
)

// inlineScheduler runs everything immediately, as if always on the loop.
type inlineScheduler struct{}

func (inlineScheduler) Schedule(task func()) { task() }
func (inlineScheduler) OnLoop() bool         { return true }

func newPane(t *testing.T, limit, keep int, tracking bool) *Pane {
	t.Helper()
	policy, err := keeper.NewPolicy(limit, keep)
	require.NoError(t, err)
	p, err := New(inlineScheduler{}, Config{Policy: policy, RowHeight: 1, Tracking: tracking})
	require.NoError(t, err)
	return p
}

func appendLines(p *Pane, from, to int) {
	for i := from; i < to; i++ {
		p.Append(fmt.Sprintf("line-%03d\n", i))
	}
}

func TestNew_RejectsBadArguments(t *testing.T) {
	_, err := New(nil, DefaultConfig())
	require.True(t, errors.Is(err, keeper.ErrInvalidArgument))

	_, err = New(inlineScheduler{}, Config{Policy: keeper.Policy{HeightLimit: 10, NewHeight: 20}, RowHeight: 1})
	require.True(t, errors.Is(err, keeper.ErrInvalidArgument))
}

func TestAppend_TrackingPinsTailAcrossTrims(t *testing.T) {
	p := newPane(t, 100, 80, true)
	p.Relayout(10, 20)

	for i := 0; i < 150; i++ {
		appendLines(p, i, i+1)
		s := p.Stats()
		require.Less(t, s.Height, 100, "after line %d", i)
		require.Equal(t, s.Maximum-s.Extent, s.Value, "after line %d", i)
		require.True(t, strings.HasPrefix(p.Text(), "line-"), "buffer starts mid-row after line %d", i)

		visible := p.Visible()
		require.Equal(t, fmt.Sprintf("line-%03d", i), visible[len(visible)-1])
	}

	s := p.Stats()
	require.Equal(t, uint64(3), s.Trims)
	require.Equal(t, uint64(540), s.RemovedRunes)
	require.Equal(t, 90, s.Rows)
	require.True(t, strings.HasPrefix(p.Text(), "line-060\n"))
	require.True(t, s.Tracking)
}

func TestAppend_NotTrackingKeepsPlaceWithinOneRow(t *testing.T) {
	p := newPane(t, 100, 80, false)
	p.Relayout(10, 20)
	appendLines(p, 0, 99)

	p.ScrollTo(60)
	require.Equal(t, "line-060", p.Visible()[0])

	appendLines(p, 99, 100)
	s := p.Stats()
	require.Equal(t, uint64(1), s.Trims)
	require.Equal(t, 80, s.Rows)
	require.Equal(t, 39, s.Value, "compensation rounds up to 21 rows")
	require.Equal(t, "line-059", p.Visible()[0])
	require.False(t, s.Tracking)
}

func TestScroll_DragToEndStartsTrackingAndAwayStops(t *testing.T) {
	p := newPane(t, 1000, 800, false)
	appendLines(p, 0, 50)
	p.Relayout(10, 20)

	p.ScrollToEnd()
	require.True(t, p.Tracking())
	require.False(t, p.Dragging())

	p.ScrollBy(-1)
	require.False(t, p.Tracking())
	require.Equal(t, 29, p.Range().Value())

	appendLines(p, 50, 51)
	require.Equal(t, 29, p.Range().Value(), "not tracking, so the window stays put")
}

func TestScroll_LongDragHoldsTrackingOnlyAtTouchPoint(t *testing.T) {
	p := newPane(t, 1000, 800, false)
	appendLines(p, 0, 50)
	p.Relayout(10, 20)

	p.BeginDrag()
	p.DragTo(30)
	require.True(t, p.Tracking())

	// New rows grow the range mid-drag; the knob stays where it was touched.
	appendLines(p, 50, 55)
	require.True(t, p.Tracking())
	require.Equal(t, 30, p.Range().Value())

	p.DragTo(25)
	require.False(t, p.Tracking())
	p.EndDrag()
	require.False(t, p.Tracking())
}

func TestSetTracking_ForcesToEnd(t *testing.T) {
	p := newPane(t, 1000, 800, false)
	appendLines(p, 0, 50)
	p.Relayout(10, 20)
	require.Equal(t, 0, p.Range().Value())

	p.SetTracking(true)
	require.Equal(t, 30, p.Range().Value())
	require.Equal(t, "line-049", p.Visible()[19])
}

func TestRelayout_NarrowerWidthTrims(t *testing.T) {
	p := newPane(t, 100, 80, true)
	p.Relayout(10, 20)
	appendLines(p, 0, 60)
	require.Equal(t, 60, p.Stats().Rows)

	p.Relayout(5, 20)
	s := p.Stats()
	require.Equal(t, 80, s.Rows)
	require.True(t, strings.HasPrefix(p.Text(), "line-020\n"))
	require.Equal(t, []string{"line-", "059"}, p.Visible()[18:])
}

func TestConfigure_ReevaluatesImmediately(t *testing.T) {
	p := newPane(t, 3000, 2500, true)
	p.Relayout(10, 20)
	appendLines(p, 0, 90)
	require.Equal(t, uint64(0), p.Stats().Trims)

	require.NoError(t, p.Configure(50, 40))
	s := p.Stats()
	require.Equal(t, uint64(1), s.Trims)
	require.Equal(t, 40, s.Rows)

	require.Error(t, p.Configure(40, 40))
	require.Equal(t, keeper.Policy{HeightLimit: 50, NewHeight: 40}, p.Keeper().Policy())
}

func TestClear_ResetsRange(t *testing.T) {
	p := newPane(t, 1000, 800, true)
	p.Relayout(10, 20)
	appendLines(p, 0, 40)

	p.Clear()
	s := p.Stats()
	require.Equal(t, 0, s.Runes)
	require.Equal(t, 0, s.Rows)
	require.Equal(t, 0, s.Maximum)
	require.Equal(t, 0, s.Value)
	require.Empty(t, p.Visible())
	require.Equal(t, uint64(0), s.Trims, "clearing is not a trim")
}

func TestPublish_ReachesBuffer(t *testing.T) {
	p := newPane(t, 1000, 800, true)
	p.Relayout(20, 5)

	p.Publish("hello\n")
	n, err := p.Write([]byte("world\n"))
	require.NoError(t, err)
	require.Equal(t, 6, n)

	require.Equal(t, []string{"hello", "world"}, p.Visible())
	require.Equal(t, uint64(2), p.Stats().Bridge.Published)
}

func TestTrimObserver_SeesEveryTrim(t *testing.T) {
	policy, err := keeper.NewPolicy(20, 10)
	require.NoError(t, err)
	var trims []keeper.Trim
	p, err := New(inlineScheduler{}, Config{Policy: policy, RowHeight: 3, TopInset: 1, Tracking: true},
		WithTrimObserver(func(tr keeper.Trim) { trims = append(trims, tr) }))
	require.NoError(t, err)
	p.Relayout(10, 2)

	appendLines(p, 0, 7)
	// 7 rows * 3 + 1 = 22 >= 20: chop 12, row at y=11 is index 3.
	require.Len(t, trims, 1)
	require.Equal(t, 12, trims[0].ChopHeight)
	require.Equal(t, 36, trims[0].Removed)
	require.Equal(t, 4, trims[0].RowsChopped)
	require.Equal(t, 13, trims[0].RealChop)
	require.True(t, strings.HasPrefix(p.Text(), "line-004\n"))
}
