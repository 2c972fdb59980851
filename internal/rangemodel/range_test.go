package rangemodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBounded_Normalizes(t *testing.T) {
	tests := []struct {
		name               string
		min, max, val, ext int
		want               Range
	}{
		{"plain", 0, 100, 10, 20, Range{Maximum: 100, Value: 10, Extent: 20}},
		{"value past end", 0, 100, 95, 20, Range{Maximum: 100, Value: 80, Extent: 20}},
		{"negative value", 0, 100, -5, 20, Range{Maximum: 100, Value: 0, Extent: 20}},
		{"extent wider than span", 0, 10, 0, 50, Range{Maximum: 10, Value: 0, Extent: 10}},
		{"negative extent", 0, 10, 3, -1, Range{Maximum: 10, Value: 3, Extent: 0}},
		{"max below min", 5, 1, 0, 0, Range{Minimum: 5, Maximum: 5, Value: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBounded(tt.min, tt.max, tt.val, tt.ext).Snapshot()
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSetValue_NotifiesOnlyOnChange(t *testing.T) {
	b := NewBounded(0, 100, 0, 10)
	calls := 0
	b.OnChange(func() { calls++ })

	b.SetValue(0)
	require.Equal(t, 0, calls)

	b.SetValue(50)
	require.Equal(t, 1, calls)
	require.Equal(t, 50, b.Value())

	b.SetValue(500)
	require.Equal(t, 2, calls)
	require.Equal(t, 90, b.Value())

	b.SetValue(91)
	require.Equal(t, 2, calls, "clamped write to the same value must not notify")
}

func TestSetAdjusting(t *testing.T) {
	b := NewBounded(0, 100, 0, 10)
	var seen []bool
	b.OnChange(func() { seen = append(seen, b.Adjusting()) })

	b.SetAdjusting(true)
	b.SetAdjusting(true)
	b.SetAdjusting(false)
	require.Equal(t, []bool{true, false}, seen)
}

func TestSetRange_KeepsAdjusting(t *testing.T) {
	b := NewBounded(0, 100, 0, 10)
	b.SetAdjusting(true)
	b.SetRange(0, 200, 150, 20)
	r := b.Snapshot()
	require.True(t, r.Adjusting)
	require.Equal(t, 150, r.Value)
	require.Equal(t, 200, r.Maximum)
}

func TestTouchesMax(t *testing.T) {
	require.True(t, Range{Maximum: 100, Value: 90, Extent: 10}.TouchesMax())
	require.False(t, Range{Maximum: 100, Value: 89, Extent: 10}.TouchesMax())
	require.True(t, Range{}.TouchesMax())
}

func TestListenerMayWriteBack(t *testing.T) {
	b := NewBounded(0, 100, 0, 10)
	b.OnChange(func() {
		if b.Value() != 90 {
			b.SetValue(90)
		}
	})
	b.SetValue(10)
	require.Equal(t, 90, b.Value())
}
