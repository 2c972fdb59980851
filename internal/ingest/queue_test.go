package ingest

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueue_PopFIFO(t *testing.T) {
	var q Queue
	_, ok := q.Pop()
	require.False(t, ok)

	q.Push("a")
	q.Push("b")
	require.Equal(t, 2, q.Len())

	got, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, "a", got)
	got, _ = q.Pop()
	require.Equal(t, "b", got)
	require.Equal(t, 0, q.Len())
}

func TestQueue_DrainTo(t *testing.T) {
	var q Queue
	for _, s := range []string{"x", "y", "z"} {
		q.Push(s)
	}
	_, _ = q.Pop()

	var b strings.Builder
	require.Equal(t, 2, q.DrainTo(&b))
	require.Equal(t, "yz", b.String())
	require.Equal(t, 0, q.Len())
}

func TestQueue_CompactsAfterManyPops(t *testing.T) {
	var q Queue
	for i := 0; i < 300; i++ {
		q.Push("m")
	}
	for i := 0; i < 200; i++ {
		_, ok := q.Pop()
		require.True(t, ok)
	}
	require.Equal(t, 100, q.Len())
	require.Less(t, q.head, 200)
}

func TestQueue_ConcurrentPush(t *testing.T) {
	var q Queue
	var wg sync.WaitGroup
	for p := 0; p < 10; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push("m")
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1000, q.Len())
}
