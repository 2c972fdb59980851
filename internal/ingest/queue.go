package ingest

import (
	"strings"
	"sync"
)

// Queue is an unbounded FIFO of formatted messages. Any number of goroutines
// may Push; Pop and DrainTo are meant for the single consumer.
type Queue struct {
	mu    sync.Mutex
	items []string
	head  int
}

// Push appends msg to the tail.
func (q *Queue) Push(msg string) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Pop removes and returns the head message.
func (q *Queue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head >= len(q.items) {
		return "", false
	}
	msg := q.items[q.head]
	q.items[q.head] = ""
	q.head++
	q.compact()
	return msg, true
}

// DrainTo removes every queued message, writing them to b in FIFO order, and
// returns how many were taken.
func (q *Queue) DrainTo(b *strings.Builder) int {
	q.mu.Lock()
	items := q.items[q.head:]
	q.items = nil
	q.head = 0
	q.mu.Unlock()

	for _, msg := range items {
		b.WriteString(msg)
	}
	return len(items)
}

func (q *Queue) compact() {
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
		return
	}
	// Reclaim the consumed head once it dominates the backing array.
	if q.head > 64 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
}
