package app

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Intervals are the producer pacing steps, fastest first.
var Intervals = []time.Duration{
	10 * time.Millisecond,
	125 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
	2 * time.Second,
	4 * time.Second,
}

const (
	paragraphSeed  = 135792468
	paragraphTable = 1024
)

// Paragraphs hands out pseudo-random paragraphs of lowercase words, drawn
// from a fixed table built from a seed.
type Paragraphs struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	table []string
}

// NewParagraphs builds a table of size paragraphs from seed.
func NewParagraphs(seed uint64, size int) *Paragraphs {
	p := &Paragraphs{rnd: rand.New(rand.NewPCG(seed, seed))}
	size = max(size, 1)
	p.table = make([]string, size)
	var b strings.Builder
	for i := range p.table {
		p.paragraph(&b)
		p.table[i] = b.String()
		b.Reset()
	}
	return p
}

// Next returns a paragraph from the table. Safe for concurrent use.
func (p *Paragraphs) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.table[p.between(0, len(p.table)-1)]
}

// between returns a value in [from, to].
func (p *Paragraphs) between(from, to int) int {
	return from + p.rnd.IntN(to-from+1)
}

// averaged returns the mean of samples draws from [from, to], which biases
// lengths toward the middle of the range.
func (p *Paragraphs) averaged(from, to, samples int) int {
	sum := 0
	for range samples {
		sum += p.between(from, to)
	}
	return sum / samples
}

func (p *Paragraphs) letter() byte {
	return byte(p.between('a', 'z'))
}

func (p *Paragraphs) word(b *strings.Builder) {
	for range p.averaged(3, 10, 2) {
		b.WriteByte(p.letter())
	}
}

func (p *Paragraphs) sentence(b *strings.Builder) {
	b.WriteByte(p.letter() - 'a' + 'A')
	for i := range p.averaged(3, 10, 2) {
		if i > 0 {
			b.WriteByte(' ')
		}
		p.word(b)
	}
	b.WriteByte('.')
}

func (p *Paragraphs) paragraph(b *strings.Builder) {
	for i := range p.between(1, 8) {
		if i > 0 {
			b.WriteByte(' ')
		}
		p.sentence(b)
	}
}

// Producers is a set of goroutines logging random paragraphs at a shared,
// adjustable interval.
type Producers struct {
	interval   atomic.Int64
	emitted    atomic.Uint64
	count      int
	paragraphs *Paragraphs
	log        logrus.FieldLogger
	wg         sync.WaitGroup
}

// StartProducers launches n producers logging to log until ctx is done. It
// returns immediately. n of zero starts nothing but still returns a usable
// value.
func StartProducers(ctx context.Context, log logrus.FieldLogger, n int, interval time.Duration) *Producers {
	p := &Producers{
		count:      max(n, 0),
		paragraphs: NewParagraphs(paragraphSeed, paragraphTable),
		log:        log,
	}
	if interval <= 0 {
		interval = Intervals[len(Intervals)/2]
	}
	p.interval.Store(int64(interval))

	for id := range p.count {
		p.wg.Add(1)
		go p.run(ctx, id)
	}
	return p
}

func (p *Producers) run(ctx context.Context, id int) {
	defer p.wg.Done()
	entry := p.log.WithField("producer", id)
	timer := time.NewTimer(p.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		entry.Info(p.paragraphs.Next())
		p.emitted.Add(1)
		timer.Reset(p.Interval())
	}
}

// Count returns the number of producers started.
func (p *Producers) Count() int { return p.count }

// Emitted returns how many paragraphs have been logged.
func (p *Producers) Emitted() uint64 { return p.emitted.Load() }

// Interval returns the current pause between paragraphs.
func (p *Producers) Interval() time.Duration {
	return time.Duration(p.interval.Load())
}

// SetInterval changes the pause; it takes effect after each producer's next
// paragraph. Non-positive values are ignored.
func (p *Producers) SetInterval(d time.Duration) {
	if d > 0 {
		p.interval.Store(int64(d))
	}
}

// Faster moves to the next shorter step in Intervals and returns it.
func (p *Producers) Faster() time.Duration {
	i := nearestInterval(p.Interval())
	p.SetInterval(Intervals[max(i-1, 0)])
	return p.Interval()
}

// Slower moves to the next longer step in Intervals and returns it.
func (p *Producers) Slower() time.Duration {
	i := nearestInterval(p.Interval())
	p.SetInterval(Intervals[min(i+1, len(Intervals)-1)])
	return p.Interval()
}

// Wait blocks until every producer has stopped.
func (p *Producers) Wait() {
	p.wg.Wait()
}

func nearestInterval(d time.Duration) int {
	best := 0
	for i, step := range Intervals {
		if absDuration(step-d) < absDuration(Intervals[best]-d) {
			best = i
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
