package eventloop

import (
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Owner records a goroutine as the owner of some single-threaded state so that
// other hosts (for example a Bubble Tea Update loop) can answer OnLoop.
type Owner struct {
	id atomic.Int64
}

// Claim marks the calling goroutine as the owner.
func (o *Owner) Claim() { o.id.Store(goid.Get()) }

// Release clears ownership.
func (o *Owner) Release() { o.id.Store(0) }

// Claimed reports whether any goroutine has claimed ownership yet.
func (o *Owner) Claimed() bool { return o.id.Load() != 0 }

// Held reports whether the calling goroutine is the owner.
func (o *Owner) Held() bool {
	id := o.id.Load()
	return id != 0 && id == goid.Get()
}
