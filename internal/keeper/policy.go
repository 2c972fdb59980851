package keeper

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidArgument is returned when a height policy violates
// 0 < NewHeight < HeightLimit.
var ErrInvalidArgument = errors.New("invalid argument")

// Default policy, in host height units.
const (
	DefaultHeightLimit = 3000
	DefaultNewHeight   = 2500
)

// Policy decides when to trim (rendered height reaches HeightLimit) and how
// much to keep (roughly NewHeight).
type Policy struct {
	HeightLimit int
	NewHeight   int
}

// DefaultPolicy returns the default limits.
func DefaultPolicy() Policy {
	return Policy{HeightLimit: DefaultHeightLimit, NewHeight: DefaultNewHeight}
}

// NewPolicy validates and returns a policy.
func NewPolicy(heightLimit, newHeight int) (Policy, error) {
	p := Policy{HeightLimit: heightLimit, NewHeight: newHeight}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate checks 0 < NewHeight < HeightLimit.
func (p Policy) Validate() error {
	if p.NewHeight <= 0 {
		return fmt.Errorf("new height %d must be positive: %w", p.NewHeight, ErrInvalidArgument)
	}
	if p.HeightLimit <= p.NewHeight {
		return fmt.Errorf("height limit %d must exceed new height %d: %w", p.HeightLimit, p.NewHeight, ErrInvalidArgument)
	}
	return nil
}

// guardedPolicy is written from any goroutine and read on the loop; the pair
// is always read and written together.
type guardedPolicy struct {
	mu sync.Mutex
	p  Policy
}

func (g *guardedPolicy) load() Policy {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.p
}

func (g *guardedPolicy) store(p Policy) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.p = p
}
