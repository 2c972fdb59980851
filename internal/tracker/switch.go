package tracker

import "sync/atomic"

// Switch is the default Toggle. Selected may be read from any goroutine;
// SetSelected and listeners run on the loop.
type Switch struct {
	selected  atomic.Bool
	listeners []func(bool)
}

var _ Toggle = (*Switch)(nil)

// NewSwitch returns a switch in the given state.
func NewSwitch(selected bool) *Switch {
	s := &Switch{}
	s.selected.Store(selected)
	return s
}

func (s *Switch) Selected() bool { return s.selected.Load() }

func (s *Switch) SetSelected(selected bool) {
	if s.selected.Swap(selected) == selected {
		return
	}
	for _, fn := range s.listeners {
		fn(selected)
	}
}

func (s *Switch) OnChange(fn func(bool)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}
