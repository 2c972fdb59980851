package tracker

import (
	"github.com/sirupsen/logrus"

	"github.com/five82/tailpane/internal/eventloop"
	"github.com/five82/tailpane/internal/logging"
	"github.com/five82/tailpane/internal/rangemodel"
)

// Toggle is the externally visible auto-tail switch.
type Toggle interface {
	Selected() bool
	SetSelected(selected bool)
	// OnChange registers fn to run after the selection flips.
	OnChange(fn func(selected bool))
}

// Tracker reacts to scroll range and toggle changes. All methods except
// SetMode and Mode must be called on the loop.
type Tracker struct {
	rng    rangemodel.Model
	toggle Toggle
	sched  eventloop.Scheduler
	log    logrus.FieldLogger

	// trackStart is the value recorded when a drag first touched the end.
	trackStart    int
	trackStartSet bool
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for mode transitions.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Tracker) { t.log = l }
}

// New attaches a tracker to rng and toggle. A nil toggle gets a fresh Switch
// that starts off.
func New(rng rangemodel.Model, toggle Toggle, sched eventloop.Scheduler, opts ...Option) *Tracker {
	if toggle == nil {
		toggle = NewSwitch(false)
	}
	t := &Tracker{rng: rng, toggle: toggle, sched: sched}
	for _, opt := range opts {
		opt(t)
	}
	t.log = logging.OrDiscard(t.log)

	rng.OnChange(t.rangeChanged)
	toggle.OnChange(t.modeChanged)
	return t
}

// Mode reports whether auto-tail is on.
func (t *Tracker) Mode() bool {
	return t.toggle.Selected()
}

// SetMode turns auto-tail on or off. Safe from any goroutine; off the loop the
// change is deferred onto it.
func (t *Tracker) SetMode(tracking bool) {
	eventloop.Do(t.sched, func() { t.setMode(tracking) })
}

// ForceKnobToEnd moves the window to the end of the range unless it is
// already there or a drag is in progress.
func (t *Tracker) ForceKnobToEnd() {
	r := t.rng.Snapshot()
	if r.TouchesMax() || r.Adjusting {
		return
	}
	t.rng.SetValue(r.Maximum - r.Extent)
}

func (t *Tracker) setMode(tracking bool) {
	if t.toggle.Selected() == tracking {
		return
	}
	t.toggle.SetSelected(tracking)
}

func (t *Tracker) rangeChanged() {
	r := t.rng.Snapshot()
	if r.Adjusting {
		t.checkDrag(r)
		return
	}
	t.trackStartSet = false
	if t.Mode() {
		t.ForceKnobToEnd()
	}
}

// checkDrag decides the mode from a drag in progress. Touching the end starts
// tracking; moving away from where the end was first touched stops it. A
// repeated report of the touch position changes nothing.
func (t *Tracker) checkDrag(r rangemodel.Range) {
	switch {
	case r.TouchesMax():
		t.setMode(true)
		t.trackStart = r.Value
		t.trackStartSet = true
	case !t.trackStartSet || r.Value != t.trackStart:
		t.setMode(false)
	}
}

func (t *Tracker) modeChanged(selected bool) {
	t.log.WithField("tracking", selected).Debug("auto-tail changed")
	if selected {
		t.ForceKnobToEnd()
	}
}
