package pane

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/tailpane/internal/eventloop"
	"github.com/five82/tailpane/internal/ingest"
	"github.com/five82/tailpane/internal/keeper"
	"github.com/five82/tailpane/internal/layout"
	"github.com/five82/tailpane/internal/logging"
	"github.com/five82/tailpane/internal/rangemodel"
	"github.com/five82/tailpane/internal/textbuf"
	"github.com/five82/tailpane/internal/tracker"
)

// Config holds the geometry and limits of a pane.
type Config struct {
	Policy    keeper.Policy
	RowHeight int
	TopInset  int
	Tracking  bool
}

// DefaultConfig returns a one-unit-per-row pane with the default policy and
// auto-tail on.
func DefaultConfig() Config {
	return Config{Policy: keeper.DefaultPolicy(), RowHeight: 1, Tracking: true}
}

// Stats is a point-in-time summary of a pane.
type Stats struct {
	Runes        int
	Rows         int
	Height       int
	Value        int
	Maximum      int
	Extent       int
	Tracking     bool
	Trims        uint64
	RemovedRunes uint64
	Bridge       ingest.Stats
}

// Pane is the facade over a live-tail log view.
type Pane struct {
	buf     *textbuf.Buffer
	rng     *rangemodel.Bounded
	lay     *layout.Layout
	keeper  *keeper.Keeper
	tracker *tracker.Tracker
	bridge  *ingest.Bridge
	toggle  tracker.Toggle
	sched   eventloop.Scheduler
	log     logrus.FieldLogger

	viewportRows int
	trims        uint64
	removed      uint64

	toggleOverride tracker.Toggle
	trimObservers  []func(keeper.Trim)
}

// Option customizes a Pane.
type Option func(*Pane)

// WithLogger sets the logger shared by the pane's parts.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pane) { p.log = l }
}

// WithToggle uses t as the auto-tail switch instead of a private one.
func WithToggle(t tracker.Toggle) Option {
	return func(p *Pane) { p.toggleOverride = t }
}

// WithTrimObserver registers fn to run after every trim.
func WithTrimObserver(fn func(keeper.Trim)) Option {
	return func(p *Pane) {
		if fn != nil {
			p.trimObservers = append(p.trimObservers, fn)
		}
	}
}

// New builds a pane on sched. The pane has no width until the first Relayout.
func New(sched eventloop.Scheduler, cfg Config, opts ...Option) (*Pane, error) {
	if sched == nil {
		return nil, fmt.Errorf("new pane: nil scheduler: %w", keeper.ErrInvalidArgument)
	}
	p := &Pane{
		buf:   textbuf.New(),
		rng:   rangemodel.NewBounded(0, 0, 0, 0),
		lay:   layout.New(cfg.RowHeight, cfg.TopInset),
		sched: sched,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = logging.OrDiscard(p.log)

	p.toggle = p.toggleOverride
	if p.toggle == nil {
		p.toggle = tracker.NewSwitch(cfg.Tracking)
	}

	k, err := keeper.New(p, p.buf, p.rng, sched, cfg.Policy,
		keeper.WithLogger(p.log.WithField("component", "keeper")),
		keeper.WithTrimObserver(p.trimmed),
	)
	if err != nil {
		return nil, fmt.Errorf("new pane: %w", err)
	}
	p.keeper = k
	p.tracker = tracker.New(p.rng, p.toggle, sched,
		tracker.WithLogger(p.log.WithField("component", "tracker")))
	p.bridge = ingest.NewBridge(p, sched,
		ingest.WithLogger(p.log.WithField("component", "bridge")))

	p.buf.OnChange(p.bufferChanged)
	return p, nil
}

// Bridge returns the pane's ingestion bridge.
func (p *Pane) Bridge() *ingest.Bridge { return p.bridge }

// Range returns the scroll range.
func (p *Pane) Range() rangemodel.Model { return p.rng }

// Toggle returns the auto-tail switch.
func (p *Pane) Toggle() tracker.Toggle { return p.toggle }

// Keeper returns the height keeper.
func (p *Pane) Keeper() *keeper.Keeper { return p.keeper }

// Publish hands message to the pane from any goroutine.
func (p *Pane) Publish(message string) {
	p.bridge.Publish(message)
}

// Write publishes b as one message so a Pane can back an io.Writer.
func (p *Pane) Write(b []byte) (int, error) {
	if len(b) > 0 {
		p.bridge.Publish(string(b))
	}
	return len(b), nil
}

// Append writes text straight into the buffer. Loop only; other goroutines
// go through Publish.
func (p *Pane) Append(text string) {
	p.buf.Append(text)
}

// Text returns the buffer contents.
func (p *Pane) Text() string {
	return p.buf.String()
}

// Tracking reports whether auto-tail is on.
func (p *Pane) Tracking() bool {
	return p.tracker.Mode()
}

// SetTracking turns auto-tail on or off from any goroutine.
func (p *Pane) SetTracking(on bool) {
	p.tracker.SetMode(on)
}

// Configure replaces the keeper limits from any goroutine.
func (p *Pane) Configure(heightLimit, newHeight int) error {
	return p.keeper.Configure(heightLimit, newHeight)
}

// Relayout re-wraps the text at width and sizes the window to viewportRows.
func (p *Pane) Relayout(width, viewportRows int) {
	p.viewportRows = max(viewportRows, 0)
	p.lay.Reflow(p.buf.Runes(), width)
	p.syncRange()
	p.keeper.OnRenderedHeightChanged(p.Geometry())
}

// Clear empties the buffer.
func (p *Pane) Clear() {
	p.buf.Clear()
	p.log.Debug("pane cleared")
}

// Geometry reports the rendered size for the keeper.
func (p *Pane) Geometry() keeper.Geometry {
	return keeper.Geometry{
		Height:    p.lay.Height(),
		Width:     p.lay.Width(),
		RowHeight: p.lay.RowHeight,
		TopInset:  p.lay.TopInset,
	}
}

// RowAlignedOffsetFor delegates to the layout.
func (p *Pane) RowAlignedOffsetFor(x, y int) (int, bool) {
	return p.lay.RowAlignedOffsetFor(x, y)
}

// ViewportRows returns the number of rows the window shows.
func (p *Pane) ViewportRows() int {
	return p.viewportRows
}

// FirstVisible returns the index of the top visible row.
func (p *Pane) FirstVisible() int {
	if p.lay.Rows() == 0 {
		return 0
	}
	idx := (p.rng.Value() - p.lay.TopInset) / p.lay.RowHeight
	return min(max(idx, 0), p.lay.Rows()-1)
}

// Visible returns the printable text of the rows inside the window.
func (p *Pane) Visible() []string {
	first := p.FirstVisible()
	last := min(first+p.viewportRows, p.lay.Rows())
	out := make([]string, 0, max(last-first, 0))
	for i := first; i < last; i++ {
		out = append(out, p.lay.RowText(i))
	}
	return out
}

// ScrollBy moves the window by rows as a short drag: the range is marked
// adjusting for the duration of the move so the tracker can infer intent.
func (p *Pane) ScrollBy(rows int) {
	p.ScrollTo(p.rng.Value() + rows*p.lay.RowHeight)
}

// ScrollTo moves the window to value as a short drag.
func (p *Pane) ScrollTo(value int) {
	p.BeginDrag()
	p.DragTo(value)
	p.EndDrag()
}

// ScrollToTop scrolls to the first row.
func (p *Pane) ScrollToTop() {
	p.ScrollTo(p.rng.Snapshot().Minimum)
}

// ScrollToEnd scrolls to the last row.
func (p *Pane) ScrollToEnd() {
	r := p.rng.Snapshot()
	p.ScrollTo(r.Maximum - r.Extent)
}

// BeginDrag marks the start of a knob drag.
func (p *Pane) BeginDrag() {
	p.rng.SetAdjusting(true)
}

// DragTo moves the knob during a drag.
func (p *Pane) DragTo(value int) {
	p.rng.SetValue(value)
}

// EndDrag releases the knob.
func (p *Pane) EndDrag() {
	p.rng.SetAdjusting(false)
}

// Dragging reports whether a drag is in progress.
func (p *Pane) Dragging() bool {
	return p.rng.Adjusting()
}

// Stats summarizes the pane.
func (p *Pane) Stats() Stats {
	r := p.rng.Snapshot()
	return Stats{
		Runes:        p.buf.Len(),
		Rows:         p.lay.Rows(),
		Height:       p.lay.Height(),
		Value:        r.Value,
		Maximum:      r.Maximum,
		Extent:       r.Extent,
		Tracking:     p.tracker.Mode(),
		Trims:        p.trims,
		RemovedRunes: p.removed,
		Bridge:       p.bridge.Stats(),
	}
}

func (p *Pane) bufferChanged(c textbuf.Change) {
	switch c.Kind {
	case textbuf.Inserted:
		p.lay.Appended(p.buf.Runes())
	case textbuf.Removed:
		p.lay.RemovedPrefix(p.buf.Runes(), c.Length)
	}
	p.syncRange()
	// Removals come from the keeper itself or from Clear; only growth can
	// push the height over the limit.
	if c.Kind == textbuf.Inserted {
		p.keeper.OnRenderedHeightChanged(p.Geometry())
	}
}

func (p *Pane) syncRange() {
	extent := p.viewportRows * p.lay.RowHeight
	p.rng.SetRange(0, p.lay.Height(), p.rng.Value(), extent)
}

func (p *Pane) trimmed(t keeper.Trim) {
	p.trims++
	p.removed += uint64(t.Removed)
	for _, fn := range p.trimObservers {
		fn(t)
	}
}
