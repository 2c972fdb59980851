// Package pane assembles a bounded, auto-tailing log pane: the text buffer,
// its layout, the scroll range, and the keeper, tracker and ingestion bridge
// that operate on them.
//
// # Overview
//
// A Pane is the one object the UI and the producers talk to. It owns every
// piece of a live-tail view and wires them together at construction, so the
// caller only appends text, resizes, scrolls and reads what is visible. The
// pane never renders anything itself; the ui package turns Visible and Stats
// into a Bubble Tea view.
//
// # Architecture
//
//	Publish / Write (any goroutine)
//	        │
//	        ↓
//	┌───────────────┐  Append   ┌────────────────┐  Change   ┌──────────────┐
//	│ ingest.Bridge │──────────→│ textbuf.Buffer │──────────→│ layout.Layout│
//	└───────────────┘           └────────────────┘           └──────────────┘
//	                                    ↑                            │ Height
//	                         RemovePrefix                            ↓
//	                            ┌───────────────┐  Geometry  ┌──────────────┐
//	                            │ keeper.Keeper │←───────────│ syncRange    │
//	                            └───────────────┘            └──────────────┘
//	                                    │ SetValue                   │ SetRange
//	                                    ↓                            ↓
//	                            ┌──────────────────────────────────────────┐
//	                            │ rangemodel.Bounded                       │
//	                            └──────────────────────────────────────────┘
//	                                    │ OnChange
//	                                    ↓
//	                            ┌─────────────────┐
//	                            │ tracker.Tracker │──→ ForceKnobToEnd
//	                            └─────────────────┘
//
// Every buffer change reflows the layout and resets the range bounds. Only
// insertions are followed by a keeper check: removals come either from the
// keeper itself or from Clear, and neither can push the height over the limit.
//
// # Core Types
//
// Config:
//   - Policy: keeper limits, in rows when RowHeight is 1
//   - RowHeight, TopInset: layout geometry
//   - Tracking: initial auto-tail state of the private switch
//   - DefaultConfig: one unit per row, default policy, tracking on
//
// Pane:
//   - Built with New(sched, cfg, opts...); fails on a nil scheduler or bad policy
//   - WithToggle shares an external auto-tail switch
//   - WithTrimObserver sees every keeper.Trim after the pane's own counters
//
// Stats:
//   - Point-in-time copy of buffer size, rows, height and range fields
//   - Trims and RemovedRunes since construction
//   - The bridge's own counters
//
// # Scrolling
//
// Scrolling from code is expressed the way a person would do it, as a short
// drag. ScrollBy, ScrollTo, ScrollToTop and ScrollToEnd all run
// BeginDrag, DragTo and EndDrag in sequence, so the tracker infers auto-tail
// from them exactly as it does from a mouse drag on the scrollbar. A long
// drag uses the three calls directly and holds the range in its adjusting
// state until EndDrag.
//
// # Concurrency Model
//
// The pane is bound to one eventloop.Scheduler. The following are safe from
// any goroutine:
//
//   - Publish, Write: queued on the bridge, flushed on the loop
//   - SetTracking: deferred onto the loop when called elsewhere
//   - Configure: policy stored at once, re-evaluation run on the loop
//   - Tracking: reads the toggle (atomic for the default Switch)
//
// Everything else (Append, Relayout, Clear, the scroll and drag calls,
// Visible, Stats) must be called on the loop.
//
// # Usage Example
//
//	loop := eventloop.New()
//	p, err := pane.New(loop, pane.DefaultConfig(),
//		pane.WithLogger(log.WithField("component", "pane")))
//	if err != nil {
//		return err
//	}
//
//	// Producer goroutine:
//	fmt.Fprintf(p, "job %d finished\n", id)
//
//	// Loop goroutine, on resize and redraw:
//	p.Relayout(width, rows)
//	for _, row := range p.Visible() {
//		render(row)
//	}
//
// # Testing Considerations
//
// Tests construct a pane on an inline scheduler that reports every caller
// as on the loop. Publish then flushes synchronously, and each test reads
// Stats and Visible straight after the call under test.
package pane
