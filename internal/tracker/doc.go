// Package tracker keeps a pane pinned to its newest rows while auto-tail is on,
// and infers auto-tail on/off from how the user drags the scroll knob.
//
// # Overview
//
// Auto-tail is a single boolean held by a Toggle. While it is on, every
// change to the scroll range that is not part of a drag snaps the window back
// to the end, so appended rows come into view as they arrive. The user turns
// it off by dragging away from the end and back on by dragging to the end; an
// explicit SetMode call or a Toggle flip does the same from code.
//
// # Architecture
//
//	 rangemodel.Model                 Toggle
//	┌────────────────┐            ┌──────────────┐
//	│ Value, Extent  │  OnChange  │ Selected()   │
//	│ Maximum        │──────┐     │ SetSelected()│
//	│ Adjusting      │      │     └──────────────┘
//	└────────────────┘      ↓        ↑       │ OnChange
//	        ↑         ┌───────────┐  │       │
//	        │SetValue │  Tracker  │──┘       │
//	        └─────────│           │←─────────┘
//	                  └───────────┘
//
// The tracker registers itself on both the range and the toggle when it is
// built. It never polls; it only reacts to change notifications.
//
// # State Transitions
//
// Each range notification is classified by the Adjusting flag:
//
//	Adjusting == false (programmatic change, or a drag just ended):
//	  forget trackStart
//	  if tracking → ForceKnobToEnd
//
//	Adjusting == true (drag in progress):
//	  window touches the end     → tracking on, trackStart = Value
//	  Value == trackStart        → unchanged
//	  otherwise                  → tracking off
//
// trackStart is the value the knob had when the drag first touched the end.
// Compared by exact equality, it lets repeated reports of that same position
// through without stopping tracking, while any move away turns it off. A drag
// that never touched the end turns tracking off on its first report.
//
// Turning tracking on (from a drag, SetMode or the toggle) immediately forces
// the knob to the end. ForceKnobToEnd does nothing while a drag is in
// progress or when the window already touches the end.
//
// # Core Types
//
// Tracker:
//   - Attached to one range and one toggle for its whole life
//   - Mode: reads the toggle, safe from any goroutine
//   - SetMode: safe from any goroutine, applied on the loop
//
// Toggle:
//   - The externally visible switch, e.g. a status-bar badge or key binding
//   - OnChange listeners run after the selection flips
//
// Switch:
//   - Default Toggle, used when New is given nil
//   - Selected is an atomic load; SetSelected only notifies on a real flip
//
// # Concurrency Model
//
// Range and toggle notifications arrive on the loop, and the tracker handles
// them there. SetMode is the only entry point meant for other goroutines: it
// goes through eventloop.Do, which runs inline on the loop and schedules
// otherwise. Mode may be read anywhere because Switch keeps its state in an
// atomic.Bool.
//
// # Usage Example
//
//	rng := rangemodel.NewBounded(0, 0, 0, 0)
//	sw := tracker.NewSwitch(true)
//	tr := tracker.New(rng, sw, loop,
//		tracker.WithLogger(log.WithField("component", "tracker")))
//
//	// A scroll-wheel step, modelled as a short drag:
//	rng.SetAdjusting(true)
//	rng.SetValue(rng.Value() - 3) // moves off the end, tracking stops
//	rng.SetAdjusting(false)
//
//	// A key binding that resumes tailing from a producer goroutine:
//	tr.SetMode(true)
//
// # Testing Considerations
//
// Tests build a rangemodel.Bounded and drive it directly with SetAdjusting
// and SetValue. A scheduler that queues tasks instead of running them shows
// that SetMode off the loop is deferred; a running eventloop.Loop shows that
// it is eventually applied.
package tracker
