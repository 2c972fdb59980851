// Package keeper bounds the rendered height of a live log pane.
//
// # Overview
//
// A pane that only ever receives appends grows without limit. The Keeper
// watches the rendered height of its host component and, once that height
// reaches a configured limit, removes whole rows from the head of the text
// buffer and moves the scroll value up by the removed height. The rows the
// user is looking at stay on screen while the oldest output disappears.
//
// # Architecture
//
// The keeper sits between three collaborators, each reached through a small
// interface:
//
//	┌──────────────────────────┐
//	│ Host                     │
//	│   Geometry()             │←──┐
//	│   RowAlignedOffsetFor()  │←──┤
//	└──────────────────────────┘   │
//	      │ OnRenderedHeightChanged│
//	      ↓                        │
//	┌──────────────────────────┐   │
//	│ Keeper                   │───┘
//	└──────────────────────────┘
//	      │ RemovePrefix    │ SetValue
//	      ↓                 ↓
//	┌──────────┐      ┌──────────┐
//	│ Buffer   │      │ Range    │
//	└──────────┘      └──────────┘
//
// Host supplies the geometry and the layout lookup. Buffer is the text that
// gets trimmed; Range is the scroll position that gets compensated.
//
// # Core Types
//
// Policy:
//   - HeightLimit: rendered height at which a trim starts
//   - NewHeight: height the pane is cut back to, approximately
//   - Must satisfy 0 < NewHeight < HeightLimit (else ErrInvalidArgument)
//   - DefaultPolicy is 3000 / 2500 host units
//
// Geometry:
//   - Height, Width: the rendered size at notification time
//   - RowHeight: height of one row, always positive for a usable layout
//   - TopInset: space above the first row
//
// Trim:
//   - One record per eviction, passed to observers and returned to the caller
//   - ChopHeight, LastOffset, Removed: what was asked for and what was cut
//   - RowsChopped, RealChop: the whole-row height used for compensation
//   - OldValue, NewValue: the scroll value before and after
//
// # Trim Algorithm
//
// OnRenderedHeightChanged runs the check for one geometry report:
//
//	if Height < HeightLimit            → nothing to do
//	chop   := Height - NewHeight
//	offset := RowAlignedOffsetFor(Width-1, chop-1)
//	if no layout                       → nothing to do
//	buffer.RemovePrefix(min(offset+1, Len()))
//	rows   := floor((chop - TopInset) / RowHeight) + 1
//	real   := RowHeight*rows + TopInset
//	range.SetValue(value - real)
//
// The lookup point is the bottom-right corner of the region to drop, so the
// removal always ends on a row boundary and never splits a row. The
// compensation is rounded up to whole rows with floor division, which keeps
// the result correct when chop is smaller than TopInset.
//
// A single notification removes at most one region. If the host reports a
// height that is still over the limit after the removal, the next
// notification trims again.
//
// # Concurrency Model
//
// The keeper has no goroutines of its own. Everything that touches the
// buffer or the range runs on the scheduler's loop:
//
//   - OnRenderedHeightChanged, Reevaluate: loop only
//   - Policy: any goroutine (the policy sits behind a mutex)
//   - Configure: any goroutine; the policy is stored immediately and the
//     re-evaluation is handed to eventloop.Do
//
// A Configure issued from a producer goroutine therefore takes effect on the
// next loop turn, against whatever geometry the host reports at that time.
//
// # Observers
//
// WithTrimObserver registers callbacks that receive every Trim, on the loop,
// after the buffer and range have been updated. The pane uses one to keep
// trim counters for its status line. WithLogger records each trim at debug
// level with the height, removed runes and compensation.
//
// # Usage Example
//
//	policy, err := keeper.NewPolicy(1000, 800)
//	if err != nil {
//		return err
//	}
//	k, err := keeper.New(host, buf, rng, loop, policy,
//		keeper.WithLogger(log.WithField("component", "keeper")),
//		keeper.WithTrimObserver(func(t keeper.Trim) {
//			stats.Removed += t.Removed
//		}),
//	)
//	if err != nil {
//		return err
//	}
//
//	// On the loop, after every append that changes the rendered height:
//	k.OnRenderedHeightChanged(host.Geometry())
//
//	// From any goroutine:
//	_ = k.Configure(2000, 1500)
//
// # Testing Considerations
//
// The collaborators are plain interfaces, so tests drive the keeper with a
// fake host that returns a fixed geometry and row-aligned offset, and with
// a manual scheduler whose queued tasks the test runs explicitly. That makes
// the deferred re-evaluation of an off-loop Configure observable.
package keeper
