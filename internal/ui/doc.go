// Package ui is the Bubble Tea front end for a tailpane session.
//
// The model renders one scrolling pane with a header badge for auto-tail, a
// one-column scrollbar and a status line of pane counters. Update runs on the
// pane's loop goroutine: Run binds the loop before starting the program and a
// wake command drains scheduled pane work between messages, so publishers on
// other goroutines never call into Bubble Tea directly.
//
// Scrolling from keys or the mouse wheel is a short drag on the pane range.
// Dragging the scrollbar holds the range adjusting until the button is
// released; auto-tail turns back on only when the drag ends at the bottom.
package ui
