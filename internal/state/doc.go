// Package state shares pane counters between the rendering loop and readers
// on other goroutines.
//
// The loop calls Store.Update with fresh pane.Stats after it handles a batch
// of work; the status bar and the headless reporter call Store.Snapshot on
// their own schedule. Sources such as the file follower report read errors
// through Store.ReportSource. A failed read keeps the last good stats so the
// display never goes blank, and two consecutive failures mark the source as
// stalled.
//
// The zero Store is ready to use.
package state
