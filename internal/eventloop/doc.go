// Package eventloop provides the single "rendering" goroutine that owns a
// pane's text buffer and scroll range.
//
// Producers on other goroutines never touch pane state directly. They call
// Schedule, which queues a task without blocking, and the loop runs queued
// tasks one at a time on the goroutine that called Run. Code that may run on
// either side uses Do, which executes inline when OnLoop is true.
//
// Loop is the standalone implementation used by headless hosts and tests.
// Hosts that already have an owning goroutine, such as the Bubble Tea Update
// loop, call Bind from that goroutine and Drain whenever Wake fires.
package eventloop
