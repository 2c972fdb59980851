// Package ingest carries formatted log text from any number of producer
// goroutines into a pane's buffer on the loop goroutine.
//
// # Overview
//
// The text buffer, its layout and the scroll range are owned by one loop
// goroutine. Log lines come from everywhere else: file followers, the
// application's own logger, background workers. The Bridge is the one place
// those two worlds meet. Producers hand it finished strings and return
// immediately; the loop later appends them to the buffer in the order they
// were published.
//
// # Architecture
//
//	Producers (any goroutine)              Loop goroutine
//	┌──────────────────┐                 ┌──────────────────────┐
//	│ Bridge.Publish() │                 │                      │
//	│      ↓           │                 │                      │
//	│  queue.Push()    │                 │                      │
//	│      ↓           │  Schedule(...)  │  deferredFlush()     │
//	│ pending CAS ─────┼────────────────→│    pending = false   │
//	│                  │  (at most one)  │    Flush()           │
//	└──────────────────┘                 │      ↓               │
//	                                     │  Appender.Append()   │
//	                                     └──────────────────────┘
//
// # Core Types
//
// Queue:
//   - Unbounded FIFO of strings guarded by a mutex
//   - Push from any goroutine; Pop and DrainTo from the loop
//   - DrainTo writes everything into a strings.Builder in one pass
//
// Bridge:
//   - Owns a Queue, an Appender and an eventloop.Scheduler
//   - Publish: any goroutine, never blocks on a flush
//   - Flush: loop only, appends everything queued as one mutation
//   - Stats: Published, Flushes and Appends counters, safe from any goroutine
//
// Hook:
//   - logrus.Hook that formats each entry and publishes it to a Bridge
//   - Uses a text formatter without colors unless SetFormatter replaces it
//
// # Flush Semantics
//
// Publish pushes first and then decides how the message reaches the buffer:
//
//	on the loop, not inside a flush  → Flush() before returning
//	otherwise, no flush pending      → pending = true, Schedule(deferredFlush)
//	otherwise                        → nothing, the pending flush will see it
//
// The scheduled flush clears pending before it drains the queue, so a message
// pushed while the drain is running schedules a fresh flush instead of being
// stranded. A flush that finds one message appends it as is; a flush that
// finds N messages concatenates them and appends once, so a burst produces
// one buffer change instead of N. Appending can trigger listeners that
// publish again (a trim logged through the Hook, for instance); the flushing
// guard turns that nested Publish into a scheduled flush rather than a
// recursive one.
//
// # Ordering
//
// Messages reach the buffer in the order their Push calls completed. Two
// producers racing on Publish are ordered by the queue mutex; a single
// producer's messages are never reordered.
//
// # Usage Example
//
//	bridge := ingest.NewBridge(pane, loop,
//		ingest.WithLogger(log.WithField("component", "bridge")))
//
//	// Any goroutine:
//	bridge.Publish("worker 3: done\n")
//
//	// Route the application's own logger into the pane:
//	logger.AddHook(ingest.NewHook(bridge))
//
// # Testing Considerations
//
// A recording Appender captures every append, and a manual scheduler holds
// scheduled tasks until the test runs them. Together they make the
// coalescing visible: several Publish calls, one queued task, one append
// holding all of the text.
package ingest
