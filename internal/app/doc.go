// Package app is the composition root for tailpane.
//
// A session loads the config and prefs, builds a logrus logger whose entries
// are published into the pane through an ingest hook, and starts the sources
// that feed it: demo producers logging random paragraphs and, optionally, a
// followed log file. Run hosts the session in the Bubble Tea UI; RunHeadless
// hosts it on a plain event loop and reports pane counters as log lines,
// which is what the command falls back to when stdout is not a terminal.
package app
