// Package logtail backfills and follows plain-text log files.
//
// Read returns the last N complete lines of a file in one pass, using a ring
// buffer of N entries so memory stays O(N) whatever the file size. It also
// returns the byte offset just past the last line it consumed:
//
//	lines, offset, err := logtail.Read("/var/log/app.log", 200)
//
// Follow resumes from that offset, so a line written while the backfill was
// running is delivered once, by whichever side saw it first:
//
//	go logtail.Follow(ctx, path, offset, publish, report)
//
// Following is built on github.com/nxadm/tail. The file may appear later;
// rotated and truncated files are reopened and read from the start. Only
// complete lines are delivered, with "\n" or "\r\n" removed.
//
// Missing files are not errors: Read returns nil at offset 0 and Follow waits
// for the file to appear. Other I/O errors are wrapped.
package logtail
