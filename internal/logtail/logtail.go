package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read returns at most maxLines complete lines from the end of the file at
// path, and the byte offset just past the last complete line. Following from
// that offset picks up exactly where the backfill stopped: an unterminated
// trailing line is left for the follower. A missing file reads as empty at
// offset 0. A non-positive maxLines still scans for the offset.
func Read(path string, maxLines int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var ring []string
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}
	reader := bufio.NewReaderSize(file, 64*1024)
	var offset int64
	count, idx := 0, 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, 0, fmt.Errorf("read log: %w", err)
		}
		offset += int64(len(line))
		if ring == nil {
			continue
		}
		ring[idx] = trimEOL(line)
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if count == 0 {
		return nil, offset, nil
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, offset, nil
}

func trimEOL(line string) string {
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
}
