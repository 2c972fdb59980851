package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_DefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") {
		t.Fatalf("output = %q, want it to contain msg=shown", out)
	}
}

func TestNew_ParsesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, " debug ")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("output = %q, want debug record", buf.String())
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Fatalf("New returned nil error, want parse error")
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatalf("OrDiscard(nil) returned nil")
	}
	l := Discard()
	if OrDiscard(l) != l {
		t.Fatalf("OrDiscard should return the given logger")
	}
}
