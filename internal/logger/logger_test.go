package logger

import (
	"bytes"
	"os"
	"testing"
)

// capture routes output to a buffer and restores the defaults afterwards.
func capture(t *testing.T, verboseMode, quietMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	SetQuiet(quietMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetQuiet(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestFlags(t *testing.T) {
	capture(t, false, false)

	if IsVerbose() || IsQuiet() {
		t.Fatal("expected verbose and quiet to start disabled")
	}
	SetVerbose(true)
	SetQuiet(true)
	if !IsVerbose() || !IsQuiet() {
		t.Fatal("expected both flags to be set")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		log     func()
		want    string
	}{
		{"debug verbose", true, false, func() { Debug("page %d", 3) }, "[DEBUG] page 3\n"},
		{"debug silent", false, false, func() { Debug("page %d", 3) }, ""},
		{"info verbose", true, false, func() { Info("loaded %s", "guide.pdf") }, "[INFO] loaded guide.pdf\n"},
		{"info silent", false, false, func() { Info("loaded %s", "guide.pdf") }, ""},
		{"section verbose", true, false, func() { Section("Extract") }, "\n=== Extract ===\n"},
		{"section silent", false, false, func() { Section("Extract") }, ""},
		{"warn default", false, false, func() { Warn("skipped %s", "p.4") }, "[WARN] skipped p.4\n"},
		{"warn verbose", true, false, func() { Warn("skipped %s", "p.4") }, "[WARN] skipped p.4\n"},
		{"warn quiet", false, true, func() { Warn("skipped %s", "p.4") }, ""},
		{"info verbose and quiet", true, true, func() { Info("x") }, "[INFO] x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose, tt.quiet)

			tt.log()

			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConcurrentLogging(t *testing.T) {
	buf := capture(t, true, false)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			Debug("worker")
			SetVerbose(true)
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if got := bytes.Count(buf.Bytes(), []byte("[DEBUG] worker")); got != 8 {
		t.Errorf("expected 8 lines, got %d", got)
	}
}
