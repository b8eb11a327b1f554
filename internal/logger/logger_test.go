package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, false)
	lg.Debug("hidden debug line")
	lg.Warn("unknown profiles requested", "profiles", "polygon")

	out := buf.String()
	if strings.Contains(out, "hidden debug line") {
		t.Error("debug output should be suppressed without verbose")
	}
	if !strings.Contains(out, "unknown profiles requested") || !strings.Contains(out, "polygon") {
		t.Errorf("warning missing from output: %q", out)
	}

	buf.Reset()
	lg = New(&buf, true)
	lg.Debug("visible debug line")
	if !strings.Contains(buf.String(), "visible debug line") {
		t.Error("debug output expected with verbose")
	}
}

func TestNew_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Error("failed")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-terminal output should not be colored: %q", buf.String())
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("buffer is not a terminal")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("regular file is not a terminal")
	}
}
