package compare

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gzhole/web3threat/internal/source"
	"github.com/gzhole/web3threat/internal/threatmodel"
)

func TestRun_SelfDiffIsIdentical(t *testing.T) {
	src := source.NewLocal(threatmodel.Default())

	for _, section := range []string{"", "assets", "mitigations"} {
		for _, ignoreCase := range []bool{false, true} {
			var out bytes.Buffer
			err := Run(context.Background(), src, "zama", "zama",
				Options{Section: section, IgnoreCase: ignoreCase, ContextLines: 3}, &out)
			if err != nil {
				t.Fatal(err)
			}
			if out.String() != IdenticalNotice+"\n" {
				t.Errorf("section %q: expected identical notice, got %q", section, out.String())
			}
		}
	}
}

func TestRun_DifferentProfiles(t *testing.T) {
	src := source.NewLocal(threatmodel.Default())

	var out bytes.Buffer
	err := Run(context.Background(), src, "aztec", "zama",
		Options{Section: "overview", ContextLines: 3}, &out)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected diff output, got %q", out.String())
	}
	if lines[0] != "--- aztec (overview)" || lines[1] != "+++ zama (overview)" {
		t.Errorf("unexpected headers %q, %q", lines[0], lines[1])
	}
	if !strings.HasPrefix(lines[2], "@@ ") {
		t.Errorf("expected hunk header, got %q", lines[2])
	}
	if !strings.Contains(out.String(), "-Threat model profile: Aztec-style zk rollup") {
		t.Error("missing removed header line")
	}
	if !strings.Contains(out.String(), "+Threat model profile: Zama-style FHE compute stack") {
		t.Error("missing added header line")
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Error("color disabled but escapes found")
	}
}

func TestRun_NoHeaderAndColor(t *testing.T) {
	src := source.NewLocal(threatmodel.Default())

	var out bytes.Buffer
	err := Run(context.Background(), src, "aztec", "soundness",
		Options{Section: "assets", ContextLines: 1, NoHeader: true, Color: true}, &out)
	if err != nil {
		t.Fatal(err)
	}
	text := out.String()
	if strings.Contains(text, "--- aztec") || strings.Contains(text, "+++ soundness") {
		t.Error("file headers should be removed")
	}
	if !strings.Contains(text, "\x1b[36m@@") {
		t.Errorf("expected cyan hunk header in %q", text)
	}
	if !strings.Contains(text, "\x1b[32m+") || !strings.Contains(text, "\x1b[31m-") {
		t.Error("expected colored additions and removals")
	}
}

func TestRun_FetchError(t *testing.T) {
	src := source.NewLocal(threatmodel.Default())
	if err := Run(context.Background(), src, "aztec", "missing", Options{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestLines(t *testing.T) {
	got := Lines("A\nb\r\nC\n", true)
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("unexpected lines %v", got)
	}
	if Lines("", false) != nil {
		t.Error("empty text should give no lines")
	}
}

func TestUnified_ContextLines(t *testing.T) {
	a := []string{"1", "2", "3", "4", "5", "6", "7"}
	b := []string{"1", "2", "3", "X", "5", "6", "7"}

	lines, err := Unified(a, b, "a", "b", 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"--- a", "+++ b", "@@ -3,3 +3,3 @@", " 3", "-4", "+X", " 5"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("unexpected diff:\n%s", strings.Join(lines, "\n"))
	}
}

func TestColorize(t *testing.T) {
	for _, line := range []string{"--- a", "+++ b", " same"} {
		if got := Colorize(line); got != line {
			t.Errorf("Colorize(%q) = %q, expected it unchanged", line, got)
		}
	}

	tests := []struct {
		line   string
		prefix string
	}{
		{"+new", "\x1b[32m+new"},
		{"-old", "\x1b[31m-old"},
		{"@@ -1 +1 @@", "\x1b[36m@@ -1 +1 @@"},
	}
	for _, tt := range tests {
		got := Colorize(tt.line)
		if !strings.HasPrefix(got, tt.prefix) || !strings.HasSuffix(got, "\x1b[0m") {
			t.Errorf("Colorize(%q) = %q", tt.line, got)
		}
	}
}

func TestLabel(t *testing.T) {
	if Label("aztec", "") != "aztec" {
		t.Error("label without section")
	}
	if Label("aztec", "assets") != "aztec (assets)" {
		t.Error("label with section")
	}
}
