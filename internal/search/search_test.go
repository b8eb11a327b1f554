package search

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gzhole/web3threat/internal/source"
	"github.com/gzhole/web3threat/internal/threatmodel"
)

func TestRun_ScopedToZamaMitigations(t *testing.T) {
	src := source.NewLocal(threatmodel.Default())

	var out bytes.Buffer
	matches, err := Run(context.Background(), src, Options{
		Query:   "differential privacy",
		Section: "mitigations",
	}, &out, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 1 || matches[0].Profile != "zama" {
		t.Fatalf("expected a single zama match, got %+v", matches)
	}

	text := out.String()
	if !strings.HasPrefix(text, "=== Profile: zama | Section: mitigations ===\n") {
		t.Errorf("unexpected header in %q", text)
	}
	for _, other := range []string{"aztec", "soundness"} {
		if strings.Contains(text, "Profile: "+other) {
			t.Errorf("unexpected match under %s", other)
		}
	}
	if !strings.Contains(text, "  5. Rate limits and differential privacy techniques for result queries\n") {
		t.Errorf("missing matching line in %q", text)
	}
}

func TestRun_IgnoreCase(t *testing.T) {
	src := source.NewLocal(threatmodel.Default())

	_, err := Run(context.Background(), src, Options{Query: "MERKLE"}, &bytes.Buffer{}, nil)
	if !errors.Is(err, ErrNoMatches) {
		t.Fatalf("case-sensitive search should not match, got %v", err)
	}

	matches, err := Run(context.Background(), src, Options{Query: "MERKLE", IgnoreCase: true}, &bytes.Buffer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].Profile != "aztec" {
		t.Errorf("expected aztec match, got %+v", matches)
	}
	if matches[0].Lines[0] != "4. Layer 2 state roots and Merkle commitments" {
		t.Errorf("matching line should keep its original case, got %q", matches[0].Lines[0])
	}
}

func TestRun_ShowContext(t *testing.T) {
	src := source.NewLocal(threatmodel.Default())

	var out bytes.Buffer
	_, err := Run(context.Background(), src, Options{
		Query:       "Overview",
		Profiles:    []string{"soundness"},
		Section:     "overview",
		ShowContext: true,
	}, &out, nil)
	if err != nil {
		t.Fatal(err)
	}

	full, _ := src.Fetch(context.Background(), "soundness", "overview")
	want := Header("soundness", "overview") + "\n" + strings.TrimRight(full, "\n") + "\n\n"
	if out.String() != want {
		t.Errorf("expected full text\n%q\ngot\n%q", want, out.String())
	}
}

func TestRun_UnknownProfilesFiltered(t *testing.T) {
	src := source.NewLocal(threatmodel.Default())

	matches, err := Run(context.Background(), src, Options{
		Query:    "Threat model profile",
		Profiles: []string{"polygon", "aztec"},
	}, &bytes.Buffer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].Profile != "aztec" {
		t.Errorf("expected only aztec, got %+v", matches)
	}

	_, err = Run(context.Background(), src, Options{Query: "x", Profiles: []string{"polygon"}}, &bytes.Buffer{}, nil)
	if !errors.Is(err, ErrNoProfiles) {
		t.Errorf("expected ErrNoProfiles, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	all := []string{"aztec", "soundness", "zama"}

	selected, missing := Select(all, nil)
	if len(selected) != 3 || missing != nil {
		t.Errorf("no request should select all, got %v %v", selected, missing)
	}

	selected, missing = Select(all, []string{"zama", "foo", "aztec", "bar"})
	if strings.Join(selected, ",") != "aztec,zama" {
		t.Errorf("unexpected selection %v", selected)
	}
	if strings.Join(missing, ",") != "bar,foo" {
		t.Errorf("unexpected missing %v", missing)
	}
}

func TestMatchLines(t *testing.T) {
	text := "Alpha\nbeta\nALPHABET\n"
	if got := MatchLines(text, "alpha", false); len(got) != 0 {
		t.Errorf("expected no case-sensitive matches, got %v", got)
	}
	if got := MatchLines(text, "alpha", true); strings.Join(got, ",") != "Alpha,ALPHABET" {
		t.Errorf("unexpected matches %v", got)
	}
}

func TestMatchLines_CRLF(t *testing.T) {
	got := MatchLines("1. Merkle roots\r\n2. Bridges\r\n", "Merkle", false)
	if len(got) != 1 || got[0] != "1. Merkle roots" {
		t.Errorf("expected line without carriage return, got %q", got)
	}
}

func TestHeader(t *testing.T) {
	if got := Header("zama", ""); got != "=== Profile: zama ===" {
		t.Errorf("unexpected header %q", got)
	}
}
