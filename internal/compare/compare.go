// Package compare produces a unified diff between two rendered profiles.
package compare

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/gzhole/web3threat/internal/source"
)

// IdenticalNotice is printed when the diff is empty.
const IdenticalNotice = "Profiles are identical (under the chosen options)."

type Options struct {
	Section      string
	IgnoreCase   bool
	ContextLines int
	Color        bool
	NoHeader     bool
}

// Label names one side of the diff: the profile, plus the section in
// parentheses when one is selected.
func Label(profile, section string) string {
	if section == "" {
		return profile
	}
	return fmt.Sprintf("%s (%s)", profile, section)
}

// Lines splits text into lines without terminators, lower-casing each when
// ignoreCase is set.
func Lines(text string, ignoreCase bool) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if ignoreCase {
		for i, l := range lines {
			lines[i] = strings.ToLower(l)
		}
	}
	return lines
}

// Unified returns the unified diff of a and b as lines without terminators.
// It returns nil when the inputs are equal.
func Unified(a, b []string, fromLabel, toLabel string, context int) ([]string, error) {
	if context < 0 {
		context = 0
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(a),
		B:        withNewlines(b),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  context,
		Eol:      "\n",
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute diff")
	}
	if text == "" {
		return nil, nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n"), nil
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}

var (
	addColor  = color.New(color.FgGreen)
	delColor  = color.New(color.FgRed)
	hunkColor = color.New(color.FgCyan)
)

func init() {
	// Callers decide when to colorize; ignore fatih/color's TTY detection.
	addColor.EnableColor()
	delColor.EnableColor()
	hunkColor.EnableColor()
}

// Colorize wraps added lines in green, removed lines in red and hunk
// headers in cyan. File header lines are left as they are.
func Colorize(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return line
	case strings.HasPrefix(line, "+"):
		return addColor.Sprint(line)
	case strings.HasPrefix(line, "-"):
		return delColor.Sprint(line)
	case strings.HasPrefix(line, "@@"):
		return hunkColor.Sprint(line)
	}
	return line
}

// Run fetches both profiles from src and writes their diff to out.
func Run(ctx context.Context, src source.Source, profileA, profileB string, opts Options, out io.Writer) error {
	textA, err := src.Fetch(ctx, profileA, opts.Section)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch profile", goerr.V("profile", profileA))
	}
	textB, err := src.Fetch(ctx, profileB, opts.Section)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch profile", goerr.V("profile", profileB))
	}

	lines, err := Unified(
		Lines(textA, opts.IgnoreCase),
		Lines(textB, opts.IgnoreCase),
		Label(profileA, opts.Section),
		Label(profileB, opts.Section),
		opts.ContextLines,
	)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, line := range lines {
		if opts.NoHeader && (strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++")) {
			continue
		}
		if opts.Color {
			line = Colorize(line)
		}
		sb.WriteString(line + "\n")
	}
	if len(lines) == 0 {
		sb.WriteString(IdenticalNotice + "\n")
	}

	if _, err := io.WriteString(out, sb.String()); err != nil {
		return goerr.Wrap(err, "failed to write diff")
	}
	return nil
}
