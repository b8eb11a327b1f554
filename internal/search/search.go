// Package search looks for a substring in rendered threat models.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gzhole/web3threat/internal/source"
)

var (
	ErrNoProfiles = errors.New("no profiles to search")
	ErrNoMatches  = errors.New("no matches")
)

type Options struct {
	Query       string
	Profiles    []string // empty = all
	Section     string
	IgnoreCase  bool
	ShowContext bool
}

// Match holds the lines of one profile that contain the query.
type Match struct {
	Profile string
	Lines   []string
	Text    string
}

// MatchLines returns the lines of text containing query. CRLF line endings
// are accepted.
func MatchLines(text, query string, ignoreCase bool) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if ignoreCase {
		query = strings.ToLower(query)
	}
	var matches []string
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		candidate := line
		if ignoreCase {
			candidate = strings.ToLower(line)
		}
		if strings.Contains(candidate, query) {
			matches = append(matches, line)
		}
	}
	return matches
}

// Select keeps the profiles of all that were requested, in the order of all.
// Requested names that are not in all come back sorted as missing.
func Select(all, requested []string) (selected, missing []string) {
	if len(requested) == 0 {
		return all, nil
	}

	want := make(map[string]bool, len(requested))
	for _, r := range requested {
		want[r] = true
	}
	known := make(map[string]bool, len(all))
	for _, p := range all {
		known[p] = true
		if want[p] {
			selected = append(selected, p)
		}
	}
	for r := range want {
		if !known[r] {
			missing = append(missing, r)
		}
	}
	sort.Strings(missing)
	return selected, missing
}

// Header returns the line printed above a matching profile.
func Header(profile, section string) string {
	h := "=== Profile: " + profile
	if section != "" {
		h += " | Section: " + section
	}
	return h + " ==="
}

// Run searches every selected profile and prints the matches to out. Unknown
// requested profiles and profiles that fail to render are logged and
// skipped. It returns ErrNoMatches when nothing matched.
func Run(ctx context.Context, src source.Source, opts Options, out io.Writer, logger *slog.Logger) ([]Match, error) {
	if logger == nil {
		logger = slog.Default()
	}

	all, err := src.Profiles(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list profiles")
	}
	if len(all) == 0 {
		return nil, goerr.Wrap(ErrNoProfiles, "nothing to search")
	}

	profiles, missing := Select(all, opts.Profiles)
	if len(missing) > 0 {
		logger.Warn("unknown profiles requested", "profiles", strings.Join(missing, ", "))
	}
	if len(profiles) == 0 {
		return nil, goerr.Wrap(ErrNoProfiles, "no matching profiles to search after filtering")
	}

	var matches []Match
	for _, profile := range profiles {
		text, err := src.Fetch(ctx, profile, opts.Section)
		if err != nil {
			logger.Error("failed to run profile", "profile", profile, "error", err.Error())
			continue
		}
		text = strings.ReplaceAll(text, "\r\n", "\n")

		lines := MatchLines(text, opts.Query, opts.IgnoreCase)
		if len(lines) == 0 {
			continue
		}
		matches = append(matches, Match{Profile: profile, Lines: lines, Text: text})

		var sb strings.Builder
		sb.WriteString(Header(profile, opts.Section) + "\n")
		if opts.ShowContext {
			sb.WriteString(strings.TrimRight(text, "\n") + "\n")
		} else {
			for _, line := range lines {
				fmt.Fprintf(&sb, "  %s\n", line)
			}
		}
		sb.WriteString("\n")
		if _, err := io.WriteString(out, sb.String()); err != nil {
			return matches, goerr.Wrap(err, "failed to write results")
		}
	}

	if len(matches) == 0 {
		return nil, goerr.Wrap(ErrNoMatches, fmt.Sprintf("no matches for '%s' in the selected profiles", opts.Query))
	}
	return matches, nil
}
