// Package export writes rendered threat models to files and builds the
// Markdown profile table.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gzhole/web3threat/internal/source"
)

var ErrNoProfiles = errors.New("no profiles found")

// Format selects the exported file type.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// ParseFormat accepts "md" or "txt".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatText:
		return Format(s), nil
	}
	return "", goerr.New("unsupported export format", goerr.V("format", s))
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

type Options struct {
	OutDir       string
	Format       Format
	HeadingLevel int
	CodeBlock    bool
}

// Result lists what an export run wrote and which profiles it skipped.
type Result struct {
	Written []string
	Failed  []string
}

// WrapMarkdown puts body under a "Threat model" heading, fenced as text when
// codeBlock is set. Trailing newlines of body are dropped.
func WrapMarkdown(profile, body string, headingLevel int, codeBlock bool) string {
	body = strings.TrimRight(body, "\n")
	prefix := strings.Repeat("#", max(1, min(6, headingLevel)))
	if codeBlock {
		return fmt.Sprintf("%s Threat model: `%s`\n\n```text\n%s\n```\n", prefix, profile, body)
	}
	return fmt.Sprintf("%s Threat model: `%s`\n\n%s\n", prefix, profile, body)
}

// Content returns the file body for one profile.
func Content(profile, text string, opts Options) string {
	if opts.Format == FormatText {
		return text
	}
	return WrapMarkdown(profile, text, opts.HeadingLevel, opts.CodeBlock)
}

// Run exports every profile from src into opts.OutDir, one file per profile.
// A profile that cannot be fetched is logged and skipped. Progress lines go
// to out.
func Run(ctx context.Context, src source.Source, opts Options, out io.Writer, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Format == "" {
		opts.Format = FormatMarkdown
	}

	profiles, err := src.Profiles(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list profiles")
	}
	if len(profiles) == 0 {
		return nil, goerr.Wrap(ErrNoProfiles, "nothing to export")
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", opts.OutDir))
	}
	absDir, err := filepath.Abs(opts.OutDir)
	if err != nil {
		absDir = opts.OutDir
	}

	fmt.Fprintf(out, "Found profiles: %s\n", strings.Join(profiles, ", "))
	fmt.Fprintf(out, "Writing exports to: %s\n", absDir)

	result := &Result{}
	for _, profile := range profiles {
		text, err := src.Fetch(ctx, profile, "")
		if err != nil {
			logger.Error("failed to export profile", "profile", profile, "error", err.Error())
			result.Failed = append(result.Failed, profile)
			continue
		}

		path := filepath.Join(opts.OutDir, profile+opts.Format.Ext())
		if err := os.WriteFile(path, []byte(Content(profile, text, opts)), 0644); err != nil {
			return result, goerr.Wrap(err, "failed to write export", goerr.V("path", path))
		}
		result.Written = append(result.Written, path)
		fmt.Fprintf(out, "  - wrote %s\n", path)
	}

	fmt.Fprintln(out, "Done.")
	return result, nil
}
