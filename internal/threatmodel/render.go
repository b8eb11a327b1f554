package threatmodel

import (
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const (
	profileHeaderPrefix = "Threat model profile: "

	disclaimerLine = "This output is an educational starting point and does not replace a full security review."
	adaptLine      = "Always adapt and extend it for your specific protocol, chain, and deployment model."
)

// RenderSection writes one section of m. Overview prints the paragraph, list
// sections print numbered lines, and both end with a blank line.
//
// An unknown section prints an "Unknown section" line and returns
// ErrUnknownSection. Callers that only need the text can ignore it.
func RenderSection(w io.Writer, m ThreatModel, section Section) error {
	var sb strings.Builder
	unknown := writeSection(&sb, m, section)
	if err := flush(w, &sb); err != nil {
		return err
	}
	if unknown {
		return goerr.Wrap(ErrUnknownSection, "cannot render section", goerr.V("section", string(section)))
	}
	return nil
}

// RenderFull writes the header, every section in order and the closing note.
func RenderFull(w io.Writer, m ThreatModel) error {
	var sb strings.Builder
	writeHeader(&sb, m)
	for _, s := range Sections() {
		writeSection(&sb, m, s)
	}
	sb.WriteString("Note:\n")
	sb.WriteString(disclaimerLine + "\n")
	sb.WriteString("\n")
	sb.WriteString(adaptLine + "\n")
	return flush(w, &sb)
}

// RenderProfile writes what the command line prints for a selected profile:
// the full model when section is empty, else a header plus that section.
func RenderProfile(w io.Writer, m ThreatModel, section Section) error {
	if section == "" {
		return RenderFull(w, m)
	}
	var sb strings.Builder
	writeHeader(&sb, m)
	unknown := writeSection(&sb, m, section)
	if err := flush(w, &sb); err != nil {
		return err
	}
	if unknown {
		return goerr.Wrap(ErrUnknownSection, "cannot render section", goerr.V("section", string(section)))
	}
	return nil
}

// ListProfiles writes every key with its display name, sorted by key.
// ParseListing reads this format back.
func ListProfiles(w io.Writer, c *Catalog) error {
	var sb strings.Builder
	sb.WriteString("Available profiles related to Web3 privacy and soundness:\n")
	for _, m := range c.Models() {
		fmt.Fprintf(&sb, "- %s: %s\n", m.Key, m.Name)
	}
	sb.WriteString("\n")
	sb.WriteString("Use --profile with one of these keys to print a threat model.\n")
	return flush(w, &sb)
}

// ParseListing extracts profile keys from ListProfiles output. Empty lines and
// lines starting with '#' are skipped, "- key: name" lines yield key, and a
// line holding a single bare word is taken as a key. Other prose is ignored.
func ParseListing(text string) []string {
	var keys []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "- "); ok {
			key, _, found := strings.Cut(rest, ":")
			key = strings.TrimSpace(key)
			if found && key != "" && !strings.ContainsAny(key, " \t") {
				keys = append(keys, key)
			}
			continue
		}
		if !strings.ContainsAny(line, " \t:") {
			keys = append(keys, line)
		}
	}
	return keys
}

func writeHeader(sb *strings.Builder, m ThreatModel) {
	sb.WriteString(profileHeaderPrefix + m.Name + "\n")
	sb.WriteString("\n")
}

// writeSection reports true when section is not one it knows.
func writeSection(sb *strings.Builder, m ThreatModel, section Section) bool {
	sb.WriteString(section.Title() + ":\n")
	sb.WriteString("\n")

	if section == SectionOverview {
		sb.WriteString(m.Overview + "\n")
		sb.WriteString("\n")
		return false
	}

	items, ok := m.Items(section)
	if !ok {
		fmt.Fprintf(sb, "Unknown section: %s\n", section)
		sb.WriteString("\n")
		return true
	}

	for i, item := range items {
		fmt.Fprintf(sb, "%d. %s\n", i+1, item)
	}
	sb.WriteString("\n")
	return false
}

func flush(w io.Writer, sb *strings.Builder) error {
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return nil
}
