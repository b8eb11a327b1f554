package riskmatrix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Document is the machine-readable form of a profile. Fields are in
// alphabetical order so encoders emit sorted keys.
type Document struct {
	Matrix  []RiskCell `json:"matrix" yaml:"matrix"`
	Name    string     `json:"name" yaml:"name"`
	Profile string     `json:"profile" yaml:"profile"`
	Summary string     `json:"summary" yaml:"summary"`
}

// NewDocument converts p for encoding.
func NewDocument(p RiskProfile) Document {
	matrix := p.Matrix
	if matrix == nil {
		matrix = []RiskCell{}
	}
	return Document{
		Matrix:  matrix,
		Name:    p.Name,
		Profile: p.Key,
		Summary: p.Summary,
	}
}

var levelColors = map[Level]color.Attribute{
	LevelLow:    color.FgGreen,
	LevelMedium: color.FgYellow,
	LevelHigh:   color.FgRed,
}

// FormatLevel returns the level as printed in the human view. With colorize
// it is upper-cased and wrapped in its ANSI color.
func FormatLevel(l Level, colorize bool) string {
	if !colorize {
		return string(l)
	}
	attr, ok := levelColors[Level(strings.ToLower(string(l)))]
	if !ok {
		return string(l)
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(strings.ToUpper(string(l)))
}

// RenderHuman writes the numbered, human-readable matrix.
func RenderHuman(w io.Writer, p RiskProfile, colorize bool) error {
	var sb strings.Builder
	sb.WriteString("🔐 risk-matrix\n")
	fmt.Fprintf(&sb, "Profile : %s (%s)\n", p.Name, p.Key)
	sb.WriteString("\n")
	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  %s\n", p.Summary)
	sb.WriteString("\n")
	sb.WriteString("Risk matrix (likelihood x impact):\n")
	for i, cell := range p.Matrix {
		fmt.Fprintf(&sb, "%d. Asset      : %s\n", i+1, cell.Asset)
		fmt.Fprintf(&sb, "   Threat     : %s\n", cell.Threat)
		fmt.Fprintf(&sb, "   Likelihood : %s\n", FormatLevel(cell.Likelihood, colorize))
		fmt.Fprintf(&sb, "   Impact     : %s\n", FormatLevel(cell.Impact, colorize))
		fmt.Fprintf(&sb, "   Notes      : %s\n", cell.Notes)
		sb.WriteString("\n")
	}
	return write(w, []byte(sb.String()))
}

// RenderJSON writes the profile as indented JSON with sorted keys. HTML
// characters are not escaped.
func RenderJSON(w io.Writer, p RiskProfile) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(p)); err != nil {
		return goerr.Wrap(err, "failed to encode risk profile", goerr.V("profile", p.Key))
	}
	return write(w, buf.Bytes())
}

// RenderYAML writes the same document as RenderJSON in YAML.
func RenderYAML(w io.Writer, p RiskProfile) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(p)); err != nil {
		return goerr.Wrap(err, "failed to encode risk profile", goerr.V("profile", p.Key))
	}
	if err := enc.Close(); err != nil {
		return goerr.Wrap(err, "failed to encode risk profile", goerr.V("profile", p.Key))
	}
	return write(w, buf.Bytes())
}

// ListProfiles writes the keys and names in catalog order.
func ListProfiles(w io.Writer, c *Catalog) error {
	var sb strings.Builder
	sb.WriteString("Available profiles:\n")
	for _, p := range c.Profiles() {
		fmt.Fprintf(&sb, "  %-10s - %s\n", p.Key, p.Name)
	}
	return write(w, []byte(sb.String()))
}

func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return nil
}
