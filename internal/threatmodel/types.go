package threatmodel

import (
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnknownSection  = errors.New("unknown section")
)

// ThreatModel is a high level threat model for one Web3 privacy profile.
// List fields are rendered in order and numbered from 1.
type ThreatModel struct {
	Key            string
	Name           string
	Overview       string
	Assets         []string
	Adversaries    []string
	AttackSurfaces []string
	Mitigations    []string
}

// Section names one part of a threat model.
type Section string

const (
	SectionOverview    Section = "overview"
	SectionAssets      Section = "assets"
	SectionAdversaries Section = "adversaries"
	SectionAttacks     Section = "attacks"
	SectionMitigations Section = "mitigations"
)

var sectionOrder = []Section{
	SectionOverview,
	SectionAssets,
	SectionAdversaries,
	SectionAttacks,
	SectionMitigations,
}

var sectionTitles = map[Section]string{
	SectionOverview:    "Overview",
	SectionAssets:      "Assets to protect",
	SectionAdversaries: "Adversaries",
	SectionAttacks:     "Attack surfaces",
	SectionMitigations: "Mitigations",
}

// Sections returns every section in rendering order.
func Sections() []Section {
	out := make([]Section, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// SectionNames returns the section names accepted on the command line.
func SectionNames() []string {
	names := make([]string, len(sectionOrder))
	for i, s := range sectionOrder {
		names[i] = string(s)
	}
	return names
}

// ParseSection maps a command-line name to a Section.
func ParseSection(name string) (Section, error) {
	s := Section(name)
	if _, ok := sectionTitles[s]; !ok {
		return "", goerr.Wrap(ErrUnknownSection, "invalid section", goerr.V("section", name))
	}
	return s, nil
}

// Title returns the heading printed above the section. Unknown sections get
// their name with the first letter upper-cased.
func (s Section) Title() string {
	if t, ok := sectionTitles[s]; ok {
		return t
	}
	if s == "" {
		return ""
	}
	lower := strings.ToLower(string(s))
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// Items returns the list for a list section. ok is false for the overview and
// for unknown sections.
func (m ThreatModel) Items(s Section) (items []string, ok bool) {
	switch s {
	case SectionAssets:
		return m.Assets, true
	case SectionAdversaries:
		return m.Adversaries, true
	case SectionAttacks:
		return m.AttackSurfaces, true
	case SectionMitigations:
		return m.Mitigations, true
	default:
		return nil, false
	}
}

func (m ThreatModel) clone() ThreatModel {
	m.Assets = append([]string(nil), m.Assets...)
	m.Adversaries = append([]string(nil), m.Adversaries...)
	m.AttackSurfaces = append([]string(nil), m.AttackSurfaces...)
	m.Mitigations = append([]string(nil), m.Mitigations...)
	return m
}
