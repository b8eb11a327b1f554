// Package source supplies rendered threat model text to the derived tools,
// either straight from the built-in catalog or by running the web3-threatmodel
// binary and capturing its output.
package source

import (
	"bytes"
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gzhole/web3threat/internal/threatmodel"
)

var ErrAppNotFound = errors.New("threat model executable not found")

// Source returns the profile list and the text printed for a profile.
// An empty section means the full threat model.
type Source interface {
	Profiles(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, profile, section string) (string, error)
}

// Local renders from a catalog in process.
type Local struct {
	catalog *threatmodel.Catalog
}

func NewLocal(catalog *threatmodel.Catalog) *Local {
	return &Local{catalog: catalog}
}

// Profiles returns the keys as the listing would print them.
func (l *Local) Profiles(ctx context.Context) ([]string, error) {
	var buf bytes.Buffer
	if err := threatmodel.ListProfiles(&buf, l.catalog); err != nil {
		return nil, err
	}
	return threatmodel.ParseListing(buf.String()), nil
}

func (l *Local) Fetch(ctx context.Context, profile, section string) (string, error) {
	m, err := l.catalog.Get(profile)
	if err != nil {
		return "", err
	}

	var s threatmodel.Section
	if section != "" {
		s, err = threatmodel.ParseSection(section)
		if err != nil {
			return "", goerr.Wrap(err, "failed to fetch profile", goerr.V("profile", profile))
		}
	}

	var buf bytes.Buffer
	if err := threatmodel.RenderProfile(&buf, m, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}
