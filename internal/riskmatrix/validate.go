package riskmatrix

import (
	"github.com/m-mizutani/goerr/v2"
)

// Validate checks that every cell uses a known likelihood and impact level.
func Validate(p RiskProfile) error {
	for i, cell := range p.Matrix {
		if !cell.Likelihood.Valid() {
			return goerr.Wrap(ErrInvalidLevel, "invalid likelihood "+quote(cell.Likelihood)+" in profile "+p.Key,
				goerr.V("profile", p.Key),
				goerr.V("cell", i+1),
				goerr.V("likelihood", string(cell.Likelihood)))
		}
		if !cell.Impact.Valid() {
			return goerr.Wrap(ErrInvalidLevel, "invalid impact "+quote(cell.Impact)+" in profile "+p.Key,
				goerr.V("profile", p.Key),
				goerr.V("cell", i+1),
				goerr.V("impact", string(cell.Impact)))
		}
	}
	return nil
}

// ValidateCatalog runs Validate over every profile and stops at the first error.
func ValidateCatalog(c *Catalog) error {
	for _, p := range c.Profiles() {
		if err := Validate(p); err != nil {
			return err
		}
	}
	return nil
}

func quote(l Level) string {
	return "'" + string(l) + "'"
}
