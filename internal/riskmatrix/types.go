package riskmatrix

import "errors"

var (
	ErrProfileNotFound = errors.New("risk profile not found")
	ErrInvalidLevel    = errors.New("invalid risk level")
)

// Level is a qualitative likelihood or impact rating.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Valid reports whether l is one of low, medium or high.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// RiskCell is one row of a risk matrix.
//
// Fields are declared in alphabetical order so the JSON encoding has sorted
// keys.
type RiskCell struct {
	Asset      string `json:"asset" yaml:"asset"`
	Impact     Level  `json:"impact" yaml:"impact"`
	Likelihood Level  `json:"likelihood" yaml:"likelihood"`
	Notes      string `json:"notes" yaml:"notes"`
	Threat     string `json:"threat" yaml:"threat"`
}

// RiskProfile is a named risk matrix with a short summary.
type RiskProfile struct {
	Key     string
	Name    string
	Summary string
	Matrix  []RiskCell
}

func (p RiskProfile) clone() RiskProfile {
	p.Matrix = append([]RiskCell(nil), p.Matrix...)
	return p
}
