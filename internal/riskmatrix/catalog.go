package riskmatrix

import (
	"github.com/m-mizutani/goerr/v2"
)

// DefaultKey is the profile shown when none is requested.
const DefaultKey = "aztec"

// Catalog holds risk profiles in insertion order.
type Catalog struct {
	byKey map[string]RiskProfile
	keys  []string
}

// NewCatalog builds a catalog. Keys must be non-empty and unique; levels are
// not checked here, see ValidateCatalog.
func NewCatalog(profiles ...RiskProfile) (*Catalog, error) {
	c := &Catalog{byKey: make(map[string]RiskProfile, len(profiles))}
	for _, p := range profiles {
		if p.Key == "" {
			return nil, goerr.New("risk profile without key", goerr.V("name", p.Name))
		}
		if _, dup := c.byKey[p.Key]; dup {
			return nil, goerr.New("duplicate risk profile key", goerr.V("profile", p.Key))
		}
		c.byKey[p.Key] = p.clone()
		c.keys = append(c.keys, p.Key)
	}
	return c, nil
}

var defaultCatalog = mustCatalog(builtinProfiles()...)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

func mustCatalog(profiles ...RiskProfile) *Catalog {
	c, err := NewCatalog(profiles...)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns a copy of the profile stored under key.
func (c *Catalog) Get(key string) (RiskProfile, error) {
	p, ok := c.byKey[key]
	if !ok {
		return RiskProfile{}, goerr.Wrap(ErrProfileNotFound, "no risk profile for key", goerr.V("profile", key))
	}
	return p.clone(), nil
}

// Keys returns the profile keys in insertion order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Profiles returns every profile in insertion order.
func (c *Catalog) Profiles() []RiskProfile {
	out := make([]RiskProfile, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.byKey[k].clone())
	}
	return out
}

func builtinProfiles() []RiskProfile {
	return []RiskProfile{
		{
			Key:  "aztec",
			Name: "Aztec-style zk privacy rollup",
			Summary: "Privacy-preserving L2 with encrypted balances and zk circuits. " +
				"Main worries are proof system soundness, DA failures, and key compromise.",
			Matrix: []RiskCell{
				{
					Asset:      "Encrypted balances and notes",
					Threat:     "Compromised proving key or circuit bug",
					Likelihood: LevelMedium,
					Impact:     LevelHigh,
					Notes:      "Can silently break confidentiality or enable inflation.",
				},
				{
					Asset:      "L2 state commitment",
					Threat:     "Data availability failure / withheld batches",
					Likelihood: LevelMedium,
					Impact:     LevelHigh,
					Notes:      "Users may not be able to exit or prove ownership.",
				},
				{
					Asset:      "Bridge contracts",
					Threat:     "L1 <> L2 bridge logic bug",
					Likelihood: LevelLow,
					Impact:     LevelHigh,
					Notes:      "Typical catastrophic failure: locked or stolen funds.",
				},
				{
					Asset:      "Sequencer / coordinator",
					Threat:     "Censorship or MEV abuse",
					Likelihood: LevelHigh,
					Impact:     LevelMedium,
					Notes:      "Can degrade UX and fairness, even if safety is preserved.",
				},
			},
		},
		{
			Key:  "zama",
			Name: "Zama-style FHE + Web3 stack",
			Summary: "Encrypted compute over sensitive data with FHE and Web3 anchoring. " +
				"Main worries are key management, performance-induced shortcuts, and side channels.",
			Matrix: []RiskCell{
				{
					Asset:      "FHE private keys",
					Threat:     "Key exfiltration from compute cluster",
					Likelihood: LevelMedium,
					Impact:     LevelHigh,
					Notes:      "Decryption of historical ciphertexts is usually game over.",
				},
				{
					Asset:      "Encrypted data streams",
					Threat:     "Traffic analysis and metadata leakage",
					Likelihood: LevelHigh,
					Impact:     LevelMedium,
					Notes:      "Patterns may leak business-sensitive info even if content stays private.",
				},
				{
					Asset:      "On-chain anchors / hashes",
					Threat:     "Mismatched commitments between FHE world and chain",
					Likelihood: LevelLow,
					Impact:     LevelHigh,
					Notes:      "Breaks auditability or can be abused to fake computations.",
				},
				{
					Asset:      "Compute nodes",
					Threat:     "Side-channel attacks on FHE runtimes",
					Likelihood: LevelMedium,
					Impact:     LevelMedium,
					Notes:      "Timing and cache patterns may leak partial information.",
				},
			},
		},
		{
			Key:  "soundness",
			Name: "Soundness-first protocol lab",
			Summary: "Specification-driven, research-heavy protocol work. " +
				"Main worries are spec/implementation drift and unsafe experimental deployments.",
			Matrix: []RiskCell{
				{
					Asset:      "Reference specification",
					Threat:     "Implementation deviates from spec",
					Likelihood: LevelMedium,
					Impact:     LevelHigh,
					Notes:      "Breaks assumptions used in proofs and reviews.",
				},
				{
					Asset:      "Test deployments / devnets",
					Threat:     "Experimental features exposed to real value",
					Likelihood: LevelMedium,
					Impact:     LevelMedium,
					Notes:      "Prototype code accidentally becomes security-critical.",
				},
				{
					Asset:      "Proof artifacts",
					Threat:     "Outdated proofs kept as authoritative",
					Likelihood: LevelHigh,
					Impact:     LevelMedium,
					Notes:      "Teams may over-trust proofs that no longer match the system.",
				},
				{
					Asset:      "Upgrade and governance path",
					Threat:     "Rushed changes bypassing review process",
					Likelihood: LevelMedium,
					Impact:     LevelHigh,
					Notes:      "Undermines the whole soundness-first culture.",
				},
			},
		},
	}
}
