package threatmodel

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
)

// Catalog holds threat models by key. It is read-only once built.
type Catalog struct {
	byKey map[string]ThreatModel
	keys  []string // sorted
}

// NewCatalog builds a catalog from models. Keys must be non-empty and unique.
func NewCatalog(models ...ThreatModel) (*Catalog, error) {
	c := &Catalog{byKey: make(map[string]ThreatModel, len(models))}
	for _, m := range models {
		if m.Key == "" {
			return nil, goerr.New("threat model without key", goerr.V("name", m.Name))
		}
		if _, dup := c.byKey[m.Key]; dup {
			return nil, goerr.New("duplicate threat model key", goerr.V("profile", m.Key))
		}
		c.byKey[m.Key] = m.clone()
		c.keys = append(c.keys, m.Key)
	}
	sort.Strings(c.keys)
	return c, nil
}

var defaultCatalog = mustCatalog(builtinModels()...)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

func mustCatalog(models ...ThreatModel) *Catalog {
	c, err := NewCatalog(models...)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns a copy of the model stored under key.
func (c *Catalog) Get(key string) (ThreatModel, error) {
	m, ok := c.byKey[key]
	if !ok {
		return ThreatModel{}, goerr.Wrap(ErrProfileNotFound, "no threat model for key", goerr.V("profile", key))
	}
	return m.clone(), nil
}

// Has reports whether key is in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

// Keys returns all profile keys in lexicographic order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Models returns every model, ordered by key.
func (c *Catalog) Models() []ThreatModel {
	out := make([]ThreatModel, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.byKey[k].clone())
	}
	return out
}

func builtinModels() []ThreatModel {
	return []ThreatModel{
		{
			Key:  "aztec",
			Name: "Aztec-style zk rollup",
			Overview: "A privacy-preserving Ethereum rollup using zero-knowledge proofs for " +
				"confidential balances and private smart contracts.",
			Assets: []string{
				"Encrypted user balances and notes",
				"Viewing keys and decryption keys",
				"Proving and verification keys for zk circuits",
				"Layer 2 state roots and Merkle commitments",
				"Bridge contracts and rollup smart contracts on L1",
			},
			Adversaries: []string{
				"On-chain observers trying to deanonymize users",
				"Compromised sequencer attempting to censor or reorder transactions",
				"Malicious prover submitting invalid proofs",
				"Smart contract attackers exploiting rollup logic",
				"Insider threat leaking viewing keys or proving secrets",
			},
			AttackSurfaces: []string{
				"Bugs in zk circuits or constraint systems",
				"Incorrect implementation of cryptographic primitives",
				"Bridge contract vulnerabilities between L1 and L2",
				"Metadata leaks from transaction timing and fee patterns",
				"Trusted setup or key ceremony compromises, if applicable",
			},
			Mitigations: []string{
				"Independent audits of circuits, contracts, and cryptographic libraries",
				"Formal verification of core rollup and bridge logic where feasible",
				"Multi-party ceremonies or transparent setups for proving systems",
				"Fee and batching strategies to reduce metadata leakage",
				"Key management policies for proving keys and operational secrets",
			},
		},
		{
			Key:  "zama",
			Name: "Zama-style FHE compute stack",
			Overview: "A system that performs computations directly on encrypted data using " +
				"fully homomorphic encryption, often alongside Web3 components.",
			Assets: []string{
				"Long-term FHE secret keys and key shares",
				"Encrypted datasets stored in data lakes or logs",
				"Computation policies describing allowed FHE queries",
				"Metadata linking ciphertexts to users or organizations",
				"Partially decrypted results and post-processing pipelines",
			},
			Adversaries: []string{
				"Cloud operators with access to ciphertexts and compute nodes",
				"External attackers exfiltrating ciphertexts or key material",
				"Curious analysts attempting to infer data from encrypted outputs",
				"Application developers misconfiguring FHE parameters",
				"Colluding parties trying to reconstruct secret keys",
			},
			AttackSurfaces: []string{
				"Side channel leakage from FHE implementations",
				"Weak parameter choices leading to cryptanalytic attacks",
				"Decryption or key management endpoints",
				"Insecure storage of ciphertexts and backups",
				"Query pattern leakage and repeated computations on similar data",
			},
			Mitigations: []string{
				"Use hardened, well-reviewed FHE libraries with safe defaults",
				"Separate roles for key management and compute infrastructure",
				"Access control and logging for decryption operations",
				"Regular review of parameter choices against current research",
				"Rate limits and differential privacy techniques for result queries",
			},
		},
		{
			Key:  "soundness",
			Name: "Soundness-focused protocol lab",
			Overview: "A research and engineering environment where the main assets are " +
				"protocol specifications, proofs of soundness, and reference implementations.",
			Assets: []string{
				"Formal specifications and protocol descriptions",
				"Soundness and security proofs, including mechanized proofs",
				"Reference implementations used as a basis for other systems",
				"Private design discussions and threat models",
				"Continuous integration and verification pipelines",
			},
			Adversaries: []string{
				"External attackers seeking to exploit specification oversights",
				"Well-resourced adversaries with access to alternative models",
				"Insiders bypassing review or verification processes",
				"Implementers cherry-picking parts of specs without proofs",
				"Attackers publishing misleading or incomplete analyses",
			},
			AttackSurfaces: []string{
				"Mismatch between formal models and real-world deployments",
				"Ambiguous specs that allow unsafe interpretations",
				"Gaps between reference code and production code",
				"Tooling issues in proof assistants or model checkers",
				"Insufficient review of assumptions and threat models over time",
			},
			Mitigations: []string{
				"Executable, unambiguous specifications aligned with implementations",
				"Independent review of proofs and modeling assumptions",
				"Conformance test suites derived from formal models",
				"Change management policies for specs and security claims",
				"Regular threat model updates tied to release cycles",
			},
		},
	}
}
