package atomspace

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// LinkVariant is the typed connective a Link instantiates.
type LinkVariant uint8

const (
	// Inheritance(source, target): X is-a Y, ordered.
	Inheritance LinkVariant = iota
	// Implication(antecedent, consequent): if X then Y, ordered.
	Implication
	// Similarity(first, second): X resembles Y, unordered.
	Similarity
	// Evaluation(predicate, args...): predicate applied to an argument
	// sequence, ordered.
	Evaluation
	// Context(context, inner): scoped assertion, ordered. Carries the inner
	// atom's identity only — its TV field is ignored.
	Context
)

func (v LinkVariant) String() string {
	switch v {
	case Inheritance:
		return "Inheritance"
	case Implication:
		return "Implication"
	case Similarity:
		return "Similarity"
	case Evaluation:
		return "Evaluation"
	case Context:
		return "Context"
	default:
		return "UnknownVariant"
	}
}

// unordered reports whether a variant's endpoint list must be sorted before
// hashing for content identity (spec.md §3: "unordered variants (Similarity)
// sorted before hashing").
func (v LinkVariant) unordered() bool {
	return v == Similarity
}

// arity reports the fixed endpoint count for fixed-arity variants, and
// false for variadic variants (Evaluation).
func (v LinkVariant) arity() (n int, fixed bool) {
	switch v {
	case Inheritance, Implication, Similarity, Context:
		return 2, true
	case Evaluation:
		return 0, false
	default:
		return 0, true
	}
}

// Link is a typed n-ary relation over atoms. Its identity (Key) is a
// deterministic hash of its variant and endpoint identities, so two
// assertions describing the same relation collide on the same Link.
type Link struct {
	Variant   LinkVariant
	Endpoints []AtomID
	TV        TruthValue
	Key       string
}

// LinkKey computes the content-addressed identity of a (variant, endpoints)
// pair. It is exported so callers (and tests) can compute the key a given
// assertion would land on without inserting it. Grounded on the sha256-based
// structural identity used by the atomspace in the example pack's
// cogpy-Erebus atomspace implementation, generalized here to a link-shaped
// key instead of a per-atom random ID.
func LinkKey(variant LinkVariant, endpoints []AtomID) string {
	parts := make([]string, len(endpoints))
	for i, e := range endpoints {
		parts[i] = e.Kind.String() + ":" + e.Name
	}
	if variant.unordered() {
		sort.Strings(parts)
	}
	h := sha256.New()
	h.Write([]byte(variant.String()))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.Join(parts, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// ID returns the link's content identity.
func (l *Link) ID() string {
	return l.Key
}
