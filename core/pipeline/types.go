// Package pipeline implements Coggy's semantic contract enforcement: it
// extracts a semantic block from untyped text, normalizes and grounds it
// against an atomspace, commits new knowledge, diagnoses one of five typed
// failures, and triggers the corresponding rescue.
package pipeline

// Intent is the optional {:type ... :target ...} payload of a semantic
// block — carried through the pipeline but not consumed by any core
// operation (it is forwarded to the Report for external producers).
type Intent struct {
	Type   string
	Target string
}

// RawRelation is a relation before normalization: a type word and its two
// endpoints, exactly as extracted from the semantic block.
type RawRelation struct {
	Type string
	A    string
	B    string
}

// Semantic is the canonical shape a semantic block is extracted (or
// synthesized) into, per spec.md §4.3.1.
type Semantic struct {
	Concepts   []string
	Relations  []RawRelation
	Intent     *Intent
	Confidence *float64

	// Fallback marks a semantic synthesized by the stopword/tokenize
	// fallback strategy rather than extracted from a recognized block.
	Fallback bool
}
