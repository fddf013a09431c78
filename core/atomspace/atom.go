package atomspace

import (
	"fmt"
	"regexp"
)

// AtomKind tags the role an atom plays in the hypergraph.
type AtomKind uint8

const (
	Concept AtomKind = iota
	Predicate
	Variable
)

func (k AtomKind) String() string {
	switch k {
	case Concept:
		return "Concept"
	case Predicate:
		return "Predicate"
	case Variable:
		return "Variable"
	default:
		return "UnknownKind"
	}
}

// nameRE matches the canonical name charset: lowercase alphanumeric plus
// hyphen, per spec.md §3 ("case-folded, alphanum-plus-hyphen").
var nameRE = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidName reports whether name meets the canonical-name charset.
func ValidName(name string) bool {
	return nameRE.MatchString(name)
}

// AtomID is an atom's content identity: (kind, name). Two AddAtom calls with
// the same AtomID refer to the same atom.
type AtomID struct {
	Kind AtomKind
	Name string
}

func (id AtomID) String() string {
	return fmt.Sprintf("%s(%s)", id.Kind, id.Name)
}

// Atom is a named, typed, truth-valued hypergraph node. TV is only
// meaningful for Concept and Predicate atoms; Variable atoms carry no
// epistemic stance and their TV field is ignored by every operation.
type Atom struct {
	Kind AtomKind
	Name string
	TV   TruthValue
}

// ID returns the atom's content identity.
func (a Atom) ID() AtomID {
	return AtomID{Kind: a.Kind, Name: a.Name}
}
