package atomspace

import (
	"log/slog"
	"sync"

	"github.com/emirpasic/gods/v2/maps/linkedhashmap"
)

// Stats summarizes an atomspace's contents for inspection tooling.
type Stats struct {
	AtomsByKind    map[string]int
	LinksByVariant map[string]int
	Mutations      uint64
}

// Atomspace is the typed hypergraph store: a content-addressed collection
// of atoms and links, indexed by kind/variant in insertion order, per
// spec.md §3–4.1.
type Atomspace struct {
	mu sync.Mutex

	atoms map[AtomID]*Atom
	links map[string]*Link

	// byKind/byVariant preserve insertion order (spec.md §4.1: "get-atoms-by-kind ...
	// sequence in insertion order") via linkedhashmap, grounded on the
	// emirpasic/gods/v2 ordered-container family the teacher's go.mod
	// declares but never wires.
	byKind    map[AtomKind]*linkedhashmap.Map[AtomID, struct{}]
	byVariant map[LinkVariant]*linkedhashmap.Map[string, struct{}]

	mutation uint64
	log      *slog.Logger
}

// New creates an empty atomspace. A nil logger defaults to slog.Default(),
// matching the optional-logger convention used across the core packages.
func New(log *slog.Logger) *Atomspace {
	if log == nil {
		log = slog.Default()
	}
	as := &Atomspace{
		atoms:     make(map[AtomID]*Atom),
		links:     make(map[string]*Link),
		byKind:    make(map[AtomKind]*linkedhashmap.Map[AtomID, struct{}]),
		byVariant: make(map[LinkVariant]*linkedhashmap.Map[string, struct{}]),
		log:       log,
	}
	for _, k := range []AtomKind{Concept, Predicate, Variable} {
		as.byKind[k] = linkedhashmap.New[AtomID, struct{}]()
	}
	for _, v := range []LinkVariant{Inheritance, Implication, Similarity, Evaluation, Context} {
		as.byVariant[v] = linkedhashmap.New[string, struct{}]()
	}
	return as
}

// AddAtom inserts or revises an atom. If the (kind, name) identity is new,
// the atom is inserted with tv (TVDefault if nil); if it is already present
// and both the existing and the incoming TV are meaningful, the stored TV is
// replaced by Revise(existing, tv) — otherwise the existing TV is kept. Every
// successful call increments the mutation counter, even a no-op revision
// (spec.md invariant 5: "strictly increases on every successful add/revise").
func (as *Atomspace) AddAtom(kind AtomKind, name string, tv *TruthValue) (Atom, *Error) {
	if !ValidName(name) {
		return Atom{}, newError(InvalidArgument, "invalid atom name %q", name)
	}
	as.mu.Lock()
	defer as.mu.Unlock()

	id := AtomID{Kind: kind, Name: name}
	existing, present := as.atoms[id]
	if !present {
		newTV := TVDefault
		if tv != nil {
			newTV = *tv
		}
		atom := &Atom{Kind: kind, Name: name, TV: newTV}
		as.atoms[id] = atom
		as.byKind[kind].Put(id, struct{}{})
		as.mutation++
		as.log.Debug("atom added", "kind", kind.String(), "name", name)
		return *atom, nil
	}

	if tv != nil {
		existing.TV = Revise(existing.TV, *tv)
		as.log.Debug("atom revised", "kind", kind.String(), "name", name,
			"strength", existing.TV.Strength, "confidence", existing.TV.Confidence)
	}
	as.mutation++
	return *existing, nil
}

// AddLink inserts or revises a link. Endpoints are identified by AtomID and
// need not already exist in the atom map (spec.md §4.1: "the core accepts
// dangling references"). Returns Unsupported for a variant/arity mismatch.
// Every successful call increments the mutation counter unconditionally,
// same as AddAtom.
func (as *Atomspace) AddLink(variant LinkVariant, endpoints []AtomID, tv *TruthValue) (Link, *Error) {
	if n, fixed := variant.arity(); fixed && len(endpoints) != n {
		return Link{}, newError(Unsupported, "%s requires %d endpoints, got %d", variant, n, len(endpoints))
	}
	if variant == Evaluation && len(endpoints) < 1 {
		return Link{}, newError(Unsupported, "Evaluation requires at least a predicate endpoint")
	}

	key := LinkKey(variant, endpoints)

	as.mu.Lock()
	defer as.mu.Unlock()

	existing, present := as.links[key]
	if !present {
		newTV := TVDefault
		if tv != nil {
			newTV = *tv
		}
		link := &Link{Variant: variant, Endpoints: append([]AtomID(nil), endpoints...), TV: newTV, Key: key}
		as.links[key] = link
		as.byVariant[variant].Put(key, struct{}{})
		as.mutation++
		as.log.Debug("link added", "variant", variant.String(), "key", key)
		return *link, nil
	}

	if variant != Context && tv != nil {
		existing.TV = Revise(existing.TV, *tv)
		as.log.Debug("link revised", "variant", variant.String(), "key", key)
	}
	as.mutation++
	return *existing, nil
}

// GetAtom looks up an atom by its full identity.
func (as *Atomspace) GetAtom(kind AtomKind, name string) (Atom, bool) {
	as.mu.Lock()
	defer as.mu.Unlock()
	a, ok := as.atoms[AtomID{Kind: kind, Name: name}]
	if !ok {
		return Atom{}, false
	}
	return *a, true
}

// HasConcept reports whether a Concept atom with name exists — the common
// case the semantic pipeline's grounding step needs.
func (as *Atomspace) HasConcept(name string) bool {
	_, ok := as.GetAtom(Concept, name)
	return ok
}

// GetAtomsByKind returns every atom of the given kind in insertion order.
func (as *Atomspace) GetAtomsByKind(kind AtomKind) []Atom {
	as.mu.Lock()
	defer as.mu.Unlock()
	idx := as.byKind[kind]
	if idx == nil {
		return nil
	}
	ids := idx.Keys()
	out := make([]Atom, 0, len(ids))
	for _, id := range ids {
		if a, ok := as.atoms[id]; ok {
			out = append(out, *a)
		}
	}
	return out
}

// QueryLinks returns every stored link matching predicate, grouped by
// variant (Inheritance, Implication, Similarity, Evaluation, Context) and in
// insertion order within each variant (callers filter by variant inside the
// predicate when that matters).
func (as *Atomspace) QueryLinks(predicate func(Link) bool) []Link {
	as.mu.Lock()
	defer as.mu.Unlock()
	var out []Link
	for _, variant := range []LinkVariant{Inheritance, Implication, Similarity, Evaluation, Context} {
		idx := as.byVariant[variant]
		if idx == nil {
			continue
		}
		for _, key := range idx.Keys() {
			l := as.links[key]
			if l != nil && predicate(*l) {
				out = append(out, *l)
			}
		}
	}
	return out
}

// LinksFrom returns stored links where source participates as an endpoint:
// the first endpoint for ordered variants, either endpoint for Similarity,
// and any argument position after the predicate for Evaluation (whose
// Endpoints[0] is always the predicate, never a relation source or target).
func (as *Atomspace) LinksFrom(source AtomID) []Link {
	return as.QueryLinks(func(l Link) bool {
		if len(l.Endpoints) == 0 {
			return false
		}
		switch l.Variant {
		case Similarity:
			return l.Endpoints[0] == source || (len(l.Endpoints) > 1 && l.Endpoints[1] == source)
		case Evaluation:
			for _, e := range l.Endpoints[1:] {
				if e == source {
					return true
				}
			}
			return false
		default:
			return l.Endpoints[0] == source
		}
	})
}

// Stats reports counts by kind/variant plus the mutation counter.
func (as *Atomspace) Stats() Stats {
	as.mu.Lock()
	defer as.mu.Unlock()
	s := Stats{AtomsByKind: map[string]int{}, LinksByVariant: map[string]int{}, Mutations: as.mutation}
	for k, idx := range as.byKind {
		s.AtomsByKind[k.String()] = idx.Size()
	}
	for v, idx := range as.byVariant {
		s.LinksByVariant[v.String()] = idx.Size()
	}
	return s
}

// Mutation returns the current mutation counter (exposed for tests that
// need to observe invariant 5 without going through Stats).
func (as *Atomspace) Mutation() uint64 {
	as.mu.Lock()
	defer as.mu.Unlock()
	return as.mutation
}
