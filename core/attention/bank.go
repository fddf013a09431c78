// Package attention implements Coggy's economic attention bank: a bounded
// STI/LTI ledger over atom names with stimulation, decay, focus-set
// computation, and one-hop spread activation through link structure.
package attention

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/uprootiny/coggy-sub000/core/atomspace"
)

const (
	// DefaultAFSize is af-size, the attentional-focus cardinality (spec.md §3).
	DefaultAFSize = 7
	// InitialSTIFunds is the bank's starting sti-funds scalar (spec.md §3).
	InitialSTIFunds = 100.0

	// StiMax/StiFloor are the implementation-defined STI clamp bounds
	// spec.md §4.2 leaves open ("implementation-defined bounds (e.g. ±200)
	// must be documented but are not business-critical"). Chosen here
	// symmetrically at ±200, the value the spec itself uses as its example.
	StiMax   = 200.0
	StiFloor = -200.0
)

// Value is an atom's attention value: short-term and long-term importance.
type Value struct {
	STI float64
	LTI float64
}

// FocusEntry is one member of the ordered focus set.
type FocusEntry struct {
	Name string
	STI  float64
}

// Bank is the per-atom STI/LTI ledger with a bounded fund pool, per
// spec.md §3–4.2. All operations are keyed by atom name (not the full
// atomspace.AtomID) since the bank does not distinguish concepts from
// predicates for attention-accounting purposes.
type Bank struct {
	mu sync.Mutex

	values  map[string]*Value
	funds   float64
	afSize  int
	focus   []FocusEntry
	log     *slog.Logger
}

// New creates an empty bank. afSize <= 0 defaults to DefaultAFSize.
func New(afSize int, log *slog.Logger) *Bank {
	if afSize <= 0 {
		afSize = DefaultAFSize
	}
	if log == nil {
		log = slog.Default()
	}
	return &Bank{
		values: make(map[string]*Value),
		funds:  InitialSTIFunds,
		afSize: afSize,
		log:    log,
	}
}

// Funds returns the current sti-funds scalar. It may be negative.
func (b *Bank) Funds() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.funds
}

// AFSize returns the bank's attentional-focus cardinality.
func (b *Bank) AFSize() int {
	return b.afSize
}

func (b *Bank) entry(name string) *Value {
	v, ok := b.values[name]
	if !ok {
		v = &Value{}
		b.values[name] = v
	}
	return v
}

func clampSTI(sti float64) float64 {
	if sti > StiMax {
		return StiMax
	}
	if sti < StiFloor {
		return StiFloor
	}
	return sti
}

// Stimulate increases name's STI by amount (clamped to [StiFloor, StiMax])
// and decrements the fund pool by amount. Returns the atom's new STI.
func (b *Bank) Stimulate(name string, amount float64) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.entry(name)
	v.STI = clampSTI(v.STI + amount)
	b.funds -= amount
	return v.STI
}

// Decay multiplies every atom's STI by (1-rate) and returns the reclaimed
// mass to the fund pool.
func (b *Bank) Decay(rate float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var reclaimed float64
	for _, v := range b.values {
		reduced := v.STI * rate
		v.STI -= reduced
		reclaimed += reduced
	}
	b.funds += reclaimed
	b.log.Debug("bank decayed", "rate", rate, "reclaimed", reclaimed, "funds", b.funds)
}

// UpdateFocus recomputes the focus set: the top af-size atoms by STI
// descending, ties broken by name ascending (spec.md invariant 4).
func (b *Bank) UpdateFocus() {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := make([]FocusEntry, 0, len(b.values))
	for name, v := range b.values {
		entries = append(entries, FocusEntry{Name: name, STI: v.STI})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].STI != entries[j].STI {
			return entries[i].STI > entries[j].STI
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > b.afSize {
		entries = entries[:b.afSize]
	}
	b.focus = entries
}

// FocusAtoms returns the current ordered focus set (at most af-size long).
func (b *Bank) FocusAtoms() []FocusEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]FocusEntry, len(b.focus))
	copy(out, b.focus)
	return out
}

// InFocus reports whether name is currently in the focus set.
func (b *Bank) InFocus(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.focus {
		if e.Name == name {
			return true
		}
	}
	return false
}

// STI returns name's current STI (0 if never stimulated).
func (b *Bank) STI(name string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v, ok := b.values[name]; ok {
		return v.STI
	}
	return 0
}

// spreadTargets implements the per-variant target-selection rule of
// spec.md §4.2. Evaluation links skip every argument position equal to the
// source, per the Open Question resolution in spec.md §9, and list each
// distinct argument atom once.
func spreadTargets(l atomspace.Link, source string) []string {
	switch l.Variant {
	case atomspace.Inheritance, atomspace.Implication, atomspace.Similarity:
		if len(l.Endpoints) != 2 {
			return nil
		}
		a, b := l.Endpoints[0].Name, l.Endpoints[1].Name
		switch source {
		case a:
			return []string{b}
		case b:
			return []string{a}
		default:
			return nil
		}
	case atomspace.Evaluation:
		if len(l.Endpoints) < 2 {
			return nil
		}
		var targets []string
		seen := map[string]bool{}
		for _, arg := range l.Endpoints[1:] {
			if arg.Name != source && !seen[arg.Name] {
				seen[arg.Name] = true
				targets = append(targets, arg.Name)
			}
		}
		return targets
	default: // Context is not a spread-eligible variant.
		return nil
	}
}

// SpreadActivation redistributes source's current STI through links by one
// hop: each link contributes source.STI*fraction/|targets| to its targets,
// directly (it does not draw from the fund pool — the mass is understood as
// already belonging to source, not newly minted). Self-stimulation is
// forbidden; a link whose target set is empty contributes nothing. There is
// no recursion: this is strictly one hop per call.
func (b *Bank) SpreadActivation(links []atomspace.Link, source string, fraction float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sourceSTI := 0.0
	if v, ok := b.values[source]; ok {
		sourceSTI = v.STI
	}
	for _, l := range links {
		targets := spreadTargets(l, source)
		if len(targets) == 0 {
			continue
		}
		share := sourceSTI * fraction / float64(len(targets))
		for _, t := range targets {
			if t == source {
				continue
			}
			v := b.entry(t)
			v.STI = clampSTI(v.STI + share)
		}
	}
}
