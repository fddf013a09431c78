package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/uprootiny/coggy-sub000/core/atomspace"
	"github.com/uprootiny/coggy-sub000/core/attention"
)

// RescueResult is the textual outcome of a rescue strategy, per spec.md
// §4.3.6 ("Each rescue returns a textual summary").
type RescueResult struct {
	Kind    DiagnosisKind
	Summary string
}

// rescueContext bundles what a rescue strategy needs. Grouped into a
// struct (rather than a long parameter list) so the dispatch table in
// spec.md §9's "Dispatch-by-kind" pattern stays uniform across strategies.
type rescueContext struct {
	space *atomspace.Atomspace
	bank  *attention.Bank
	sem   *NormalizedSemantic
	log   *slog.Logger
}

type rescueFunc func(ctx *rescueContext) RescueResult

// rescueTable dispatches diagnosis kind to strategy. A kind with no entry
// here (Healthy, or a failure mode added to DiagnosisKind in diagnose.go
// without a matching entry) makes Rescue return nil, false; Go has no
// compiler exhaustiveness check for maps.
var rescueTable = map[DiagnosisKind]rescueFunc{
	GroundingVacuum:      rescueGroundingVacuum,
	BudgetExhausted:      rescueBudgetExhausted,
	ParserMiss:           rescueParserMiss,
	OntologyMiss:         rescueOntologyMiss,
	ContradictionBlocked: rescueContradictionBlocked,
}

// Rescue dispatches on d.Kind when triggered, returning nil, false when no
// rescue ran (healthy diagnosis, or an unrecognized kind).
func Rescue(d Diagnosis, space *atomspace.Atomspace, bank *attention.Bank, sem *NormalizedSemantic, log *slog.Logger) (*RescueResult, bool) {
	if log == nil {
		log = slog.Default()
	}
	fn, ok := rescueTable[d.Kind]
	if !ok {
		return nil, false
	}
	ctx := &rescueContext{space: space, bank: bank, sem: sem, log: log}
	res := fn(ctx)
	log.Info("rescue triggered", "kind", res.Kind.String(), "summary", res.Summary)
	return &res, true
}

const rescueSeedStimulation = 3.0

func rescueGroundingVacuum(ctx *rescueContext) RescueResult {
	tv := atomspace.TruthValue{Strength: 0.5, Confidence: 0.2}
	for _, name := range seedConcepts {
		ctx.space.AddAtom(atomspace.Concept, name, &tv)
		ctx.bank.Stimulate(name, rescueSeedStimulation)
	}
	ctx.bank.UpdateFocus()
	return RescueResult{
		Kind:    GroundingVacuum,
		Summary: fmt.Sprintf("seeded %d broad concepts to break the grounding vacuum", len(seedConcepts)),
	}
}

const budgetRescueDecayRate = 0.9

func rescueBudgetExhausted(ctx *rescueContext) RescueResult {
	ctx.bank.Decay(budgetRescueDecayRate)
	ctx.bank.UpdateFocus()
	return RescueResult{
		Kind:    BudgetExhausted,
		Summary: fmt.Sprintf("aggressively decayed attention bank at rate %.2f to reclaim sti-funds", budgetRescueDecayRate),
	}
}

func rescueParserMiss(ctx *rescueContext) RescueResult {
	return RescueResult{
		Kind:    ParserMiss,
		Summary: "next outgoing prompt should include the semantic-block suffix reminder",
	}
}

const (
	ontologySiblingStimulation = 4.0
	maxOntologyPairs           = 4
)

// rescueOntologyMiss finds atoms that share a parent with the current
// focus set via Inheritance links and links them to focus atoms by
// Similarity, or, absent any parents, links focus atoms to each other.
func rescueOntologyMiss(ctx *rescueContext) RescueResult {
	focus := ctx.bank.FocusAtoms()
	focusNames := make([]string, len(focus))
	for i, f := range focus {
		focusNames[i] = f.Name
	}
	type pair struct{ focusName, siblingName string }
	var pairs []pair

	for _, fname := range focusNames {
		source := atomspace.AtomID{Kind: atomspace.Concept, Name: fname}
		parentLinks := ctx.space.QueryLinks(func(l atomspace.Link) bool {
			return l.Variant == atomspace.Inheritance && len(l.Endpoints) == 2 && l.Endpoints[0] == source
		})
		for _, pl := range parentLinks {
			parent := pl.Endpoints[1]
			siblingLinks := ctx.space.QueryLinks(func(l atomspace.Link) bool {
				return l.Variant == atomspace.Inheritance && len(l.Endpoints) == 2 &&
					l.Endpoints[1] == parent && l.Endpoints[0] != source
			})
			for _, sl := range siblingLinks {
				pairs = append(pairs, pair{focusName: fname, siblingName: sl.Endpoints[0].Name})
				if len(pairs) >= maxOntologyPairs {
					break
				}
			}
			if len(pairs) >= maxOntologyPairs {
				break
			}
		}
		if len(pairs) >= maxOntologyPairs {
			break
		}
	}

	tv := atomspace.TruthValue{Strength: 0.5, Confidence: 0.3}
	if len(pairs) == 0 {
		// No parents found: link focus atoms to each other instead.
		fallbackTV := atomspace.TruthValue{Strength: 0.4, Confidence: 0.2}
		linked := 0
		for i := 0; i < len(focusNames) && linked < maxOntologyPairs; i++ {
			for j := i + 1; j < len(focusNames) && linked < maxOntologyPairs; j++ {
				a := atomspace.AtomID{Kind: atomspace.Concept, Name: focusNames[i]}
				b := atomspace.AtomID{Kind: atomspace.Concept, Name: focusNames[j]}
				ctx.space.AddLink(atomspace.Similarity, []atomspace.AtomID{a, b}, &fallbackTV)
				linked++
			}
		}
		return RescueResult{
			Kind:    OntologyMiss,
			Summary: fmt.Sprintf("no shared parents found; linked %d focus-atom pairs directly by similarity", linked),
		}
	}

	for _, p := range pairs {
		a := atomspace.AtomID{Kind: atomspace.Concept, Name: p.focusName}
		b := atomspace.AtomID{Kind: atomspace.Concept, Name: p.siblingName}
		ctx.space.AddLink(atomspace.Similarity, []atomspace.AtomID{a, b}, &tv)
		ctx.bank.Stimulate(p.siblingName, ontologySiblingStimulation)
	}
	ctx.bank.UpdateFocus()
	return RescueResult{
		Kind:    OntologyMiss,
		Summary: fmt.Sprintf("linked %d focus atoms to siblings sharing a parent", len(pairs)),
	}
}

const contradictionDecayRate = 0.15

func rescueContradictionBlocked(ctx *rescueContext) RescueResult {
	confidence := 0.4
	strength := 0.5
	if ctx.sem.Confidence != nil {
		strength = *ctx.sem.Confidence
	}
	target := atomspace.TruthValue{Strength: strength, Confidence: confidence}

	revised := 0
	for _, f := range ctx.bank.FocusAtoms() {
		if _, ok := ctx.space.GetAtom(atomspace.Concept, f.Name); !ok {
			continue
		}
		// AddAtom replaces the stored TV with Revise(stored, target).
		ctx.space.AddAtom(atomspace.Concept, f.Name, &target)
		revised++
	}
	ctx.bank.Decay(contradictionDecayRate)
	return RescueResult{
		Kind:    ContradictionBlocked,
		Summary: fmt.Sprintf("revised %d focused atoms toward confidence %.2f and decayed attention", revised, confidence),
	}
}
