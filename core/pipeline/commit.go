package pipeline

import (
	"log/slog"

	"github.com/uprootiny/coggy-sub000/core/atomspace"
	"github.com/uprootiny/coggy-sub000/core/attention"
)

const (
	stimulateBaseGrounded = 8.0
	stimulateBaseNovel    = 12.0
)

// fundScale is the step function spec.md §4.3.4 uses to scale stimulation
// down as sti-funds runs low.
func fundScale(funds float64) float64 {
	switch {
	case funds > 40:
		return 1.0
	case funds > 15:
		return 0.65
	case funds > 0:
		return 0.4
	case funds > -40:
		return 0.2
	default:
		return 0.08
	}
}

// commitDecayRate is the fund-dependent decay rate spec.md §4.3.4 applies
// at the end of every commit.
func commitDecayRate(funds float64) float64 {
	switch {
	case funds < -80:
		return 0.45
	case funds < -40:
		return 0.32
	case funds < 0:
		return 0.22
	default:
		return 0.1
	}
}

// relationVariant maps a normalized relation-type word to its link variant.
// Anything not in recognizedRelationTypes becomes an Evaluation link with a
// synthesized predicate named after the relation type.
func relationVariant(relType string) atomspace.LinkVariant {
	switch relType {
	case "inherits", "is-a":
		return atomspace.Inheritance
	case "causes":
		return atomspace.Implication
	case "resembles":
		return atomspace.Similarity
	default:
		return atomspace.Evaluation
	}
}

// CommitResult summarizes what a commit changed, for Report construction.
type CommitResult struct {
	NovelConceptsAdded []string
	LinksAdded         []atomspace.Link
	DecayRate          float64
}

// Commit performs spec.md §4.3.4's six-step commit algorithm. It is only
// invoked when the normalized semantic has at least one concept.
func Commit(space *atomspace.Atomspace, bank *attention.Bank, sem *NormalizedSemantic, cg Grounding, log *slog.Logger) CommitResult {
	if log == nil {
		log = slog.Default()
	}
	result := CommitResult{}

	// 1. Add every novel concept with TV (0.6, 0.3).
	novelTV := atomspace.TruthValue{Strength: 0.6, Confidence: 0.3}
	for _, name := range cg.Novel {
		space.AddAtom(atomspace.Concept, name, &novelTV)
		result.NovelConceptsAdded = append(result.NovelConceptsAdded, name)
	}

	// 2. Stimulate every mentioned concept, fund-scale read once up front
	// so the scale doesn't shift mid-loop as funds are spent.
	scale := fundScale(bank.Funds())
	novelSet := map[string]bool{}
	for _, n := range cg.Novel {
		novelSet[n] = true
	}
	for _, c := range sem.Concepts {
		base := stimulateBaseGrounded
		if novelSet[c] {
			base = stimulateBaseNovel
		}
		bank.Stimulate(c, base*scale)
	}

	// 3. Add each relation as the appropriate link variant.
	for _, r := range sem.Relations {
		variant := relationVariant(r.Type)
		a := atomspace.AtomID{Kind: atomspace.Concept, Name: r.A}
		b := atomspace.AtomID{Kind: atomspace.Concept, Name: r.B}
		var endpoints []atomspace.AtomID
		if variant == atomspace.Evaluation {
			predName := NormalizeConcept(r.Type)
			if predName == "" {
				predName = "related-to"
			}
			space.AddAtom(atomspace.Predicate, predName, nil)
			pred := atomspace.AtomID{Kind: atomspace.Predicate, Name: predName}
			endpoints = []atomspace.AtomID{pred, a, b}
		} else {
			endpoints = []atomspace.AtomID{a, b}
		}
		link, err := space.AddLink(variant, endpoints, nil)
		if err != nil {
			log.Warn("commit: failed to add relation link", "type", r.Type, "error", err.Error())
			continue
		}
		result.LinksAdded = append(result.LinksAdded, link)

		// 4. Spread activation from the relation's source through every
		// stored link LinksFrom finds for it (the first endpoint of an
		// ordered link, either Similarity endpoint, or an Evaluation
		// argument).
		sourceID := atomspace.AtomID{Kind: atomspace.Concept, Name: r.A}
		links := space.LinksFrom(sourceID)
		bank.SpreadActivation(links, r.A, 0.3)
	}

	// 5. Decay the bank by a fund-dependent rate.
	result.DecayRate = commitDecayRate(bank.Funds())
	bank.Decay(result.DecayRate)

	// 6. Recompute focus.
	bank.UpdateFocus()

	return result
}
