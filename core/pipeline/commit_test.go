package pipeline

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uprootiny/coggy-sub000/core/atomspace"
	"github.com/uprootiny/coggy-sub000/core/attention"
)

func TestCommitAddsNovelConceptsAndRelations(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())

	norm := &NormalizedSemantic{
		Concepts:  []string{"coggy", "reasoning"},
		Relations: []RawRelation{{Type: "inherits", A: "coggy", B: "reasoning"}},
	}
	cg := GroundConcepts(space, norm.Concepts)

	result := Commit(space, bank, norm, cg, slog.Default())

	assert.ElementsMatch(t, []string{"coggy", "reasoning"}, result.NovelConceptsAdded)
	require.Len(t, result.LinksAdded, 1)
	assert.Equal(t, atomspace.Inheritance, result.LinksAdded[0].Variant)
	assert.True(t, space.HasConcept("coggy"))
	assert.True(t, space.HasConcept("reasoning"))
}

func TestCommitStimulatesNovelMoreThanGrounded(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())
	space.AddAtom(atomspace.Concept, "coggy", nil)
	bank.Stimulate("coggy", 0) // ensure entry exists at zero

	norm := &NormalizedSemantic{Concepts: []string{"coggy", "reasoning"}}
	cg := GroundConcepts(space, norm.Concepts)

	Commit(space, bank, norm, cg, slog.Default())

	assert.Greater(t, bank.STI("reasoning"), bank.STI("coggy"))
}

func TestCommitEvaluationLinkForUnrecognizedRelationType(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())

	norm := &NormalizedSemantic{
		Concepts:  []string{"coggy", "reasoning"},
		Relations: []RawRelation{{Type: "enables", A: "coggy", B: "reasoning"}},
	}
	cg := GroundConcepts(space, norm.Concepts)
	result := Commit(space, bank, norm, cg, slog.Default())

	require.Len(t, result.LinksAdded, 1)
	assert.Equal(t, atomspace.Evaluation, result.LinksAdded[0].Variant)
	require.Len(t, result.LinksAdded[0].Endpoints, 3)
	assert.Equal(t, atomspace.Predicate, result.LinksAdded[0].Endpoints[0].Kind)
}

func TestCommitSpreadsActivationFromEvaluationRelationSource(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())

	norm := &NormalizedSemantic{
		Concepts:  []string{"coggy", "reasoning"},
		Relations: []RawRelation{{Type: "enables", A: "coggy", B: "reasoning"}},
	}
	cg := GroundConcepts(space, norm.Concepts)
	Commit(space, bank, norm, cg, slog.Default())

	// The Evaluation link's predicate occupies Endpoints[0], so LinksFrom
	// must still find the link via "coggy" at Endpoints[1] for spread
	// activation to reach "reasoning". Both concepts are novel and get the
	// same direct stimulation, so only the spread lifts "reasoning" above
	// "coggy".
	assert.Greater(t, bank.STI("reasoning"), bank.STI("coggy"))
}

func TestCommitRecomputesFocus(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(2, slog.Default())

	norm := &NormalizedSemantic{Concepts: []string{"a", "b", "c"}}
	cg := GroundConcepts(space, norm.Concepts)
	Commit(space, bank, norm, cg, slog.Default())

	assert.Len(t, bank.FocusAtoms(), 2)
}
