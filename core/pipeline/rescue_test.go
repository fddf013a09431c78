package pipeline

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uprootiny/coggy-sub000/core/atomspace"
	"github.com/uprootiny/coggy-sub000/core/attention"
)

func TestRescueNoneForHealthy(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())
	res, triggered := Rescue(Diagnosis{Kind: Healthy}, space, bank, &NormalizedSemantic{}, slog.Default())
	assert.False(t, triggered)
	assert.Nil(t, res)
}

func TestRescueGroundingVacuumSeedsConcepts(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())

	res, triggered := Rescue(Diagnosis{Kind: GroundingVacuum}, space, bank, &NormalizedSemantic{}, slog.Default())
	require.True(t, triggered)
	assert.Equal(t, GroundingVacuum, res.Kind)
	for _, name := range seedConcepts {
		assert.True(t, space.HasConcept(name))
	}
	assert.NotEmpty(t, bank.FocusAtoms())
}

func TestRescueBudgetExhaustedDecaysBank(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())
	bank.Stimulate("a", 10)

	before := bank.STI("a")
	res, triggered := Rescue(Diagnosis{Kind: BudgetExhausted}, space, bank, &NormalizedSemantic{}, slog.Default())
	require.True(t, triggered)
	assert.Equal(t, BudgetExhausted, res.Kind)
	assert.Less(t, bank.STI("a"), before)
}

func TestRescueParserMissReturnsActionableSummary(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())
	res, triggered := Rescue(Diagnosis{Kind: ParserMiss}, space, bank, &NormalizedSemantic{}, slog.Default())
	require.True(t, triggered)
	assert.NotEmpty(t, res.Summary)
}

func TestRescueOntologyMissLinksSiblingsSharingParent(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())

	space.AddAtom(atomspace.Concept, "dog", nil)
	space.AddAtom(atomspace.Concept, "cat", nil)
	space.AddAtom(atomspace.Concept, "animal", nil)
	space.AddLink(atomspace.Inheritance, []atomspace.AtomID{
		{Kind: atomspace.Concept, Name: "dog"}, {Kind: atomspace.Concept, Name: "animal"},
	}, nil)
	space.AddLink(atomspace.Inheritance, []atomspace.AtomID{
		{Kind: atomspace.Concept, Name: "cat"}, {Kind: atomspace.Concept, Name: "animal"},
	}, nil)

	bank.Stimulate("dog", 50)
	bank.UpdateFocus()

	res, triggered := Rescue(Diagnosis{Kind: OntologyMiss}, space, bank, &NormalizedSemantic{}, slog.Default())
	require.True(t, triggered)
	assert.Equal(t, OntologyMiss, res.Kind)

	links := space.QueryLinks(func(l atomspace.Link) bool { return l.Variant == atomspace.Similarity })
	require.Len(t, links, 1)
}

func TestRescueOntologyMissFallsBackToMutualLinkingWithoutParents(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())
	space.AddAtom(atomspace.Concept, "x", nil)
	space.AddAtom(atomspace.Concept, "y", nil)
	bank.Stimulate("x", 10)
	bank.Stimulate("y", 10)
	bank.UpdateFocus()

	res, triggered := Rescue(Diagnosis{Kind: OntologyMiss}, space, bank, &NormalizedSemantic{}, slog.Default())
	require.True(t, triggered)
	links := space.QueryLinks(func(l atomspace.Link) bool { return l.Variant == atomspace.Similarity })
	assert.NotEmpty(t, links)
	_ = res
}

func TestRescueContradictionBlockedRevisesFocusedAtoms(t *testing.T) {
	space := atomspace.New(slog.Default())
	bank := attention.New(7, slog.Default())
	space.AddAtom(atomspace.Concept, "a", &atomspace.TruthValue{Strength: 0.9, Confidence: 0.9})
	bank.Stimulate("a", 10)
	bank.UpdateFocus()

	sem := &NormalizedSemantic{Confidence: conf(0.1)}
	res, triggered := Rescue(Diagnosis{Kind: ContradictionBlocked}, space, bank, sem, slog.Default())
	require.True(t, triggered)
	assert.Equal(t, ContradictionBlocked, res.Kind)

	atom, ok := space.GetAtom(atomspace.Concept, "a")
	require.True(t, ok)
	assert.Less(t, atom.TV.Strength, 0.9)
}
