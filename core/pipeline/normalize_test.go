package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeConceptIdempotent(t *testing.T) {
	cases := []string{"Coggy", "reasoning-harnes", "ATOMSPACE", "inference", "buses", "  thing  "}
	for _, c := range cases {
		once := NormalizeConcept(c)
		twice := NormalizeConcept(once)
		assert.Equal(t, once, twice, "NormalizeConcept not idempotent for %q", c)
	}
}

func TestNormalizeConceptGuardedPlural(t *testing.T) {
	assert.Equal(t, "bus", NormalizeConcept("bus"))
	assert.Equal(t, "focus", NormalizeConcept("focus"))
	assert.Equal(t, "synthesis", NormalizeConcept("synthesis"))
}

func TestNormalizeConceptSingularizesOrdinaryPlural(t *testing.T) {
	assert.Equal(t, "concept", NormalizeConcept("concepts"))
	assert.Equal(t, "idea", NormalizeConcept("ideas"))
}

func TestNormalizeConceptRepairsTypo(t *testing.T) {
	assert.Equal(t, "harness", NormalizeConcept("harnes"))
}

func TestNormalizeConceptAliasFolds(t *testing.T) {
	assert.Equal(t, "reasoning", NormalizeConcept("inference"))
	assert.Equal(t, "phantasm", NormalizeConcept("simulator"))
	assert.Equal(t, "ontology", NormalizeConcept("atomspace"))
}

func TestNormalizeDropsProtocolWordsAndDuplicates(t *testing.T) {
	sem := &Semantic{Concepts: []string{"parse", "coggy", "coggy", "ground", "reasoning"}}
	norm := Normalize(sem)
	assert.Equal(t, []string{"coggy", "reasoning"}, norm.Concepts)
}

func TestNormalizeTruncatesConcepts(t *testing.T) {
	var concepts []string
	for i := 0; i < maxConcepts+5; i++ {
		concepts = append(concepts, string(rune('a'+i))+string(rune('a'+i))+string(rune('a'+i)))
	}
	sem := &Semantic{Concepts: concepts}
	norm := Normalize(sem)
	assert.Len(t, norm.Concepts, maxConcepts)
}

func TestNormalizeDropsSelfLoopRelations(t *testing.T) {
	sem := &Semantic{Relations: []RawRelation{{Type: "resembles", A: "coggy", B: "coggy"}}}
	norm := Normalize(sem)
	assert.Empty(t, norm.Relations)
}

func TestNormalizeDropsDuplicateRelations(t *testing.T) {
	sem := &Semantic{Relations: []RawRelation{
		{Type: "inherits", A: "coggy", B: "reasoning"},
		{Type: "inherits", A: "coggy", B: "reasoning"},
	}}
	norm := Normalize(sem)
	require.Len(t, norm.Relations, 1)
}

func TestNormalizeProducesExactRelationShape(t *testing.T) {
	sem := &Semantic{
		Concepts:  []string{"Coggy", "reasonings"},
		Relations: []RawRelation{{Type: "INHERITS", A: "Coggy", B: "reasonings"}},
	}
	norm := Normalize(sem)

	want := []RawRelation{{Type: "inherits", A: "coggy", B: "reasoning"}}
	if diff := cmp.Diff(want, norm.Relations); diff != "" {
		t.Errorf("normalized relations mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeTruncatesRelations(t *testing.T) {
	var rels []RawRelation
	for i := 0; i < maxRelations+3; i++ {
		rels = append(rels, RawRelation{Type: "resembles", A: "hub", B: string(rune('a' + i))})
	}
	sem := &Semantic{Relations: rels}
	norm := Normalize(sem)
	assert.Len(t, norm.Relations, maxRelations)
}
