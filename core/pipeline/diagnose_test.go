package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func conf(v float64) *float64 { return &v }

func TestDiagnoseFallbackWithGroundedConceptsIsHealthy(t *testing.T) {
	// A fallback-synthesized semantic is still a present semantic with
	// concepts (spec.md §4.3.1 point 4); it must not be treated as
	// clause 1's "semantic is absent" regardless of Fallback.
	sem := &NormalizedSemantic{Concepts: []string{"thing"}, Fallback: true, Confidence: conf(0.8)}
	d := Diagnose(sem, Grounding{Rate: 1}, RelationGrounding{}, 0)
	assert.Equal(t, Healthy, d.Kind)
}

func TestDiagnoseParserMissOnEmptyConcepts(t *testing.T) {
	sem := &NormalizedSemantic{}
	d := Diagnose(sem, Grounding{}, RelationGrounding{}, 0)
	assert.Equal(t, ParserMiss, d.Kind)
}

func TestDiagnoseGroundingVacuum(t *testing.T) {
	sem := &NormalizedSemantic{Concepts: []string{"novel-thing"}}
	d := Diagnose(sem, Grounding{Rate: 0}, RelationGrounding{}, 0)
	assert.Equal(t, GroundingVacuum, d.Kind)
}

func TestDiagnoseOntologyMiss(t *testing.T) {
	sem := &NormalizedSemantic{
		Concepts:  []string{"a", "b"},
		Relations: []RawRelation{{Type: "inherits", A: "a", B: "b"}},
	}
	d := Diagnose(sem, Grounding{Rate: 1}, RelationGrounding{Rate: 0}, 0)
	assert.Equal(t, OntologyMiss, d.Kind)
}

func TestDiagnoseBudgetExhausted(t *testing.T) {
	sem := &NormalizedSemantic{Concepts: []string{"a"}}
	d := Diagnose(sem, Grounding{Rate: 1}, RelationGrounding{}, BudgetExhaustedThreshold-1)
	assert.Equal(t, BudgetExhausted, d.Kind)
}

func TestDiagnoseContradictionBlocked(t *testing.T) {
	sem := &NormalizedSemantic{Concepts: []string{"a"}, Confidence: conf(0.1)}
	d := Diagnose(sem, Grounding{Rate: 0.9}, RelationGrounding{}, 0)
	assert.Equal(t, ContradictionBlocked, d.Kind)
}

func TestDiagnoseHealthy(t *testing.T) {
	sem := &NormalizedSemantic{Concepts: []string{"a"}, Confidence: conf(0.8)}
	d := Diagnose(sem, Grounding{Rate: 0.9}, RelationGrounding{Rate: 1}, 0)
	assert.Equal(t, Healthy, d.Kind)
}

func TestDiagnoseFallbackWithUngroundedConceptsIsAtMostGroundingVacuum(t *testing.T) {
	// spec.md Scenario S4: a fallback semantic whose synthesized concepts
	// are all novel is diagnosed grounding-vacuum, not parser-miss —
	// Fallback never short-circuits clause 1.
	sem := &NormalizedSemantic{Concepts: []string{"novel-thing"}, Fallback: true}
	d := Diagnose(sem, Grounding{Rate: 0}, RelationGrounding{}, 0)
	assert.Equal(t, GroundingVacuum, d.Kind)
}
