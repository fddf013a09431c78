package pipeline

import "github.com/uprootiny/coggy-sub000/core/atomspace"

// Grounding is the result of checking a normalized semantic's concepts or
// relations against an atomspace, per spec.md §4.3.3.
type Grounding struct {
	Grounded []string
	Novel    []string
	Rate     float64
}

// RelationGrounding mirrors Grounding for relations: both endpoints of a
// relation must already be present as concepts for the relation to count
// as grounded.
type RelationGrounding struct {
	Grounded []RawRelation
	Novel    []RawRelation
	Rate     float64
}

// GroundConcepts checks each concept against space, returning the grounded
// and novel subsets and the grounding rate (0 if concepts is empty).
func GroundConcepts(space *atomspace.Atomspace, concepts []string) Grounding {
	g := Grounding{}
	for _, c := range concepts {
		if space.HasConcept(c) {
			g.Grounded = append(g.Grounded, c)
		} else {
			g.Novel = append(g.Novel, c)
		}
	}
	if len(concepts) > 0 {
		g.Rate = float64(len(g.Grounded)) / float64(len(concepts))
	}
	return g
}

// GroundRelations checks each relation's endpoints against space.
func GroundRelations(space *atomspace.Atomspace, relations []RawRelation) RelationGrounding {
	g := RelationGrounding{}
	for _, r := range relations {
		if space.HasConcept(r.A) && space.HasConcept(r.B) {
			g.Grounded = append(g.Grounded, r)
		} else {
			g.Novel = append(g.Novel, r)
		}
	}
	if len(relations) > 0 {
		g.Rate = float64(len(g.Grounded)) / float64(len(relations))
	}
	return g
}
