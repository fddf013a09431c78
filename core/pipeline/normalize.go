package pipeline

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

var stripCharsRE = regexp.MustCompile(`[^a-z0-9-]`)

// NormalizeConcept canonicalizes a single concept or relation-endpoint
// string: trim/lowercase/charset-strip, naive singularize, typo-repair,
// then alias-fold. It is idempotent: NormalizeConcept(NormalizeConcept(x))
// == NormalizeConcept(x) (spec.md §8 property 7).
func NormalizeConcept(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = stripCharsRE.ReplaceAllString(s, "")
	if s == "" {
		return ""
	}
	s = singularize(s)
	s = repairTypos(s)
	if canonical, ok := aliasMap[s]; ok {
		s = canonical
	}
	return s
}

// normalizeRelationType trims and lowercases a relation's type word only —
// it must match recognizedRelationTypes verbatim, so it skips
// NormalizeConcept's singularize/typo-repair/alias-fold steps, which would
// turn "inherits" into "inherit" and break relationVariant's lookup.
func normalizeRelationType(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func singularize(s string) string {
	if noStripS[s] {
		return s
	}
	if strings.HasSuffix(s, "s") && len(s) > 1 {
		return s[:len(s)-1]
	}
	return s
}

// repairTypos applies the fixed suffix-repair rules. A rule fires when s
// ends in its bad suffix, or when s is a truncated form of its good target
// (a prefix of it) within maxTypoDistance Levenshtein edits, as singularize
// leaves "harnes" as "harne". A rule never re-fires on its own output, so
// repeated application is a no-op (idempotence).
func repairTypos(s string) string {
	for _, rule := range typoRules {
		if strings.HasSuffix(s, rule.good) {
			continue
		}
		if strings.HasSuffix(s, rule.bad) {
			s = strings.TrimSuffix(s, rule.bad) + rule.good
			continue
		}
		if strings.HasPrefix(rule.good, s) && levenshtein.ComputeDistance(s, rule.good) <= maxTypoDistance {
			s = rule.good
		}
	}
	return s
}

// NormalizedSemantic holds a Semantic after normalization: concepts and
// relation endpoints canonicalized, deduped, self-loops dropped, truncated
// per spec.md §4.3.2.
type NormalizedSemantic struct {
	Concepts   []string
	Relations  []RawRelation
	Intent     *Intent
	Confidence *float64
	Fallback   bool
}

const (
	maxConcepts  = 7
	maxRelations = 5
)

// Normalize applies §4.3.2 to a raw-extracted Semantic.
func Normalize(sem *Semantic) *NormalizedSemantic {
	out := &NormalizedSemantic{Intent: sem.Intent, Confidence: sem.Confidence, Fallback: sem.Fallback}

	seen := map[string]bool{}
	for _, c := range sem.Concepts {
		n := NormalizeConcept(c)
		if n == "" || protocolWords[n] || seen[n] {
			continue
		}
		seen[n] = true
		out.Concepts = append(out.Concepts, n)
		if len(out.Concepts) == maxConcepts {
			break
		}
	}

	seenRel := map[string]bool{}
	for _, r := range sem.Relations {
		a := NormalizeConcept(r.A)
		b := NormalizeConcept(r.B)
		if a == "" || b == "" || a == b {
			continue
		}
		typ := normalizeRelationType(r.Type)
		key := typ + "|" + a + "|" + b
		if seenRel[key] {
			continue
		}
		seenRel[key] = true
		out.Relations = append(out.Relations, RawRelation{Type: typ, A: a, B: b})
		if len(out.Relations) == maxRelations {
			break
		}
	}

	return out
}
