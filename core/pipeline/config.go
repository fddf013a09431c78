package pipeline

// Fixed configuration named in spec.md §6. These are process-wide read-only
// constants — the one case spec.md §9 explicitly permits a package-level
// singleton for ("Process-wide singletons are permitted only for read-only
// constants (stopword sets, alias maps)").

const (
	MetricsWindow            = 20
	EvidenceLogCapacity      = 100
	BudgetExhaustedThreshold = -120.0
)

// noStripS is the guarded-plural set: terms whose trailing "s" is not a
// plural marker and must survive naive singularization untouched.
var noStripS = map[string]bool{}

func init() {
	for _, w := range []string{
		"bus", "analysis", "glass", "basis", "process", "focus", "status",
		"consensus", "atlas", "alias", "bias", "chaos", "cosmos", "ethos",
		"logos", "pathos", "thesis", "crisis", "diagnosis", "hypothesis",
		"emphasis", "synthesis", "corpus", "apparatus", "nexus",
	} {
		noStripS[w] = true
	}
}

// typoRule is a suffix-repair rule applied during normalization. It fires
// when a term ends in bad, or when the term is a truncated form (a prefix)
// of good within maxTypoDistance edits (github.com/agnivade/levenshtein).
type typoRule struct {
	bad, good string
}

var typoRules = []typoRule{
	{bad: "-locu", good: "-locus"},
	{bad: "harnes", good: "harness"},
}

// maxTypoDistance bounds how far (in Levenshtein edits) a truncated term may
// be from a rule's "good" target for the repair to fire.
const maxTypoDistance = 2

// aliasMap canonicalizes known synonyms, per spec.md §4.3.2.
var aliasMap = map[string]string{
	"inference":  "reasoning",
	"simulator":  "phantasm",
	"atomspace":  "ontology",
}

// protocolWords are pipeline-internal vocabulary stripped from any concept
// list so the pipeline's own jargon can never leak into committed concepts.
var protocolWords = map[string]bool{
	"parse": true, "ground": true, "attend": true,
	"infer": true, "reflect": true, "coggy-trace": true,
}

// stopwords is the fixed set dropped by fallback-semantic tokenization.
var stopwords = map[string]bool{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "is", "are", "was", "were", "be", "been", "being",
		"to", "of", "in", "on", "at", "for", "with", "and", "or", "but",
		"not", "this", "that", "these", "those", "here", "there", "it",
		"its", "my", "your", "his", "her", "their", "our", "you", "we",
		"they", "he", "she", "i", "me", "him", "them", "us", "as", "by",
		"from", "into", "about", "over", "under", "again", "then", "so",
		"than", "too", "very", "can", "will", "just", "should", "now",
		"have", "has", "had", "do", "does", "did",
	} {
		stopwords[w] = true
	}
}

// seedConcepts are the 10 broad concepts the grounding-vacuum rescue adds.
var seedConcepts = []string{
	"thing", "idea", "action", "state", "relation",
	"cause", "effect", "agent", "object", "property",
}

// recognizedRelationTypes is the set of wire-level relation type words that
// commit as Inheritance/Implication/Similarity links (relationVariant in
// commit.go picks the variant for each). Anything absent from this set
// becomes an Evaluation link with a synthesized predicate, per spec.md §6.
var recognizedRelationTypes = map[string]bool{
	"inherits": true, "causes": true, "resembles": true, "is-a": true,
}
