package pipeline

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// The four-strategy ladder, in priority order (spec.md §4.3.1). regexp2
// is used here rather than the stdlib regexp package because strategy 2
// needs a negative lookahead (RE2, stdlib's engine, supports none) to
// distinguish the inline fenced variant from the standard one.
var (
	fencedSemanticRE = regexp2.MustCompile(`(?s)`+"```"+`semantic\r?\n(?<body>.*?)`+"```", regexp2.None)
	inlineSemanticRE = regexp2.MustCompile(`(?s)`+"```"+`semantic(?!\r?\n)(?<body>.*?)`+"```", regexp2.None)
	fencedJSONRE     = regexp2.MustCompile(`(?s)`+"```"+`json\r?\n(?<body>.*?)`+"```", regexp2.None)
	bareTriggerRE    = regexp2.MustCompile(`\{\s*:?concepts\s*:?\s*\[`, regexp2.None)
)

func matchGroup(re *regexp2.Regexp, text string, group string) (string, bool) {
	m, err := re.FindStringMatch(text)
	if err != nil || m == nil {
		return "", false
	}
	g := m.GroupByName(group)
	if g == nil || len(g.Captures) == 0 {
		return "", false
	}
	return g.String(), true
}

// findBalancedObject scans forward from the first '{' at or after start and
// returns the substring up to its matching '}', respecting nested
// brackets/braces and quoted strings. Used by the bare-expression strategy
// and as a defensive re-scan of fenced bodies, since a fence's captured
// body can include trailing whitespace or commentary after the object.
func findBalancedObject(s string, start int) (string, bool) {
	open := strings.IndexByte(s[start:], '{')
	if open < 0 {
		return "", false
	}
	open += start
	depth := 0
	inString := false
	var escape bool
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escape:
				escape = false
			case c == '\\':
				escape = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 && c == '}' {
				return s[open : i+1], true
			}
		}
	}
	return "", false
}

// Extract runs the four-strategy extraction ladder and returns the first
// successful parse. If every strategy fails it synthesizes a fallback
// semantic (§4.3.1 point 4) so the pipeline stays total.
func Extract(text string) *Semantic {
	if body, ok := matchGroup(fencedSemanticRE, text, "body"); ok {
		if obj, ok := findBalancedObject(body, 0); ok {
			if m, err := parseBlock(obj); err == nil {
				return toSemantic(m)
			}
		}
	}
	if body, ok := matchGroup(inlineSemanticRE, text, "body"); ok {
		if obj, ok := findBalancedObject(body, 0); ok {
			if m, err := parseBlock(obj); err == nil {
				return toSemantic(m)
			}
		}
	}
	if body, ok := matchGroup(fencedJSONRE, text, "body"); ok {
		if strings.Contains(body, `"concepts"`) {
			var raw map[string]interface{}
			if err := json.Unmarshal([]byte(body), &raw); err == nil {
				return toSemantic(raw)
			}
		}
	}
	if ok, _ := bareTriggerRE.FindStringMatch(text); ok != nil {
		if obj, ok := findBalancedObject(text, ok.Index); ok {
			if m, err := parseBlock(obj); err == nil {
				return toSemantic(m)
			}
		}
	}
	return fallbackSemantic(text)
}

var (
	fenceStripRE = regexp.MustCompile("(?s)```.*?```")
)

const fallbackConfidence = 0.35

// fallbackSemantic keeps the pipeline total when no recognized semantic
// block is found: it strips fences, tokenizes on whitespace, drops
// stopwords and short tokens, and designates the first surviving token a
// "hub" with up to 4 "resembles" spokes.
func fallbackSemantic(text string) *Semantic {
	stripped := fenceStripRE.ReplaceAllString(text, " ")
	lower := strings.ToLower(stripped)

	var concepts []string
	seen := map[string]bool{}
	for _, tok := range strings.Fields(lower) {
		if len(tok) < 3 || stopwords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		concepts = append(concepts, tok)
		if len(concepts) == 8 {
			break
		}
	}

	sem := &Semantic{Concepts: concepts, Fallback: true}
	conf := fallbackConfidence
	sem.Confidence = &conf

	if len(concepts) > 1 {
		hub := concepts[0]
		spokes := concepts[1:]
		if len(spokes) > 4 {
			spokes = spokes[:4]
		}
		for _, spoke := range spokes {
			sem.Relations = append(sem.Relations, RawRelation{Type: "resembles", A: hub, B: spoke})
		}
	}
	return sem
}
