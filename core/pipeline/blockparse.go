package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

// blockparse.go is a small, purpose-built reader for the semantic block's
// object grammar — a Clojure/EDN-flavored map (`{:concepts [...]}`) that
// the example-producing side also sometimes renders JS-object style
// (`{concepts: [...]}`). Neither encoding/json nor a real EDN reader
// accepts both, so the pipeline carries its own minimal tokenizer/parser
// rather than forcing one grammar to stand in for the other.

type tokenKind int

const (
	tEOF tokenKind = iota
	tLBrace
	tRBrace
	tLBracket
	tRBracket
	tComma
	tColon
	tString
	tNumber
	tIdent
)

type token struct {
	kind tokenKind
	val  string
}

func lexBlock(s string) []token {
	var toks []token
	r := []rune(s)
	i, n := 0, len(r)
	for i < n {
		c := r[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '{':
			toks = append(toks, token{tLBrace, "{"})
			i++
		case c == '}':
			toks = append(toks, token{tRBrace, "}"})
			i++
		case c == '[':
			toks = append(toks, token{tLBracket, "["})
			i++
		case c == ']':
			toks = append(toks, token{tRBracket, "]"})
			i++
		case c == ',':
			toks = append(toks, token{tComma, ","})
			i++
		case c == ':':
			// A colon directly preceding an identifier char is an EDN
			// keyword marker, folded into the identifier token below.
			// A colon elsewhere (key: value separator) is its own token.
			if i+1 < n && (isIdentStart(r[i+1])) {
				j := i + 1
				for j < n && isIdentChar(r[j]) {
					j++
				}
				toks = append(toks, token{tIdent, string(r[i+1 : j])})
				i = j
			} else {
				toks = append(toks, token{tColon, ":"})
				i++
			}
		case c == '"':
			j := i + 1
			var sb strings.Builder
			for j < n && r[j] != '"' {
				if r[j] == '\\' && j+1 < n {
					j++
				}
				sb.WriteRune(r[j])
				j++
			}
			toks = append(toks, token{tString, sb.String()})
			i = j + 1
		case c == '-' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < n && (r[j] == '.' || (r[j] >= '0' && r[j] <= '9')) {
				j++
			}
			// A leading hyphen followed by letters (e.g. "-locu") is an
			// identifier, not a negative number.
			if j == i+1 && c == '-' {
				j = i + 1
				for j < n && isIdentChar(r[j]) {
					j++
				}
				toks = append(toks, token{tIdent, string(r[i:j])})
				i = j
				continue
			}
			toks = append(toks, token{tNumber, string(r[i:j])})
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentChar(r[j]) {
				j++
			}
			toks = append(toks, token{tIdent, string(r[i:j])})
			i = j
		default:
			i++ // skip unrecognized punctuation
		}
	}
	toks = append(toks, token{tEOF, ""})
	return toks
}

func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '.'
}

type blockParser struct {
	toks []token
	pos  int
}

func (p *blockParser) peek() token {
	return p.toks[p.pos]
}

func (p *blockParser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *blockParser) parseValue() (interface{}, error) {
	switch p.peek().kind {
	case tLBrace:
		return p.parseObject()
	case tLBracket:
		return p.parseArray()
	case tString:
		return p.next().val, nil
	case tNumber:
		v, err := strconv.ParseFloat(p.next().val, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case tIdent:
		return p.next().val, nil
	default:
		return nil, fmt.Errorf("unexpected token at position %d", p.pos)
	}
}

func (p *blockParser) parseObject() (map[string]interface{}, error) {
	if p.next().kind != tLBrace {
		return nil, fmt.Errorf("expected '{'")
	}
	m := map[string]interface{}{}
	for p.peek().kind != tRBrace && p.peek().kind != tEOF {
		keyTok := p.next()
		if keyTok.kind != tIdent && keyTok.kind != tString {
			return nil, fmt.Errorf("expected object key, got token kind %d", keyTok.kind)
		}
		if p.peek().kind == tColon {
			p.next()
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		m[keyTok.val] = val
		if p.peek().kind == tComma {
			p.next()
		}
	}
	if p.peek().kind == tRBrace {
		p.next()
	}
	return m, nil
}

func (p *blockParser) parseArray() ([]interface{}, error) {
	if p.next().kind != tLBracket {
		return nil, fmt.Errorf("expected '['")
	}
	var out []interface{}
	for p.peek().kind != tRBracket && p.peek().kind != tEOF {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, val)
		if p.peek().kind == tComma {
			p.next()
		}
	}
	if p.peek().kind == tRBracket {
		p.next()
	}
	return out, nil
}

// parseBlock parses a `{...}` object expression into a generic map.
func parseBlock(s string) (map[string]interface{}, error) {
	p := &blockParser{toks: lexBlock(s)}
	if p.peek().kind != tLBrace {
		return nil, fmt.Errorf("semantic block does not start with '{'")
	}
	return p.parseObject()
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toSemantic converts a generic parsed map into the canonical Semantic
// shape, tolerant of the a/b or source/target relation-endpoint spellings.
func toSemantic(m map[string]interface{}) *Semantic {
	sem := &Semantic{}

	if raw, ok := m["concepts"].([]interface{}); ok {
		for _, c := range raw {
			if s, ok := asString(c); ok {
				sem.Concepts = append(sem.Concepts, s)
			}
		}
	}

	if raw, ok := m["relations"].([]interface{}); ok {
		for _, r := range raw {
			rm, ok := r.(map[string]interface{})
			if !ok {
				continue
			}
			rel := RawRelation{}
			if t, ok := asString(rm["type"]); ok {
				rel.Type = t
			}
			if a, ok := asString(rm["a"]); ok {
				rel.A = a
			} else if a, ok := asString(rm["source"]); ok {
				rel.A = a
			}
			if b, ok := asString(rm["b"]); ok {
				rel.B = b
			} else if b, ok := asString(rm["target"]); ok {
				rel.B = b
			}
			sem.Relations = append(sem.Relations, rel)
		}
	}

	if raw, ok := m["intent"].(map[string]interface{}); ok {
		intent := &Intent{}
		if t, ok := asString(raw["type"]); ok {
			intent.Type = t
		}
		if tgt, ok := asString(raw["target"]); ok {
			intent.Target = tgt
		}
		sem.Intent = intent
	}

	if c, ok := m["confidence"]; ok {
		if f, ok := asFloat(c); ok {
			sem.Confidence = &f
		}
	}

	return sem
}
