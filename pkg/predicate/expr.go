package predicate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formcond/pkg/fieldpath"
)

// ParseExpr compiles the text shorthand used in hand-written form documents
// into a predicate tree.
//
// Supported forms:
//   - comparisons: `informant.relation == "MOTHER"`, `child.weight != 3`
//   - membership: `informant.relation in ["MOTHER", "FATHER"]`
//   - bare paths: `mother.detailsNotAvailable` (same as `== true`)
//   - calls: `undefined(p)`, `undefinedOrIn(p, [...])`,
//     `undefinedOrNotIn(p, [...])`, `beforeNow(p)`, `afterNow(p)`,
//     `hasAction("REGISTER")`, `always()`
//   - composition: `!`, `&&`, `||` and parentheses
func ParseExpr(text string) (*Node, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.New("predicate/expr: empty expression")
	}
	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	stream := &tokenStream{tokens: tokens}
	node, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("predicate/expr: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return node, nil
}

// MustParseExpr is ParseExpr for static configuration; it panics on error.
func MustParseExpr(text string) *Node {
	n, err := ParseExpr(text)
	if err != nil {
		panic(err)
	}
	return n
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenEq
	tokenNeq
	tokenAnd
	tokenOr
	tokenNot
	tokenIn
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenComma
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	peek := func() byte {
		if i >= len(input) {
			return 0
		}
		return input[i]
	}

	for i < len(input) {
		ch := input[i]
		switch ch {
		case ' ', '\t', '\n', '\r':
			i++
		case '(':
			i++
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
		case ')':
			i++
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
		case '[':
			i++
			tokens = append(tokens, token{kind: tokenLBracket, raw: "["})
		case ']':
			i++
			tokens = append(tokens, token{kind: tokenRBracket, raw: "]"})
		case ',':
			i++
			tokens = append(tokens, token{kind: tokenComma, raw: ","})
		case '!':
			i++
			if peek() == '=' {
				i++
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				continue
			}
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
		case '=':
			i++
			if peek() != '=' {
				return nil, errors.New("predicate/expr: unexpected '='; use '=='")
			}
			i++
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
		case '&':
			i++
			if peek() != '&' {
				return nil, errors.New("predicate/expr: unexpected '&'; use '&&'")
			}
			i++
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
		case '|':
			i++
			if peek() != '|' {
				return nil, errors.New("predicate/expr: unexpected '|'; use '||'")
			}
			i++
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
		case '"', '\'':
			quote := ch
			start := i
			i++
			escaped := false
			closed := false
			for i < len(input) {
				c := input[i]
				i++
				if escaped {
					escaped = false
					continue
				}
				if c == '\\' {
					escaped = true
					continue
				}
				if c == quote {
					closed = true
					break
				}
			}
			if !closed {
				return nil, errors.New("predicate/expr: unterminated string literal")
			}
			body := input[start+1 : i-1]
			if quote == '\'' {
				body = strings.ReplaceAll(body, `\'`, `'`)
				body = strings.ReplaceAll(body, `"`, `\"`)
			}
			value, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return nil, fmt.Errorf("predicate/expr: invalid string literal: %w", err)
			}
			tokens = append(tokens, token{kind: tokenString, raw: value})
		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				i++
			}
			raw := input[start:i]
			switch strings.ToLower(raw) {
			case "true", "false":
				tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw)})
			case "in":
				tokens = append(tokens, token{kind: tokenIn, raw: "in"})
			default:
				if looksLikeNumber(raw) {
					tokens = append(tokens, token{kind: tokenNumber, raw: raw})
				} else {
					tokens = append(tokens, token{kind: tokenIdentifier, raw: raw})
				}
			}
		}
	}

	return tokens, nil
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '[', ']', ',', '!', '=', '&', '|', '"', '\'':
		return true
	default:
		return false
	}
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	if !(ch >= '0' && ch <= '9') && ch != '-' && ch != '+' && ch != '.' {
		return false
	}
	_, err := strconv.ParseFloat(raw, 64)
	return err == nil
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseOr(stream *tokenStream) (*Node, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	args := []*Node{left}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	if len(args) == 1 {
		return left, nil
	}
	return Or(args...), nil
}

func parseAnd(stream *tokenStream) (*Node, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	args := []*Node{left}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	if len(args) == 1 {
		return left, nil
	}
	return And(args...), nil
}

func parseUnary(stream *tokenStream) (*Node, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return Not(inner), nil
	}
	return parsePrimary(stream)
}

func parsePrimary(stream *tokenStream) (*Node, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("predicate/expr: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := stream.consume(tokenIdentifier)
	if !ok {
		if stream.pos >= len(stream.tokens) {
			return nil, errors.New("predicate/expr: unexpected end of expression")
		}
		return nil, fmt.Errorf("predicate/expr: expected field or function, got %q", stream.tokens[stream.pos].raw)
	}

	if stream.match(tokenLParen) {
		return parseCall(stream, ident.raw)
	}

	path, err := fieldpath.Parse(ident.raw)
	if err != nil {
		return nil, fmt.Errorf("predicate/expr: %w", err)
	}
	ref := FieldAt(path)

	switch {
	case stream.match(tokenEq):
		lit, err := stream.consumeLiteral()
		if err != nil {
			return nil, err
		}
		return ref.IsEqualTo(lit), nil
	case stream.match(tokenNeq):
		lit, err := stream.consumeLiteral()
		if err != nil {
			return nil, err
		}
		return Not(ref.IsEqualTo(lit)), nil
	case stream.match(tokenIn):
		list, err := stream.consumeList()
		if err != nil {
			return nil, err
		}
		return ref.IsInArray(list...), nil
	default:
		return ref.IsEqualTo(true), nil
	}
}

func parseCall(stream *tokenStream, name string) (*Node, error) {
	var node *Node
	switch name {
	case "always":
		node = Always()
	case "hasAction":
		tok, ok := stream.consume(tokenString)
		if !ok {
			tok, ok = stream.consume(tokenIdentifier)
		}
		if !ok {
			return nil, errors.New("predicate/expr: hasAction expects an action name")
		}
		node = &Node{Kind: KindEventHasAction, Action: strings.ToUpper(strings.TrimSpace(tok.raw))}
	case "undefined", "beforeNow", "afterNow", "undefinedOrIn", "undefinedOrNotIn":
		ident, ok := stream.consume(tokenIdentifier)
		if !ok {
			return nil, fmt.Errorf("predicate/expr: %s expects a field path", name)
		}
		path, err := fieldpath.Parse(ident.raw)
		if err != nil {
			return nil, fmt.Errorf("predicate/expr: %w", err)
		}
		ref := FieldAt(path)
		switch name {
		case "undefined":
			node = ref.IsUndefined()
		case "beforeNow":
			node = ref.IsBeforeNow()
		case "afterNow":
			node = ref.IsAfterNow()
		default:
			if !stream.match(tokenComma) {
				return nil, fmt.Errorf("predicate/expr: %s expects a list after the field", name)
			}
			list, err := stream.consumeList()
			if err != nil {
				return nil, err
			}
			if name == "undefinedOrIn" {
				node = ref.IsUndefinedOrInArray(list...)
			} else {
				node = ref.IsUndefinedOrNotInArray(list...)
			}
		}
	default:
		return nil, fmt.Errorf("predicate/expr: unknown function %q", name)
	}
	if !stream.match(tokenRParen) {
		return nil, fmt.Errorf("predicate/expr: missing ')' after %s arguments", name)
	}
	return node, nil
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) consumeLiteral() (any, error) {
	if s.pos >= len(s.tokens) {
		return nil, errors.New("predicate/expr: missing literal")
	}
	tok := s.tokens[s.pos]
	s.pos++
	switch tok.kind {
	case tokenString:
		return tok.raw, nil
	case tokenNumber:
		f, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("predicate/expr: invalid number literal %q", tok.raw)
		}
		return f, nil
	case tokenBool:
		return tok.raw == "true", nil
	case tokenIdentifier:
		// Bare words are read as strings so option codes need no quoting.
		return tok.raw, nil
	default:
		return nil, fmt.Errorf("predicate/expr: expected literal, got %q", tok.raw)
	}
}

func (s *tokenStream) consumeList() ([]any, error) {
	if !s.match(tokenLBracket) {
		return nil, errors.New("predicate/expr: expected '['")
	}
	out := []any{}
	if s.match(tokenRBracket) {
		return out, nil
	}
	for {
		lit, err := s.consumeLiteral()
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
		if s.match(tokenRBracket) {
			return out, nil
		}
		if !s.match(tokenComma) {
			return nil, errors.New("predicate/expr: expected ',' or ']' in list")
		}
	}
}
