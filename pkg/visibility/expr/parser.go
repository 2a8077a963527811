package expr

import (
	"errors"
	"fmt"
	"strconv"
)

// Grammar:
//
//	or      := and ( "||" and )*
//	and     := unary ( "&&" unary )*
//	unary   := "!" unary | primary
//	primary := "(" or ")" | ident [ op literal ]
type parser struct {
	tokens []token
	pos    int
}

func parse(tokens []token) (node, error) {
	p := &parser{tokens: tokens}
	if len(tokens) == 0 {
		return nil, errors.New("expr: empty expression")
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		return nil, fmt.Errorf("expr: unexpected %q at %d", tok.text, tok.pos)
	}
	return n, nil
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) accept(kind tokenKind) bool {
	tok, ok := p.peek()
	if !ok || tok.kind != kind {
		return false
	}
	p.pos++
	return true
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.accept(tokNot) {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.accept(tokLParen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokRParen) {
			return nil, errors.New("expr: missing closing ')'")
		}
		return inner, nil
	}

	tok, ok := p.peek()
	if !ok {
		return nil, errors.New("expr: expression ends early")
	}
	if tok.kind != tokIdent {
		return nil, fmt.Errorf("expr: expected identifier at %d, got %q", tok.pos, tok.text)
	}
	p.pos++
	ref, err := parseRef(tok.text)
	if err != nil {
		return nil, err
	}

	op, ok := p.peek()
	if !ok || !isComparison(op.kind) {
		return truthyNode{ref}, nil
	}
	p.pos++

	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if isOrdering(op.kind) && lit.kind != litNumber {
		return nil, fmt.Errorf("expr: operator %q needs a number, got %q", op.text, lit.text)
	}
	return compareNode{ref: ref, op: op.kind, lit: lit}, nil
}

func (p *parser) parseLiteral() (literal, error) {
	tok, ok := p.peek()
	if !ok {
		return literal{}, errors.New("expr: missing literal")
	}
	p.pos++
	switch tok.kind {
	case tokString, tokIdent:
		return literal{kind: litString, text: tok.text}, nil
	case tokNumber:
		n, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return literal{}, fmt.Errorf("expr: invalid number %q", tok.text)
		}
		return literal{kind: litNumber, text: tok.text, num: n}, nil
	case tokBool:
		return literal{kind: litBool, text: tok.text, b: tok.text == "true"}, nil
	case tokNull:
		return literal{kind: litNull, text: "null"}, nil
	default:
		return literal{}, fmt.Errorf("expr: expected literal at %d, got %q", tok.pos, tok.text)
	}
}

func isComparison(kind tokenKind) bool {
	switch kind {
	case tokEq, tokNeq, tokLt, tokLte, tokGt, tokGte:
		return true
	}
	return false
}

func isOrdering(kind tokenKind) bool {
	switch kind {
	case tokLt, tokLte, tokGt, tokGte:
		return true
	}
	return false
}
