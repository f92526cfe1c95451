package expr

import (
	"fmt"
	"strconv"
	"unicode"
)

// SyntaxError reports malformed input to Parse with the rune offset where
// parsing failed.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenOp
	tokenLParen
	tokenRParen
)

type token struct {
	kind  tokenKind
	pos   int
	value float64 // tokenNumber
	text  string  // tokenIdent
	op    Op      // tokenOp
}

// tokenize performs a single left-to-right pass over the input. It fails
// fast on the first rune it does not recognize.
func tokenize(text string) ([]token, error) {
	runes := []rune(text)
	tokens := make([]token, 0, len(runes))
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			value, err := strconv.ParseFloat(string(runes[start:i]), 64)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid number %q", string(runes[start:i]))}
			}
			tokens = append(tokens, token{kind: tokenNumber, pos: start, value: value})
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, pos: start, text: string(runes[start:i])})
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			tokens = append(tokens, token{kind: tokenOp, pos: i, op: Op(r)})
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, pos: i})
			i++
		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unknown symbol %q", r)}
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(runes)})
	return tokens, nil
}

// Parse converts a textual expression into a tree. The grammar supports
// integer and decimal literals, named variables, the binary operators
// + - * / ^ with standard precedence (^ right-associative, the rest
// left-associative), unary minus, parenthesized grouping, and implicit
// multiplication as in "2x" or "4(y + 1)".
func Parse(text string) (*Node, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	if tokens[0].kind == tokenEOF {
		return nil, &SyntaxError{Pos: 0, Msg: "empty input"}
	}
	p := &parser{tokens: tokens}
	node, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, &SyntaxError{Pos: tok.pos, Msg: "unexpected trailing input"}
	}
	return node, nil
}

// MustParse is a convenience for tests and problem generators where the
// input is known to be well formed.
func MustParse(text string) *Node {
	node, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return node
}

type parser struct {
	tokens []token
	i      int
}

func (p *parser) peek() token {
	return p.tokens[p.i]
}

func (p *parser) next() token {
	tok := p.tokens[p.i]
	if tok.kind != tokenEOF {
		p.i++
	}
	return tok
}

func (p *parser) parseAddSub() (*Node, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.op != Add && tok.op != Sub) {
			return left, nil
		}
		p.next()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = Binary(tok.op, left, right)
	}
}

func (p *parser) parseMulDiv() (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch {
		case tok.kind == tokenOp && (tok.op == Mul || tok.op == Div):
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Binary(tok.op, left, right)
		case tok.kind == tokenIdent || tok.kind == tokenLParen:
			// Implicit multiplication: "2x", "4(y + 1)", "x(x + 1)"
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Binary(Mul, left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (*Node, error) {
	tok := p.peek()
	if tok.kind == tokenOp && tok.op == Sub {
		p.next()
		// A minus directly on a literal folds into the constant so that
		// "-3x" parses as Const(-3) * x rather than Neg(3 * x).
		if num := p.peek(); num.kind == tokenNumber {
			p.next()
			return p.parsePowTail(Const(-num.value))
		}
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Negate(child), nil
	}
	return p.parsePow()
}

func (p *parser) parsePow() (*Node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return p.parsePowTail(base)
}

func (p *parser) parsePowTail(base *Node) (*Node, error) {
	tok := p.peek()
	if tok.kind != tokenOp || tok.op != Pow {
		return base, nil
	}
	p.next()
	// Right-associative: x^2^3 == x^(2^3)
	exponent, err := p.parseUnaryPow()
	if err != nil {
		return nil, err
	}
	return Binary(Pow, base, exponent), nil
}

// parseUnaryPow parses the exponent position, permitting a leading minus as
// in "x^-2".
func (p *parser) parseUnaryPow() (*Node, error) {
	tok := p.peek()
	if tok.kind == tokenOp && tok.op == Sub {
		p.next()
		if num := p.peek(); num.kind == tokenNumber {
			p.next()
			return p.parsePowTail(Const(-num.value))
		}
		child, err := p.parseUnaryPow()
		if err != nil {
			return nil, err
		}
		return Negate(child), nil
	}
	return p.parsePow()
}

func (p *parser) parseAtom() (*Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		return Const(tok.value), nil
	case tokenIdent:
		return Var(tok.text), nil
	case tokenLParen:
		inner, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, &SyntaxError{Pos: closing.pos, Msg: "unbalanced parentheses"}
		}
		return inner, nil
	case tokenRParen:
		return nil, &SyntaxError{Pos: tok.pos, Msg: "unbalanced parentheses"}
	case tokenEOF:
		return nil, &SyntaxError{Pos: tok.pos, Msg: "unexpected end of input"}
	default:
		return nil, &SyntaxError{Pos: tok.pos, Msg: "unexpected token"}
	}
}
