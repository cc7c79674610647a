package serious

import "slices"

// Expr    = [ '-' ] Operand { BinOp Operand }
// Operand = num | ident | '(' Expr ')'
// BinOp   = '+' | '-' | '*' | '/' | '^' | nothing
//
// An absent BinOp before an ident or '(' multiplies, so 2x(x+1) is
// 2*x*(x+1). Every operator, implicit multiplication and '^' included,
// associates to the left: 2^3^2 is (2^3)^2. The leading '-' negates the
// whole multiplicative chain after it and stops at '+' or '-', so
// -2x^2 + 3 is (-(2*x^2)) + 3.

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names used in the expression.
	names []rune
}

// Parse parses an expression so it can be evaluated with a context. The
// error, if any, is an *Error locating the first invalid token.
func Parse(src string) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := parser{toks: toks, names: make(map[rune]bool)}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		// The climb consumes every operator and operand, so leftover input
		// can only be a close paren with no open paren.
		return nil, errorf(BadParse, tok.start, tok.end, "expected operation")
	}
	ex := Expr{
		n:     n,
		names: make([]rune, 0, len(p.names)),
	}
	for r := range p.names {
		ex.names = append(ex.names, r)
	}
	slices.Sort(ex.names)
	return &ex, nil
}

// Vars returns the variable names used when evaluating the expression,
// sorted and without duplicates.
func (e *Expr) Vars() []rune {
	return append([]rune(nil), e.names...)
}

// Span returns the half-open byte range of the source text the expression
// was parsed from.
func (e *Expr) Span() (start, end int) {
	return e.n.start, e.n.end
}

// String creates a string representation of the parsed expression with
// every term bracketed. The result parses to an identical tree.
func (e *Expr) String() string {
	return e.n.String()
}

// parser is a cursor over the token list of one expression.
type parser struct {
	toks  []token
	pos   int
	names map[rune]bool
}

// next returns the token under the cursor and advances past it. ok is false
// at the end of the input.
func (p *parser) next() (tok token, ok bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	tok = p.toks[p.pos]
	p.pos++
	return tok, true
}

// peek returns the token under the cursor without advancing.
func (p *parser) peek() (tok token, ok bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

// Operator precedence tiers. Right operands are parsed one tier above their
// operator, so equal-precedence chains associate to the left.
const (
	precAdd = 1 + iota
	precMul
	precPow
)

func (op Operation) prec() int {
	switch op {
	case Add, Subtract:
		return precAdd
	case Multiply, Divide:
		return precMul
	case Power:
		return precPow
	default:
		panic("serious: invalid operation " + op.String())
	}
}

// expr parses a complete subexpression: an optional negation, then a climb
// from the lowest precedence. A '-' is unary only here, where an expression
// begins; atom rejects it anywhere else.
func (p *parser) expr() (*node, error) {
	if tok, ok := p.peek(); ok && tok.kind == tokenOp && tok.op == Subtract {
		p.pos++
		operand, err := p.atom()
		if err != nil {
			return nil, err
		}
		// The negation takes the multiplicative chain after it, so -2x^2
		// is -(2*x^2) but -2+3 is (-2)+3.
		operand, err = p.climb(operand, precMul)
		if err != nil {
			return nil, err
		}
		n := &node{kind: nodeNeg, left: operand, start: tok.start, end: operand.end}
		return p.climb(n, precAdd)
	}
	lhs, err := p.atom()
	if err != nil {
		return nil, err
	}
	return p.climb(lhs, precAdd)
}

// climb parses the operators to the right of lhs by precedence climbing,
// consuming every operator that binds at least as tightly as min.
func (p *parser) climb(lhs *node, min int) (*node, error) {
	for {
		tok, ok := p.peek()
		if !ok {
			return lhs, nil
		}
		var op Operation
		switch tok.kind {
		case tokenOp:
			op = tok.op
		case tokenIdent, tokenOpen:
			// An operand directly after a finished operand multiplies it.
			op = Multiply
		case tokenNum:
			return nil, errorf(BadParse, tok.start, tok.end, "constant on RHS of implicit multiplication")
		case tokenClose:
			return lhs, nil
		default:
			panic("serious: unknown token " + tok.String())
		}
		prec := op.prec()
		if prec < min {
			return lhs, nil
		}
		if tok.kind == tokenOp {
			p.pos++
		}
		rhs, err := p.atom()
		if err != nil {
			return nil, err
		}
		rhs, err = p.climb(rhs, prec+1)
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: nodeOp, op: op, left: lhs, right: rhs, start: lhs.start, end: rhs.end}
	}
}

// atom parses a number, an identifier, or a parenthesized subexpression.
func (p *parser) atom() (*node, error) {
	tok, ok := p.next()
	if !ok {
		end := p.toks[len(p.toks)-1].end
		return nil, errorf(BadParse, end, end+1, "expected expression")
	}
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, num: tok.num, lit: tok.text, start: tok.start, end: tok.end}, nil
	case tokenIdent:
		p.names[tok.name] = true
		return &node{kind: nodeName, name: tok.name, start: tok.start, end: tok.end}, nil
	case tokenOpen:
		return p.group(tok)
	case tokenOp:
		if tok.op == Subtract {
			return nil, errorf(BadParse, tok.start, tok.end, "expected expression; wrap in parens for unary minus")
		}
		return nil, errorf(BadParse, tok.start, tok.end, "expected expression")
	case tokenClose:
		return nil, errorf(BadParse, tok.start, tok.end, "expected expression")
	default:
		panic("serious: unknown token " + tok.String())
	}
}

// group parses the rest of a parenthesized subexpression after its open
// paren. The node's span widens to include both parens, so an error in
// evaluating it reports the parenthesized range.
func (p *parser) group(open token) (*node, error) {
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	tok, ok := p.next()
	if !ok {
		return nil, errorf(BadParse, open.start, open.end, "failed to match paren")
	}
	if tok.kind != tokenClose {
		panic("serious: subexpression ended on " + tok.String())
	}
	n.start, n.end = open.start, tok.end
	return n, nil
}
