package serious

import "math"

// Context binds identifiers to values for evaluation. A nil Context binds
// nothing. Evaluation only reads the map, so one Context may serve any
// number of concurrent evaluations as long as nothing mutates it meanwhile.
type Context map[rune]float64

// Set binds an identifier and returns the context for chaining. If c is
// nil, Set allocates the map it returns.
func (c Context) Set(name rune, val float64) Context {
	if c == nil {
		c = make(Context)
	}
	c[name] = val
	return c
}

// Lookup returns the value bound to an identifier.
func (c Context) Lookup(name rune) (float64, bool) {
	v, ok := c[name]
	return v, ok
}

// Eval parses an expression and evaluates it with the given context. It is
// a shortcut for Parse followed by Expr.Eval and reports the same results
// and errors.
func Eval(src string, ctx Context) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(ctx)
}

// Eval evaluates the expression with the given context. The expression is
// not modified, so evaluations of one Expr may run concurrently.
func (e *Expr) Eval(ctx Context) (float64, error) {
	return e.n.eval(ctx)
}

// eval computes the node's value. Children evaluate left before right, and
// the first error stops the walk.
func (n *node) eval(ctx Context) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeName:
		v, ok := ctx[n.name]
		if !ok {
			return 0, errorf(UnboundIdentifier, n.start, n.end, "identifier %c is not bound", n.name)
		}
		return v, nil
	case nodeNeg:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeOp:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		return n.apply(l, r)
	default:
		panic("serious: invalid node kind " + n.kind.String())
	}
}

// apply computes l op r. Division by a zero right operand and NaN results
// are UndefinedOperation; infinite results are Overflow; everything else is
// the IEEE 754 result, with math.Pow semantics for '^'.
func (n *node) apply(l, r float64) (float64, error) {
	var v float64
	switch n.op {
	case Add:
		v = l + r
	case Subtract:
		v = l - r
	case Multiply:
		v = l * r
	case Divide:
		if r == 0 {
			return 0, errorf(UndefinedOperation, n.start, n.end, "%v%v%v is undefined", l, n.op, r)
		}
		v = l / r
	case Power:
		v = math.Pow(l, r)
	default:
		panic("serious: invalid operation " + n.op.String())
	}
	switch {
	case math.IsNaN(v):
		return 0, errorf(UndefinedOperation, n.start, n.end, "%v%v%v is undefined", l, n.op, r)
	case math.IsInf(v, 0):
		return 0, errorf(Overflow, n.start, n.end, "%v%v%v overflows float64", l, n.op, r)
	}
	return v, nil
}
