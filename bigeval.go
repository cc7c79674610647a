package serious

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// BigContext binds identifiers to arbitrary-precision values for EvalBig.
type BigContext struct {
	names map[rune]*big.Float
	prec  uint
}

// NewBigContext creates a context that computes to prec bits of mantissa.
// If prec is 0, the default is 64.
func NewBigContext(prec uint) *BigContext {
	if prec == 0 {
		prec = 64
	}
	return &BigContext{names: make(map[rune]*big.Float), prec: prec}
}

// Set binds an identifier, rounded to the context's precision. Returns the
// context for chaining.
func (c *BigContext) Set(name rune, val *big.Float) *BigContext {
	if c.names == nil {
		c.names = make(map[rune]*big.Float)
	}
	c.names[name] = new(big.Float).SetPrec(c.prec).Set(val)
	return c
}

// Lookup returns a copy of the value bound to an identifier, or nil if the
// identifier is not bound.
func (c *BigContext) Lookup(name rune) *big.Float {
	v := c.names[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision in bits to which values are computed.
func (c *BigContext) Prec() uint {
	return c.prec
}

// EvalBig evaluates the expression to the context's precision. Number
// literals are reparsed at that precision, so "0.1" is as close to a tenth
// as the context allows rather than as close as float64 allows. The error
// kinds and spans match Eval, except that magnitudes beyond float64 are
// representable here and do not overflow.
func (e *Expr) EvalBig(ctx *BigContext) (*big.Float, error) {
	return e.n.evalBig(ctx)
}

func (n *node) evalBig(ctx *BigContext) (*big.Float, error) {
	switch n.kind {
	case nodeNum:
		v, _, err := new(big.Float).SetPrec(ctx.prec).Parse(n.lit, 10)
		if err != nil {
			panic("serious: invalid number " + strconv.Quote(n.lit) + ": " + err.Error())
		}
		return v, nil
	case nodeName:
		v := ctx.names[n.name]
		if v == nil {
			return nil, errorf(UnboundIdentifier, n.start, n.end, "identifier %c is not bound", n.name)
		}
		return new(big.Float).SetPrec(ctx.prec).Set(v), nil
	case nodeNeg:
		v, err := n.left.evalBig(ctx)
		if err != nil {
			return nil, err
		}
		return v.Neg(v), nil
	case nodeOp:
		l, err := n.left.evalBig(ctx)
		if err != nil {
			return nil, err
		}
		r, err := n.right.evalBig(ctx)
		if err != nil {
			return nil, err
		}
		return n.applyBig(ctx, l, r)
	default:
		panic("serious: invalid node kind " + n.kind.String())
	}
}

// applyBig computes l op r into a fresh value. The guards cover every case
// where big.Float arithmetic would panic with ErrNaN, mapping each to
// UndefinedOperation the way float64 NaN results map in apply.
func (n *node) applyBig(ctx *BigContext, l, r *big.Float) (*big.Float, error) {
	z := new(big.Float).SetPrec(ctx.prec)
	switch n.op {
	case Add:
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return nil, errorf(UndefinedOperation, n.start, n.end, "%v%v%v is undefined", l, n.op, r)
		}
		z.Add(l, r)
	case Subtract:
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return nil, errorf(UndefinedOperation, n.start, n.end, "%v%v%v is undefined", l, n.op, r)
		}
		z.Sub(l, r)
	case Multiply:
		if l.IsInf() && r.Sign() == 0 || l.Sign() == 0 && r.IsInf() {
			return nil, errorf(UndefinedOperation, n.start, n.end, "%v%v%v is undefined", l, n.op, r)
		}
		z.Mul(l, r)
	case Divide:
		if r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return nil, errorf(UndefinedOperation, n.start, n.end, "%v%v%v is undefined", l, n.op, r)
		}
		z.Quo(l, r)
	case Power:
		v, err := n.powBig(ctx, l, r)
		if err != nil {
			return nil, err
		}
		z = v
	default:
		panic("serious: invalid operation " + n.op.String())
	}
	if z.IsInf() {
		return nil, errorf(Overflow, n.start, n.end, "%v%v%v overflows", l, n.op, r)
	}
	return z, nil
}

// powBig computes l^r. Integer exponents go by repeated squaring, which
// settles the sign of a negative base; bigfloat.Pow computes exp(r log l)
// and gets only positive finite operands.
func (n *node) powBig(ctx *BigContext, l, r *big.Float) (*big.Float, error) {
	if r.IsInt() {
		if k, acc := r.Int64(); acc == big.Exact {
			return powInt(l, k, ctx.prec), nil
		}
	}
	switch {
	case l.Sign() == 0:
		// A zero r is an exact integer, so r is nonzero here.
		if r.Sign() > 0 {
			return new(big.Float).SetPrec(ctx.prec), nil
		}
		return nil, errorf(Overflow, n.start, n.end, "%v%v%v overflows", l, n.op, r)
	case l.Sign() > 0 && !l.IsInf() && !r.IsInf():
		return bigfloat.Pow(new(big.Float).SetPrec(ctx.prec), l, r), nil
	default:
		// Negative or infinite base, or an infinite fractional exponent.
		return nil, errorf(UndefinedOperation, n.start, n.end, "%v%v%v is undefined", l, n.op, r)
	}
}

// powInt computes b to an integer power by repeated squaring, which keeps
// the sign of a negative base exact: (-2)^3 is -8 and (-2)^2 is 4.
func powInt(b *big.Float, k int64, prec uint) *big.Float {
	v := new(big.Float).SetPrec(prec).SetInt64(1)
	u := uint64(k)
	if k < 0 {
		// Negating k+1 first keeps the magnitude of MinInt64 in range.
		u = uint64(-(k+1)) + 1
	}
	sq := new(big.Float).SetPrec(prec).Set(b)
	for ; u > 0; u >>= 1 {
		if u&1 == 1 {
			v.Mul(v, sq)
		}
		sq.Mul(sq, sq)
	}
	if k < 0 {
		// v is zero only for a zero base, and then 1/0 is a quiet +Inf
		// that the caller maps to Overflow.
		v.Quo(new(big.Float).SetPrec(prec).SetInt64(1), v)
	}
	return v
}
