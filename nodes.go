package serious

import (
	"strconv"
	"strings"
)

// Operation is a binary operator of the expression language.
type Operation int8

const (
	Add Operation = iota
	Subtract
	Multiply
	Divide
	Power
)

// String returns the operator as it is spelled in an expression.
func (op Operation) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Power:
		return "^"
	default:
		return "Operation(" + strconv.Itoa(int(op)) + ")"
	}
}

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	num  float64   // nodeNum value
	lit  string    // nodeNum spelling
	name rune      // nodeName
	op   Operation // nodeOp

	left  *node
	right *node

	// start and end are the half-open byte range of the source text the
	// node was parsed from, parens included.
	start, end int
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // literal value
	nodeName // context lookup
	nodeNeg  // negate left
	nodeOp   // apply op to left and right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeNeg:
		return "Neg"
	case nodeOp:
		return "Op"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node to b with every node bracketed, so that the result
// reparses to the same tree no matter what precedence the original spelling
// relied on.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNum:
		b.WriteString(n.lit)
	case nodeName:
		b.WriteRune(n.name)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeOp:
		n.left.fmt(b)
		b.WriteString(n.op.String())
		n.right.fmt(b)
	default:
		panic("serious: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
