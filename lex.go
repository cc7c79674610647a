package serious

import (
	"errors"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// token is a single lexeme of an expression.
type token struct {
	kind tokenKind

	num  float64   // tokenNum value
	text string    // tokenNum spelling
	name rune      // tokenIdent
	op   Operation // tokenOp

	// start and end are the half-open byte range of the lexeme.
	start, end int
}

func (t token) String() string {
	return t.kind.String() + "@" + strconv.Itoa(t.start) + ":" + strconv.Itoa(t.end)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a number literal.
	tokenNum
	// tokenIdent is a variable name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open paren.
	tokenOpen
	// tokenClose is a close paren.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// lex scans src into the complete list of its tokens. Positions are byte
// offsets into src. The error, if any, is an *Error locating the first
// invalid lexeme.
func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		r, sz := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += sz
		case '0' <= r && r <= '9', r == '.':
			// A maximal run of digits and dots is one candidate literal, so
			// 0.2.3 is a single bad number rather than 0.2 times 0.3.
			j := i + 1
			for j < len(src) && ('0' <= src[j] && src[j] <= '9' || src[j] == '.') {
				j++
			}
			lit := src[i:j]
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				if !errors.Is(err, strconv.ErrRange) {
					return nil, errorf(BadParse, i, j, "invalid number %q", lit)
				}
				if math.IsInf(v, 0) {
					return nil, errorf(Overflow, i, j, "number too large to fit in float64")
				}
				// Tiny magnitudes round to the nearest float64, like any
				// other literal.
			}
			toks = append(toks, token{kind: tokenNum, num: v, text: lit, start: i, end: j})
			i = j
		case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z':
			toks = append(toks, token{kind: tokenIdent, name: r, start: i, end: i + 1})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokenOpen, start: i, end: i + 1})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokenClose, start: i, end: i + 1})
			i++
		default:
			op, ok := opFor(r)
			if !ok {
				return nil, errorf(BadParse, i, i+sz, "invalid character %q", r)
			}
			toks = append(toks, token{kind: tokenOp, op: op, start: i, end: i + 1})
			i++
		}
	}
	if len(toks) == 0 {
		return nil, errorf(BadParse, 0, 1, "expected token")
	}
	return toks, nil
}

// opFor maps an operator rune to its Operation.
func opFor(r rune) (Operation, bool) {
	switch r {
	case '+':
		return Add, true
	case '-':
		return Subtract, true
	case '*':
		return Multiply, true
	case '/':
		return Divide, true
	case '^':
		return Power, true
	}
	return 0, false
}
