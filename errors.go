package serious

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies a failure. The set is closed: every error the package
// returns has exactly one of these kinds.
type ErrorKind int8

const (
	// BadParse indicates text that does not spell an expression.
	BadParse ErrorKind = iota
	// UnboundIdentifier indicates an identifier with no value in the context.
	UnboundIdentifier
	// UndefinedOperation indicates an operation with no result, like division
	// by zero.
	UndefinedOperation
	// Overflow indicates a number too large in magnitude for float64.
	Overflow
)

func (k ErrorKind) String() string {
	switch k {
	case BadParse:
		return "BadParse"
	case UnboundIdentifier:
		return "UnboundIdentifier"
	case UndefinedOperation:
		return "UndefinedOperation"
	case Overflow:
		return "Overflow"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error locates and classifies a failure in scanning, parsing, or evaluating
// an expression. Every error returned from this package is an *Error, so
// callers can errors.As and switch on Kind exhaustively.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// Message describes the failure.
	Message string
	// Start and End are the half-open byte range of the source text the
	// failure is attributed to: a token for scan and parse errors, a whole
	// subexpression for evaluation errors.
	Start, End int
}

func (err *Error) Error() string {
	return strconv.Itoa(err.Start) + ":" + strconv.Itoa(err.End) + ": " + err.Message
}

// Span returns the half-open byte range of the source text the error is
// attributed to.
func (err *Error) Span() (start, end int) {
	return err.Start, err.End
}

var _ error = (*Error)(nil)

// errorf creates an *Error spanning [start, end).
func errorf(kind ErrorKind, start, end int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Start: start, End: end}
}
