// Package serious implements a pocket calculator over float64 values.
//
// The syntax is the arithmetic you'd scribble on paper. "2xy" multiplies
// three terms, and so does "2 (x)(y)". "-2^2" is -(2^2), and "8-4-2" is
// (8-4)-2, like every other operator chain. Identifiers are single letters
// bound by a Context.
//
// Every failure, whether from scanning, parsing, or evaluating, is an *Error
// carrying one of four kinds and the byte range of the input it blames.
//
// Parse an expression once and evaluate it for many inputs, with Eval for
// float64 arithmetic or EvalBig when 53 bits of mantissa are not enough.
package serious
