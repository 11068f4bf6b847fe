package gosimp

import "errors"

var (
	// ErrUnsupportedDerivative is returned by Collect when a pattern or term
	// is a derivative taken with respect to more than one variable.
	ErrUnsupportedDerivative = errors.New("gosimp: derivative with respect to several variables is not supported")

	// ErrInvalidExpression is returned when decoding a malformed expression.
	ErrInvalidExpression = errors.New("gosimp: invalid expression")
)
