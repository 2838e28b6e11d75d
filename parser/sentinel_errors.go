package parser

import "errors"

// Sentinel errors
var (
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrUnexpectedEOF     = errors.New("unexpected end of file")
	ErrMissingToken      = errors.New("missing token")
	ErrInvalidNumber     = errors.New("invalid numeric literal")
	ErrInvalidString     = errors.New("invalid string literal")
	ErrUnsupportedSyntax = errors.New("unsupported syntax")
)
