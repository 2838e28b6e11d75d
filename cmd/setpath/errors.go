package main

import "errors"

// Sentinel errors for command operations
var (
	ErrTransformFailed        = errors.New("some files had errors")
	ErrFilesWouldChange       = errors.New("some files would be rewritten")
	ErrOutputNeedsSingleInput = errors.New("--output requires exactly one input file")
	ErrMultipleInputs         = errors.New("multiple input files need --write, --check or --diff")
	ErrConflictingModes       = errors.New("--write, --check, --diff and --output are mutually exclusive")
)
