package setpath

import "errors"

// Common errors used throughout the setpath package
var (
	// ErrUnsupportedFile is returned for a file that is neither a configured script extension nor Markdown.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrNoInputFiles is returned when the given paths contain no file to process.
	ErrNoInputFiles = errors.New("no input files found")
)
