package parser

// Options controls parser behaviors that can be relaxed or enabled.
type Options struct {
	// Filename is reported in parse errors.
	Filename string
	// AllowHashbang skips a leading "#!" line, as found in executable scripts.
	AllowHashbang bool
}

// DefaultOptions provides the default parser options.
var DefaultOptions = Options{AllowHashbang: true}
