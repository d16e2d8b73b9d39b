package key

import "strconv"

// Symbol is the key an event presses: either a single literal character
// or a named symbol such as "Return".
type Symbol struct {
	// Char is the literal character. Unused when Name is set.
	Char rune

	// Name is the symbolic key name for named symbols.
	Name string
}

// CharSymbol returns a Symbol for a literal character.
func CharSymbol(r rune) Symbol {
	return Symbol{Char: r}
}

// NameSymbol returns a Symbol for a symbolic key name.
func NameSymbol(name string) Symbol {
	return Symbol{Name: name}
}

// IsName returns true if s is a named symbol.
func (s Symbol) IsName() bool {
	return s.Name != ""
}

// String returns the name, or the quoted character for literals.
func (s Symbol) String() string {
	if s.IsName() {
		return s.Name
	}
	return strconv.QuoteRune(s.Char)
}
