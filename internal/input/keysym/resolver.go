package keysym

import (
	"errors"
	"fmt"
)

// ErrUnresolved is returned when a character or name has no keysym.
var ErrUnresolved = errors.New("unresolved key symbol")

// Resolution is the outcome of a successful lookup.
type Resolution struct {
	// Keysym is the resolved key.
	Keysym Keysym

	// Name is the namespace name that produced Keysym.
	Name string

	// Fallback is true when the character was not found by itself in the
	// namespace.
	Fallback bool
}

// Resolver turns characters and names into keysyms.
// A Resolver holds no mutable state and may be shared.
type Resolver struct {
	ns    Namespace
	table []Entry
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTable replaces the non-printable table.
func WithTable(table []Entry) ResolverOption {
	return func(r *Resolver) {
		r.table = table
	}
}

// NewResolver creates a resolver over ns. A nil ns selects X11.
func NewResolver(ns Namespace, opts ...ResolverOption) *Resolver {
	if ns == nil {
		ns = X11
	}
	r := &Resolver{
		ns:    ns,
		table: NonPrintables,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultResolver returns a resolver over the X11 namespace.
func DefaultResolver() *Resolver {
	return NewResolver(X11)
}

// Resolve returns the keysym for a single literal character.
//
// The namespace is asked for the character itself first; if that fails the
// first table entry for c supplies a name to look up instead. A control
// code with neither resolves to its Unicode keysym.
func (r *Resolver) Resolve(c rune) (Resolution, error) {
	name := string(c)
	if k, ok := r.ns.Lookup(name); ok {
		return Resolution{Keysym: k, Name: name}, nil
	}

	if e, ok := lookupEntry(r.table, c); ok {
		if k, ok := r.ns.Lookup(e.Name); ok {
			return Resolution{Keysym: k, Name: e.Name, Fallback: true}, nil
		}
	}

	if isControl(c) {
		return Resolution{Keysym: Unicode(c), Name: unicodeName(c), Fallback: true}, nil
	}

	return Resolution{}, fmt.Errorf("%w: %q", ErrUnresolved, c)
}

// isControl reports whether c is a C0 control code other than NUL.
func isControl(c rune) bool {
	return c > 0 && c < 0x20
}

// ResolveName returns the keysym for a symbolic key name.
// The non-printable table is not consulted.
func (r *Resolver) ResolveName(name string) (Resolution, error) {
	if k, ok := r.ns.Lookup(name); ok {
		return Resolution{Keysym: k, Name: name}, nil
	}
	return Resolution{}, fmt.Errorf("%w: %q", ErrUnresolved, name)
}
