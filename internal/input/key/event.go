package key

import (
	"fmt"
	"strings"

	"github.com/dshills/crikey/internal/input/keysym"
)

// Event is a single decoded key press: a symbol, the keysym it resolved
// to, and the modifiers held while it is pressed.
//
// Events are values; nothing in an Event is shared with the decoder
// that produced it.
type Event struct {
	// Symbol is what the input described.
	Symbol Symbol

	// Keysym is the resolved platform key.
	Keysym keysym.Keysym

	// Modifiers contains the modifier keys to hold.
	Modifiers Modifier
}

// NewCharEvent creates an event for a literal character.
func NewCharEvent(r rune, ks keysym.Keysym, mods Modifier) Event {
	return Event{
		Symbol:    CharSymbol(r),
		Keysym:    ks,
		Modifiers: mods,
	}
}

// NewNamedEvent creates an event for a symbolic key name.
func NewNamedEvent(name string, ks keysym.Keysym, mods Modifier) Event {
	return Event{
		Symbol:    NameSymbol(name),
		Keysym:    ks,
		Modifiers: mods,
	}
}

// IsNamed returns true if the event came from a symbolic name.
func (e Event) IsNamed() bool {
	return e.Symbol.IsName()
}

// IsModified returns true if any modifier other than Shift is held.
func (e Event) IsModified() bool {
	return e.Modifiers&(ModCtrl|ModAlt|ModSuper) != 0
}

// String returns a compact form like "C-S-a" or "Return".
// The keysym name is used so that literal and named events for the
// same key print the same way.
func (e Event) String() string {
	var parts []string
	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasSuper() {
		parts = append(parts, "W")
	}
	if e.Modifiers.HasShift() {
		parts = append(parts, "S")
	}
	parts = append(parts, e.Keysym.String())
	return strings.Join(parts, "-")
}

// Equals returns true if two events press the same key with the same modifiers.
func (e Event) Equals(other Event) bool {
	return e.Symbol == other.Symbol &&
		e.Keysym == other.Keysym &&
		e.Modifiers == other.Modifiers
}

// WithModifier returns a copy with the specified modifier added.
func (e Event) WithModifier(mod Modifier) Event {
	e.Modifiers = e.Modifiers.With(mod)
	return e
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Symbol: %s, Keysym: %s, Modifiers: %s}",
		e.Symbol.String(), e.Keysym.String(), e.Modifiers.String())
}
