package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key.
	ModAlt

	// ModSuper indicates the Super key (Win, Cmd, Meta).
	ModSuper
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasSuper returns true if Super is pressed.
func (m Modifier) HasSuper() bool {
	return m.Has(ModSuper)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasSuper() {
		parts = append(parts, "Super")
	}
	return strings.Join(parts, "+")
}

// ShortString returns a compact representation like "C-A-S-W".
func (m Modifier) ShortString() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "C")
	}
	if m.HasAlt() {
		parts = append(parts, "A")
	}
	if m.HasShift() {
		parts = append(parts, "S")
	}
	if m.HasSuper() {
		parts = append(parts, "W")
	}
	return strings.Join(parts, "-")
}

// ModifierFromLetter returns the modifier selected by an escape letter:
// S (Shift), C (Control), A (Alt), M or W (Super).
// Letters are case-sensitive; lowercase letters are not modifiers.
func ModifierFromLetter(r rune) (Modifier, bool) {
	switch r {
	case 'S':
		return ModShift, true
	case 'C':
		return ModCtrl, true
	case 'A':
		return ModAlt, true
	case 'M', 'W':
		return ModSuper, true
	default:
		return ModNone, false
	}
}
