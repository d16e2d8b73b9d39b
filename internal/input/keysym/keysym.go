package keysym

import (
	"fmt"
	"sort"
)

// Keysym identifies a logical key.
type Keysym uint32

// Well-known keysyms used outside the name table.
const (
	Space     Keysym = 0x0020
	Comma     Keysym = 0x002c
	Less      Keysym = 0x003c
	BackSpace Keysym = 0xff08
	Tab       Keysym = 0xff09
	Return    Keysym = 0xff0d
	Escape    Keysym = 0xff1b
	Delete    Keysym = 0xffff
	ShiftL    Keysym = 0xffe1
	ControlL  Keysym = 0xffe3
	AltL      Keysym = 0xffe9
	SuperL    Keysym = 0xffeb
	F1        Keysym = 0xffbe
)

// unicodeBase is added to a code point to form its X11 Unicode keysym.
const unicodeBase Keysym = 0x01000000

// Unicode returns the X11 Unicode keysym for r.
func Unicode(r rune) Keysym {
	return unicodeBase | Keysym(r)
}

// IsUnicode reports whether k is a Unicode keysym.
func (k Keysym) IsUnicode() bool {
	return k >= unicodeBase && k <= unicodeBase|0x10ffff
}

// Rune returns the code point of a Unicode keysym.
func (k Keysym) Rune() (rune, bool) {
	if !k.IsUnicode() {
		return 0, false
	}
	return rune(k - unicodeBase), true
}

// IsLatin1 reports whether k is a printable Latin-1 keysym.
func (k Keysym) IsLatin1() bool {
	return (k >= 0x20 && k <= 0x7e) || (k >= 0xa0 && k <= 0xff)
}

// IsFunctionKey reports whether k is one of F1-F24.
func (k Keysym) IsFunctionKey() bool {
	return k >= F1 && k < F1+24
}

// IsModifier reports whether k is a modifier key keysym.
func (k Keysym) IsModifier() bool {
	return k >= ShiftL && k <= 0xffee
}

// Base returns the unshifted form of a Latin-1 letter keysym.
// Other keysyms are returned unchanged.
func (k Keysym) Base() Keysym {
	if k >= 'A' && k <= 'Z' {
		return k + ('a' - 'A')
	}
	return k
}

// Name returns the canonical name of the keysym, if it has one.
func (k Keysym) Name() (string, bool) {
	name, ok := canonical[k]
	return name, ok
}

// String returns the canonical name, or a hexadecimal form for unnamed keysyms.
func (k Keysym) String() string {
	if name, ok := k.Name(); ok {
		return name
	}
	if r, ok := k.Rune(); ok {
		return unicodeName(r)
	}
	return fmt.Sprintf("0x%04x", uint32(k))
}

// Namespace looks up keysyms by symbolic name.
type Namespace interface {
	// Lookup returns the keysym for name and whether it exists.
	Lookup(name string) (Keysym, bool)
}

// NamespaceFunc adapts an ordinary function to the Namespace interface.
type NamespaceFunc func(name string) (Keysym, bool)

// Lookup calls f(name).
func (f NamespaceFunc) Lookup(name string) (Keysym, bool) {
	return f(name)
}

// X11 is the built-in namespace of X11 keysym names.
// Names are case-sensitive, as in XStringToKeysym.
var X11 Namespace = NamespaceFunc(func(name string) (Keysym, bool) {
	k, ok := names[name]
	return k, ok
})

// Names returns the sorted list of names known to the X11 namespace.
func Names() []string {
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var (
	names     = buildNames()
	canonical = buildCanonical()
)

// aliases are names that share a keysym with an earlier canonical name.
var aliases = map[string]bool{
	"Page_Up":      true,
	"Page_Down":    true,
	"KP_Page_Up":   true,
	"KP_Page_Down": true,
}

func buildNames() map[string]Keysym {
	m := map[string]Keysym{
		"space":        0x0020,
		"exclam":       0x0021,
		"quotedbl":     0x0022,
		"numbersign":   0x0023,
		"dollar":       0x0024,
		"percent":      0x0025,
		"ampersand":    0x0026,
		"apostrophe":   0x0027,
		"parenleft":    0x0028,
		"parenright":   0x0029,
		"asterisk":     0x002a,
		"plus":         0x002b,
		"comma":        0x002c,
		"minus":        0x002d,
		"period":       0x002e,
		"slash":        0x002f,
		"colon":        0x003a,
		"semicolon":    0x003b,
		"less":         0x003c,
		"equal":        0x003d,
		"greater":      0x003e,
		"question":     0x003f,
		"at":           0x0040,
		"bracketleft":  0x005b,
		"backslash":    0x005c,
		"bracketright": 0x005d,
		"asciicircum":  0x005e,
		"underscore":   0x005f,
		"grave":        0x0060,
		"braceleft":    0x007b,
		"bar":          0x007c,
		"braceright":   0x007d,
		"asciitilde":   0x007e,

		"BackSpace":   0xff08,
		"Tab":         0xff09,
		"Linefeed":    0xff0a,
		"Clear":       0xff0b,
		"Return":      0xff0d,
		"Pause":       0xff13,
		"Scroll_Lock": 0xff14,
		"Sys_Req":     0xff15,
		"Escape":      0xff1b,
		"Delete":      0xffff,

		"Home":      0xff50,
		"Left":      0xff51,
		"Up":        0xff52,
		"Right":     0xff53,
		"Down":      0xff54,
		"Prior":     0xff55,
		"Page_Up":   0xff55,
		"Next":      0xff56,
		"Page_Down": 0xff56,
		"End":       0xff57,
		"Begin":     0xff58,

		"Select":   0xff60,
		"Print":    0xff61,
		"Execute":  0xff62,
		"Insert":   0xff63,
		"Undo":     0xff65,
		"Redo":     0xff66,
		"Menu":     0xff67,
		"Find":     0xff68,
		"Cancel":   0xff69,
		"Help":     0xff6a,
		"Break":    0xff6b,
		"Num_Lock": 0xff7f,

		"KP_Space":     0xff80,
		"KP_Tab":       0xff89,
		"KP_Enter":     0xff8d,
		"KP_Home":      0xff95,
		"KP_Left":      0xff96,
		"KP_Up":        0xff97,
		"KP_Right":     0xff98,
		"KP_Down":      0xff99,
		"KP_Prior":     0xff9a,
		"KP_Page_Up":   0xff9a,
		"KP_Next":      0xff9b,
		"KP_Page_Down": 0xff9b,
		"KP_End":       0xff9c,
		"KP_Begin":     0xff9d,
		"KP_Insert":    0xff9e,
		"KP_Delete":    0xff9f,
		"KP_Multiply":  0xffaa,
		"KP_Add":       0xffab,
		"KP_Separator": 0xffac,
		"KP_Subtract":  0xffad,
		"KP_Decimal":   0xffae,
		"KP_Divide":    0xffaf,
		"KP_Equal":     0xffbd,

		"Shift_L":    0xffe1,
		"Shift_R":    0xffe2,
		"Control_L":  0xffe3,
		"Control_R":  0xffe4,
		"Caps_Lock":  0xffe5,
		"Shift_Lock": 0xffe6,
		"Meta_L":     0xffe7,
		"Meta_R":     0xffe8,
		"Alt_L":      0xffe9,
		"Alt_R":      0xffea,
		"Super_L":    0xffeb,
		"Super_R":    0xffec,
		"Hyper_L":    0xffed,
		"Hyper_R":    0xffee,
	}

	for c := '0'; c <= '9'; c++ {
		m[string(c)] = Keysym(c)
		m[fmt.Sprintf("KP_%c", c)] = 0xffb0 + Keysym(c-'0')
	}
	for c := 'a'; c <= 'z'; c++ {
		m[string(c)] = Keysym(c)
		m[string(c-'a'+'A')] = Keysym(c - 'a' + 'A')
	}
	for i := 0; i < 24; i++ {
		m[fmt.Sprintf("F%d", i+1)] = F1 + Keysym(i)
	}
	return m
}

func buildCanonical() map[Keysym]string {
	m := make(map[Keysym]string, len(names))
	for name, k := range names {
		if aliases[name] {
			continue
		}
		m[k] = name
	}
	return m
}

// unicodeName spells r the way XStringToKeysym accepts Unicode names.
func unicodeName(r rune) string {
	return fmt.Sprintf("U%04X", r)
}
