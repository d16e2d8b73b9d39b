package escape

import "strings"

const (
	ctrlD = 0x04

	// shiftedPunct holds the characters typed with Shift on a US layout.
	shiftedPunct = `~!@#$%^&*()_+{}|:"<>?`
)

// impliesShift reports whether typing c needs Shift.
func impliesShift(c rune) bool {
	if c >= 'A' && c <= 'Z' {
		return true
	}
	return strings.ContainsRune(shiftedPunct, c)
}

// controlCode returns the control character for a caret letter.
func controlCode(c rune) (rune, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 1, true
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 1, true
	default:
		return 0, false
	}
}

// controlShorthand maps the letter after a backslash to its control character.
func controlShorthand(c rune) (rune, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'b':
		return '\b', true
	case 'd':
		return 0x7f, true
	case 'e':
		return 0x1b, true
	default:
		return 0, false
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
