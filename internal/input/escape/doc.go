// Package escape decodes textual key descriptions into key events.
//
// Input is read left to right in a single pass. Most characters stand for
// themselves; the following forms are recognized:
//
//	\\          a literal backslash
//	\S \C \A    Shift, Control, Alt for the next key
//	\M \W       Super for the next key
//	\n \r \t    newline, carriage return, tab
//	\b \d \e    backspace, delete, escape
//	\65         the character with decimal code 65
//	\(F5\)      the key named F5
//	^C          the control character for C
//
// Modifier prefixes accumulate until the next key is produced, then reset.
// A backslash followed by anything else is a literal backslash and the
// following character is read normally. A caret followed by a non-letter
// is a literal caret.
//
// Uppercase letters and the shifted punctuation marks of a US keyboard
// imply Shift. A literal Ctrl-D (code 4) is sent as Control+d, and '<' is
// sent as Shift+comma.
//
// Characters that cannot be resolved are reported and skipped; decoding
// never fails as a whole.
package escape
