package keysym

// Entry maps a character with no keysym name of its own to the name
// of the key that types it.
type Entry struct {
	Char rune
	Name string
}

// NonPrintables lists characters the namespace cannot look up by the
// character itself. Order matters: the first entry for a character wins,
// and several characters may share a name.
var NonPrintables = []Entry{
	{' ', "space"},
	{'\t', "Tab"},
	{'\n', "Return"},
	{'\r', "Return"},
	{'\b', "BackSpace"},
	{0x7f, "Delete"},
	{0x1b, "Escape"},
	{'!', "exclam"},
	{'"', "quotedbl"},
	{'#', "numbersign"},
	{'$', "dollar"},
	{'%', "percent"},
	{'&', "ampersand"},
	{'\'', "apostrophe"},
	{'(', "parenleft"},
	{')', "parenright"},
	{'*', "asterisk"},
	{'=', "equal"},
	{'+', "plus"},
	{',', "comma"},
	{'-', "minus"},
	{'.', "period"},
	{'/', "slash"},
	{':', "colon"},
	{';', "semicolon"},
	{'<', "less"},
	{'>', "greater"},
	{'?', "question"},
	{'@', "at"},
	{'[', "bracketleft"},
	{']', "bracketright"},
	{'\\', "backslash"},
	{'^', "asciicircum"},
	{'_', "underscore"},
	{'`', "grave"},
	{'{', "braceleft"},
	{'|', "bar"},
	{'}', "braceright"},
	{'~', "asciitilde"},
}

// lookupEntry returns the first entry for c in table.
func lookupEntry(table []Entry, c rune) (Entry, bool) {
	for _, e := range table {
		if e.Char == c {
			return e, true
		}
	}
	return Entry{}, false
}
