// Package keysym resolves characters and key names to keysyms.
//
// A Keysym is the platform handle for a logical key, independent of the
// physical keycode that produces it. Resolution consults a Namespace (the
// platform's symbolic names) first and falls back to the non-printable
// table for characters that have no name of their own:
//
//   - "a", "Return", "F5": resolved directly by the namespace
//   - ' ', '\t', '!': resolved through the table ("space", "Tab", "exclam")
//
// The built-in X11 namespace carries the names defined by keysymdef.h for
// Latin-1, TTY function keys, cursor and keypad keys, function keys and
// modifiers.
package keysym
