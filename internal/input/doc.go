// Package input groups the packages that turn text into key events.
//
//   - keysym: the key namespace, the fallback table for characters with
//     no name of their own, and the resolver combining the two
//   - key: modifiers, symbols and the Event value
//   - escape: the single-pass decoder for crikey's escape syntax
//
// Data flows one way: escape reads a string, resolves each character or
// name through keysym, and yields key.Events.
package input
