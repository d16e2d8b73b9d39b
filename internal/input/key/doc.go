// Package key provides the key event types produced by the decoder.
//
// This package defines the fundamental types for synthesized keyboard input:
//
//   - Modifier: the Shift, Control, Alt and Super bits held with a key
//   - Symbol: a literal character or a named symbol such as "Return"
//   - Event: a symbol, its resolved keysym and its modifiers
//
// Events are produced by package escape and consumed by the injection
// backends in package inject.
package key
