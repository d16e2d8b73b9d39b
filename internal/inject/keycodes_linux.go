//go:build linux

package inject

import (
	"github.com/micmonay/keybd_event"

	"github.com/dshills/crikey/internal/input/keysym"
)

// evdev codes for keys keybd_event has no constant for.
const (
	evLeftCtrl   = 29
	evLeftShift  = 42
	evRightShift = 54
	evLeftAlt    = 56
	evRightCtrl  = 97
	evRightAlt   = 100
	evLeftMeta   = 125
	evRightMeta  = 126
	evPause      = 119
	evKPEnter    = 96
)

// usLayout maps keysym names to the key that types them on a US layout.
// Shifted symbols share the key of their unshifted partner.
var usLayout = map[string]int{
	"space":        keybd_event.VK_SPACE,
	"exclam":       keybd_event.VK_1,
	"at":           keybd_event.VK_2,
	"numbersign":   keybd_event.VK_3,
	"dollar":       keybd_event.VK_4,
	"percent":      keybd_event.VK_5,
	"asciicircum":  keybd_event.VK_6,
	"ampersand":    keybd_event.VK_7,
	"asterisk":     keybd_event.VK_8,
	"parenleft":    keybd_event.VK_9,
	"parenright":   keybd_event.VK_0,
	"minus":        keybd_event.VK_MINUS,
	"underscore":   keybd_event.VK_MINUS,
	"equal":        keybd_event.VK_EQUAL,
	"plus":         keybd_event.VK_EQUAL,
	"bracketleft":  keybd_event.VK_LEFTBRACE,
	"braceleft":    keybd_event.VK_LEFTBRACE,
	"bracketright": keybd_event.VK_RIGHTBRACE,
	"braceright":   keybd_event.VK_RIGHTBRACE,
	"semicolon":    keybd_event.VK_SEMICOLON,
	"colon":        keybd_event.VK_SEMICOLON,
	"apostrophe":   keybd_event.VK_APOSTROPHE,
	"quotedbl":     keybd_event.VK_APOSTROPHE,
	"grave":        keybd_event.VK_GRAVE,
	"asciitilde":   keybd_event.VK_GRAVE,
	"backslash":    keybd_event.VK_BACKSLASH,
	"bar":          keybd_event.VK_BACKSLASH,
	"comma":        keybd_event.VK_COMMA,
	"less":         keybd_event.VK_COMMA,
	"period":       keybd_event.VK_DOT,
	"greater":      keybd_event.VK_DOT,
	"slash":        keybd_event.VK_SLASH,
	"question":     keybd_event.VK_SLASH,

	"0": keybd_event.VK_0,
	"1": keybd_event.VK_1,
	"2": keybd_event.VK_2,
	"3": keybd_event.VK_3,
	"4": keybd_event.VK_4,
	"5": keybd_event.VK_5,
	"6": keybd_event.VK_6,
	"7": keybd_event.VK_7,
	"8": keybd_event.VK_8,
	"9": keybd_event.VK_9,

	"a": keybd_event.VK_A,
	"b": keybd_event.VK_B,
	"c": keybd_event.VK_C,
	"d": keybd_event.VK_D,
	"e": keybd_event.VK_E,
	"f": keybd_event.VK_F,
	"g": keybd_event.VK_G,
	"h": keybd_event.VK_H,
	"i": keybd_event.VK_I,
	"j": keybd_event.VK_J,
	"k": keybd_event.VK_K,
	"l": keybd_event.VK_L,
	"m": keybd_event.VK_M,
	"n": keybd_event.VK_N,
	"o": keybd_event.VK_O,
	"p": keybd_event.VK_P,
	"q": keybd_event.VK_Q,
	"r": keybd_event.VK_R,
	"s": keybd_event.VK_S,
	"t": keybd_event.VK_T,
	"u": keybd_event.VK_U,
	"v": keybd_event.VK_V,
	"w": keybd_event.VK_W,
	"x": keybd_event.VK_X,
	"y": keybd_event.VK_Y,
	"z": keybd_event.VK_Z,

	"BackSpace": keybd_event.VK_BACKSPACE,
	"Tab":       keybd_event.VK_TAB,
	"Return":    keybd_event.VK_ENTER,
	"Linefeed":  keybd_event.VK_ENTER,
	"Escape":    keybd_event.VK_ESC,
	"Delete":    keybd_event.VK_DELETE,
	"Insert":    keybd_event.VK_INSERT,
	"Home":      keybd_event.VK_HOME,
	"End":       keybd_event.VK_END,
	"Prior":     keybd_event.VK_PAGEUP,
	"Next":      keybd_event.VK_PAGEDOWN,
	"Left":      keybd_event.VK_LEFT,
	"Up":        keybd_event.VK_UP,
	"Right":     keybd_event.VK_RIGHT,
	"Down":      keybd_event.VK_DOWN,
	"Caps_Lock": keybd_event.VK_CAPSLOCK,
	"Pause":     evPause,
	"KP_Enter":  evKPEnter,

	"F1":  keybd_event.VK_F1,
	"F2":  keybd_event.VK_F2,
	"F3":  keybd_event.VK_F3,
	"F4":  keybd_event.VK_F4,
	"F5":  keybd_event.VK_F5,
	"F6":  keybd_event.VK_F6,
	"F7":  keybd_event.VK_F7,
	"F8":  keybd_event.VK_F8,
	"F9":  keybd_event.VK_F9,
	"F10": keybd_event.VK_F10,
	"F11": keybd_event.VK_F11,
	"F12": keybd_event.VK_F12,

	"Shift_L":   evLeftShift,
	"Shift_R":   evRightShift,
	"Control_L": evLeftCtrl,
	"Control_R": evRightCtrl,
	"Alt_L":     evLeftAlt,
	"Alt_R":     evRightAlt,
	"Super_L":   evLeftMeta,
	"Super_R":   evRightMeta,
	"Meta_L":    evLeftMeta,
	"Meta_R":    evRightMeta,
}

// buildKeycodes resolves usLayout through the X11 namespace.
func buildKeycodes() map[keysym.Keysym]int {
	codes := make(map[keysym.Keysym]int, len(usLayout))
	for name, code := range usLayout {
		if ks, ok := keysym.X11.Lookup(name); ok {
			codes[ks] = code
		}
	}
	return codes
}
