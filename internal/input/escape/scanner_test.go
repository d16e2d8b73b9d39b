package escape

import (
	"errors"
	"testing"

	"github.com/dshills/crikey/internal/input/key"
	"github.com/dshills/crikey/internal/input/keysym"
)

// collect decodes input and returns the events and reported errors.
func collect(input string, opts ...Option) ([]key.Event, []error) {
	var errs []error
	opts = append(opts, WithReporter(func(err error) {
		errs = append(errs, err)
	}))
	return DecodeAll(input, opts...), errs
}

func TestDecodeSingleLiterals(t *testing.T) {
	for c := rune(0x20); c <= 0x7e; c++ {
		if c == '\\' {
			continue
		}
		events, errs := collect(string(c))
		if len(errs) != 0 {
			t.Errorf("Decode(%q) errors = %v", c, errs)
		}
		if len(events) != 1 {
			t.Errorf("Decode(%q) = %d events, want 1", c, len(events))
			continue
		}
		ev := events[0]
		want := key.ModNone
		if impliesShift(c) {
			want = key.ModShift
		}
		if ev.Modifiers != want {
			t.Errorf("Decode(%q) modifiers = %v, want %v", c, ev.Modifiers, want)
		}
		if ev.IsNamed() {
			t.Errorf("Decode(%q) produced a named event", c)
		}
	}
}

func TestDecodeCase(t *testing.T) {
	upper := DecodeAll("A")
	lower := DecodeAll("a")
	if len(upper) != 1 || len(lower) != 1 {
		t.Fatalf("Decode(A), Decode(a) = %d, %d events, want 1, 1", len(upper), len(lower))
	}
	if upper[0].Modifiers != key.ModShift {
		t.Errorf("Decode(A) modifiers = %v, want Shift", upper[0].Modifiers)
	}
	if lower[0].Modifiers != key.ModNone {
		t.Errorf("Decode(a) modifiers = %v, want none", lower[0].Modifiers)
	}
	if upper[0].Keysym.Base() != lower[0].Keysym {
		t.Errorf("Decode(A) key = %v, want same key as a (%v)", upper[0].Keysym, lower[0].Keysym)
	}
}

func TestDecodeModifierPrefixes(t *testing.T) {
	tests := []struct {
		input string
		want  key.Modifier
	}{
		{`\Sa`, key.ModShift},
		{`\Ca`, key.ModCtrl},
		{`\Aa`, key.ModAlt},
		{`\Ma`, key.ModSuper},
		{`\Wa`, key.ModSuper},
		{`\S\Ca`, key.ModShift | key.ModCtrl},
		{`\C\A\S\Wa`, key.ModCtrl | key.ModAlt | key.ModShift | key.ModSuper},
		{`\C\Ca`, key.ModCtrl},
	}

	for _, tt := range tests {
		events, errs := collect(tt.input)
		if len(errs) != 0 {
			t.Errorf("Decode(%q) errors = %v", tt.input, errs)
		}
		if len(events) != 1 {
			t.Errorf("Decode(%q) = %d events, want 1", tt.input, len(events))
			continue
		}
		if events[0].Symbol.Char != 'a' {
			t.Errorf("Decode(%q) char = %q, want 'a'", tt.input, events[0].Symbol.Char)
		}
		if events[0].Modifiers != tt.want {
			t.Errorf("Decode(%q) modifiers = %v, want %v", tt.input, events[0].Modifiers, tt.want)
		}
	}
}

func TestDecodeModifiersResetAfterEvent(t *testing.T) {
	events := DecodeAll(`\Cab`)
	if len(events) != 2 {
		t.Fatalf("Decode = %d events, want 2", len(events))
	}
	if events[0].Modifiers != key.ModCtrl {
		t.Errorf("first modifiers = %v, want Ctrl", events[0].Modifiers)
	}
	if events[1].Modifiers != key.ModNone {
		t.Errorf("second modifiers = %v, want none", events[1].Modifiers)
	}
}

func TestDecodeModifiersResetAfterDrop(t *testing.T) {
	events, errs := collect(`\C\(NoSuchKey\)a`)
	if len(errs) != 1 || !errors.Is(errs[0], keysym.ErrUnresolved) {
		t.Fatalf("errors = %v, want one ErrUnresolved", errs)
	}
	if len(events) != 1 {
		t.Fatalf("Decode = %d events, want 1", len(events))
	}
	if events[0].Modifiers != key.ModNone {
		t.Errorf("modifiers = %v, want none", events[0].Modifiers)
	}
}

func TestDecodeSymbolicName(t *testing.T) {
	events, errs := collect(`\(Return\)`)
	if len(errs) != 0 {
		t.Fatalf("errors = %v", errs)
	}
	if len(events) != 1 {
		t.Fatalf("Decode = %d events, want 1", len(events))
	}
	ev := events[0]
	if !ev.IsNamed() || ev.Symbol.Name != "Return" {
		t.Errorf("symbol = %v, want named Return", ev.Symbol)
	}
	if ev.Keysym != keysym.Return {
		t.Errorf("keysym = %v, want Return", ev.Keysym)
	}
}

func TestDecodeSymbolicNameModifiers(t *testing.T) {
	events := DecodeAll(`\C\A\(Delete\)`)
	if len(events) != 1 {
		t.Fatalf("Decode = %d events, want 1", len(events))
	}
	if events[0].Modifiers != key.ModCtrl|key.ModAlt {
		t.Errorf("modifiers = %v, want Ctrl+Alt", events[0].Modifiers)
	}

	// Uppercase names never imply Shift.
	events = DecodeAll(`\(F5\)\(A\)`)
	if len(events) != 2 {
		t.Fatalf("Decode = %d events, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Modifiers != key.ModNone {
			t.Errorf("%v modifiers = %v, want none", ev.Symbol, ev.Modifiers)
		}
	}
}

func TestDecodeSymbolicNameTruncated(t *testing.T) {
	events, errs := collect(`\(F5garbage\)x`, WithMaxNameLength(2))
	if len(errs) != 0 {
		t.Fatalf("errors = %v", errs)
	}
	if len(events) != 2 {
		t.Fatalf("Decode = %d events, want 2", len(events))
	}
	if events[0].Symbol.Name != "F5" {
		t.Errorf("name = %q, want F5", events[0].Symbol.Name)
	}
	if events[1].Symbol.Char != 'x' {
		t.Errorf("second char = %q, want 'x'", events[1].Symbol.Char)
	}
}

func TestDecodeControlShorthands(t *testing.T) {
	tests := []struct {
		input string
		char  rune
		ks    keysym.Keysym
	}{
		{`\n`, '\n', keysym.Return},
		{`\r`, '\r', keysym.Return},
		{`\t`, '\t', keysym.Tab},
		{`\b`, '\b', keysym.BackSpace},
		{`\d`, 0x7f, keysym.Delete},
		{`\e`, 0x1b, keysym.Escape},
		{`\\`, '\\', 0x5c},
	}

	for _, tt := range tests {
		events := DecodeAll(tt.input)
		if len(events) != 1 {
			t.Errorf("Decode(%q) = %d events, want 1", tt.input, len(events))
			continue
		}
		if events[0].Symbol.Char != tt.char {
			t.Errorf("Decode(%q) char = %q, want %q", tt.input, events[0].Symbol.Char, tt.char)
		}
		if events[0].Keysym != tt.ks {
			t.Errorf("Decode(%q) keysym = %v, want %v", tt.input, events[0].Keysym, tt.ks)
		}
	}
}

func TestDecodeUnknownEscape(t *testing.T) {
	events := DecodeAll(`\x`)
	if len(events) != 2 {
		t.Fatalf("Decode = %d events, want 2", len(events))
	}
	if events[0].Symbol.Char != '\\' || events[1].Symbol.Char != 'x' {
		t.Errorf("Decode = %q, %q, want '\\\\', 'x'", events[0].Symbol.Char, events[1].Symbol.Char)
	}

	// The follower is read normally, so it can start a new form.
	events = DecodeAll(`\^M`)
	if len(events) != 2 {
		t.Fatalf("Decode = %d events, want 2", len(events))
	}
	if events[1].Keysym != keysym.Return {
		t.Errorf("second keysym = %v, want Return", events[1].Keysym)
	}
}

func TestDecodeNumericLiteral(t *testing.T) {
	tests := []struct {
		input string
		chars []rune
	}{
		{`\97`, []rune{'a'}},
		{`\97b`, []rune{'a', 'b'}},
		{`\65`, []rune{'A'}},
		{`\32`, []rune{' '}},
		{`\0097`, []rune{'a'}},
		{`\9`, []rune{'\t'}},
		{`\13\10`, []rune{'\r', '\n'}},
	}

	for _, tt := range tests {
		events := DecodeAll(tt.input)
		if len(events) != len(tt.chars) {
			t.Errorf("Decode(%q) = %d events, want %d", tt.input, len(events), len(tt.chars))
			continue
		}
		for i, c := range tt.chars {
			if events[i].Symbol.Char != c {
				t.Errorf("Decode(%q)[%d] = %q, want %q", tt.input, i, events[i].Symbol.Char, c)
			}
		}
	}

	// Shift rules apply to the decoded character.
	events := DecodeAll(`\65`)
	if len(events) == 1 && events[0].Modifiers != key.ModShift {
		t.Errorf("Decode(\\65) modifiers = %v, want Shift", events[0].Modifiers)
	}
}

func TestDecodeNumericLiteralOutOfRange(t *testing.T) {
	events, errs := collect(`\99999999999999999999a`)
	if len(errs) != 1 || !errors.Is(errs[0], ErrBadCode) {
		t.Fatalf("errors = %v, want one ErrBadCode", errs)
	}
	if len(events) != 1 || events[0].Symbol.Char != 'a' {
		t.Errorf("Decode = %v, want only 'a'", events)
	}
}

func TestDecodeCaret(t *testing.T) {
	tests := []struct {
		input string
		chars []rune
	}{
		{"^M", []rune{'\r'}},
		{"^m", []rune{'\r'}},
		{"^I", []rune{'\t'}},
		{"^[", []rune{'^', '['}},
		{"^1", []rune{'^', '1'}},
		{"^", []rune{'^'}},
		{"^^", []rune{'^', '^'}},
		{"a^", []rune{'a', '^'}},
	}

	for _, tt := range tests {
		events := DecodeAll(tt.input)
		if len(events) != len(tt.chars) {
			t.Errorf("Decode(%q) = %d events, want %d", tt.input, len(events), len(tt.chars))
			continue
		}
		for i, c := range tt.chars {
			if events[i].Symbol.Char != c {
				t.Errorf("Decode(%q)[%d] = %q, want %q", tt.input, i, events[i].Symbol.Char, c)
			}
		}
	}
}

func TestDecodeCaretMatchesNumeric(t *testing.T) {
	pairs := [][2]string{
		{"^C", `\003`},
		{"^M", `\13`},
		{"^I", `\9`},
		{"^[", `\94[`},
	}

	for _, p := range pairs {
		a := DecodeAll(p[0])
		b := DecodeAll(p[1])
		if !equalEvents(a, b) {
			t.Errorf("Decode(%q) = %v, Decode(%q) = %v, want equal", p[0], a, p[1], b)
		}
	}
}

func TestDecodeControlCode(t *testing.T) {
	for _, input := range []string{"^C", "^c", `\003`, `\3`, "\x03"} {
		events, errs := collect(input)
		if len(errs) != 0 {
			t.Errorf("Decode(%q) errors = %v", input, errs)
		}
		if len(events) != 1 {
			t.Errorf("Decode(%q) = %d events, want 1", input, len(events))
			continue
		}
		ev := events[0]
		if ev.Symbol.Char != 0x03 || ev.Keysym != keysym.Unicode(0x03) {
			t.Errorf("Decode(%q) = %#v, want control code 3", input, ev)
		}
		if ev.Modifiers != key.ModNone {
			t.Errorf("Decode(%q) modifiers = %v, want none", input, ev.Modifiers)
		}
	}
}

func TestDecodeCtrlD(t *testing.T) {
	for _, input := range []string{"^D", "^d", `\4`, `\004`, "\x04"} {
		events := DecodeAll(input)
		if len(events) != 1 {
			t.Errorf("Decode(%q) = %d events, want 1", input, len(events))
			continue
		}
		ev := events[0]
		if ev.Symbol.Char != 'd' || ev.Keysym != 'd' {
			t.Errorf("Decode(%q) = %v, want d", input, ev.Symbol)
		}
		if ev.Modifiers != key.ModCtrl {
			t.Errorf("Decode(%q) modifiers = %v, want Ctrl", input, ev.Modifiers)
		}
	}
}

func TestDecodeLessThan(t *testing.T) {
	events := DecodeAll("<")
	if len(events) != 1 {
		t.Fatalf("Decode(<) = %d events, want 1", len(events))
	}
	if events[0].Keysym != keysym.Comma {
		t.Errorf("Decode(<) keysym = %v, want comma", events[0].Keysym)
	}
	if events[0].Keysym == keysym.Less {
		t.Error("Decode(<) used the less keysym")
	}
	if events[0].Modifiers != key.ModShift {
		t.Errorf("Decode(<) modifiers = %v, want Shift", events[0].Modifiers)
	}

	// Only the literal is special; the name still resolves normally.
	events = DecodeAll(`\(less\)`)
	if len(events) != 1 || events[0].Keysym != keysym.Less {
		t.Errorf("Decode(\\(less\\)) = %v, want less", events)
	}
}

func TestDecodeOrder(t *testing.T) {
	events := DecodeAll(`ab\tC\(Return\)`)
	want := []string{"a", "b", "Tab", "S-C", "Return"}
	if len(events) != len(want) {
		t.Fatalf("Decode = %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		if got := events[i].String(); got != w {
			t.Errorf("event %d = %q, want %q", i, got, w)
		}
	}
}

func TestDecodeIdempotent(t *testing.T) {
	inputs := []string{
		`\S\Ca`,
		`hello, World!\n`,
		`^C\003\(F1\)<\`,
		`\C`,
	}
	for _, input := range inputs {
		first := DecodeAll(input)
		second := DecodeAll(input)
		if !equalEvents(first, second) {
			t.Errorf("Decode(%q) not idempotent: %v then %v", input, first, second)
		}
	}

	// A sequence decodes afresh on every iteration.
	seq := Decode(`\Ca`)
	var runs [][]key.Event
	for range 2 {
		var got []key.Event
		for ev := range seq {
			got = append(got, ev)
		}
		runs = append(runs, got)
	}
	if !equalEvents(runs[0], runs[1]) || len(runs[0]) != 1 {
		t.Errorf("Decode sequence reuse = %v, %v", runs[0], runs[1])
	}
}

func TestDecodeMalformedTail(t *testing.T) {
	tests := []struct {
		input   string
		events  int
		wantErr error
	}{
		{`\`, 0, ErrDanglingEscape},
		{`ab\`, 2, ErrDanglingEscape},
		{`\(unterminated`, 0, ErrUnterminated},
		{`\(Return\`, 0, ErrUnterminated},
		{`\(`, 0, ErrUnterminated},
		{`\S`, 0, ErrDanglingModifier},
		{`a\C\A`, 1, ErrDanglingModifier},
	}

	for _, tt := range tests {
		events, errs := collect(tt.input)
		if len(events) != tt.events {
			t.Errorf("Decode(%q) = %d events, want %d", tt.input, len(events), tt.events)
		}
		if len(errs) != 1 || !errors.Is(errs[0], tt.wantErr) {
			t.Errorf("Decode(%q) errors = %v, want %v", tt.input, errs, tt.wantErr)
		}
	}
}

func TestDecodeErrorOffset(t *testing.T) {
	_, errs := collect(`ab\(Nope\)`)
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want 1", errs)
	}
	var de *DecodeError
	if !errors.As(errs[0], &de) {
		t.Fatalf("error %T is not *DecodeError", errs[0])
	}
	if de.Offset != 2 {
		t.Errorf("Offset = %d, want 2", de.Offset)
	}
	if de.Input != `ab\(Nope\)` {
		t.Errorf("Input = %q", de.Input)
	}
}

func TestDecodeUnresolvedContinues(t *testing.T) {
	events, errs := collect("aéb")
	if len(errs) != 1 || !errors.Is(errs[0], keysym.ErrUnresolved) {
		t.Errorf("errors = %v, want one ErrUnresolved", errs)
	}
	if len(events) != 2 {
		t.Fatalf("Decode = %d events, want 2", len(events))
	}
}

func TestDecodeEmpty(t *testing.T) {
	events, errs := collect("")
	if len(events) != 0 || len(errs) != 0 {
		t.Errorf("Decode(\"\") = %v, %v, want nothing", events, errs)
	}
}

func TestScannerSingleUse(t *testing.T) {
	s := NewScanner("ab")
	n := 0
	for s.Scan() {
		n++
	}
	if n != 2 {
		t.Fatalf("Scan produced %d events, want 2", n)
	}
	if s.Scan() {
		t.Error("Scan after exhaustion returned true")
	}
}

func TestScannerEarlyStop(t *testing.T) {
	s := NewScanner("abc")
	for ev := range s.All() {
		if ev.Symbol.Char == 'a' {
			break
		}
	}
	if !s.Scan() || s.Event().Symbol.Char != 'b' {
		t.Errorf("after break, next event = %v, want b", s.Event().Symbol)
	}
}

type traceLogger struct {
	lines int
}

func (l *traceLogger) Debug(string, ...any) {
	l.lines++
}

func TestScannerLogger(t *testing.T) {
	l := &traceLogger{}
	DecodeAll("a b", WithLogger(l))
	if l.lines == 0 {
		t.Error("logger received no trace output")
	}
}

func equalEvents(a, b []key.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}
