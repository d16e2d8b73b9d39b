package escape

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/crikey/internal/input/key"
	"github.com/dshills/crikey/internal/input/keysym"
)

// DefaultMaxNameLength bounds the text kept from a \(...\) name.
const DefaultMaxNameLength = 64

// Logger receives decoder trace output.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Option configures a Scanner.
type Option func(*Scanner)

// WithResolver sets the resolver used for characters and names.
func WithResolver(r *keysym.Resolver) Option {
	return func(s *Scanner) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithMaxNameLength sets how many characters of a \(...\) name are kept.
func WithMaxNameLength(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxName = n
		}
	}
}

// WithReporter sets a function called with a *DecodeError for every
// form that is skipped.
func WithReporter(fn func(error)) Option {
	return func(s *Scanner) {
		s.report = fn
	}
}

// WithLogger sets the trace logger.
func WithLogger(l Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scanner decodes one input string into key events.
//
// A Scanner is single use: once Scan returns false it keeps returning
// false. Each Scanner owns its cursor and pending modifiers, so separate
// scanners never affect each other.
type Scanner struct {
	source string
	input  []rune
	pos    int

	// pending holds modifiers collected since the last event.
	pending key.Modifier
	event   key.Event
	done    bool

	resolver *keysym.Resolver
	maxName  int
	report   func(error)
	logger   Logger
}

// NewScanner creates a scanner over input.
func NewScanner(input string, opts ...Option) *Scanner {
	s := &Scanner{
		source:   input,
		input:    []rune(input),
		resolver: keysym.DefaultResolver(),
		maxName:  DefaultMaxNameLength,
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan advances to the next event, which is then available through Event.
// It returns false when the input is exhausted.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	for s.pos < len(s.input) {
		if s.step() {
			return true
		}
	}
	if !s.pending.IsEmpty() {
		s.fail(len(s.input), fmt.Errorf("%w: %s", ErrDanglingModifier, s.pending))
	}
	s.done = true
	return false
}

// Event returns the event produced by the last successful Scan.
func (s *Scanner) Event() key.Event {
	return s.event
}

// All returns the remaining events of s as a sequence.
func (s *Scanner) All() iter.Seq[key.Event] {
	return func(yield func(key.Event) bool) {
		for s.Scan() {
			if !yield(s.Event()) {
				return
			}
		}
	}
}

// Decode returns the events described by input. Every iteration of the
// returned sequence decodes input afresh.
func Decode(input string, opts ...Option) iter.Seq[key.Event] {
	return func(yield func(key.Event) bool) {
		for ev := range NewScanner(input, opts...).All() {
			if !yield(ev) {
				return
			}
		}
	}
}

// DecodeAll decodes input into a slice.
func DecodeAll(input string, opts ...Option) []key.Event {
	return slices.Collect(Decode(input, opts...))
}

// step consumes one form starting at the cursor and reports whether it
// produced an event.
func (s *Scanner) step() bool {
	start := s.pos
	c := s.input[s.pos]
	s.pos++

	switch c {
	case '\\':
		if s.pos >= len(s.input) {
			s.fail(start, ErrDanglingEscape)
			return false
		}
		return s.escape(start)
	case '^':
		if s.pos < len(s.input) {
			if code, ok := controlCode(s.input[s.pos]); ok {
				s.pos++
				return s.literal(start, code)
			}
		}
	}

	return s.literal(start, c)
}

// escape handles the character after a backslash.
func (s *Scanner) escape(start int) bool {
	c := s.input[s.pos]

	if mod, ok := key.ModifierFromLetter(c); ok {
		s.pos++
		s.pending = s.pending.With(mod)
		return false
	}

	switch {
	case c == '\\':
		s.pos++
		return s.literal(start, '\\')
	case c == '(':
		s.pos++
		return s.name(start)
	case isDigit(c):
		return s.number(start)
	}

	if r, ok := controlShorthand(c); ok {
		s.pos++
		return s.literal(start, r)
	}

	// Not an escape: the backslash is literal and c is read next.
	return s.literal(start, '\\')
}

// number reads a decimal code point. Digits are consumed greedily.
func (s *Scanner) number(start int) bool {
	begin := s.pos
	for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
		s.pos++
	}
	digits := string(s.input[begin:s.pos])

	n, err := strconv.Atoi(digits)
	if err != nil || n > unicode.MaxRune {
		s.fail(start, fmt.Errorf("%w: %s", ErrBadCode, digits))
		return false
	}
	return s.literal(start, rune(n))
}

// name reads a symbolic key name up to the \) terminator. Text beyond
// maxName characters is dropped.
func (s *Scanner) name(start int) bool {
	var b strings.Builder
	n := 0
	for s.pos < len(s.input) {
		if s.input[s.pos] == '\\' && s.pos+1 < len(s.input) && s.input[s.pos+1] == ')' {
			s.pos += 2
			return s.named(start, b.String())
		}
		if n < s.maxName {
			b.WriteRune(s.input[s.pos])
			n++
		}
		s.pos++
	}

	s.fail(start, fmt.Errorf("%w: %q", ErrUnterminated, b.String()))
	return false
}

// literal resolves a single character into the current event.
func (s *Scanner) literal(start int, c rune) bool {
	mods := s.pending
	lookup := c

	switch c {
	case ctrlD:
		// A raw EOT does not type Ctrl-D; send Control+d instead.
		c, lookup = 'd', 'd'
		mods = mods.With(key.ModCtrl)
	case '<':
		// "less" maps to '>' on common layouts; Shift+comma types '<'.
		lookup = ','
	}

	if impliesShift(c) {
		mods = mods.With(key.ModShift)
	}

	res, err := s.resolver.Resolve(lookup)
	if err != nil {
		s.fail(start, err)
		return false
	}
	if res.Fallback {
		s.logger.Debug("found a nonprintable: %q is %s (%s)", c, res.Name, res.Keysym)
	}

	s.emit(key.NewCharEvent(c, res.Keysym, mods))
	return true
}

// named resolves a symbolic key name into the current event.
// Shift is never implied for names.
func (s *Scanner) named(start int, name string) bool {
	res, err := s.resolver.ResolveName(name)
	if err != nil {
		s.fail(start, err)
		return false
	}

	s.emit(key.NewNamedEvent(name, res.Keysym, s.pending))
	return true
}

func (s *Scanner) emit(ev key.Event) {
	s.logger.Debug("key %s", ev)
	s.event = ev
	s.pending = key.ModNone
}

// fail drops the current form and its pending modifiers.
func (s *Scanner) fail(offset int, err error) {
	s.pending = key.ModNone
	if s.report != nil {
		s.report(&DecodeError{Input: s.source, Offset: offset, Err: err})
	}
}
