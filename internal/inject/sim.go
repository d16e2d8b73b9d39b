package inject

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/crikey/internal/input/key"
	"github.com/dshills/crikey/internal/input/keysym"
)

// SimSink injects events into a tcell simulation screen and reports the
// key the screen received. It touches no real input device.
type SimSink struct {
	screen tcell.SimulationScreen
	logger Logger
	typed  []string
	closed bool
}

// NewSim creates a simulation sink.
func NewSim(logger Logger) (*SimSink, error) {
	if logger == nil {
		logger = nopLogger{}
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing simulation screen: %w", err)
	}
	return &SimSink{screen: screen, logger: logger}, nil
}

// Inject posts ev to the screen and waits for it to come back as a key event.
func (s *SimSink) Inject(ev key.Event) error {
	if s.closed {
		return ErrClosed
	}

	k, r, ok := tcellKey(ev)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoKeycode, ev.Keysym)
	}

	if err := s.screen.PostEvent(tcell.NewEventKey(k, r, tcellMod(ev.Modifiers))); err != nil {
		return fmt.Errorf("posting key: %w", err)
	}

	for {
		switch e := s.screen.PollEvent().(type) {
		case *tcell.EventKey:
			name := e.Name()
			s.typed = append(s.typed, name)
			s.logger.Info("typed %s", name)
			return nil
		case nil:
			return ErrClosed
		}
	}
}

// Typed returns the tcell names of the keys received so far.
func (s *SimSink) Typed() []string {
	return append([]string(nil), s.typed...)
}

// Close shuts the simulation screen down.
func (s *SimSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.screen.Fini()
	return nil
}

// tcellKey converts an event to the tcell key and rune that type it.
func tcellKey(ev key.Event) (tcell.Key, rune, bool) {
	if !ev.IsNamed() && ev.Symbol.Char > ' ' && ev.Symbol.Char < 0x7f {
		return tcell.KeyRune, ev.Symbol.Char, true
	}

	ks := ev.Keysym
	switch {
	case ks.IsLatin1():
		r := rune(ks)
		if ev.Modifiers.HasShift() {
			r = unicode.ToUpper(r)
		}
		return tcell.KeyRune, r, true
	case ks.IsFunctionKey():
		return tcell.KeyF1 + tcell.Key(ks-keysym.F1), 0, true
	}

	if k, ok := tcellSpecial[ks]; ok {
		return k, 0, true
	}
	return 0, 0, false
}

var tcellSpecial = map[keysym.Keysym]tcell.Key{
	keysym.Return:    tcell.KeyEnter,
	keysym.Tab:       tcell.KeyTab,
	keysym.BackSpace: tcell.KeyBackspace2,
	keysym.Escape:    tcell.KeyEscape,
	keysym.Delete:    tcell.KeyDelete,
	0xff0b:           tcell.KeyClear,
	0xff13:           tcell.KeyPause,
	0xff50:           tcell.KeyHome,
	0xff51:           tcell.KeyLeft,
	0xff52:           tcell.KeyUp,
	0xff53:           tcell.KeyRight,
	0xff54:           tcell.KeyDown,
	0xff55:           tcell.KeyPgUp,
	0xff56:           tcell.KeyPgDn,
	0xff57:           tcell.KeyEnd,
	0xff61:           tcell.KeyPrint,
	0xff63:           tcell.KeyInsert,
	0xff69:           tcell.KeyCancel,
	0xff6a:           tcell.KeyHelp,
	0xff8d:           tcell.KeyEnter,
}

// tcellMod converts modifiers to the tcell mask.
func tcellMod(m key.Modifier) tcell.ModMask {
	var result tcell.ModMask
	if m.HasShift() {
		result |= tcell.ModShift
	}
	if m.HasCtrl() {
		result |= tcell.ModCtrl
	}
	if m.HasAlt() {
		result |= tcell.ModAlt
	}
	if m.HasSuper() {
		result |= tcell.ModMeta
	}
	return result
}
