//go:build linux

package inject

import (
	"fmt"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"

	"github.com/dshills/crikey/internal/input/key"
	"github.com/dshills/crikey/internal/input/keysym"
)

// UinputSink injects events through a virtual keyboard created on
// /dev/uinput. The process needs write access to the device.
type UinputSink struct {
	kb     keybd_event.KeyBonding
	logger Logger

	// codes maps keysyms to evdev key codes. It is built on first use
	// and read-only afterwards.
	codesOnce sync.Once
	codes     map[keysym.Keysym]int

	closed bool
}

// NewUinput opens the virtual keyboard and waits settle for the device
// node to be picked up by the input stack.
func NewUinput(settle time.Duration, logger Logger) (*UinputSink, error) {
	if logger == nil {
		logger = nopLogger{}
	}
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("opening uinput device: %w", err)
	}
	if settle > 0 {
		logger.Debug("waiting %s for uinput device", settle)
		time.Sleep(settle)
	}
	return &UinputSink{kb: kb, logger: logger}, nil
}

// Inject presses and releases the key for ev with its modifiers held.
func (u *UinputSink) Inject(ev key.Event) error {
	if u.closed {
		return ErrClosed
	}

	code, ok := u.keycode(ev.Keysym)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoKeycode, ev.Keysym)
	}
	u.logger.Debug("key %s is keycode %d", ev, code)

	u.kb.SetKeys(code)
	u.kb.HasSHIFT(ev.Modifiers.HasShift())
	u.kb.HasCTRL(ev.Modifiers.HasCtrl())
	u.kb.HasALT(ev.Modifiers.HasAlt())
	u.kb.HasSuper(ev.Modifiers.HasSuper())

	return u.kb.Launching()
}

// Close marks the sink closed.
func (u *UinputSink) Close() error {
	u.closed = true
	return nil
}

// keycode returns the evdev code for ks.
func (u *UinputSink) keycode(ks keysym.Keysym) (int, bool) {
	u.codesOnce.Do(func() {
		u.codes = buildKeycodes()
	})
	code, ok := u.codes[ks.Base()]
	return code, ok
}
