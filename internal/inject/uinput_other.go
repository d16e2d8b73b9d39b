//go:build !linux

package inject

import (
	"time"

	"github.com/dshills/crikey/internal/input/key"
)

// UinputSink is unavailable outside Linux.
type UinputSink struct{}

// NewUinput returns ErrUnsupported outside Linux.
func NewUinput(settle time.Duration, logger Logger) (*UinputSink, error) {
	return nil, ErrUnsupported
}

// Inject returns ErrUnsupported.
func (u *UinputSink) Inject(ev key.Event) error {
	return ErrUnsupported
}

// Close does nothing.
func (u *UinputSink) Close() error {
	return nil
}
