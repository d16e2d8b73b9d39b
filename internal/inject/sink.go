// Package inject delivers decoded key events to an injection backend.
//
// Every backend implements Sink. Events are injected one at a time, in
// order, by the caller's goroutine; a failed event does not affect the
// ones after it.
package inject

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dshills/crikey/internal/input/key"
)

// Errors returned by sinks.
var (
	// ErrUnsupported indicates the backend is not available on this platform.
	ErrUnsupported = errors.New("injection backend not supported on this platform")

	// ErrNoKeycode indicates the backend has no key for a keysym.
	ErrNoKeycode = errors.New("no key for keysym")

	// ErrUnknownBackend indicates an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrClosed indicates the sink was used after Close.
	ErrClosed = errors.New("sink closed")
)

// Backend names accepted by New.
const (
	BackendUinput = "uinput"
	BackendSim    = "sim"
	BackendPrint  = "print"
)

// Backends lists the backend names accepted by New.
var Backends = []string{BackendUinput, BackendSim, BackendPrint}

// Sink accepts key events for injection.
type Sink interface {
	// Inject presses and releases the event's key with its modifiers held.
	Inject(ev key.Event) error

	// Close releases backend resources.
	Close() error
}

// Logger receives backend diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// Options configures a backend created by New.
type Options struct {
	// Output is where the print backend writes. Defaults to os.Stdout.
	Output io.Writer

	// Settle is how long the uinput backend waits for its device to appear.
	Settle time.Duration

	// Logger receives diagnostics. May be nil.
	Logger Logger
}

// New creates the named backend.
func New(name string, opts Options) (Sink, error) {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}

	switch strings.ToLower(name) {
	case BackendUinput:
		u, err := NewUinput(opts.Settle, opts.Logger)
		if err != nil {
			return nil, err
		}
		return u, nil
	case BackendSim:
		s, err := NewSim(opts.Logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendPrint:
		return NewPrint(opts.Output), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, name, strings.Join(Backends, ", "))
	}
}

// InjectError wraps a backend failure with the event that caused it.
type InjectError struct {
	Event key.Event
	Err   error
}

// Error implements the error interface.
func (e *InjectError) Error() string {
	return fmt.Sprintf("inject %s: %v", e.Event, e.Err)
}

// Unwrap returns the underlying error.
func (e *InjectError) Unwrap() error {
	return e.Err
}
