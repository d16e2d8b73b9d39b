package inject

import "github.com/dshills/crikey/internal/input/key"

// Recorder is a Sink that keeps the events it receives.
type Recorder struct {
	// Events holds every event injected successfully, in order.
	Events []key.Event

	// Fail, if set, is consulted for each event; a non-nil result is
	// returned from Inject and the event is not recorded.
	Fail func(ev key.Event) error

	closed bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Inject records ev.
func (r *Recorder) Inject(ev key.Event) error {
	if r.closed {
		return ErrClosed
	}
	if r.Fail != nil {
		if err := r.Fail(ev); err != nil {
			return err
		}
	}
	r.Events = append(r.Events, ev)
	return nil
}

// Close marks the recorder closed.
func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Strings returns the String form of every recorded event.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.String()
	}
	return out
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
