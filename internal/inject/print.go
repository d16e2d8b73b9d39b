package inject

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dshills/crikey/internal/input/key"
)

// PrintSink writes one line per event instead of injecting it.
type PrintSink struct {
	w      io.Writer
	mods   *color.Color
	keysym *color.Color
	faint  *color.Color
	closed bool
}

// NewPrint creates a print sink writing to w.
func NewPrint(w io.Writer) *PrintSink {
	return &PrintSink{
		w:      w,
		mods:   color.New(color.FgYellow),
		keysym: color.New(color.FgGreen, color.Bold),
		faint:  color.New(color.Faint),
	}
}

// Inject writes ev as "Ctrl+Shift a  'A'".
func (p *PrintSink) Inject(ev key.Event) error {
	if p.closed {
		return ErrClosed
	}
	if m := ev.Modifiers.String(); m != "" {
		if _, err := p.mods.Fprint(p.w, m+" "); err != nil {
			return err
		}
	}
	if _, err := p.keysym.Fprint(p.w, ev.Keysym.String()); err != nil {
		return err
	}
	if _, err := p.faint.Fprintf(p.w, "  %s", ev.Symbol); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.w)
	return err
}

// Close marks the sink closed. The writer is not closed.
func (p *PrintSink) Close() error {
	p.closed = true
	return nil
}
