// Package app runs crikey: it waits out the pre-delay, decodes each input
// string or stdin line, and hands the events to the injection sink.
package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dshills/crikey/internal/config"
	"github.com/dshills/crikey/internal/config/watcher"
	"github.com/dshills/crikey/internal/inject"
	"github.com/dshills/crikey/internal/input/escape"
	"github.com/dshills/crikey/internal/input/key"
	"github.com/dshills/crikey/internal/input/keysym"
)

// Options configures the application.
type Options struct {
	// Config holds the resolved settings. Required.
	Config *config.Config

	// ConfigPath is the file watched for changes in stream mode.
	ConfigPath string

	// Reload re-reads the configuration when ConfigPath changes.
	// Watching is disabled when nil.
	Reload func() (*config.Config, error)

	// Args are the strings to type. Empty selects stream mode.
	Args []string

	// Stdin forces stream mode even when Args are given; Args are typed
	// first.
	Stdin bool

	// Input is read in stream mode. Defaults to os.Stdin.
	Input io.Reader

	// Output is where the print backend writes. Defaults to os.Stdout.
	Output io.Writer

	// Logger receives diagnostics. Defaults to a logger on stderr at the
	// configured level.
	Logger *Logger

	// Sink overrides the backend named in Config.
	Sink inject.Sink
}

// Stats counts what happened to decoded input.
type Stats struct {
	// Injected is the number of events the sink accepted.
	Injected int
	// Dropped is the number of malformed or unresolvable sequences.
	Dropped int
	// Failed is the number of events the sink rejected.
	Failed int
}

// settings are the values a config reload may change.
type settings struct {
	maxNameLength int
}

// App ties the decoder to a sink.
type App struct {
	opts     Options
	logger   *Logger
	sink     inject.Sink
	resolver *keysym.Resolver

	mu       sync.Mutex
	settings settings
	stats    Stats
	closed   bool
}

// New creates an application and opens its sink.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, ErrNoConfig
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	logger := opts.Logger
	if logger == nil {
		cfg := DefaultLoggerConfig()
		cfg.Level = ParseLogLevel(opts.Config.LogLevel)
		logger = NewLogger(cfg)
	}

	a := &App{
		opts:     opts,
		logger:   logger,
		resolver: keysym.DefaultResolver(),
		settings: settings{maxNameLength: opts.Config.MaxNameLength},
	}

	a.sink = opts.Sink
	if a.sink == nil {
		sink, err := inject.New(opts.Config.Backend, inject.Options{
			Output: opts.Output,
			Settle: opts.Config.Settle,
			Logger: logger.WithComponent("inject"),
		})
		if err != nil {
			return nil, NewComponentError("inject", "opening "+opts.Config.Backend+" backend", err)
		}
		a.sink = sink
	}

	return a, nil
}

// Run types the arguments, or stdin lines in stream mode, after the
// configured pre-delay. Dropped sequences and sink failures are logged
// and do not stop the run; only cancellation and read errors are returned.
func (a *App) Run(ctx context.Context) error {
	if a.isClosed() {
		return ErrClosed
	}

	if err := a.sleep(ctx, a.opts.Config.Delay); err != nil {
		return err
	}

	if len(a.opts.Args) > 0 {
		if err := a.TypeArgs(ctx, a.opts.Args); err != nil {
			return err
		}
		if !a.opts.Stdin {
			return nil
		}
	}

	if a.opts.Config.Watch && a.opts.Reload != nil && a.opts.ConfigPath != "" {
		stop, err := a.watchConfig()
		if err != nil {
			a.logger.Warn("not watching %s: %v", a.opts.ConfigPath, err)
		} else {
			defer stop()
		}
	}

	if IsTerminal(a.opts.Input) {
		a.logger.Info("reading lines from the terminal; end with Ctrl-D")
	}
	return a.TypeLines(ctx, a.opts.Input)
}

// sleep waits d or until ctx is done.
func (a *App) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	a.logger.Info("sleeping for %s", d)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TypeArgs types each argument with a space between consecutive ones.
func (a *App) TypeArgs(ctx context.Context, args []string) error {
	for i, arg := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			a.typeSpace()
		}
		a.TypeString(arg)
	}
	return nil
}

// TypeLines types each line read from r as it arrives. Line terminators
// are not typed. Lines may be of any length.
func (a *App) TypeLines(ctx context.Context, r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			line = strings.TrimSuffix(line, "\n")
			a.TypeString(strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return NewComponentError("stream", "reading input", err)
		}
	}
}

// TypeString decodes s and injects every event in order.
func (a *App) TypeString(s string) {
	a.mu.Lock()
	maxName := a.settings.maxNameLength
	a.mu.Unlock()

	log := a.logger.WithComponent("escape")
	events := escape.Decode(s,
		escape.WithResolver(a.resolver),
		escape.WithMaxNameLength(maxName),
		escape.WithLogger(log),
		escape.WithReporter(func(err error) {
			a.count(func(st *Stats) { st.Dropped++ })
			log.Warn("%v", err)
		}),
	)

	for ev := range events {
		a.inject(ev)
	}
}

// typeSpace injects the space that separates arguments.
func (a *App) typeSpace() {
	res, err := a.resolver.Resolve(' ')
	if err != nil {
		a.logger.Error("no key for the argument separator: %v", err)
		return
	}
	a.inject(key.NewCharEvent(' ', res.Keysym, key.ModNone))
}

func (a *App) inject(ev key.Event) {
	if err := a.sink.Inject(ev); err != nil {
		a.count(func(st *Stats) { st.Failed++ })
		a.logger.Error("%v", &inject.InjectError{Event: ev, Err: err})
		return
	}
	a.count(func(st *Stats) { st.Injected++ })
	a.logger.Debug("injected %s", ev)
}

func (a *App) count(fn func(*Stats)) {
	a.mu.Lock()
	fn(&a.stats)
	a.mu.Unlock()
}

// Stats returns the counters so far.
func (a *App) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// watchConfig applies config changes until the returned stop is called.
func (a *App) watchConfig() (func(), error) {
	log := a.logger.WithComponent("watcher")
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("watch error: %v", err)
	}))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(a.opts.ConfigPath); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			log.Info("%s %s; keeping current settings", ev.Path, ev.Op)
			return
		}
		a.reload()
	})
	w.Start()
	log.Debug("watching %s", a.opts.ConfigPath)
	return w.Stop, nil
}

// reload re-reads the configuration and applies the settings that can
// change while running. A bad file keeps the current settings.
func (a *App) reload() {
	cfg, err := a.opts.Reload()
	if err != nil {
		a.logger.Warn("reloading config: %v", err)
		return
	}
	a.apply(cfg)
}

func (a *App) apply(cfg *config.Config) {
	a.mu.Lock()
	a.settings.maxNameLength = cfg.MaxNameLength
	a.mu.Unlock()

	if !strings.EqualFold(cfg.Backend, a.opts.Config.Backend) {
		a.logger.Warn("backend change to %q needs a restart", cfg.Backend)
	}
	a.logger.SetLevel(ParseLogLevel(cfg.LogLevel))
	a.logger.Info("config reloaded")
}

func (a *App) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Close releases the sink.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	if err := a.sink.Close(); err != nil && !errors.Is(err, inject.ErrClosed) {
		return NewComponentError("inject", "closing", err)
	}
	return nil
}
