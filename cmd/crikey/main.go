// Package main is the entry point for crikey, which types strings as
// synthetic keyboard input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dshills/crikey/internal/app"
	"github.com/dshills/crikey/internal/config"
	"github.com/dshills/crikey/internal/inject"
	"github.com/dshills/crikey/internal/input/escape"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errHelp is returned by parseFlags when usage was printed on request.
var errHelp = errors.New("help requested")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "decode" {
		return runDecode(args[1:], stdout, stderr)
	}

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, errHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "crikey %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := opts.load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logCfg := app.DefaultLoggerConfig()
	logCfg.Output = stderr
	logCfg.Level = app.ParseLogLevel(cfg.LogLevel)
	logCfg.Color = app.IsTerminal(stderr)
	logger := app.NewLogger(logCfg)
	logger.Debug("config: %+v", *cfg)

	application, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: opts.configPath,
		Reload:     opts.load,
		Args:       opts.strings,
		Stdin:      opts.stdin,
		Input:      stdin,
		Output:     stdout,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	st := application.Stats()
	logger.Info("typed %d keys, dropped %d sequences, %d failed", st.Injected, st.Dropped, st.Failed)
	return 0
}

// cliOptions holds parsed command-line flags.
type cliOptions struct {
	configPath   string
	configGiven  bool
	showVersion  bool
	stdin        bool
	strings      []string
	overrides    []func(*config.Config)
	envOverrides bool
}

// load reads the configuration layers and applies flag overrides on top.
func (o *cliOptions) load() (*config.Config, error) {
	lo := config.LoadOptions{
		Path:     o.configPath,
		Required: o.configGiven,
	}
	if o.envOverrides {
		lo.Env = config.NewEnvLoader()
	}

	cfg, err := config.Load(lo)
	if err != nil {
		return nil, err
	}
	for _, apply := range o.overrides {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseFlags(args []string, stderr io.Writer) (*cliOptions, error) {
	opts := &cliOptions{envOverrides: true}

	var (
		sleep    float64
		backend  string
		debug    bool
		logLevel string
		settle   time.Duration
		maxName  int
		noEnv    bool
	)

	fs := flag.NewFlagSet("crikey", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Float64Var(&sleep, "sleep", 0, "Seconds to wait before typing")
	fs.Float64Var(&sleep, "s", 0, "Seconds to wait before typing (shorthand)")
	fs.StringVar(&backend, "backend", "", "Injection backend ("+strings.Join(inject.Backends, ", ")+")")
	fs.StringVar(&backend, "b", "", "Injection backend (shorthand)")
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.BoolVar(&debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&debug, "d", false, "Enable debug logging (shorthand)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.DurationVar(&settle, "settle", 0, "Time to wait for the uinput device to appear")
	fs.IntVar(&maxName, "max-name", 0, "Maximum length of a \\(name\\) key name")
	fs.BoolVar(&opts.stdin, "stdin", false, "Read lines from stdin after typing the arguments")
	fs.BoolVar(&noEnv, "no-env", false, "Ignore CRIKEY_* environment variables")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "crikey - type strings as keyboard input\n\n")
		fmt.Fprintf(stderr, "Usage: crikey [options] string...\n")
		fmt.Fprintf(stderr, "       crikey decode string...\n\n")
		fmt.Fprintf(stderr, "With no strings, lines read from stdin are typed as they arrive.\n")
		fmt.Fprintf(stderr, "To type a first string that is literally \"decode\", put -- before it.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEscapes:\n")
		fmt.Fprintf(stderr, "  \\S \\C \\A \\M \\W   hold Shift, Control, Alt, Super for the next key\n")
		fmt.Fprintf(stderr, "  \\(Name\\)           key by name, e.g. \\(Return\\) \\(F5\\)\n")
		fmt.Fprintf(stderr, "  \\n \\r \\t \\b \\d \\e newline, return, tab, backspace, delete, escape\n")
		fmt.Fprintf(stderr, "  \\NNN               character by decimal code\n")
		fmt.Fprintf(stderr, "  ^X                 control character\n")
		fmt.Fprintf(stderr, "  \\\\                 backslash\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  crikey -s 2 'hello world\\n'\n")
		fmt.Fprintf(stderr, "  crikey '\\C\\(Return\\)'\n")
		fmt.Fprintf(stderr, "  crikey -b print '\\A\\(Tab\\)'\n")
		fmt.Fprintf(stderr, "  crikey -- decode\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errHelp
		}
		return nil, err
	}
	opts.strings = fs.Args()
	opts.envOverrides = !noEnv

	var badFlag error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sleep", "s":
			if sleep < 0 {
				badFlag = fmt.Errorf("invalid sleep %v (must not be negative)", sleep)
			}
			d := time.Duration(sleep * float64(time.Second))
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.Delay = d })
		case "backend", "b":
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.Backend = backend })
		case "config", "c":
			opts.configGiven = true
		case "debug", "d":
			if debug {
				opts.overrides = append(opts.overrides, func(c *config.Config) { c.LogLevel = "debug" })
			}
		case "log-level":
			switch logLevel {
			case "debug", "info", "warn", "error":
			default:
				badFlag = fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", logLevel)
			}
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.LogLevel = logLevel })
		case "settle":
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.Settle = settle })
		case "max-name":
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.MaxNameLength = maxName })
		}
	})
	if badFlag != nil {
		return nil, badFlag
	}

	if !opts.configGiven {
		opts.configPath = config.DefaultPath()
	}
	return opts, nil
}

// runDecode prints the events each argument decodes to, one argument per
// line, without injecting anything.
func runDecode(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(stderr, "Usage: crikey decode string...\n")
		return 2
	}

	failed := false
	for _, arg := range args {
		var keys []string
		for ev := range escape.Decode(arg, escape.WithReporter(func(err error) {
			failed = true
			fmt.Fprintf(stderr, "crikey: %v\n", err)
		})) {
			keys = append(keys, ev.String())
		}
		fmt.Fprintln(stdout, strings.Join(keys, " "))
	}

	if failed {
		return 1
	}
	return 0
}
