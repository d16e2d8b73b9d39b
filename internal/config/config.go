package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/xyproto/env/v2"

	"github.com/dshills/crikey/internal/config/loader"
	"github.com/dshills/crikey/internal/inject"
	"github.com/dshills/crikey/internal/input/escape"
)

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "CRIKEY_"

// EnvConfigPath names the variable that overrides the default config path.
const EnvConfigPath = EnvPrefix + "CONFIG"

// Setting paths, as they appear in files and after env conversion.
const (
	KeyBackend       = "inject.backend"
	KeySettle        = "inject.settle"
	KeyDelay         = "typing.delay"
	KeyMaxNameLength = "typing.maxNameLength"
	KeyLogLevel      = "logging.level"
	KeyWatch         = "stream.watch"
)

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Config holds the resolved crikey settings.
type Config struct {
	// Backend names the injection backend.
	Backend string

	// Delay is how long to wait before typing anything.
	Delay time.Duration

	// LogLevel is the minimum level written to the log.
	LogLevel string

	// MaxNameLength bounds the characters kept from a \(name\) escape.
	MaxNameLength int

	// Settle is how long the uinput backend waits for its device.
	Settle time.Duration

	// Watch reloads the config file while reading from stdin.
	Watch bool
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend:       inject.BackendUinput,
		Delay:         0,
		LogLevel:      "warn",
		MaxNameLength: escape.DefaultMaxNameLength,
		Settle:        2 * time.Second,
		Watch:         false,
	}
}

// DefaultPath returns the config file used when none is given:
// $CRIKEY_CONFIG, else $XDG_CONFIG_HOME/crikey/config.toml, else
// ~/.config/crikey/config.toml. It returns "" if no home is known.
func DefaultPath() string {
	return defaultPath(func(name string) string { return env.Str(name) }, os.UserHomeDir)
}

func defaultPath(getenv func(string) string, home func() (string, error)) string {
	if p := getenv(EnvConfigPath); p != "" {
		return p
	}
	dir := getenv("XDG_CONFIG_HOME")
	if dir == "" {
		h, err := home()
		if err != nil {
			return ""
		}
		dir = filepath.Join(h, ".config")
	}
	return filepath.Join(dir, "crikey", "config.toml")
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// Path is the config file. Empty skips the file layer.
	Path string

	// Required makes a missing file an error.
	Required bool

	// FS reads the file. Defaults to the OS file system.
	FS loader.FileSystem

	// Env supplies the environment layer. Nil skips it.
	Env loader.Loader
}

// NewEnvLoader returns the loader for CRIKEY_* variables.
func NewEnvLoader() *loader.EnvLoader {
	l := loader.NewEnvLoader(EnvPrefix)
	l.Skip(EnvConfigPath)
	l.AddMapping(EnvPrefix+"BACKEND", KeyBackend)
	l.AddMapping(EnvPrefix+"SLEEP", KeyDelay)
	l.AddMapping(EnvPrefix+"LOG_LEVEL", KeyLogLevel)
	return l
}

// Load merges defaults, the config file and the environment, lowest
// first, and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	if opts.FS == nil {
		opts.FS = loader.DefaultFS()
	}

	data := Default().Map()

	if opts.Path != "" {
		fl, err := loader.ForPath(opts.FS, opts.Path)
		if err != nil {
			return nil, err
		}
		m, err := fl.LoadFrom(opts.Path)
		if err != nil {
			return nil, err
		}
		if m == nil && opts.Required {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, opts.Path)
		}
		data = loader.DeepMerge(data, m)
	}

	if opts.Env != nil {
		m, err := opts.Env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		data = loader.DeepMerge(data, m)
	}

	cfg, err := FromMap(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Map returns c in the nested shape the loaders produce.
func (c *Config) Map() map[string]any {
	return map[string]any{
		"inject": map[string]any{
			"backend": c.Backend,
			"settle":  c.Settle,
		},
		"typing": map[string]any{
			"delay":         c.Delay,
			"maxNameLength": int64(c.MaxNameLength),
		},
		"logging": map[string]any{
			"level": c.LogLevel,
		},
		"stream": map[string]any{
			"watch": c.Watch,
		},
	}
}

// FromMap builds a Config from a merged settings map. Settings missing
// from data keep their defaults; unknown settings are ignored.
func FromMap(data map[string]any) (*Config, error) {
	c := Default()
	var err error

	if v, ok := loader.Lookup(data, KeyBackend); ok {
		if c.Backend, err = toString(KeyBackend, v); err != nil {
			return nil, err
		}
	}
	if v, ok := loader.Lookup(data, KeySettle); ok {
		if c.Settle, err = toDuration(KeySettle, v); err != nil {
			return nil, err
		}
	}
	if v, ok := loader.Lookup(data, KeyDelay); ok {
		if c.Delay, err = toDuration(KeyDelay, v); err != nil {
			return nil, err
		}
	}
	if v, ok := loader.Lookup(data, KeyMaxNameLength); ok {
		if c.MaxNameLength, err = toInt(KeyMaxNameLength, v); err != nil {
			return nil, err
		}
	}
	if v, ok := loader.Lookup(data, KeyLogLevel); ok {
		if c.LogLevel, err = toString(KeyLogLevel, v); err != nil {
			return nil, err
		}
	}
	if v, ok := loader.Lookup(data, KeyWatch); ok {
		if c.Watch, err = toBool(KeyWatch, v); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Validate reports the first setting with an unusable value.
func (c *Config) Validate() error {
	if !slices.Contains(inject.Backends, strings.ToLower(c.Backend)) {
		return &ValidationError{
			Path:    KeyBackend,
			Message: "must be one of " + strings.Join(inject.Backends, ", "),
			Value:   c.Backend,
		}
	}
	if c.Delay < 0 {
		return &ValidationError{Path: KeyDelay, Message: "must not be negative", Value: c.Delay}
	}
	if c.Settle < 0 {
		return &ValidationError{Path: KeySettle, Message: "must not be negative", Value: c.Settle}
	}
	if c.MaxNameLength < 1 {
		return &ValidationError{Path: KeyMaxNameLength, Message: "must be at least 1", Value: c.MaxNameLength}
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return &ValidationError{
			Path:    KeyLogLevel,
			Message: "must be one of debug, info, warn, error",
			Value:   c.LogLevel,
		}
	}
	return nil
}

func toString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeError(path, "string", v)
	}
	return s, nil
}

func toInt(path string, v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, typeError(path, "integer", v)
}

// toBool accepts a bool or the integers 0 and 1.
func toBool(path string, v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case int:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	}
	return false, typeError(path, "bool", v)
}

// toDuration accepts a duration string ("1.5s"), a time.Duration, or a
// plain number of seconds.
func toDuration(path string, v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case int64:
		return time.Duration(d) * time.Second, nil
	case int:
		return time.Duration(d) * time.Second, nil
	case float64:
		return time.Duration(d * float64(time.Second)), nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, &ValidationError{Path: path, Message: "not a duration", Value: d}
		}
		return parsed, nil
	}
	return 0, typeError(path, "duration", v)
}

func typeError(path, expected string, v any) error {
	return &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", v)}
}
