package reliable

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
)

// DefaultMaxAttempts bounds the platform calls a single ReadInto or
// WriteFrom may make.
const DefaultMaxAttempts = 100

type Config struct {
	// MaxReadAttempts bounds platform reads per ReadInto. Always positive.
	MaxReadAttempts int

	// MaxWriteAttempts bounds platform writes per WriteFrom. Zero means
	// unbounded.
	MaxWriteAttempts int

	// Perm is applied when Open creates a file.
	Perm fs.FileMode

	Logger *slog.Logger

	// OnCloseError, if set, receives the error Close suppressed.
	OnCloseError func(path string, err error)
}

type Option func(Config) (Config, error)

func DefaultConfig() Config {
	return Config{
		MaxReadAttempts:  DefaultMaxAttempts,
		MaxWriteAttempts: DefaultMaxAttempts,
		Perm:             DefaultPerm,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// NewConfig applies opts to DefaultConfig in order and returns the first
// error any of them reports.
func NewConfig(opts ...Option) (Config, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		var err error
		if config, err = opt(config); err != nil {
			return DefaultConfig(), err
		}
	}
	return config, nil
}

func WithMaxReadAttempts(n int) Option {
	return func(config Config) (Config, error) {
		if n < 1 {
			return config, fmt.Errorf("max read attempts must be at least 1, got %d", n)
		}
		config.MaxReadAttempts = n
		return config, nil
	}
}

func WithMaxWriteAttempts(n int) Option {
	return func(config Config) (Config, error) {
		if n < 1 {
			return config, fmt.Errorf("max write attempts must be at least 1, got %d", n)
		}
		config.MaxWriteAttempts = n
		return config, nil
	}
}

// WithUnboundedWrites lets WriteFrom retry transient errors until the
// buffer is written or a fatal error occurs.
func WithUnboundedWrites() Option {
	return func(config Config) (Config, error) {
		config.MaxWriteAttempts = 0
		return config, nil
	}
}

func WithPerm(perm fs.FileMode) Option {
	return func(config Config) (Config, error) {
		if perm&^fs.ModePerm != 0 {
			return config, fmt.Errorf("perm %v has bits outside %v", perm, fs.ModePerm)
		}
		config.Perm = perm
		return config, nil
	}
}

// WithPermString is WithPerm for the symbolic form, e.g. "-rw-r-----".
func WithPermString(s string) Option {
	return func(config Config) (Config, error) {
		perm, err := ParseFileMode(s)
		if err != nil {
			return config, err
		}
		if perm&^fs.ModePerm != 0 {
			return config, fmt.Errorf("perm %q sets more than permission bits", s)
		}
		config.Perm = perm
		return config, nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(config Config) (Config, error) {
		if logger == nil {
			return config, errors.New("logger is required")
		}
		config.Logger = logger
		return config, nil
	}
}

func WithCloseErrorHandler(fn func(path string, err error)) Option {
	return func(config Config) (Config, error) {
		config.OnCloseError = fn
		return config, nil
	}
}
