package countryset

import (
	"log/slog"
)

type options struct {
	chunkWidth   int
	extension    []string
	hasExtension bool
	config       *Config
	logger       *Logger
}

// Option configures New.
type Option func(*options)

// WithChunkWidth sets the number of bits per chunk.
//
// The width is part of the persisted format; it must stay the same for the
// lifetime of the stored data. Defaults to index.DefaultChunkWidth.
func WithChunkWidth(width int) Option {
	return func(o *options) {
		o.chunkWidth = width
	}
}

// WithExtension sets the extension list appended to the base codes.
// Empty strings reserve a slot without assigning a code.
//
// The extension must pad the base list to exactly 4 * chunk width codes,
// otherwise New fails with a ConfigError. Without this option every
// remaining slot is reserved.
//
// Example:
//
//	cat, err := countryset.New(countryset.WithExtension("XK", "", "", "", "", "", ""))
func WithExtension(codes ...string) Option {
	return func(o *options) {
		o.extension = codes
		o.hasExtension = true
	}
}

// WithConfig applies a loaded Config. It is validated by New.
// Options given after WithConfig take precedence.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = &cfg
		if cfg.ChunkWidth != 0 {
			o.chunkWidth = cfg.ChunkWidth
		}
		if cfg.Extension != nil {
			o.extension = cfg.ExtensionCodes()
			o.hasExtension = true
		}
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := countryset.NewJSONLogger(slog.LevelInfo)
//	cat, _ := countryset.New(countryset.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
