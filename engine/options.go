package engine

import (
	"log/slog"

	"github.com/cpcf/macrowiz/write"
)

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithFailureMode(mode FailureMode) Option {
	return func(e *Engine) {
		e.failMode = mode
	}
}

// WithStrict makes placeholders missing from the replacement table an error.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

func WithWriter(w write.Writer) Option {
	return func(e *Engine) {
		e.writer = w
	}
}

func WithWriteOptions(opts write.WriteOptions) Option {
	return func(e *Engine) {
		e.writeOpts = opts
	}
}
