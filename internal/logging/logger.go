// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging builds the [slog.Logger] instances used by the httperrc
// command and by tests that assert on log output.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the slog handler.
type Format string

const (
	// FormatText writes key=value lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// Level aliases so callers need not import log/slog for levels alone.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	// ErrInvalidFormat indicates an unsupported log format.
	ErrInvalidFormat = errors.New("invalid log format")

	// ErrNilOutput indicates a nil output writer.
	ErrNilOutput = errors.New("output writer cannot be nil")
)

// ParseFormat parses a format name as given on the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, name)
	}
}

type config struct {
	format  Format
	output  io.Writer
	level   slog.Level
	service string
}

// Option configures [New].
type Option func(*config)

// WithFormat sets the output format. Text is the default.
func WithFormat(f Format) Option {
	return func(c *config) { c.format = f }
}

// WithOutput sets the destination. Stderr is the default.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithLevel sets the minimum level. Info is the default.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithVerbose lowers the minimum level to debug when verbose is set.
func WithVerbose(verbose bool) Option {
	return func(c *config) {
		if verbose {
			c.level = slog.LevelDebug
		}
	}
}

// WithService adds a "service" attribute to every entry.
func WithService(name string) Option {
	return func(c *config) { c.service = name }
}

// New builds a logger.
func New(opts ...Option) (*slog.Logger, error) {
	cfg := config{format: FormatText, output: os.Stderr, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.output == nil {
		return nil, ErrNilOutput
	}

	hopts := &slog.HandlerOptions{Level: cfg.level}
	var h slog.Handler
	switch cfg.format {
	case FormatText:
		h = slog.NewTextHandler(cfg.output, hopts)
	case FormatJSON:
		h = slog.NewJSONHandler(cfg.output, hopts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.format)
	}

	logger := slog.New(h)
	if cfg.service != "" {
		logger = logger.With("service", cfg.service)
	}

	return logger, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *slog.Logger {
	logger, err := New(opts...)
	if err != nil {
		panic("logging: " + err.Error())
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
