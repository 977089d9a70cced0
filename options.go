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

package httperror

import (
	"log/slog"

	"rivaas.dev/httperror/responses"
)

// Hook is run when a value of the declaring type becomes a response.
type Hook func(v *Value)

// External is an error type implemented by hand in Go rather than declared.
// Declarations may delegate to it by name; values wrap any [HTTPError].
type External struct {
	// Name is the type name declarations refer to.
	Name string

	// Catalogue documents the responses of the type. Nil when undocumented.
	Catalogue responses.Catalogue
}

// Option configures [Compile].
type Option func(*compiler)

// WithLogger sets the logger compilation progress is reported to.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHook registers a hook under the name declarations use in `hook = name`.
func WithHook(name string, fn Hook) Option {
	return func(c *compiler) {
		c.hooks[name] = fn
	}
}

// WithHooks registers several hooks at once.
func WithHooks(hooks map[string]Hook) Option {
	return func(c *compiler) {
		for name, fn := range hooks {
			c.hooks[name] = fn
		}
	}
}

// WithExternal registers hand-written error types declarations can delegate to.
func WithExternal(externals ...External) Option {
	return func(c *compiler) {
		c.externals = append(c.externals, externals...)
	}
}
