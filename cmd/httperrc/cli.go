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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"rivaas.dev/httperror"
	"rivaas.dev/httperror/declaration"
	"rivaas.dev/httperror/internal/logging"
	"rivaas.dev/httperror/responses"
	"rivaas.dev/httperror/status"
)

// ErrInvalidExternal is returned for a malformed --external flag.
var ErrInvalidExternal = errors.New("invalid external")

// Global holds the writers commands print to.
type Global struct {
	Out io.Writer
	Err io.Writer
}

// CLI is the root command line of httperrc.
type CLI struct {
	Verbose   bool             `short:"v" help:"Enable debug logging"`
	LogFormat string           `name:"log-format" help:"Log format: text, json" default:"text" enum:"text,json"`
	Hooks     []string         `name:"hook" help:"Hook names declarations may refer to"`
	Externals []string         `name:"external" help:"External types as NAME[=STATUS[:SCHEMA]]"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check     CheckCmd     `cmd:"" help:"Compile declaration files and print how every type resolves its status"`
	Responses ResponsesCmd `cmd:"" help:"Print the merged response catalogue of error types"`
}

func (c *CLI) logger(g *Global) (*slog.Logger, error) {
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}

	return logging.New(
		logging.WithOutput(g.Err),
		logging.WithFormat(format),
		logging.WithLevel(logging.LevelWarn),
		logging.WithVerbose(c.Verbose),
		logging.WithService("httperrc"),
	)
}

// compile loads files and compiles them with the hooks and externals given
// on the command line. Hooks registered this way do nothing.
func (c *CLI) compile(g *Global, files []string) (*httperror.Taxonomy, error) {
	logger, err := c.logger(g)
	if err != nil {
		return nil, err
	}

	externals, err := parseExternals(c.Externals)
	if err != nil {
		return nil, err
	}

	set, err := declaration.LoadFiles(files...)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded declarations", "files", len(files), "types", set.Len())

	opts := []httperror.Option{
		httperror.WithLogger(logger),
		httperror.WithExternal(externals...),
	}
	for _, name := range c.Hooks {
		opts = append(opts, httperror.WithHook(name, func(*httperror.Value) {}))
	}

	return httperror.Compile(set, opts...)
}

// parseExternals parses NAME[=STATUS[:SCHEMA]] flags. An external without a
// status is undocumented; one without a schema documents an empty body.
func parseExternals(flags []string) ([]httperror.External, error) {
	out := make([]httperror.External, 0, len(flags))
	for _, flag := range flags {
		name, value, hasStatus := strings.Cut(flag, "=")
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExternal, flag)
		}
		ext := httperror.External{Name: name}
		if hasStatus {
			token, schema, _ := strings.Cut(value, ":")
			code, err := status.ParseToken(token)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidExternal, flag, err)
			}
			var ref *responses.Schema
			if schema != "" {
				ref = responses.Ref(schema)
			}
			ext.Catalogue = responses.New(code, ref)
		}
		out = append(out, ext)
	}

	return out, nil
}
