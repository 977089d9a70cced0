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
	"fmt"
	"os"

	"rivaas.dev/httperror/responses"
)

// ResponsesCmd implements the 'responses' command.
type ResponsesCmd struct {
	Types  []string `short:"t" name:"type" help:"Error types to document; defaults to every documented type"`
	Format string   `short:"f" help:"Output format: json, yaml" default:"json" enum:"json,yaml"`
	Output string   `short:"o" help:"Output file path (prints to stdout if not specified)" type:"path"`
	Files  []string `arg:"" name:"file" help:"Declaration files (yaml, json, toml)" type:"existingfile"`
}

// Run executes the responses command.
func (cmd *ResponsesCmd) Run(g *Global, root *CLI) error {
	tax, err := root.compile(g, cmd.Files)
	if err != nil {
		return err
	}

	names := cmd.Types
	if len(names) == 0 {
		for _, t := range tax.Types() {
			if t.Documented() {
				names = append(names, t.Name())
			}
		}
	}

	cat, err := tax.Responses(names...)
	if err != nil {
		return err
	}
	result, err := responses.Export(cat)
	if err != nil {
		return fmt.Errorf("failed to export responses: %w", err)
	}

	out := result.JSON
	if cmd.Format == "yaml" {
		out = result.YAML
	} else {
		out = append(out, '\n')
	}

	if cmd.Output != "" {
		if err = os.WriteFile(cmd.Output, out, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	_, err = g.Out.Write(out)

	return err
}
