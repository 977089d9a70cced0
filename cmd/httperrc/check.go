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
	"text/tabwriter"

	"rivaas.dev/httperror/declaration"
)

// ErrWarnings is returned by check --strict when compilation reported warnings.
var ErrWarnings = errors.New("compilation reported warnings")

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Strict bool     `help:"Treat warnings as errors"`
	Files  []string `arg:"" name:"file" help:"Declaration files (yaml, json, toml)" type:"existingfile"`
}

// Run executes the check command.
func (cmd *CheckCmd) Run(g *Global, root *CLI) error {
	tax, err := root.compile(g, cmd.Files)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	for _, t := range tax.Types() {
		d := t.Declaration()
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.Kind, typeStatus(d), flags(d))
		for i := range d.Variants {
			v := &d.Variants[i]
			_, _ = fmt.Fprintf(tw, "  %s\t\t%s\t\n", v.Name, variantStatus(v))
		}
	}
	if err = tw.Flush(); err != nil {
		return err
	}

	warnings := tax.Warnings()
	for _, w := range warnings {
		_, _ = fmt.Fprintf(g.Out, "warning: %s\n", w)
	}
	if cmd.Strict && len(warnings) > 0 {
		return fmt.Errorf("%w: %d", ErrWarnings, len(warnings))
	}

	return nil
}

func typeStatus(d *declaration.Declaration) string {
	if d.Kind == declaration.KindStruct {
		return d.Meta.Status.String()
	}
	return "-"
}

func variantStatus(v *declaration.Variant) string {
	if v.Meta.HasStatus() {
		return v.Meta.Status.String()
	}
	return "-> " + v.Delegate()
}

func flags(d *declaration.Declaration) string {
	var out string
	if d.Meta.Handler {
		out += "handler "
	}
	if d.Meta.OpenAPI {
		out += "openapi "
	}
	if d.Meta.Base != "" {
		out += "base=" + d.Meta.Base + " "
	}
	if d.Meta.Hook != "" {
		out += "hook=" + d.Meta.Hook + " "
	}
	if out == "" {
		return "-"
	}
	return out[:len(out)-1]
}
