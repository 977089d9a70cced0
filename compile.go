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
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"rivaas.dev/httperror/declaration"
	"rivaas.dev/httperror/diag"
	"rivaas.dev/httperror/responses"
)

type compiler struct {
	set       *declaration.Set
	logger    *slog.Logger
	hooks     map[string]Hook
	externals []External

	external   map[string]*External
	types      map[string]*Type
	usedHooks  map[string]bool
	usedExtern map[string]bool
	warnings   diag.Warnings
}

// Compile derives the status resolvers and response catalogues of every
// declaration in set.
//
// Declarations are checked with [declaration.Declaration.Check] first, so sets
// built in code get the same errors as parsed ones. References are resolved
// against set and the registered externals only.
// Declarations are compiled in dependency order; a cycle through delegation
// or base references is rejected. Any failure aborts compilation and is
// returned as a [*declaration.Error].
func Compile(set *declaration.Set, opts ...Option) (*Taxonomy, error) {
	c := &compiler{
		set:        set,
		logger:     slog.New(slog.DiscardHandler),
		hooks:      map[string]Hook{},
		external:   map[string]*External{},
		types:      map[string]*Type{},
		usedHooks:  map[string]bool{},
		usedExtern: map[string]bool{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.set == nil {
		c.set, _ = declaration.NewSet()
	}

	if err := c.registerExternals(); err != nil {
		return nil, err
	}
	for _, d := range c.set.All() {
		if err := d.Check(); err != nil {
			return nil, err
		}
	}
	if err := c.resolveReferences(); err != nil {
		return nil, err
	}

	ordered, err := c.order()
	if err != nil {
		return nil, err
	}

	for _, d := range ordered {
		t, err := c.compileType(d)
		if err != nil {
			return nil, err
		}
		c.types[d.Name] = t
		c.logger.Debug("compiled error type",
			"type", d.Name,
			"kind", d.Kind.String(),
			"responses", len(t.catalogue),
			"handler", d.Meta.Handler,
			"openapi", d.Meta.OpenAPI,
		)
	}
	c.reportUnused()

	tax := &Taxonomy{
		types:    c.types,
		order:    c.set.Names(),
		warnings: c.warnings,
	}
	c.logger.Info("compiled error taxonomy", "types", len(tax.order), "warnings", len(tax.warnings))

	return tax, nil
}

func (c *compiler) registerExternals() error {
	for i := range c.externals {
		ext := &c.externals[i]
		if ext.Name == "" {
			return &declaration.Error{Err: ErrInvalidExternal}
		}
		if _, dup := c.set.Lookup(ext.Name); dup {
			return &declaration.Error{Declaration: ext.Name, Err: declaration.ErrDuplicateDeclaration}
		}
		if _, dup := c.external[ext.Name]; dup {
			return &declaration.Error{Declaration: ext.Name, Err: declaration.ErrDuplicateDeclaration}
		}
		c.external[ext.Name] = ext
	}

	return nil
}

func (c *compiler) known(name string) bool {
	if _, ok := c.set.Lookup(name); ok {
		return true
	}
	_, ok := c.external[name]

	return ok
}

func (c *compiler) resolveReferences() error {
	for _, d := range c.set.All() {
		for i := range d.Variants {
			v := &d.Variants[i]
			target := v.Delegate()
			if target == "" {
				continue
			}
			if !c.known(target) {
				return &declaration.Error{
					Source:      d.Source,
					Declaration: d.Name,
					Variant:     v.Name,
					Err:         fmt.Errorf("%w: delegation target %q", declaration.ErrUnknownReference, target),
				}
			}
			c.usedExtern[target] = true
		}
		if base := d.Meta.Base; base != "" {
			if !c.known(base) {
				return &declaration.Error{
					Source:      d.Source,
					Declaration: d.Name,
					Err:         fmt.Errorf("%w: base %q", declaration.ErrUnknownReference, base),
				}
			}
			c.usedExtern[base] = true
		}
		if hook := d.Meta.Hook; hook != "" {
			if _, ok := c.hooks[hook]; !ok {
				return &declaration.Error{
					Source:      d.Source,
					Declaration: d.Name,
					Err:         fmt.Errorf("%w: hook %q", declaration.ErrUnknownReference, hook),
				}
			}
			c.usedHooks[hook] = true
		}
	}

	return nil
}

// order returns the declarations so that every declaration follows the ones
// it references. Externals are leaves.
func (c *compiler) order() ([]*declaration.Declaration, error) {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[string]int, c.set.Len())
	out := make([]*declaration.Declaration, 0, c.set.Len())
	var path []string

	var visit func(d *declaration.Declaration) error
	visit = func(d *declaration.Declaration) error {
		switch state[d.Name] {
		case done:
			return nil
		case visiting:
			start := slices.Index(path, d.Name)
			cycle := append(slices.Clone(path[start:]), d.Name)
			return &declaration.Error{
				Source:      d.Source,
				Declaration: d.Name,
				Err:         fmt.Errorf("%w: %s", declaration.ErrCycle, strings.Join(cycle, " -> ")),
			}
		}

		state[d.Name] = visiting
		path = append(path, d.Name)
		for _, ref := range d.References() {
			dep, ok := c.set.Lookup(ref)
			if !ok {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[d.Name] = done
		out = append(out, d)

		return nil
	}

	for _, d := range c.set.All() {
		if err := visit(d); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (c *compiler) compileType(d *declaration.Declaration) (*Type, error) {
	t := &Type{decl: d}
	if d.Meta.Hook != "" {
		t.hook = c.hooks[d.Meta.Hook]
	}

	switch d.Kind {
	case declaration.KindStruct:
		t.status = d.Meta.Status
		t.fields = make(map[string]*declaration.Field, len(d.Fields))
		for i := range d.Fields {
			t.fields[d.Fields[i].Name] = &d.Fields[i]
		}
	case declaration.KindEnum:
		t.variants = make(map[string]*variant, len(d.Variants))
		for i := range d.Variants {
			v := &d.Variants[i]
			t.variants[v.Name] = c.compileVariant(v)
		}
	}

	cat, err := c.catalogue(d)
	if err != nil {
		return nil, err
	}
	t.catalogue = cat

	if d.Meta.OpenAPI && len(cat) == 0 {
		c.warn(diag.WarnDocsEmptyCatalogue, d.Name, "documented type has no responses")
	}

	return t, nil
}

// compileVariant builds the status resolver of one variant. Terminal variants
// resolve to their declared status; delegating variants ask the wrapped value
// at call time.
func (c *compiler) compileVariant(v *declaration.Variant) *variant {
	out := &variant{decl: v}
	if v.Terminal() {
		code := int(v.Meta.Status)
		out.resolve = func(*Value) int { return code }

		return out
	}

	if target, ok := c.types[v.Delegate()]; ok {
		out.target = target
	}
	out.resolve = func(val *Value) int {
		return val.payload.(HTTPError).HTTPStatus()
	}

	return out
}

// catalogue builds the response catalogue of d from its own status, its
// variants and its base.
func (c *compiler) catalogue(d *declaration.Declaration) (responses.Catalogue, error) {
	var parts []responses.Catalogue

	if base := d.Meta.Base; base != "" {
		cat, err := c.referencedCatalogue(d, "", base)
		if err != nil {
			return nil, err
		}
		if cat != nil {
			parts = append(parts, cat)
		}
	}

	switch d.Kind {
	case declaration.KindStruct:
		parts = append(parts, responses.New(d.Meta.Status, d.Schema))
	case declaration.KindEnum:
		for i := range d.Variants {
			v := &d.Variants[i]
			if v.Terminal() {
				parts = append(parts, responses.New(v.Meta.Status, c.variantSchema(v)))
				continue
			}
			cat, err := c.referencedCatalogue(d, v.Name, v.Delegate())
			if err != nil {
				return nil, err
			}
			if cat != nil {
				parts = append(parts, cat)
			}
		}
	}

	merged, err := responses.Merge(parts...)
	if err != nil {
		return nil, &declaration.Error{Source: d.Source, Declaration: d.Name, Err: err}
	}

	return merged, nil
}

// referencedCatalogue returns the catalogue of a delegation target or base.
// It returns nil when an undocumented declaration refers to an external type
// without a catalogue.
func (c *compiler) referencedCatalogue(d *declaration.Declaration, variantName, ref string) (responses.Catalogue, error) {
	if t, ok := c.types[ref]; ok {
		return t.catalogue, nil
	}

	ext, ok := c.external[ref]
	if !ok {
		return nil, &declaration.Error{
			Source:      d.Source,
			Declaration: d.Name,
			Variant:     variantName,
			Err:         fmt.Errorf("%w: %q", declaration.ErrUnknownReference, ref),
		}
	}
	if ext.Catalogue != nil {
		return ext.Catalogue, nil
	}

	if d.Meta.OpenAPI {
		return nil, &declaration.Error{
			Source:      d.Source,
			Declaration: d.Name,
			Variant:     variantName,
			Err:         fmt.Errorf("%w: %s", ErrMissingCatalogue, ref),
		}
	}

	loc := d.Name
	if variantName != "" {
		loc += "::" + variantName
	}
	c.warn(diag.WarnDocsMissingCatalogue, loc, ref+" has no response catalogue")

	return nil, nil
}

// variantSchema is the payload schema of a terminal variant: the field's own
// schema, else the schema of the declared type it holds.
func (c *compiler) variantSchema(v *declaration.Variant) *responses.Schema {
	f := v.Field
	if f == nil || f.Skip {
		return nil
	}
	if f.Schema != nil {
		return f.Schema
	}
	if d, ok := c.set.Lookup(f.Type); ok {
		return d.Schema
	}

	return nil
}

func (c *compiler) reportUnused() {
	for _, name := range slices.Sorted(maps.Keys(c.hooks)) {
		if !c.usedHooks[name] {
			c.warn(diag.WarnDeclarationUnusedHook, name, "hook is not referenced by any declaration")
		}
	}
	for _, ext := range c.externals {
		if !c.usedExtern[ext.Name] {
			c.warn(diag.WarnDeclarationUnusedExternal, ext.Name, "nothing delegates to this external type")
		}
	}
}

func (c *compiler) warn(code diag.WarningCode, location, message string) {
	w := diag.NewWarning(code, location, message)
	c.warnings = append(c.warnings, w)
	c.logger.Warn(message, "code", code.String(), "location", location)
}
