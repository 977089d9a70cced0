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
	"maps"

	"rivaas.dev/httperror/declaration"
	"rivaas.dev/httperror/diag"
	"rivaas.dev/httperror/responses"
	"rivaas.dev/httperror/status"
)

// Taxonomy is the compiled form of a declaration set.
// It is immutable and safe for concurrent use.
type Taxonomy struct {
	types    map[string]*Type
	order    []string
	warnings diag.Warnings
}

// Type returns the compiled type with the given name.
func (tx *Taxonomy) Type(name string) (*Type, bool) {
	t, ok := tx.types[name]
	return t, ok
}

// MustType is like Type but panics when name is unknown.
func (tx *Taxonomy) MustType(name string) *Type {
	t, ok := tx.types[name]
	if !ok {
		panic(fmt.Sprintf("%v: %s", ErrUnknownType, name))
	}
	return t
}

// Types returns the compiled types in declaration order.
func (tx *Taxonomy) Types() []*Type {
	out := make([]*Type, len(tx.order))
	for i, name := range tx.order {
		out[i] = tx.types[name]
	}
	return out
}

// Warnings returns the advisory diagnostics reported during compilation.
func (tx *Taxonomy) Warnings() diag.Warnings {
	return tx.warnings
}

// Responses merges the catalogues of the named documented types, as needed
// to document an operation that can fail with any of them.
func (tx *Taxonomy) Responses(names ...string) (responses.Catalogue, error) {
	parts := make([]responses.Catalogue, 0, len(names))
	for _, name := range names {
		t, ok := tx.types[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
		}
		cat, err := t.Responses()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		parts = append(parts, cat)
	}

	return responses.Merge(parts...)
}

// Type is a compiled error type: a status resolver, a response catalogue and
// constructors for its values.
type Type struct {
	decl      *declaration.Declaration
	status    status.Code
	fields    map[string]*declaration.Field
	variants  map[string]*variant
	catalogue responses.Catalogue
	hook      Hook
}

type variant struct {
	decl    *declaration.Variant
	target  *Type
	resolve func(*Value) int
}

// Name returns the declared type name.
func (t *Type) Name() string {
	return t.decl.Name
}

// Kind reports whether the type is a struct or an enum.
func (t *Type) Kind() declaration.Kind {
	return t.decl.Kind
}

// Declaration returns the declaration the type was compiled from.
func (t *Type) Declaration() *declaration.Declaration {
	return t.decl
}

// Documented reports whether the type was declared with `openapi`.
func (t *Type) Documented() bool {
	return t.decl.Meta.OpenAPI
}

// Handler reports whether the type was declared with `handler`.
func (t *Type) Handler() bool {
	return t.decl.Meta.Handler
}

// Responses returns a copy of the type's response catalogue.
// It fails with [ErrDocsDisabled] unless the type is documented.
func (t *Type) Responses() (responses.Catalogue, error) {
	if !t.Documented() {
		return nil, fmt.Errorf("%w: %s", ErrDocsDisabled, t.Name())
	}
	return t.catalogue.Clone(), nil
}

// New builds a value of a struct type. Every key of fields must be a
// declared field.
func (t *Type) New(fields map[string]any) (*Value, error) {
	if t.decl.Kind != declaration.KindStruct {
		return nil, fmt.Errorf("%w: %s is an enum", ErrKind, t.Name())
	}
	for name := range fields {
		if _, ok := t.fields[name]; !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, t.Name(), name)
		}
	}

	return &Value{typ: t, fields: maps.Clone(fields)}, nil
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(fields map[string]any) *Value {
	v, err := t.New(fields)
	if err != nil {
		panic(err)
	}
	return v
}

// Variant builds a value of an enum type. Unit variants take no field;
// other variants take exactly one. A delegating variant takes a [*Value] of
// its target type or, when the target is external, any [HTTPError].
func (t *Type) Variant(name string, field ...any) (*Value, error) {
	if t.decl.Kind != declaration.KindEnum {
		return nil, fmt.Errorf("%w: %s is a struct", ErrKind, t.Name())
	}
	v, ok := t.variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s::%s", ErrUnknownVariant, t.Name(), name)
	}

	loc := t.Name() + "::" + name
	want := 1
	if v.decl.Shape == declaration.ShapeUnit {
		want = 0
	}
	if len(field) != want {
		return nil, fmt.Errorf("%w: %s takes %d field(s), got %d", ErrPayload, loc, want, len(field))
	}

	val := &Value{typ: t, variant: v}
	if want == 0 {
		return val, nil
	}
	val.payload = field[0]

	if v.decl.Terminal() {
		return val, nil
	}
	if v.target != nil {
		inner, ok := val.payload.(*Value)
		if !ok || inner == nil || inner.typ != v.target {
			return nil, fmt.Errorf("%w: %s wraps %s, got %T", ErrPayload, loc, v.target.Name(), val.payload)
		}
		return val, nil
	}
	if e, ok := val.payload.(HTTPError); !ok || e == nil {
		return nil, fmt.Errorf("%w: %s wraps %s, got %T", ErrPayload, loc, v.decl.Delegate(), val.payload)
	}

	return val, nil
}

// MustVariant is like Variant but panics on error.
func (t *Type) MustVariant(name string, field ...any) *Value {
	v, err := t.Variant(name, field...)
	if err != nil {
		panic(err)
	}
	return v
}
