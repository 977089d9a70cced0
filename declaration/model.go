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

package declaration

import (
	"fmt"
	"slices"

	"rivaas.dev/httperror/responses"
	"rivaas.dev/httperror/status"
)

// Document is the wire form of a declaration file.
type Document struct {
	Declarations []RawDeclaration `json:"declarations"`
}

// RawDeclaration is a declaration as written in a document.
type RawDeclaration struct {
	Name       string       `json:"name"`
	Kind       string       `json:"kind"`
	Attributes []string     `json:"attributes,omitempty"`
	Schema     string       `json:"schema,omitempty"`
	Fields     []RawField   `json:"fields,omitempty"`
	Variants   []RawVariant `json:"variants,omitempty"`
}

// RawVariant is an enum variant as written in a document.
type RawVariant struct {
	Name       string     `json:"name"`
	Attributes []string   `json:"attributes,omitempty"`
	Fields     []RawField `json:"fields,omitempty"`
}

// RawField is a struct or variant field as written in a document.
type RawField struct {
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty"`
	Schema string `json:"schema,omitempty"`
	Skip   bool   `json:"skip,omitempty"`
}

// Kind tells struct errors from enum errors.
type Kind int

const (
	// KindStruct is an error type with a single status.
	KindStruct Kind = iota
	// KindEnum is an error type with one status per variant.
	KindEnum
)

// String returns the document spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Shape describes how a variant carries its fields.
type Shape int

const (
	// ShapeUnit has no fields.
	ShapeUnit Shape = iota
	// ShapeUnnamed has exactly one unnamed field.
	ShapeUnnamed
	// ShapeNamed has exactly one named field.
	ShapeNamed
)

// String returns a short name for the shape.
func (s Shape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeUnnamed:
		return "unnamed"
	case ShapeNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Metadata is the parsed `http(...)` attribute of a node.
type Metadata struct {
	// Status is the declared status. Zero when the node declares none.
	Status status.Code

	// Base names a declaration whose catalogue is unioned into this one.
	Base string

	// Hook names a callback run when a value becomes a response.
	Hook string

	// Handler enables the net/http binding.
	Handler bool

	// OpenAPI enables documentation registration.
	OpenAPI bool
}

// HasStatus reports whether a status was declared.
func (m *Metadata) HasStatus() bool {
	return m != nil && m.Status != 0
}

// Field is a struct or variant field.
type Field struct {
	Name   string
	Type   string
	Schema *responses.Schema
	Skip   bool
}

// Variant is a parsed enum variant.
type Variant struct {
	Name  string
	Shape Shape
	Field *Field    // nil for unit variants
	Meta  *Metadata // nil for delegating variants
}

// Terminal reports whether the variant carries its own status.
func (v *Variant) Terminal() bool {
	return v.Meta != nil
}

// Delegate returns the name of the wrapped type of a delegating variant.
func (v *Variant) Delegate() string {
	if v.Terminal() || v.Field == nil {
		return ""
	}

	return v.Field.Type
}

// Declaration is a parsed error type.
type Declaration struct {
	Name     string
	Kind     Kind
	Meta     Metadata
	Schema   *responses.Schema // payload schema of a struct, nil when undocumented
	Fields   []Field
	Variants []Variant
	Source   string
}

// Variant returns the variant with the given name.
func (d *Declaration) Variant(name string) (*Variant, bool) {
	for i := range d.Variants {
		if d.Variants[i].Name == name {
			return &d.Variants[i], true
		}
	}

	return nil, false
}

// References returns the names this declaration depends on: delegation targets, then base.
func (d *Declaration) References() []string {
	var refs []string
	for i := range d.Variants {
		if target := d.Variants[i].Delegate(); target != "" && !slices.Contains(refs, target) {
			refs = append(refs, target)
		}
	}
	if d.Meta.Base != "" && !slices.Contains(refs, d.Meta.Base) {
		refs = append(refs, d.Meta.Base)
	}

	return refs
}

// Set is an ordered collection of declarations with unique names.
type Set struct {
	decls []*Declaration
	index map[string]*Declaration
}

// NewSet returns a set holding decls, in order.
func NewSet(decls ...*Declaration) (*Set, error) {
	s := &Set{index: make(map[string]*Declaration, len(decls))}
	if err := s.Add(decls...); err != nil {
		return nil, err
	}

	return s, nil
}

// Add appends decls, rejecting names already present.
func (s *Set) Add(decls ...*Declaration) error {
	if s.index == nil {
		s.index = make(map[string]*Declaration, len(decls))
	}
	for _, d := range decls {
		if prev, ok := s.index[d.Name]; ok {
			err := &Error{Source: d.Source, Declaration: d.Name, Err: ErrDuplicateDeclaration}
			if prev.Source != "" {
				err.Err = fmt.Errorf("%w (first declared in %s)", ErrDuplicateDeclaration, prev.Source)
			}

			return err
		}
		s.index[d.Name] = d
		s.decls = append(s.decls, d)
	}

	return nil
}

// Merge adds every declaration of other.
func (s *Set) Merge(other *Set) error {
	return s.Add(other.decls...)
}

// Lookup returns the declaration with the given name.
func (s *Set) Lookup(name string) (*Declaration, bool) {
	d, ok := s.index[name]
	return d, ok
}

// All returns the declarations in document order.
func (s *Set) All() []*Declaration {
	return slices.Clone(s.decls)
}

// Names returns the declaration names in document order.
func (s *Set) Names() []string {
	names := make([]string, len(s.decls))
	for i, d := range s.decls {
		names[i] = d.Name
	}

	return names
}

// Len returns the number of declarations.
func (s *Set) Len() int {
	return len(s.decls)
}
