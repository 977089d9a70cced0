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
	"errors"
	"fmt"

	"rivaas.dev/httperror/responses"
)

// Parse turns a decoded document into a set of declarations.
func Parse(doc Document) (*Set, error) {
	return parse(doc, "")
}

func parse(doc Document, source string) (*Set, error) {
	set := &Set{index: make(map[string]*Declaration, len(doc.Declarations))}
	for _, raw := range doc.Declarations {
		d, err := ParseDeclaration(raw)
		if err != nil {
			var de *Error
			if errors.As(err, &de) {
				de.Source = source
			}

			return nil, err
		}
		d.Source = source
		if err = set.Add(d); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// ParseDeclaration parses a single declaration.
// Failures are returned as [*Error] located at the declaration or variant.
func ParseDeclaration(raw RawDeclaration) (*Declaration, error) {
	switch raw.Kind {
	case KindStruct.String():
		return parseStruct(raw)
	case KindEnum.String():
		return parseEnum(raw)
	default:
		return nil, &Error{Declaration: raw.Name, Err: fmt.Errorf("%w: unknown kind %q", ErrFieldShape, raw.Kind)}
	}
}

func parseStruct(raw RawDeclaration) (*Declaration, error) {
	meta, text, err := parseMetadata(raw.Attributes, levelStruct)
	if err != nil {
		return nil, &Error{Declaration: raw.Name, Attribute: text, Err: err}
	}
	if !meta.HasStatus() {
		return nil, &Error{Declaration: raw.Name, Attribute: text, Err: ErrMissingStatus}
	}

	d := &Declaration{
		Name:   raw.Name,
		Kind:   KindStruct,
		Meta:   *meta,
		Schema: schemaRef(raw.Schema),
	}
	seen := make(map[string]struct{}, len(raw.Fields))
	for _, rf := range raw.Fields {
		if rf.Name == "" {
			return nil, &Error{Declaration: raw.Name, Err: fmt.Errorf("%w: struct fields must be named", ErrFieldShape)}
		}
		if _, dup := seen[rf.Name]; dup {
			return nil, &Error{Declaration: raw.Name, Err: fmt.Errorf("%w: duplicate field %q", ErrFieldShape, rf.Name)}
		}
		seen[rf.Name] = struct{}{}
		d.Fields = append(d.Fields, newField(rf))
	}

	return d, nil
}

func parseEnum(raw RawDeclaration) (*Declaration, error) {
	meta, text, err := parseMetadata(raw.Attributes, levelEnum)
	if err != nil {
		return nil, &Error{Declaration: raw.Name, Attribute: text, Err: err}
	}

	d := &Declaration{Name: raw.Name, Kind: KindEnum}
	if meta != nil {
		d.Meta = *meta
	}
	seen := make(map[string]struct{}, len(raw.Variants))
	for _, rv := range raw.Variants {
		if _, dup := seen[rv.Name]; dup {
			return nil, &Error{Declaration: raw.Name, Variant: rv.Name, Err: ErrDuplicateVariant}
		}
		seen[rv.Name] = struct{}{}

		v, err := parseVariant(rv)
		if err != nil {
			return nil, wrap(err, raw.Name, rv.Name)
		}
		d.Variants = append(d.Variants, v)
	}

	return d, nil
}

func parseVariant(rv RawVariant) (Variant, error) {
	shape, field, err := variantShape(rv.Fields)
	if err != nil {
		return Variant{}, err
	}
	v := Variant{Name: rv.Name, Shape: shape, Field: field}

	meta, text, err := parseMetadata(rv.Attributes, levelVariant)
	if err != nil {
		return Variant{}, &Error{Attribute: text, Err: err}
	}
	if meta != nil {
		if !meta.HasStatus() {
			return Variant{}, &Error{Attribute: text, Err: ErrMissingStatus}
		}
		v.Meta = meta

		return v, nil
	}

	if err = checkDelegation(shape, field); err != nil {
		return Variant{}, err
	}

	return v, nil
}

// checkDelegation reports why a variant without metadata cannot delegate
// through its field, if it cannot.
func checkDelegation(shape Shape, field *Field) error {
	switch {
	case shape == ShapeUnit || field == nil:
		return fmt.Errorf("%w: unit variants must declare a status", ErrMissingStatus)
	case shape == ShapeNamed:
		return fmt.Errorf("%w: named fields cannot delegate", ErrMissingStatus)
	case field.Skip:
		return fmt.Errorf("%w: excluded fields cannot delegate", ErrMissingStatus)
	case field.Type == "":
		return fmt.Errorf("%w: delegating field must name its type", ErrFieldShape)
	}

	return nil
}

// Check verifies the rules [Parse] enforces on declarations that were built
// in code rather than parsed. Failures are returned as [*Error].
func (d *Declaration) Check() error {
	fail := func(variant string, err error) error {
		return &Error{Source: d.Source, Declaration: d.Name, Variant: variant, Err: err}
	}

	switch d.Kind {
	case KindStruct:
		if err := checkStatus(&d.Meta); err != nil {
			return fail("", err)
		}
		seen := make(map[string]struct{}, len(d.Fields))
		for _, f := range d.Fields {
			if f.Name == "" {
				return fail("", fmt.Errorf("%w: struct fields must be named", ErrFieldShape))
			}
			if _, dup := seen[f.Name]; dup {
				return fail("", fmt.Errorf("%w: duplicate field %q", ErrFieldShape, f.Name))
			}
			seen[f.Name] = struct{}{}
		}
	case KindEnum:
		if d.Meta.Status != 0 {
			return fail("", fmt.Errorf("%w: status is not allowed on enum types", ErrUnknownKey))
		}
		seen := make(map[string]struct{}, len(d.Variants))
		for i := range d.Variants {
			v := &d.Variants[i]
			if _, dup := seen[v.Name]; dup {
				return fail(v.Name, ErrDuplicateVariant)
			}
			seen[v.Name] = struct{}{}
			if err := v.check(); err != nil {
				return fail(v.Name, err)
			}
		}
	default:
		return fail("", fmt.Errorf("%w: unknown kind %d", ErrFieldShape, d.Kind))
	}

	return nil
}

func (v *Variant) check() error {
	switch v.Shape {
	case ShapeUnit:
		if v.Field != nil {
			return fmt.Errorf("%w: unit variant with a field", ErrFieldShape)
		}
	case ShapeUnnamed:
		if v.Field == nil || v.Field.Name != "" {
			return fmt.Errorf("%w: unnamed variant needs one unnamed field", ErrFieldShape)
		}
	case ShapeNamed:
		if v.Field == nil || v.Field.Name == "" {
			return fmt.Errorf("%w: named variant needs one named field", ErrFieldShape)
		}
	default:
		return fmt.Errorf("%w: unknown shape %d", ErrFieldShape, v.Shape)
	}

	if v.Meta != nil {
		return checkStatus(v.Meta)
	}

	return checkDelegation(v.Shape, v.Field)
}

func checkStatus(m *Metadata) error {
	if !m.HasStatus() {
		return ErrMissingStatus
	}
	if !m.Status.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, int(m.Status))
	}

	return nil
}

func variantShape(fields []RawField) (Shape, *Field, error) {
	if len(fields) == 0 {
		return ShapeUnit, nil, nil
	}

	named := 0
	for _, rf := range fields {
		if rf.Name != "" {
			named++
		}
	}
	switch {
	case named != 0 && named != len(fields):
		return 0, nil, fmt.Errorf("%w: mixed named and unnamed fields are not supported", ErrFieldShape)
	case len(fields) > 1 && named > 0:
		return 0, nil, fmt.Errorf("%w: multiple named fields are not supported", ErrFieldShape)
	case len(fields) > 1:
		return 0, nil, fmt.Errorf("%w: multiple unnamed fields are not supported", ErrFieldShape)
	}

	f := newField(fields[0])
	if named == 1 {
		return ShapeNamed, &f, nil
	}

	return ShapeUnnamed, &f, nil
}

func newField(rf RawField) Field {
	return Field{
		Name:   rf.Name,
		Type:   rf.Type,
		Schema: schemaRef(rf.Schema),
		Skip:   rf.Skip,
	}
}

func schemaRef(name string) *responses.Schema {
	if name == "" {
		return nil
	}

	return responses.Ref(name)
}
