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
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"

	"rivaas.dev/httperror/declaration"
	"rivaas.dev/httperror/responses"
)

// Value is an error value of a compiled [Type].
// Values are immutable once built.
type Value struct {
	typ     *Type
	variant *variant // nil for struct values
	fields  map[string]any
	payload any
}

var (
	_ HTTPError                   = (*Value)(nil)
	_ Documented                  = (*Value)(nil)
	_ json.Marshaler              = (*Value)(nil)
	_ interface{ Unwrap() error } = (*Value)(nil)
)

// Type returns the type of the value.
func (v *Value) Type() *Type {
	return v.typ
}

// Variant returns the active variant name. It is empty for struct values.
func (v *Value) Variant() string {
	if v.variant == nil {
		return ""
	}
	return v.variant.decl.Name
}

// Field returns a struct field, or the payload of a variant when name is empty.
func (v *Value) Field(name string) (any, bool) {
	if v.variant != nil {
		if name != "" {
			return nil, false
		}
		return v.payload, v.payload != nil
	}
	val, ok := v.fields[name]
	return val, ok
}

// Error implements error.
func (v *Value) Error() string {
	if v.variant == nil {
		return v.typ.Name()
	}

	msg := v.typ.Name() + "::" + v.variant.decl.Name
	if err, ok := v.payload.(error); ok && err != nil {
		msg += ": " + err.Error()
	}
	return msg
}

// Unwrap returns the wrapped error of a variant, if its payload is one.
func (v *Value) Unwrap() error {
	if err, ok := v.payload.(error); ok {
		return err
	}
	return nil
}

// HTTPStatus resolves the status of the value. Delegating variants ask the
// wrapped error, so the cost grows with the depth of the delegation chain.
func (v *Value) HTTPStatus() int {
	if v.variant == nil {
		return int(v.typ.status)
	}
	return v.variant.resolve(v)
}

// Code returns the serialized tag of an enum value: the variant name with a
// lower-case first letter. It is empty for struct values.
func (v *Value) Code() string {
	if v.variant == nil {
		return ""
	}
	return lowerFirst(v.variant.decl.Name)
}

// Responses returns the response catalogue of the value's type.
func (v *Value) Responses() (responses.Catalogue, error) {
	return v.typ.Responses()
}

// MarshalJSON encodes the value as its response body.
//
// Struct values encode their declared, non-skipped fields. Enum values encode
// an object tagged with "code"; a named field is added under its name, and the
// payload of an unnamed field is flattened into the object. Skipped fields are
// never encoded.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v.variant == nil {
		body := make(map[string]any, len(v.fields))
		for name, val := range v.fields {
			if f := v.typ.fields[name]; f != nil && !f.Skip {
				body[name] = val
			}
		}
		return json.Marshal(body)
	}

	body := map[string]any{"code": v.Code()}
	f := v.variant.decl.Field
	switch {
	case f == nil || f.Skip:
	case v.variant.decl.Shape == declaration.ShapeNamed:
		body[f.Name] = v.payload
	default:
		inner, err := json.Marshal(v.payload)
		if err != nil {
			return nil, err
		}
		var obj map[string]json.RawMessage
		if err = json.Unmarshal(inner, &obj); err != nil || obj == nil {
			return nil, fmt.Errorf("%w: %s::%s", ErrNotObject, v.typ.Name(), v.variant.decl.Name)
		}
		for k, raw := range obj {
			body[k] = raw
		}
	}

	return json.Marshal(body)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
