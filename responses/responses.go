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

// Package responses models the catalogue of HTTP responses an error type can
// produce and merges catalogues contributed by nested error types.
//
// A [Catalogue] maps status text ("404") to a [Response]. Each response maps
// content types to a [Schema], which is either a reference to a component
// schema or a oneOf composition of alternatives.
//
// Catalogues are immutable once built. [Merge] never modifies its inputs and
// is independent of input order.
//
// # Merging
//
//	a := responses.New(403, responses.Ref("ForbiddenError"))
//	b := responses.New(404, responses.Ref("NotFoundError"))
//	merged, err := responses.Merge(a, b)
//
// When two catalogues document the same status and content type, their
// schemas are composed into a oneOf. Alternatives that are already a oneOf are
// flattened one level deep.
package responses

import (
	"maps"
	"slices"
	"strings"

	"rivaas.dev/httperror/status"
)

// ContentTypeJSON is the content type under which error payload schemas are
// documented.
const ContentTypeJSON = "application/json"

// componentPrefix is prepended to bare schema names by [Ref].
const componentPrefix = "#/components/schemas/"

// Schema is a concrete schema reference or a oneOf composition.
// Exactly one of Ref and OneOf is set on a well-formed schema.
type Schema struct {
	// Ref is a reference to a component schema.
	Ref string

	// OneOf lists the alternatives of a composition in canonical order.
	OneOf []*Schema
}

// Ref returns a reference to a component schema.
// Bare names are resolved against "#/components/schemas/"; values that are
// already references (starting with '#' or containing "://") are kept as is.
func Ref(name string) *Schema {
	if strings.HasPrefix(name, "#") || strings.Contains(name, "://") {
		return &Schema{Ref: name}
	}

	return &Schema{Ref: componentPrefix + name}
}

// IsOneOf reports whether s is a oneOf composition.
func (s *Schema) IsOneOf() bool {
	return s != nil && len(s.OneOf) > 0
}

// key returns the canonical ordering key of s.
func (s *Schema) key() string {
	switch {
	case s == nil:
		return ""
	case s.IsOneOf():
		keys := make([]string, len(s.OneOf))
		for i, it := range s.OneOf {
			keys[i] = it.key()
		}

		return "oneOf(" + strings.Join(keys, ",") + ")"
	default:
		return s.Ref
	}
}

// String returns a compact, human readable form of s.
func (s *Schema) String() string {
	return s.key()
}

// MediaType documents the payload of one content type.
type MediaType struct {
	// Schema is the payload schema. It may be nil for payload-less content.
	Schema *Schema
}

// Response documents one status code.
type Response struct {
	// Description is the canonical reason phrase of the status, if any.
	Description string

	// Content maps content types to their payload documentation.
	Content map[string]*MediaType
}

// Catalogue maps status text to the response documented for it.
type Catalogue map[string]*Response

// New returns a catalogue with a single entry for code. If schema is non-nil
// it is documented under [ContentTypeJSON]; otherwise the entry has no content.
func New(code status.Code, schema *Schema) Catalogue {
	content := map[string]*MediaType{}
	if schema != nil {
		content[ContentTypeJSON] = &MediaType{Schema: schema}
	}

	return Catalogue{
		code.String(): {
			Description: code.Reason(),
			Content:     content,
		},
	}
}

// Keys returns the status keys of c in ascending order.
func (c Catalogue) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}

// Clone returns a copy of c that shares no maps with it.
// Schemas are shared; they are never modified after construction.
func (c Catalogue) Clone() Catalogue {
	if c == nil {
		return nil
	}
	out := make(Catalogue, len(c))
	for code, resp := range c {
		if resp == nil {
			out[code] = nil
			continue
		}
		cp := &Response{Description: resp.Description}
		if resp.Content != nil {
			cp.Content = make(map[string]*MediaType, len(resp.Content))
			for ct, mt := range resp.Content {
				if mt == nil {
					cp.Content[ct] = nil
					continue
				}
				cp.Content[ct] = &MediaType{Schema: mt.Schema}
			}
		}
		out[code] = cp
	}

	return out
}
