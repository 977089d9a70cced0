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

package responses

import (
	"fmt"
	"slices"
	"strings"

	"rivaas.dev/httperror/status"
)

// OneOf composes alternatives into a oneOf schema.
//
// Alternatives that are themselves a oneOf are replaced by their direct
// children. Flattening is one level only: a oneOf nested inside a child is
// kept as it is. The result lists alternatives in canonical order so that the
// composition does not depend on argument order. Duplicates are kept.
//
// Example:
//
//	responses.OneOf(a, responses.OneOf(b, c)) // oneOf [a, b, c]
func OneOf(items ...*Schema) *Schema {
	flat := make([]*Schema, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if it.IsOneOf() {
			flat = append(flat, it.OneOf...)
			continue
		}
		flat = append(flat, it)
	}
	slices.SortStableFunc(flat, func(a, b *Schema) int {
		return strings.Compare(a.key(), b.key())
	})

	return &Schema{OneOf: flat}
}

// Merge combines catalogues into one.
//
// The result holds exactly the union of the input status keys. For each
// status the description is recomputed from the status itself, content types
// are unioned, and schemas that collide on a content type are composed with
// [OneOf]. A content type documented by a single input keeps its media type
// unchanged.
//
// Merge is commutative and associative. Merging no catalogues yields an empty
// catalogue; merging a single catalogue returns a copy of it unchanged.
//
// Every status key is validated first. A key that is not a valid status code
// aborts the merge with a *status.ParseError and no partial result.
func Merge(cs ...Catalogue) (Catalogue, error) {
	for _, c := range cs {
		for key := range c {
			if _, err := status.ParseText(key); err != nil {
				return nil, fmt.Errorf("merge responses: %w", err)
			}
		}
	}

	switch len(cs) {
	case 0:
		return Catalogue{}, nil
	case 1:
		return cs[0].Clone(), nil
	}

	groups := make(map[string][]*Response)
	for _, c := range cs {
		for key, resp := range c {
			groups[key] = append(groups[key], resp)
		}
	}

	out := make(Catalogue, len(groups))
	for key, group := range groups {
		// Keys were validated above.
		code, _ := status.ParseText(key)
		out[key] = mergeResponse(code, group)
	}

	return out, nil
}

// mergeResponse merges every response documented for one status code.
func mergeResponse(code status.Code, group []*Response) *Response {
	byType := make(map[string][]*MediaType)
	for _, resp := range group {
		if resp == nil {
			continue
		}
		for ct, mt := range resp.Content {
			byType[ct] = append(byType[ct], mt)
		}
	}

	content := make(map[string]*MediaType, len(byType))
	for ct, mts := range byType {
		content[ct] = mergeContent(mts)
	}

	return &Response{
		Description: code.Reason(),
		Content:     content,
	}
}

// mergeContent merges the media types documented for one content type.
func mergeContent(mts []*MediaType) *MediaType {
	if len(mts) == 1 {
		return mts[0]
	}

	schemas := make([]*Schema, 0, len(mts))
	for _, mt := range mts {
		if mt != nil && mt.Schema != nil {
			schemas = append(schemas, mt.Schema)
		}
	}
	if len(schemas) == 0 {
		return &MediaType{}
	}

	return &MediaType{Schema: OneOf(schemas...)}
}
