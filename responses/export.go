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
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Result holds a catalogue rendered as an OpenAPI responses object.
type Result struct {
	// JSON is the indented JSON encoding.
	JSON []byte

	// YAML is the YAML encoding.
	YAML []byte
}

// responseDoc is the OpenAPI Response Object projection of [Response].
// Description is required by OpenAPI and therefore always emitted.
type responseDoc struct {
	Description string                   `json:"description" yaml:"description"`
	Content     map[string]*mediaTypeDoc `json:"content,omitempty" yaml:"content,omitempty"`
}

// mediaTypeDoc is the OpenAPI Media Type Object projection of [MediaType].
type mediaTypeDoc struct {
	Schema *schemaDoc `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// schemaDoc is the OpenAPI Schema Object projection of [Schema].
type schemaDoc struct {
	Ref   string       `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	OneOf []*schemaDoc `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
}

// Export renders c as an OpenAPI responses object (status -> Response Object)
// in both JSON and YAML. Keys are emitted in sorted order.
//
// Example:
//
//	res, err := responses.Export(catalogue)
//	os.Stdout.Write(res.YAML)
func Export(c Catalogue) (Result, error) {
	out := make(map[string]*responseDoc, len(c))
	for key, resp := range c {
		out[key] = projectResponse(resp)
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal responses to JSON: %w", err)
	}

	yamlBytes, err := yaml.Marshal(out)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal responses to YAML: %w", err)
	}

	return Result{JSON: jsonBytes, YAML: yamlBytes}, nil
}

func projectResponse(r *Response) *responseDoc {
	if r == nil {
		return &responseDoc{}
	}
	doc := &responseDoc{Description: r.Description}
	if len(r.Content) > 0 {
		doc.Content = make(map[string]*mediaTypeDoc, len(r.Content))
		for ct, mt := range r.Content {
			md := &mediaTypeDoc{}
			if mt != nil {
				md.Schema = projectSchema(mt.Schema)
			}
			doc.Content[ct] = md
		}
	}

	return doc
}

func projectSchema(s *Schema) *schemaDoc {
	if s == nil {
		return nil
	}
	doc := &schemaDoc{Ref: s.Ref}
	for _, it := range s.OneOf {
		doc.OneOf = append(doc.OneOf, projectSchema(it))
	}

	return doc
}
