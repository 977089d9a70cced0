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
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema.json
var documentSchema []byte

const documentSchemaURL = "https://rivaas.dev/schemas/httperror/declarations.json"

// engine validates documents against the embedded declaration schema.
// The schema is compiled once and shared; [jsonschema.Schema] is safe for concurrent use.
type engine struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

var validator engine

func (e *engine) compile() (*jsonschema.Schema, error) {
	e.once.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentSchema))
		if err != nil {
			e.err = fmt.Errorf("invalid declaration schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource(documentSchemaURL, doc); err != nil {
			e.err = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		e.schema, e.err = compiler.Compile(documentSchemaURL)
	})

	return e.schema, e.err
}

// validate checks a JSON-encoded document.
func (e *engine) validate(docJSON []byte) error {
	schema, err := e.compile()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(docJSON))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err = schema.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(violations(verr), "; "))
		}

		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

var printer = message.NewPrinter(language.English)

// violations flattens the leaves of a validation error tree into "location: message" lines.
func violations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/" + strings.Join(verr.InstanceLocation, "/")
		return []string{loc + ": " + verr.ErrorKind.LocalizedString(printer)}
	}

	var out []string
	for _, cause := range verr.Causes {
		out = append(out, violations(cause)...)
	}

	return out
}
