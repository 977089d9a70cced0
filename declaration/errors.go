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
	"strings"
)

// Attribute errors. All of them match [ErrAttribute] with [errors.Is].
var (
	// ErrAttribute is the root of every metadata attribute failure.
	ErrAttribute = errors.New("declaration: invalid http attribute")

	// ErrDuplicateAttribute indicates a node carries more than one http attribute.
	ErrDuplicateAttribute = fmt.Errorf("%w: only a single http attribute is allowed", ErrAttribute)

	// ErrUnknownKey indicates an attribute argument that is not recognized for the node.
	ErrUnknownKey = fmt.Errorf("%w: unknown parameter", ErrAttribute)

	// ErrDuplicateKey indicates the same argument given twice in one attribute.
	ErrDuplicateKey = fmt.Errorf("%w: duplicate parameter", ErrAttribute)

	// ErrSyntax indicates attribute text that cannot be tokenized.
	ErrSyntax = fmt.Errorf("%w: malformed attribute", ErrAttribute)

	// ErrInvalidStatus indicates a status that is neither a named constant nor a 3-digit literal in range.
	ErrInvalidStatus = fmt.Errorf("%w: invalid status", ErrAttribute)

	// ErrMissingStatus indicates a terminal node without a status.
	ErrMissingStatus = fmt.Errorf("%w: missing `http(status = ..)` attribute", ErrAttribute)
)

// Shape and graph errors.
var (
	// ErrFieldShape indicates a variant whose fields cannot carry or delegate a status.
	ErrFieldShape = errors.New("declaration: unsupported field shape")

	// ErrDuplicateVariant indicates two variants of one enum with the same name.
	ErrDuplicateVariant = errors.New("declaration: duplicate variant")

	// ErrDuplicateDeclaration indicates two declarations with the same name.
	ErrDuplicateDeclaration = errors.New("declaration: duplicate declaration")

	// ErrUnknownReference indicates a delegation, base or hook reference that does not resolve.
	ErrUnknownReference = errors.New("declaration: unknown reference")

	// ErrCycle indicates declarations that delegate to or base themselves on each other.
	ErrCycle = errors.New("declaration: cyclic delegation")
)

// Document errors.
var (
	// ErrInvalidDocument indicates a document that does not match the declaration schema.
	ErrInvalidDocument = errors.New("declaration: document failed JSON Schema validation")

	// ErrUnknownFormat indicates a file extension with no registered codec.
	ErrUnknownFormat = errors.New("declaration: unknown document format")
)

// Error locates a declaration failure.
// Unwrap exposes the sentinel so callers can match with [errors.Is].
type Error struct {
	Source      string // Document the declaration came from (optional)
	Declaration string // Declaration name (optional for document-level failures)
	Variant     string // Variant name (optional)
	Attribute   string // Offending attribute text (optional)
	Err         error  // The underlying error
}

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("declaration error")
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.Declaration != "" {
		fmt.Fprintf(&b, " at %s", e.Location())
	}
	if e.Attribute != "" {
		fmt.Fprintf(&b, " (attribute %q)", e.Attribute)
	}
	fmt.Fprintf(&b, ": %v", e.Err)

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Location returns "Declaration" or "Declaration::Variant".
func (e *Error) Location() string {
	if e.Variant == "" {
		return e.Declaration
	}

	return e.Declaration + "::" + e.Variant
}

// wrap attaches a location to err unless it already carries one.
func wrap(err error, decl, variant string) error {
	var de *Error
	if errors.As(err, &de) {
		if de.Declaration == "" {
			de.Declaration = decl
			de.Variant = variant
		}

		return de
	}

	return &Error{Declaration: decl, Variant: variant, Err: err}
}
