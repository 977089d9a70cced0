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
	"errors"

	"rivaas.dev/httperror/responses"
)

// HTTPError allows errors to declare their own HTTP status code.
// Every compiled [*Value] implements it, and delegating variants resolve their
// status through it, so hand-written Go errors can be wrapped too.
//
// Example:
//
//	type DatabaseError struct{ Op string }
//
//	func (e DatabaseError) Error() string   { return e.Op + ": database unavailable" }
//	func (e DatabaseError) HTTPStatus() int { return http.StatusServiceUnavailable }
type HTTPError interface {
	error
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// Documented is implemented by errors that can describe every response they produce.
type Documented interface {
	// Responses returns the response catalogue of the error type.
	Responses() (responses.Catalogue, error)
}

// Runtime errors.
var (
	// ErrHandlerDisabled indicates IntoResponse on a type declared without `handler`.
	ErrHandlerDisabled = errors.New("httperror: type is declared without handler")

	// ErrDocsDisabled indicates Responses on a type declared without `openapi`.
	ErrDocsDisabled = errors.New("httperror: type is declared without openapi")

	// ErrUnknownType indicates a type name that is not part of the taxonomy.
	ErrUnknownType = errors.New("httperror: unknown type")

	// ErrUnknownVariant indicates a variant name the enum does not declare.
	ErrUnknownVariant = errors.New("httperror: unknown variant")

	// ErrUnknownField indicates a field name the struct does not declare.
	ErrUnknownField = errors.New("httperror: unknown field")

	// ErrKind indicates a struct constructor used on an enum, or the reverse.
	ErrKind = errors.New("httperror: constructor does not match type kind")

	// ErrPayload indicates a variant built with the wrong number or type of fields.
	ErrPayload = errors.New("httperror: invalid variant payload")

	// ErrNotObject indicates a flattened payload that does not serialize to a JSON object.
	ErrNotObject = errors.New("httperror: payload does not serialize to a JSON object")
)

// Compilation errors. They are returned wrapped in a [*declaration.Error].
var (
	// ErrMissingCatalogue indicates a documented type delegating to a type without a catalogue.
	ErrMissingCatalogue = errors.New("httperror: delegation target has no response catalogue")

	// ErrInvalidExternal indicates an external registration without a name.
	ErrInvalidExternal = errors.New("httperror: external type requires a name")
)
