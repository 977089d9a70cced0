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

// Package declaration loads error declarations: the plain-data description of
// an application's error types that the compiler turns into status resolvers
// and response catalogues.
//
// Documents are YAML, JSON or TOML and are validated against an embedded
// JSON Schema before they are parsed:
//
//	declarations:
//	  - name: NotFoundError
//	    kind: struct
//	    attributes: ["http(status = NOT_FOUND, openapi)"]
//	    schema: NotFoundError
//	    fields: [{name: id}]
//	  - name: GetUserError
//	    kind: enum
//	    attributes: ["http(handler, openapi)"]
//	    variants:
//	      - name: NotFound
//	        fields: [{type: NotFoundError}]
//	      - name: Internal
//	        attributes: ["http(status = INTERNAL_SERVER_ERROR)"]
//	        fields: [{type: error, skip: true}]
//
// # Attributes
//
// Only attributes named http are interpreted; others are ignored. A node
// carries at most one http attribute. Struct declarations accept status,
// base, hook, handler and openapi. Enum declarations accept the same keys
// except status. Variants accept status only.
//
// Status values are named constants (NOT_FOUND) or 3-digit literals in
// [100, 599].
//
// # Variants
//
// A variant with an http attribute is terminal and must declare a status.
// A variant without one delegates to the type of its single unnamed field.
// Every failure is reported as an [*Error] wrapping one of the Err* sentinels.
package declaration
