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

// Package httperror compiles error declarations into HTTP status resolvers
// and OpenAPI response catalogues.
//
// Error types are declared as plain data (see package declaration) and
// compiled once at start-up:
//
//	set, err := declaration.LoadFile("errors.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tax, err := httperror.Compile(set, httperror.WithLogger(slog.Default()))
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Each compiled [Type] builds [*Value] errors. A value knows its status:
// struct types always resolve to their declared status, enum variants either
// carry their own status or delegate to the error they wrap.
//
//	notFound := tax.MustType("NotFoundError").MustNew(map[string]any{"id": "1"})
//	err = tax.MustType("GetUserError").MustVariant("NotFound", notFound)
//	err.HTTPStatus() // 404
//
// # Handlers
//
// Types declared with `handler` turn into responses. The body is the value's
// JSON encoding, tagged with a "code" field for enums:
//
//	func getUser(w http.ResponseWriter, r *http.Request) {
//		if err := load(r); err != nil {
//			httperror.WriteError(w, r, err)
//			return
//		}
//	}
//
// # Documentation
//
// Every type gets a response catalogue: the statuses it can produce, with the
// payload schema of each. Catalogues of wrapped types are merged into the
// wrapping type; payloads that share a status become a oneOf. Types declared
// with `openapi` expose their catalogue through Responses.
//
//	cat, err := tax.Responses("GetUserError", "UpdateUserError")
//	doc, err := responses.Export(cat)
//
// # Interfaces
//
// Hand-written Go errors take part through [HTTPError] and, for
// documentation, [External] registrations passed to [Compile].
package httperror
