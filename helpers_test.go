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
	"testing"

	"github.com/stretchr/testify/require"

	"rivaas.dev/httperror/declaration"
)

// usersDoc declares a small user service: two payload-carrying structs and an
// enum that wraps them next to its own terminal variants.
const usersDoc = `
declarations:
  - name: GetUserError
    kind: enum
    attributes: ["http(handler, openapi)"]
    variants:
      - name: Forbidden
        fields: [{type: ForbiddenError}]
      - name: NotFound
        fields: [{type: NotFoundError}]
      - name: Internal
        attributes: ["http(status = INTERNAL_SERVER_ERROR)"]
        fields: [{type: error, skip: true}]
      - name: Conflict
        attributes: ["http(status = 409)"]
        fields: [{name: detail, schema: ConflictDetail}]
      - name: Text
        attributes: ["http(status = BAD_REQUEST)"]
        fields: [{type: string}]
  - name: ForbiddenError
    kind: struct
    attributes: ["http(status = FORBIDDEN, openapi)"]
    schema: ForbiddenError
    fields: [{name: id}]
  - name: NotFoundError
    kind: struct
    attributes: ["http(status = 404, openapi)"]
    schema: NotFoundError
    fields: [{name: id}, {name: cause, skip: true}]
`

func decodeSet(t *testing.T, doc string) *declaration.Set {
	t.Helper()

	set, err := declaration.Decode([]byte(doc), declaration.FormatYAML)
	require.NoError(t, err)

	return set
}

func compileDoc(t *testing.T, doc string, opts ...Option) *Taxonomy {
	t.Helper()

	tax, err := Compile(decodeSet(t, doc), opts...)
	require.NoError(t, err)

	return tax
}

// dbError is a hand-written error used as an external delegation target.
type dbError struct {
	Op string `json:"op"`
}

func (e dbError) Error() string   { return e.Op + ": database unavailable" }
func (e dbError) HTTPStatus() int { return 503 }
