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

package responses_test

import (
	"fmt"

	"rivaas.dev/httperror/responses"
)

// ExampleMerge demonstrates merging catalogues that collide on a status.
func ExampleMerge() {
	merged, err := responses.Merge(
		responses.New(404, responses.Ref("UserNotFound")),
		responses.New(404, responses.Ref("OrgNotFound")),
		responses.New(500, nil),
	)
	if err != nil {
		panic(err)
	}

	for _, key := range merged.Keys() {
		schema := merged[key].Content[responses.ContentTypeJSON]
		if schema == nil {
			fmt.Println(key, merged[key].Description)
			continue
		}
		fmt.Println(key, merged[key].Description, schema.Schema)
	}
	// Output:
	// 404 Not Found oneOf(#/components/schemas/OrgNotFound,#/components/schemas/UserNotFound)
	// 500 Internal Server Error
}

// ExampleOneOf demonstrates one-level flattening.
func ExampleOneOf() {
	a, b, c := responses.Ref("A"), responses.Ref("B"), responses.Ref("C")

	fmt.Println(responses.OneOf(a, responses.OneOf(b, c)))
	fmt.Println(responses.OneOf(a, &responses.Schema{OneOf: []*responses.Schema{responses.OneOf(b, c)}}))
	// Output:
	// oneOf(#/components/schemas/A,#/components/schemas/B,#/components/schemas/C)
	// oneOf(#/components/schemas/A,oneOf(#/components/schemas/B,#/components/schemas/C))
}
