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
	"encoding/json"
	"fmt"
	"os"
)

// Decode validates and parses a document in the given format.
func Decode(data []byte, format Format) (*Set, error) {
	return decode(data, format, "")
}

// LoadFile reads, validates and parses a declaration file.
// The format is chosen by [FormatOf].
func LoadFile(path string) (*Set, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, &Error{Source: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declarations: %w", err)
	}

	return decode(data, format, path)
}

// LoadFiles loads every file into one set. Declaration names must be unique across files.
func LoadFiles(paths ...string) (*Set, error) {
	set := &Set{index: map[string]*Declaration{}}
	for _, path := range paths {
		s, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err = set.Merge(s); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func decode(data []byte, format Format, source string) (*Set, error) {
	docJSON, err := decodeTree(data, format)
	if err != nil {
		return nil, &Error{Source: source, Err: err}
	}

	if err = validator.validate(docJSON); err != nil {
		return nil, &Error{Source: source, Err: err}
	}

	var doc Document
	if err = json.Unmarshal(docJSON, &doc); err != nil {
		return nil, &Error{Source: source, Err: fmt.Errorf("failed to bind document: %w", err)}
	}

	return parse(doc, source)
}
