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
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format identifies the encoding of a declaration document.
type Format string

const (
	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
	// FormatTOML is a TOML document.
	FormatTOML Format = "toml"
)

// decoder turns document bytes into a generic tree.
type decoder interface {
	Decode(data []byte, v any) error
}

type yamlCodec struct{}

func (yamlCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

type jsonCodec struct{}

func (jsonCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type tomlCodec struct{}

func (tomlCodec) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

var decoders = map[Format]decoder{
	FormatYAML: yamlCodec{},
	FormatJSON: jsonCodec{},
	FormatTOML: tomlCodec{},
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// decodeTree decodes data into a JSON-compatible tree and re-encodes it as JSON,
// so every format is validated and bound the same way.
func decodeTree(data []byte, format Format) ([]byte, error) {
	dec, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	var tree map[string]any
	if len(bytes.TrimSpace(data)) > 0 {
		if err := dec.Decode(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", format, err)
		}
	}
	if tree == nil {
		tree = map[string]any{}
	}

	out, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %s document: %w", format, err)
	}

	return out, nil
}
