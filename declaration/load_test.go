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
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	set, err := LoadFile(filepath.Join("testdata", "users.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"NotFoundError", "ForbiddenError", "GetUserError"}, set.Names())

	getUser, ok := set.Lookup("GetUserError")
	require.True(t, ok)
	assert.Equal(t, KindEnum, getUser.Kind)
	assert.True(t, getUser.Meta.Handler)
	assert.True(t, getUser.Meta.OpenAPI)
	assert.Equal(t, filepath.Join("testdata", "users.yaml"), getUser.Source)

	internal, ok := getUser.Variant("Internal")
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, int(internal.Meta.Status))

	forbidden, ok := set.Lookup("ForbiddenError")
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, int(forbidden.Meta.Status))
	assert.Equal(t, "#/components/schemas/ForbiddenError", forbidden.Schema.Ref)
}

func TestLoadFile_Formats(t *testing.T) {
	t.Parallel()

	fromTOML, err := LoadFile(filepath.Join("testdata", "common.toml"))
	require.NoError(t, err)
	common, ok := fromTOML.Lookup("CommonError")
	require.True(t, ok)
	require.Len(t, common.Variants, 2)
	assert.Equal(t, "UnauthorizedError", common.Variants[0].Delegate())
	assert.Equal(t, http.StatusTooManyRequests, int(common.Variants[1].Meta.Status))

	fromJSON, err := LoadFile(filepath.Join("testdata", "extra.json"))
	require.NoError(t, err)
	conflict, ok := fromJSON.Lookup("ConflictError")
	require.True(t, ok)
	assert.Len(t, conflict.Fields, 2)
}

func TestLoadFiles(t *testing.T) {
	t.Parallel()

	set, err := LoadFiles(
		filepath.Join("testdata", "users.yaml"),
		filepath.Join("testdata", "common.toml"),
		filepath.Join("testdata", "extra.json"),
	)
	require.NoError(t, err)
	assert.Equal(t, 6, set.Len())

	_, err = LoadFiles(
		filepath.Join("testdata", "users.yaml"),
		filepath.Join("testdata", "duplicate.yaml"),
	)
	require.ErrorIs(t, err, ErrDuplicateDeclaration)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NotFoundError", de.Declaration)
	assert.Equal(t, filepath.Join("testdata", "duplicate.yaml"), de.Source)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "schema violation", path: "invalid.yaml", wantErr: ErrInvalidDocument},
		{name: "missing status", path: "missing_status.yaml", wantErr: ErrMissingStatus},
		{name: "unknown extension", path: "users.ini", wantErr: ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join("testdata", tt.path)
			_, err := LoadFile(path)
			require.ErrorIs(t, err, tt.wantErr)

			var de *Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, path, de.Source)
		})
	}

	_, err := LoadFile(filepath.Join("testdata", "absent.yaml"))
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr error
		want    []string
	}{
		{
			name:   "yaml",
			data:   "declarations:\n  - {name: Gone, kind: struct, attributes: [\"http(status = GONE)\"]}\n",
			format: FormatYAML,
			want:   []string{"Gone"},
		},
		{
			name:   "json",
			data:   `{"declarations":[{"name":"Gone","kind":"struct","attributes":["http(status = 410)"]}]}`,
			format: FormatJSON,
			want:   []string{"Gone"},
		},
		{
			name:   "empty declaration list",
			data:   `{"declarations":[]}`,
			format: FormatJSON,
			want:   []string{},
		},
		{
			name:    "empty document",
			data:    "",
			format:  FormatYAML,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "enum without variants",
			data:    `{"declarations":[{"name":"E","kind":"enum"}]}`,
			format:  FormatJSON,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "struct with variants",
			data:    `{"declarations":[{"name":"E","kind":"struct","variants":[]}]}`,
			format:  FormatJSON,
			wantErr: ErrInvalidDocument,
		},
		{
			name:    "malformed json",
			data:    `{"declarations":`,
			format:  FormatJSON,
			wantErr: nil,
		},
		{
			name:    "unknown format",
			data:    `{}`,
			format:  Format("ini"),
			wantErr: ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set, err := Decode([]byte(tt.data), tt.format)
			if tt.want == nil {
				require.Error(t, err)
				if tt.wantErr != nil {
					require.ErrorIs(t, err, tt.wantErr)
				}

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.Names())
		})
	}
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	for path, want := range map[string]Format{
		"a.yaml":      FormatYAML,
		"dir/b.YML":   FormatYAML,
		"c.json":      FormatJSON,
		"errors.toml": FormatTOML,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatOf("errors")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_ReportsViolationLocations(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"declarations":[{"name":"E","kind":"union","variants":[]}]}`), FormatJSON)
	require.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, err.Error(), "/declarations/0/kind")
}
