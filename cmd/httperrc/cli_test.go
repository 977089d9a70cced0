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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rivaas.dev/httperror"
	"rivaas.dev/httperror/declaration"
	"rivaas.dev/httperror/internal/logging"
	"rivaas.dev/httperror/status"
)

var serviceFiles = []string{
	filepath.Join("..", "..", "testdata", "service.yaml"),
	filepath.Join("..", "..", "testdata", "common.toml"),
}

// serviceFlags registers what the service declarations refer to.
var serviceFlags = []string{"--hook", "audit", "--external", "DbError=503:DbError"}

func run(t *testing.T, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()

	var cli CLI
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	parser, err := kong.New(&cli,
		kong.Name("httperrc"),
		kong.Vars{"version": "test"},
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	if err != nil {
		return stdout, stderr, err
	}

	return stdout, stderr, ctx.Run(&Global{Out: stdout, Err: stderr})
}

func args(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// line returns the fields of the first output line whose first field is name.
func line(t *testing.T, out, name string) []string {
	t.Helper()
	for l := range strings.SplitSeq(out, "\n") {
		fields := strings.Fields(l)
		if len(fields) > 0 && fields[0] == name {
			return fields
		}
	}
	t.Fatalf("no line for %s in:\n%s", name, out)
	return nil
}

func TestCheck(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, args(serviceFlags, []string{"check"}, serviceFiles)...)
	require.NoError(t, err)

	out := stdout.String()
	assert.Equal(t, []string{"NotFoundError", "struct", "404", "openapi"}, line(t, out, "NotFoundError"))
	assert.Equal(t, []string{"UnauthorizedError", "struct", "401", "openapi"}, line(t, out, "UnauthorizedError"))
	assert.Equal(t,
		[]string{"GetUserError", "enum", "-", "handler", "openapi", "base=CommonError", "hook=audit"},
		line(t, out, "GetUserError"))
	assert.Equal(t, []string{"Forbidden", "->", "ForbiddenError"}, line(t, out, "Forbidden"))
	assert.Equal(t, []string{"Database", "->", "DbError"}, line(t, out, "Database"))
	assert.Equal(t, []string{"Internal", "500"}, line(t, out, "Internal"))
	assert.Equal(t, []string{"RateLimited", "429"}, line(t, out, "RateLimited"))
	assert.NotContains(t, out, "warning:")
}

func TestCheck_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{
			name: "unregistered hook",
			args: args([]string{"--external", "DbError=503", "check"}, serviceFiles),
			want: declaration.ErrUnknownReference,
		},
		{
			name: "unregistered external",
			args: args([]string{"--hook", "audit", "check"}, serviceFiles),
			want: declaration.ErrUnknownReference,
		},
		{
			name: "undocumented external behind openapi",
			args: args([]string{"--hook", "audit", "--external", "DbError", "check"}, serviceFiles),
			want: httperror.ErrMissingCatalogue,
		},
		{
			name: "malformed external",
			args: args([]string{"--external", "DbError=50x", "check"}, serviceFiles),
			want: status.ErrInvalid,
		},
		{
			name: "invalid declarations",
			args: []string{"check", filepath.Join("..", "..", "declaration", "testdata", "invalid.yaml")},
			want: declaration.ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := run(t, tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheck_Strict(t *testing.T) {
	t.Parallel()

	flags := args(serviceFlags, []string{"--external", "Unused=500"})

	stdout, _, err := run(t, args(flags, []string{"check"}, serviceFiles)...)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "warning: [declaration] DECLARATION_UNUSED_EXTERNAL at Unused")

	_, _, err = run(t, args(flags, []string{"check", "--strict"}, serviceFiles)...)
	require.ErrorIs(t, err, ErrWarnings)
}

func TestCheck_Logging(t *testing.T) {
	t.Parallel()

	_, stderr, err := run(t, args([]string{"-v", "--log-format", "json"}, serviceFlags, []string{"check"}, serviceFiles)...)
	require.NoError(t, err)

	entries, err := logging.Entries(stderr)
	require.NoError(t, err)

	for _, e := range entries {
		assert.Equal(t, "httperrc", e.Attrs["service"])
	}
	assert.Len(t, logging.WithMessage(entries, "compiled error type"), 6)
}

func TestCheck_RejectsUnknownLogFormat(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, args([]string{"--log-format", "xml", "check"}, serviceFiles)...)
	require.Error(t, err)
}

func TestResponses(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, args(serviceFlags, []string{"responses", "-t", "UpdateUserError", "-f", "yaml"}, serviceFiles)...)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
	assert.Len(t, doc, 4)
	assert.Equal(t, "Conflict", doc["409"]["description"])
	assert.Equal(t, "Too Many Requests", doc["429"]["description"])
}

func TestResponses_DefaultsToDocumentedTypes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "responses.json")
	stdout, _, err := run(t, args(serviceFlags, []string{"responses", "-o", path}, serviceFiles)...)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"401", "403", "404", "409", "429", "500", "503"} {
		assert.Contains(t, doc, key)
	}
}

func TestResponses_UnknownType(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, args(serviceFlags, []string{"responses", "-t", "Nope"}, serviceFiles)...)
	require.ErrorIs(t, err, httperror.ErrUnknownType)
}

func TestParseExternals(t *testing.T) {
	t.Parallel()

	exts, err := parseExternals([]string{"Plain", "Db=503", "Cache=SERVICE_UNAVAILABLE:CacheError"})
	require.NoError(t, err)
	require.Len(t, exts, 3)

	assert.Equal(t, "Plain", exts[0].Name)
	assert.Nil(t, exts[0].Catalogue)

	require.Contains(t, exts[1].Catalogue, "503")
	assert.Empty(t, exts[1].Catalogue["503"].Content)

	require.Contains(t, exts[2].Catalogue, "503")
	assert.Equal(t, "#/components/schemas/CacheError",
		exts[2].Catalogue["503"].Content["application/json"].Schema.Ref)

	for _, bad := range []string{"=503", "Db=", "Db=999"} {
		_, err = parseExternals([]string{bad})
		require.ErrorIs(t, err, ErrInvalidExternal, bad)
	}
}
