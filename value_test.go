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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_Variant_Errors(t *testing.T) {
	t.Parallel()

	tax := compileDoc(t, usersDoc)
	getUser := tax.MustType("GetUserError")
	notFound := tax.MustType("NotFoundError").MustNew(nil)

	tests := []struct {
		name    string
		variant string
		fields  []any
		wantErr error
	}{
		{name: "unknown variant", variant: "Gone", wantErr: ErrUnknownVariant},
		{name: "missing payload", variant: "NotFound", wantErr: ErrPayload},
		{name: "too many fields", variant: "NotFound", fields: []any{notFound, notFound}, wantErr: ErrPayload},
		{name: "wrong target type", variant: "Forbidden", fields: []any{notFound}, wantErr: ErrPayload},
		{name: "plain error as target", variant: "NotFound", fields: []any{errors.New("x")}, wantErr: ErrPayload},
		{name: "nil value as target", variant: "NotFound", fields: []any{(*Value)(nil)}, wantErr: ErrPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := getUser.Variant(tt.variant, tt.fields...)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, v)
		})
	}
}

func TestType_Constructors(t *testing.T) {
	t.Parallel()

	tax := compileDoc(t, usersDoc)

	_, err := tax.MustType("GetUserError").New(nil)
	require.ErrorIs(t, err, ErrKind)

	_, err = tax.MustType("NotFoundError").Variant("NotFound")
	require.ErrorIs(t, err, ErrKind)

	_, err = tax.MustType("NotFoundError").New(map[string]any{"name": "x"})
	require.ErrorIs(t, err, ErrUnknownField)

	assert.Panics(t, func() { tax.MustType("NotFoundError").MustNew(map[string]any{"name": "x"}) })
	assert.Panics(t, func() { tax.MustType("GetUserError").MustVariant("Gone") })

	fields := map[string]any{"id": "1"}
	v := tax.MustType("NotFoundError").MustNew(fields)
	fields["id"] = "2"
	got, ok := v.Field("id")
	require.True(t, ok)
	assert.Equal(t, "1", got, "values do not alias the caller's map")
}

func TestValue_Error(t *testing.T) {
	t.Parallel()

	tax := compileDoc(t, usersDoc)
	getUser := tax.MustType("GetUserError")
	notFound := tax.MustType("NotFoundError").MustNew(map[string]any{"id": "1"})
	cause := errors.New("db down")

	tests := []struct {
		name      string
		value     *Value
		wantMsg   string
		wantCode  string
		wantInner error
	}{
		{
			name:    "struct",
			value:   notFound,
			wantMsg: "NotFoundError",
		},
		{
			name:      "delegating variant",
			value:     getUser.MustVariant("NotFound", notFound),
			wantMsg:   "GetUserError::NotFound: NotFoundError",
			wantCode:  "notFound",
			wantInner: notFound,
		},
		{
			name:      "terminal variant with error field",
			value:     getUser.MustVariant("Internal", cause),
			wantMsg:   "GetUserError::Internal: db down",
			wantCode:  "internal",
			wantInner: cause,
		},
		{
			name:     "terminal variant with value field",
			value:    getUser.MustVariant("Conflict", "stale"),
			wantMsg:  "GetUserError::Conflict",
			wantCode: "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantMsg, tt.value.Error())
			assert.Equal(t, tt.wantCode, tt.value.Code())
			assert.Equal(t, tt.wantInner, tt.value.Unwrap())
		})
	}
}

func TestValue_ErrorsIsThroughDelegation(t *testing.T) {
	t.Parallel()

	tax := compileDoc(t, usersDoc+`
  - name: Outer
    kind: enum
    variants:
      - name: Wrap
        fields: [{type: GetUserError}]
`)

	cause := errors.New("db down")
	inner := tax.MustType("GetUserError").MustVariant("Internal", cause)
	outer := tax.MustType("Outer").MustVariant("Wrap", inner)

	require.ErrorIs(t, outer, cause)
	assert.Equal(t, http.StatusInternalServerError, outer.HTTPStatus())

	var typed HTTPError
	require.ErrorAs(t, outer, &typed)
	assert.Same(t, outer, typed, "the outermost value answers first")

	body, err := outer.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"internal"}`, string(body), "the innermost code wins")
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	tax := compileDoc(t, usersDoc)
	getUser := tax.MustType("GetUserError")
	notFound := tax.MustType("NotFoundError")

	tests := []struct {
		name  string
		value *Value
		want  string
	}{
		{
			name:  "struct skips excluded fields",
			value: notFound.MustNew(map[string]any{"id": "7", "cause": errors.New("gone")}),
			want:  `{"id":"7"}`,
		},
		{
			name:  "struct without fields",
			value: notFound.MustNew(nil),
			want:  `{}`,
		},
		{
			name:  "delegating variant flattens the wrapped body",
			value: getUser.MustVariant("NotFound", notFound.MustNew(map[string]any{"id": "7"})),
			want:  `{"code":"notFound","id":"7"}`,
		},
		{
			name:  "excluded field",
			value: getUser.MustVariant("Internal", errors.New("db down")),
			want:  `{"code":"internal"}`,
		},
		{
			name:  "named field",
			value: getUser.MustVariant("Conflict", map[string]any{"version": 3}),
			want:  `{"code":"conflict","detail":{"version":3}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.value.MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestValue_MarshalJSON_NotObject(t *testing.T) {
	t.Parallel()

	tax := compileDoc(t, usersDoc)
	v := tax.MustType("GetUserError").MustVariant("Text", "plain text")

	_, err := v.MarshalJSON()
	require.ErrorIs(t, err, ErrNotObject)
	assert.Equal(t, http.StatusBadRequest, v.HTTPStatus())
}

func TestLowerFirst(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"NotFound":  "notFound",
		"Forbidden": "forbidden",
		"HTTPError": "hTTPError",
		"Ärger":     "ärger",
		"already":   "already",
		"":          "",
	} {
		assert.Equal(t, want, lowerFirst(in), in)
	}
}
