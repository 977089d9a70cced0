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

package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarningCode_Category(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code WarningCode
		want WarningCategory
	}{
		{WarnDocsMissingCatalogue, CategoryDocs},
		{WarnDocsEmptyCatalogue, CategoryDocs},
		{WarnDeclarationUnusedHook, CategoryDeclaration},
		{WarnDeclarationUnusedExternal, CategoryDeclaration},
		{WarningCode("SOMETHING_ELSE"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.code.Category())
		})
	}
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	ws := Warnings{
		NewWarning(WarnDocsMissingCatalogue, "GetUserError::Db", "DbError has no response catalogue"),
		NewWarning(WarnDeclarationUnusedHook, "audit", "hook is not referenced"),
		NewWarning(WarnDocsEmptyCatalogue, "EmptyError", "catalogue has no responses"),
	}

	assert.True(t, ws.Has(WarnDocsMissingCatalogue))
	assert.False(t, ws.Has(WarnDeclarationUnusedExternal))
	assert.True(t, ws.HasCategory(CategoryDeclaration))
	assert.Len(t, ws.Filter(WarnDocsMissingCatalogue, WarnDocsEmptyCatalogue), 2)
	assert.Nil(t, ws.Filter())
	assert.Len(t, ws.At("GetUserError::Db"), 1)
	assert.Equal(t, map[WarningCategory]int{CategoryDocs: 2, CategoryDeclaration: 1}, ws.Counts())
	assert.Equal(t, []WarningCategory{CategoryDeclaration, CategoryDocs}, ws.Categories())
	assert.Empty(t, ws.At("nowhere"))
	assert.Len(t, ws, 3, "filtering must not modify the receiver")

	assert.Equal(t,
		"[docs] DOCS_MISSING_CATALOGUE at GetUserError::Db: DbError has no response catalogue",
		ws[0].String())
	assert.Contains(t, ws.String(), "3 warning(s):")
	assert.Equal(t, "no warnings", Warnings(nil).String())
}
