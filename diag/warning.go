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

// Package diag holds the advisory diagnostics reported while compiling
// error declarations.
//
// Warnings never stop compilation. Anything that must is returned as an error.
package diag

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// WarningCode identifies a kind of warning. Its prefix names the category.
type WarningCode string

// Documentation gaps.
const (
	// WarnDocsMissingCatalogue: an undocumented type delegates to a type
	// without a response catalogue, so its own catalogue omits that branch.
	WarnDocsMissingCatalogue WarningCode = "DOCS_MISSING_CATALOGUE"

	// WarnDocsEmptyCatalogue: a documented type has no responses at all.
	WarnDocsEmptyCatalogue WarningCode = "DOCS_EMPTY_CATALOGUE"
)

// Registrations without effect.
const (
	// WarnDeclarationUnusedHook: a registered hook no declaration refers to.
	WarnDeclarationUnusedHook WarningCode = "DECLARATION_UNUSED_HOOK"

	// WarnDeclarationUnusedExternal: a registered external type nothing delegates to.
	WarnDeclarationUnusedExternal WarningCode = "DECLARATION_UNUSED_EXTERNAL"
)

// WarningCategory groups warning codes.
type WarningCategory string

const (
	// CategoryDocs for gaps in the generated response documentation.
	CategoryDocs WarningCategory = "docs"

	// CategoryDeclaration for hooks or externals that have no effect.
	CategoryDeclaration WarningCategory = "declaration"

	// CategoryUnknown for codes without a known prefix.
	CategoryUnknown WarningCategory = "unknown"
)

var categoryPrefixes = map[string]WarningCategory{
	"DOCS_":        CategoryDocs,
	"DECLARATION_": CategoryDeclaration,
}

// String returns the code as a string.
func (c WarningCode) String() string { return string(c) }

// Category derives the category from the code prefix.
func (c WarningCode) Category() WarningCategory {
	for prefix, cat := range categoryPrefixes {
		if strings.HasPrefix(string(c), prefix) {
			return cat
		}
	}
	return CategoryUnknown
}

// String returns the category as a string.
func (c WarningCategory) String() string { return string(c) }

// Warning is one advisory diagnostic.
type Warning struct {
	Code WarningCode

	// Location is the affected declaration ("Type" or "Type::Variant"), or
	// the name of the hook or external type the warning is about.
	Location string

	Message string
}

// NewWarning returns a warning.
func NewWarning(code WarningCode, location, message string) Warning {
	return Warning{Code: code, Location: location, Message: message}
}

// Category returns the category of the warning code.
func (w Warning) Category() WarningCategory {
	return w.Code.Category()
}

// String renders the warning as "[category] CODE at location: message".
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s at %s: %s", w.Category(), w.Code, w.Location, w.Message)
}

// Warnings is the ordered list of warnings of one compilation.
type Warnings []Warning

// Has reports whether any warning carries code.
func (ws Warnings) Has(code WarningCode) bool {
	return slices.ContainsFunc(ws, func(w Warning) bool { return w.Code == code })
}

// HasCategory reports whether any warning belongs to cat.
func (ws Warnings) HasCategory(cat WarningCategory) bool {
	return slices.ContainsFunc(ws, func(w Warning) bool { return w.Category() == cat })
}

// Filter keeps the warnings carrying one of codes. No codes yields nil.
func (ws Warnings) Filter(codes ...WarningCode) Warnings {
	if len(codes) == 0 {
		return nil
	}
	return ws.keep(func(w Warning) bool { return slices.Contains(codes, w.Code) })
}

// At keeps the warnings reported for location.
func (ws Warnings) At(location string) Warnings {
	return ws.keep(func(w Warning) bool { return w.Location == location })
}

func (ws Warnings) keep(match func(Warning) bool) Warnings {
	return slices.DeleteFunc(slices.Clone(ws), func(w Warning) bool { return !match(w) })
}

// Counts returns the number of warnings per category.
func (ws Warnings) Counts() map[WarningCategory]int {
	counts := map[WarningCategory]int{}
	for _, w := range ws {
		counts[w.Category()]++
	}
	return counts
}

// Categories returns the categories present, sorted.
func (ws Warnings) Categories() []WarningCategory {
	return slices.Sorted(maps.Keys(ws.Counts()))
}

// String lists the warnings one per line under a count header.
func (ws Warnings) String() string {
	if len(ws) == 0 {
		return "no warnings"
	}
	lines := make([]string, 0, len(ws)+1)
	lines = append(lines, fmt.Sprintf("%d warning(s):", len(ws)))
	for i, w := range ws {
		lines = append(lines, fmt.Sprintf("  [%d] %s", i+1, w))
	}
	return strings.Join(lines, "\n")
}
