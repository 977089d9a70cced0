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

// Package status parses and describes HTTP status codes as they appear in
// error declarations and response catalogues.
//
// Declarations name a status either by its constant name (NOT_FOUND) or by a
// three digit literal (404). Catalogues key responses by the status text
// ("404"). Both forms are validated here so that a malformed status is reported
// where it was written instead of surfacing later as a wrong response.
package status

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Code is an HTTP status code in the range [100, 599].
type Code int

const (
	// Min is the lowest status code accepted in declarations and catalogues.
	Min Code = 100
	// Max is the highest status code accepted in declarations and catalogues.
	Max Code = 599
)

// ErrInvalid is matched by every *ParseError.
var ErrInvalid = errors.New("invalid HTTP status code")

// ParseError reports status text that is neither a known constant name nor a
// three digit code in [Min, Max].
type ParseError struct {
	// Text is the offending input, verbatim.
	Text string
}

// Error returns the error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalid, e.Text)
}

// Is reports whether target is ErrInvalid.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalid
}

// Valid reports whether c lies in [Min, Max].
func (c Code) Valid() bool {
	return c >= Min && c <= Max
}

// String returns the three digit status text used as catalogue key.
func (c Code) String() string {
	return strconv.Itoa(int(c))
}

// Reason returns the canonical reason phrase, or "" when the code has none.
func (c Code) Reason() string {
	return http.StatusText(int(c))
}

// Name returns the constant name of the code (e.g. "NOT_FOUND"), or "" for
// codes without one.
func (c Code) Name() string {
	return codeNames[c]
}

// ParseToken parses a status as written in a declaration attribute: either a
// constant name such as NOT_FOUND or a three digit literal such as 404.
//
// Example:
//
//	code, err := status.ParseToken("UNPROCESSABLE_ENTITY") // 422
//	code, err = status.ParseToken("404")                  // 404
func ParseToken(tok string) (Code, error) {
	if code, ok := namedCodes[tok]; ok {
		return code, nil
	}

	return ParseText(tok)
}

// ParseText parses status text as used for catalogue keys: exactly three
// ASCII digits forming a code in [Min, Max].
func ParseText(text string) (Code, error) {
	if len(text) != 3 {
		return 0, &ParseError{Text: text}
	}
	n := 0
	for i := range len(text) {
		ch := text[i]
		if ch < '0' || ch > '9' {
			return 0, &ParseError{Text: text}
		}
		n = n*10 + int(ch-'0')
	}
	code := Code(n)
	if !code.Valid() {
		return 0, &ParseError{Text: text}
	}

	return code, nil
}

// MustParse is like ParseToken but panics on invalid input.
// It is intended for tests and package-level tables.
func MustParse(tok string) Code {
	code, err := ParseToken(tok)
	if err != nil {
		panic(err)
	}

	return code
}
