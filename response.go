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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// contentTypeJSON is the Content-Type of every body written by this package.
const contentTypeJSON = "application/json; charset=utf-8"

// Response represents a formatted error response.
//
// Example:
//
//	response := formatter.Format(req, err)
//	w.Header().Set("Content-Type", response.ContentType)
//	w.WriteHeader(response.Status)
//	w.Write(response.Body)
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the encoded response body.
	Body json.RawMessage

	// Headers contains additional headers to set (optional).
	Headers http.Header
}

// IntoResponse turns the value into a response. The hook of the value's type,
// if any, runs first; hooks of wrapped values do not run.
// It fails with [ErrHandlerDisabled] unless the type was declared with `handler`.
func (v *Value) IntoResponse() (Response, error) {
	if !v.typ.Handler() {
		return Response{}, fmt.Errorf("%w: %s", ErrHandlerDisabled, v.typ.Name())
	}
	if v.typ.hook != nil {
		v.typ.hook(v)
	}

	body, err := v.MarshalJSON()
	if err != nil {
		return Response{}, err
	}

	return Response{
		Status:      v.HTTPStatus(),
		ContentType: contentTypeJSON,
		Body:        body,
	}, nil
}

const internalErrorBody = `{"error":"internal server error"}`

// Formatter converts arbitrary errors into responses.
//
// Values of types declared with `handler` become their own body. Other
// errors are formatted as {"error": "message", "code": "..."}, with the
// status taken from [HTTPError] or defaulting to 500.
type Formatter struct {
	// StatusResolver determines HTTP status for errors that are not compiled values.
	// If nil, uses HTTPError interface or defaults to 500.
	StatusResolver func(err error) int
}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format converts an error into a response.
// The request is not inspected.
//
// A handler-enabled value whose body cannot be encoded (for example
// [ErrNotObject]) yields a 500 with a generic body rather than its own status.
func (f *Formatter) Format(_ *http.Request, err error) Response {
	var val *Value
	if errors.As(err, &val) && val.typ.Handler() {
		resp, ierr := val.IntoResponse()
		if ierr != nil {
			return Response{
				Status:      http.StatusInternalServerError,
				ContentType: contentTypeJSON,
				Body:        json.RawMessage(internalErrorBody),
			}
		}
		return resp
	}

	body := map[string]any{"error": err.Error()}
	if val != nil && val.Code() != "" {
		body["code"] = val.Code()
	}

	encoded, merr := json.Marshal(body)
	if merr != nil {
		encoded = []byte(internalErrorBody)
	}

	return Response{
		Status:      f.determineStatus(err),
		ContentType: contentTypeJSON,
		Body:        encoded,
	}
}

// determineStatus checks StatusResolver first, then HTTPError, then defaults to 500.
func (f *Formatter) determineStatus(err error) int {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}

	var typed HTTPError
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return http.StatusInternalServerError
}

var defaultFormatter = NewFormatter()

// WriteError formats err and writes it to w.
func WriteError(w http.ResponseWriter, req *http.Request, err error) {
	resp := defaultFormatter.Format(req, err)
	for k, vals := range resp.Headers {
		for _, val := range vals {
			w.Header().Add(k, val)
		}
	}
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
