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

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Entry is one decoded JSON log line.
type Entry struct {
	Level   string
	Message string
	Attrs   map[string]any
}

// NewTestLogger returns a debug-level JSON logger writing to the returned buffer.
func NewTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return MustNew(WithFormat(FormatJSON), WithOutput(buf), WithLevel(slog.LevelDebug)), buf
}

// Entries decodes the JSON log lines in buf without consuming it.
// Attrs holds every key except time, level and msg.
func Entries(buf *bytes.Buffer) ([]Entry, error) {
	var entries []Entry
	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	for {
		var raw map[string]any
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}

		e := Entry{Attrs: map[string]any{}}
		for k, v := range raw {
			switch k {
			case slog.LevelKey:
				e.Level, _ = v.(string)
			case slog.MessageKey:
				e.Message, _ = v.(string)
			case slog.TimeKey:
			default:
				e.Attrs[k] = v
			}
		}
		if e.Level == "" && e.Message == "" {
			return nil, fmt.Errorf("not a log entry: %v", raw)
		}
		entries = append(entries, e)
	}
}

// WithMessage keeps the entries logged with msg.
func WithMessage(entries []Entry, msg string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Message == msg {
			out = append(out, e)
		}
	}
	return out
}
