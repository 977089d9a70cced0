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
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"

	"rivaas.dev/httperror/status"
)

// attributeName is the only attribute this package interprets.
const attributeName = "http"

// level selects which attribute keys a node accepts.
type level int

const (
	levelStruct level = iota
	levelEnum
	levelVariant
)

var allowedKeys = map[level][]string{
	levelStruct:  {"status", "base", "hook", "handler", "openapi"},
	levelEnum:    {"base", "hook", "handler", "openapi"},
	levelVariant: {"status"},
}

// valueKeys must be written as `key = value`.
var valueKeys = []string{"status", "base", "hook"}

// attributeArgs receives the non-status arguments of an attribute.
type attributeArgs struct {
	Base    string `mapstructure:"base"`
	Hook    string `mapstructure:"hook"`
	Handler bool   `mapstructure:"handler"`
	OpenAPI bool   `mapstructure:"openapi"`
}

type argument struct {
	key   string
	value string
	flag  bool
}

type attribute struct {
	name string
	args []argument
}

// parseMetadata finds the single http attribute among attrs and decodes it.
// It returns nil metadata when no http attribute is present.
func parseMetadata(attrs []string, lvl level) (*Metadata, string, error) {
	var (
		found *attribute
		text  string
	)
	for _, raw := range attrs {
		a, err := parseAttribute(raw)
		if err != nil {
			return nil, raw, err
		}
		if a.name != attributeName {
			continue
		}
		if found != nil {
			return nil, raw, ErrDuplicateAttribute
		}
		found, text = &a, raw
	}
	if found == nil {
		return nil, "", nil
	}

	meta, err := found.metadata(lvl)
	if err != nil {
		return nil, text, err
	}

	return meta, text, nil
}

func (a *attribute) metadata(lvl level) (*Metadata, error) {
	values := make(map[string]any, len(a.args))
	for _, arg := range a.args {
		if !slices.Contains(allowedKeys[lvl], arg.key) {
			return nil, fmt.Errorf("%w `%s`", ErrUnknownKey, arg.key)
		}
		if _, dup := values[arg.key]; dup {
			return nil, fmt.Errorf("%w `%s`", ErrDuplicateKey, arg.key)
		}
		if arg.flag {
			if slices.Contains(valueKeys, arg.key) {
				return nil, fmt.Errorf("%w: `%s` requires a value", ErrSyntax, arg.key)
			}
			values[arg.key] = true
			continue
		}
		values[arg.key] = arg.value
	}

	meta := &Metadata{}
	if raw, ok := values["status"]; ok {
		delete(values, "status")
		code, err := status.ParseToken(raw.(string))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidStatus, err)
		}
		meta.Status = code
	}

	var args attributeArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &args,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	meta.Base = args.Base
	meta.Hook = args.Hook
	meta.Handler = args.Handler
	meta.OpenAPI = args.OpenAPI

	return meta, nil
}

// parseAttribute tokenizes `name` or `name(key = value, flag, ...)`.
// Arguments of attributes other than http are not inspected.
func parseAttribute(text string) (attribute, error) {
	l := &lexer{src: text}
	l.skipSpace()
	name := l.ident()
	if name == "" {
		return attribute{}, l.errorf("expected attribute name")
	}
	a := attribute{name: name}
	if name != attributeName {
		return a, nil
	}

	l.skipSpace()
	if l.done() {
		return a, nil
	}
	if !l.accept('(') {
		return attribute{}, l.errorf("expected '('")
	}
	for {
		l.skipSpace()
		if l.accept(')') {
			break
		}
		key := l.ident()
		if key == "" {
			return attribute{}, l.errorf("expected parameter name")
		}
		arg := argument{key: key, flag: true}
		l.skipSpace()
		if l.accept('=') {
			l.skipSpace()
			value, err := l.value()
			if err != nil {
				return attribute{}, err
			}
			arg.value, arg.flag = value, false
			l.skipSpace()
		}
		a.args = append(a.args, arg)
		if l.accept(',') {
			continue
		}
		if l.accept(')') {
			break
		}

		return attribute{}, l.errorf("expected ',' or ')'")
	}
	l.skipSpace()
	if !l.done() {
		return attribute{}, l.errorf("unexpected trailing input")
	}

	return a, nil
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) done() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) peek() rune {
	if l.done() {
		return 0
	}

	return rune(l.src[l.pos])
}

func (l *lexer) accept(r rune) bool {
	if l.peek() == r && !l.done() {
		l.pos++
		return true
	}

	return false
}

func (l *lexer) skipSpace() {
	for !l.done() && unicode.IsSpace(l.peek()) {
		l.pos++
	}
}

func (l *lexer) ident() string {
	start := l.pos
	for !l.done() {
		r := l.peek()
		if isLetter(r) || (l.pos > start && isDigit(r)) {
			l.pos++
			continue
		}
		break
	}

	return l.src[start:l.pos]
}

// value reads a quoted string, or a bare token made of identifier characters,
// digits, dots and path separators.
func (l *lexer) value() (string, error) {
	if l.peek() == '"' {
		start := l.pos
		l.pos++
		for !l.done() {
			switch l.peek() {
			case '\\':
				l.pos += 2
				continue
			case '"':
				l.pos++
				s, err := strconv.Unquote(l.src[start:l.pos])
				if err != nil {
					return "", l.errorf("invalid string literal")
				}
				return s, nil
			}
			l.pos++
		}

		return "", l.errorf("unterminated string literal")
	}

	start := l.pos
	for !l.done() {
		r := l.peek()
		if r == '.' || r == ':' || isLetter(r) || isDigit(r) {
			l.pos++
			continue
		}
		break
	}
	if l.pos == start {
		return "", l.errorf("expected value")
	}

	return l.src[start:l.pos], nil
}

func isLetter(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *lexer) errorf(msg string) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrSyntax, msg, l.pos, strings.TrimSpace(l.src))
}
