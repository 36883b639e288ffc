// Copyright 2026 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"github.com/drone/envsubst/v2"
	"github.com/inhies/go-bytesize"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/lexv2-bot/validate-bot-config/internal/botcfg"
	"github.com/lexv2-bot/validate-bot-config/internal/x/errorchain"
	"github.com/lexv2-bot/validate-bot-config/internal/x/stringx"
)

// Document is a parsed JSON file.
type Document struct {
	// Path is the absolute path of the file.
	Path string
	// Raw holds the content the Value has been parsed from, after env substitution if enabled.
	Raw []byte
	// Value is the decoded JSON. Numbers are represented as json.Number.
	Value any
}

// Load reads the file at the given path and parses it as JSON.
func Load(path string, options ...Option) (*Document, error) {
	var o opts

	for _, opt := range options {
		opt(&o)
	}

	abs, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	raw, err := read(abs, o.maxSize)
	if err != nil {
		return nil, err
	}

	if o.expandEnv {
		content, err := envsubst.EvalEnv(stringx.ToString(raw))
		if err != nil {
			return nil, errorchain.NewWithMessagef(botcfg.ErrSubstitution,
				"substitution of environment variables in %s failed", abs).CausedBy(err)
		}

		raw = []byte(content)
	}

	if offset := invalidUTF8(raw); offset >= 0 {
		line, column := position(raw, int64(offset)+1)

		return nil, errorchain.NewWithMessagef(botcfg.ErrMalformedJSON,
			"%s: line %d column %d: invalid UTF-8", abs, line, column)
	}

	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, parseError(abs, raw, err)
	}

	return &Document{Path: abs, Raw: raw, Value: value}, nil
}

func read(path string, maxSize bytesize.ByteSize) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errorchain.NewWithMessage(botcfg.ErrFileNotFound, path).CausedBy(err)
		}

		return nil, errorchain.NewWithMessagef(botcfg.ErrFileAccess, "failed to stat %s", path).CausedBy(err)
	}

	if info.IsDir() {
		return nil, errorchain.NewWithMessagef(botcfg.ErrFileAccess, "%s is a directory", path)
	}

	if maxSize > 0 && bytesize.ByteSize(info.Size()) > maxSize {
		return nil, errorchain.NewWithMessagef(botcfg.ErrFileAccess,
			"%s exceeds the size limit of %s", path, maxSize)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errorchain.NewWithMessagef(botcfg.ErrFileAccess, "failed to read %s", path).CausedBy(err)
	}

	return raw, nil
}

// invalidUTF8 returns the offset of the first byte not being part of a valid UTF-8 sequence or -1.
func invalidUTF8(raw []byte) int {
	if utf8.Valid(raw) {
		return -1
	}

	for offset := 0; offset < len(raw); {
		r, size := utf8.DecodeRune(raw[offset:])
		if r == utf8.RuneError && size == 1 {
			return offset
		}

		offset += size
	}

	return -1
}

func parseError(path string, raw []byte, err error) error {
	if errors.Is(err, io.EOF) {
		return errorchain.NewWithMessagef(botcfg.ErrMalformedJSON, "%s: document is empty", path)
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		offset    int64 = -1
	)

	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}

	if offset < 0 {
		return errorchain.NewWithMessage(botcfg.ErrMalformedJSON, path).CausedBy(err)
	}

	line, column := position(raw, offset)

	return errorchain.NewWithMessagef(botcfg.ErrMalformedJSON,
		"%s: line %d column %d", path, line, column).CausedBy(err)
}

// position converts the offset reported by the decoder, which points right behind the offending
// character, into the 1-based line and column of that character.
func position(raw []byte, offset int64) (int, int) {
	if offset > int64(len(raw)) {
		offset = int64(len(raw))
	}

	before := raw[:offset]
	line := bytes.Count(before, []byte{'\n'}) + 1
	column := len(before) - (bytes.LastIndexByte(before, '\n') + 1)

	return line, column
}
