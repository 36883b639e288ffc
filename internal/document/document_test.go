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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/inhies/go-bytesize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexv2-bot/validate-bot-config/internal/botcfg"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	testDir := t.TempDir()

	t.Setenv("BOT_LOCALE", "en_US")

	for _, tc := range []struct {
		uc      string
		path    func(t *testing.T) string
		options []Option
		assert  func(t *testing.T, err error, doc *Document)
	}{
		{
			uc: "valid document",
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, testDir, "valid.json", `{"name": "OrderFlowers", "ttl": 300}`)
			},
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, filepath.Join(testDir, "valid.json"), doc.Path)
				assert.JSONEq(t, `{"name": "OrderFlowers", "ttl": 300}`, string(doc.Raw))
				assert.Equal(t,
					map[string]any{"name": "OrderFlowers", "ttl": json.Number("300")},
					doc.Value)
			},
		},
		{
			uc: "relative path is resolved",
			path: func(t *testing.T) string {
				t.Helper()

				return "./test_data/bot.json"
			},
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.NoError(t, err)

				wd, err := os.Getwd()
				require.NoError(t, err)

				assert.Equal(t, filepath.Join(wd, "test_data", "bot.json"), doc.Path)
			},
		},
		{
			uc: "not existing file",
			path: func(t *testing.T) string {
				t.Helper()

				return filepath.Join(testDir, "does-not-exist.json")
			},
			assert: func(t *testing.T, err error, _ *Document) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, botcfg.ErrFileNotFound)
				require.ErrorIs(t, err, os.ErrNotExist)
				assert.Contains(t, err.Error(), "file not found: "+filepath.Join(testDir, "does-not-exist.json"))
			},
		},
		{
			uc: "directory instead of a file",
			path: func(t *testing.T) string {
				t.Helper()

				return testDir
			},
			assert: func(t *testing.T, err error, _ *Document) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, botcfg.ErrFileAccess)
				assert.Contains(t, err.Error(), "is a directory")
			},
		},
		{
			uc: "file exceeding the size limit",
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, testDir, "large.json", `{"description": "a description longer than 16 bytes"}`)
			},
			options: []Option{WithMaxSize(16 * bytesize.B)},
			assert: func(t *testing.T, err error, _ *Document) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, botcfg.ErrFileAccess)
				assert.Contains(t, err.Error(), "exceeds the size limit")
			},
		},
		{
			uc: "empty file",
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, testDir, "empty.json", "")
			},
			assert: func(t *testing.T, err error, _ *Document) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, botcfg.ErrMalformedJSON)
				assert.Contains(t, err.Error(), "document is empty")
			},
		},
		{
			uc: "syntax error",
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, testDir, "syntax.json", "{\n  \"name\": \"OrderFlowers\",\n  \"ttl\" 300\n}")
			},
			assert: func(t *testing.T, err error, _ *Document) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, botcfg.ErrMalformedJSON)
				assert.Contains(t, err.Error(), filepath.Join(testDir, "syntax.json")+": line 3 column 9")
				assert.Contains(t, err.Error(), "invalid character '3' after object key")
			},
		},
		{
			uc: "truncated document",
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, testDir, "truncated.json", `{"name": `)
			},
			assert: func(t *testing.T, err error, _ *Document) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, botcfg.ErrMalformedJSON)
				assert.Contains(t, err.Error(), "unexpected EOF")
			},
		},
		{
			uc: "trailing data",
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, testDir, "trailing.json", `{"name": "OrderFlowers"} {}`)
			},
			assert: func(t *testing.T, err error, _ *Document) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, botcfg.ErrMalformedJSON)
			},
		},
		{
			uc: "invalid UTF-8",
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, testDir, "latin1.json", "{\"a\":\"\xff\"}")
			},
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, botcfg.ErrMalformedJSON)
				assert.Nil(t, doc)
				assert.Contains(t, err.Error(), filepath.Join(testDir, "latin1.json")+": line 1 column 7: invalid UTF-8")
			},
		},
		{
			uc: "environment variables are substituted if enabled",
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, testDir, "env.json", `{"locale": "${BOT_LOCALE}"}`)
			},
			options: []Option{WithEnvSubstitution(true)},
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, map[string]any{"locale": "en_US"}, doc.Value)
				assert.JSONEq(t, `{"locale": "en_US"}`, string(doc.Raw))
			},
		},
		{
			uc: "environment variables are kept if substitution is disabled",
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, testDir, "noenv.json", `{"locale": "${BOT_LOCALE}"}`)
			},
			assert: func(t *testing.T, err error, doc *Document) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, map[string]any{"locale": "${BOT_LOCALE}"}, doc.Value)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// WHEN
			doc, err := Load(tc.path(t), tc.options...)

			// THEN
			tc.assert(t, err, doc)
		})
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	wd, err := os.Getwd()
	require.NoError(t, err)

	for _, tc := range []struct {
		uc       string
		path     string
		expected string
		err      error
	}{
		{uc: "empty path", path: "", err: botcfg.ErrArgument},
		{uc: "absolute path", path: "/etc/../tmp/bot.json", expected: "/tmp/bot.json"},
		{uc: "relative path", path: "bot/../bot.json", expected: filepath.Join(wd, "bot.json")},
		{uc: "home directory", path: "~", expected: home},
		{uc: "path in home directory", path: "~/bots/bot.json", expected: filepath.Join(home, "bots", "bot.json")},
		{uc: "tilde not followed by a separator", path: "~bot.json", expected: filepath.Join(wd, "~bot.json")},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// WHEN
			resolved, err := ResolvePath(tc.path)

			// THEN
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, resolved)
		})
	}
}

func TestPosition(t *testing.T) {
	t.Parallel()

	raw := []byte("{\n  \"a\": 1,\n  \"b\" 2\n}")

	for _, tc := range []struct {
		uc     string
		offset int64
		line   int
		column int
	}{
		{uc: "start of document", offset: 0, line: 1, column: 0},
		{uc: "first line", offset: 1, line: 1, column: 1},
		{uc: "third line", offset: 18, line: 3, column: 6},
		{uc: "beyond the end", offset: 100, line: 4, column: 1},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			line, column := position(raw, tc.offset)

			assert.Equal(t, tc.line, line)
			assert.Equal(t, tc.column, column)
		})
	}
}
