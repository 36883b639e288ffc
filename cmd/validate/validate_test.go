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

package validate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexv2-bot/validate-bot-config/cmd/flags"
	"github.com/lexv2-bot/validate-bot-config/internal/botcfg"
)

const testEnvPrefix = "VALIDATETEST_"

func absPath(t *testing.T, path string) string {
	t.Helper()

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	return abs
}

func newTestCommand(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := NewValidateCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	require.NoError(t, cmd.ParseFlags(append([]string{
		"--" + flags.EnvironmentConfigPrefix, testEnvPrefix, "--" + flags.NoColor,
	}, args...)))

	return cmd, stdout, stderr
}

func TestRunValidation(t *testing.T) {
	t.Parallel()

	schemaFile := "test_data/schema.json"

	for _, tc := range []struct {
		uc     string
		args   []string
		assert func(t *testing.T, code int, err error, stdout, stderr string)
	}{
		{
			uc:   "valid configuration",
			args: []string{"-c", "test_data/valid.json", "-s", schemaFile},
			assert: func(t *testing.T, code int, err error, stdout, stderr string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitValid, code)
				assert.Equal(t, "Bot configuration is valid: "+absPath(t, "test_data/valid.json")+"\n", stdout)
				assert.Empty(t, stderr)
			},
		},
		{
			uc:   "missing required field",
			args: []string{"-c", "test_data/missing_locales.json", "-s", schemaFile},
			assert: func(t *testing.T, code int, err error, stdout, stderr string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitInvalid, code)
				assert.Empty(t, stdout)
				assert.Equal(t, "Bot configuration is INVALID:\n- Message : missing property 'locales'\n", stderr)
			},
		},
		{
			uc:   "nested violation",
			args: []string{"-c", "test_data/invalid_intent.json", "-s", schemaFile},
			assert: func(t *testing.T, code int, err error, _, stderr string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitInvalid, code)
				assert.Equal(t, "Bot configuration is INVALID:\n"+
					"- Message : missing property 'sample_utterances'\n"+
					"- At path : locales.0.intents.1\n", stderr)
			},
		},
		{
			uc:   "all violations",
			args: []string{"-c", "test_data/invalid_intent.json", "-s", schemaFile, "--all-errors"},
			assert: func(t *testing.T, code int, err error, _, stderr string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitInvalid, code)
				assert.Contains(t, stderr, "- At path : locales.0.intents.0.name\n")
				assert.Contains(t, stderr, "- At path : locales.0.intents.1\n")
			},
		},
		{
			uc:   "nonexistent configuration",
			args: []string{"-c", "test_data/does_not_exist.json", "-s", schemaFile},
			assert: func(t *testing.T, code int, err error, stdout, stderr string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitError, code)
				assert.Empty(t, stdout)
				assert.Contains(t, stderr, "ERROR: file not found: "+absPath(t, "test_data/does_not_exist.json"))
			},
		},
		{
			uc:   "malformed configuration",
			args: []string{"-c", "test_data/malformed.json", "-s", schemaFile},
			assert: func(t *testing.T, code int, err error, _, stderr string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitError, code)
				assert.Contains(t, stderr, "ERROR: malformed JSON: "+absPath(t, "test_data/malformed.json"))
				assert.Contains(t, stderr, "line 4 column 1")
			},
		},
		{
			uc:   "default schema location",
			args: []string{"-c", "test_data/valid.json"},
			assert: func(t *testing.T, code int, err error, _, stderr string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitError, code)
				assert.Contains(t, stderr, "ERROR: file not found: ")
				assert.Contains(t, stderr, filepath.Join("modules", "lexv2-bot", "schema.json"))
			},
		},
		{
			uc:   "json output",
			args: []string{"-c", "test_data/missing_locales.json", "-s", schemaFile, "-o", "json"},
			assert: func(t *testing.T, code int, err error, stdout, stderr string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitInvalid, code)
				assert.Empty(t, stderr)

				var out map[string]any

				require.NoError(t, json.Unmarshal([]byte(stdout), &out))
				assert.Equal(t, false, out["valid"])
				assert.Equal(t, absPath(t, schemaFile), out["schema"])
				assert.Len(t, out["violations"], 1)
			},
		},
		{
			uc:   "invalid settings",
			args: []string{"-c", "test_data/valid.json", "-s", schemaFile, "-o", "yaml"},
			assert: func(t *testing.T, code int, err error, stdout, stderr string) {
				t.Helper()

				require.ErrorIs(t, err, botcfg.ErrArgument)
				assert.Contains(t, err.Error(), "'output' must be one of [text json]")
				assert.Equal(t, ExitError, code)
				assert.Empty(t, stdout)
				assert.Empty(t, stderr)
			},
		},
		{
			uc:   "settings from file",
			args: []string{"-c", "test_data/invalid_intent.json", "--settings", "test_data/settings.yaml"},
			assert: func(t *testing.T, code int, err error, stdout, _ string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitInvalid, code)

				var out map[string]any

				require.NoError(t, json.Unmarshal([]byte(stdout), &out))
				assert.Len(t, out["violations"], 2)
			},
		},
		{
			uc:   "missing settings file",
			args: []string{"-c", "test_data/valid.json", "--settings", "test_data/missing.yaml"},
			assert: func(t *testing.T, code int, err error, _, _ string) {
				t.Helper()

				require.ErrorIs(t, err, botcfg.ErrArgument)
				assert.Equal(t, ExitError, code)
			},
		},
		{
			uc:   "configuration larger than allowed",
			args: []string{"-c", "test_data/valid.json", "-s", schemaFile, "--max-file-size", "1KB"},
			assert: func(t *testing.T, code int, err error, _, stderr string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ExitError, code)
				assert.Contains(t, stderr, "ERROR: file access error")
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			cmd, stdout, stderr := newTestCommand(t, tc.args...)

			// WHEN
			code, err := runValidation(cmd)

			// THEN
			tc.assert(t, code, err, stdout.String(), stderr.String())
		})
	}
}

func TestRunValidationWithSettingsFromEnvironment(t *testing.T) {
	// GIVEN
	t.Setenv(testEnvPrefix+"SCHEMA", "test_data/schema.json")
	t.Setenv(testEnvPrefix+"OUTPUT", "json")

	cmd, stdout, stderr := newTestCommand(t, "-c", "test_data/valid.json")

	// WHEN
	code, err := runValidation(cmd)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, ExitValid, code)
	assert.Empty(t, stderr.String())

	var out map[string]any

	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, true, out["valid"])
}

func TestValidateCommandExitCodes(t *testing.T) {
	exitCodes := make(chan int, 1)
	osExit = func(code int) { exitCodes <- code }

	defer func() { osExit = os.Exit }()

	for _, tc := range []struct {
		uc       string
		args     []string
		expCode  int
		expError bool
	}{
		{uc: "valid", args: []string{"-c", "test_data/valid.json", "-s", "test_data/schema.json"}, expCode: ExitValid},
		{
			uc:      "invalid",
			args:    []string{"-c", "test_data/missing_locales.json", "-s", "test_data/schema.json"},
			expCode: ExitInvalid,
		},
		{
			uc:      "missing file",
			args:    []string{"-c", "test_data/does_not_exist.json", "-s", "test_data/schema.json"},
			expCode: ExitError,
		},
		{uc: "missing config flag", args: []string{"-s", "test_data/schema.json"}, expError: true},
		{uc: "unexpected argument", args: []string{"-c", "test_data/valid.json", "foo"}, expError: true},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			cmd := NewValidateCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(append([]string{"--" + flags.EnvironmentConfigPrefix, testEnvPrefix}, tc.args...))

			// WHEN
			err := cmd.Execute()

			// THEN
			if tc.expError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)

			code := ExitValid

			select {
			case code = <-exitCodes:
			default:
			}

			assert.Equal(t, tc.expCode, code)
		})
	}
}

type syncBuffer struct {
	mut sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mut.Lock()
	defer b.mut.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mut.Lock()
	defer b.mut.Unlock()

	return b.buf.String()
}

func TestRunValidationInWatchMode(t *testing.T) {
	t.Parallel()

	// GIVEN
	valid, err := os.ReadFile("test_data/valid.json")
	require.NoError(t, err)

	schema, err := os.ReadFile("test_data/schema.json")
	require.NoError(t, err)

	dir := t.TempDir()
	configFile := filepath.Join(dir, "bot.json")
	schemaFile := filepath.Join(dir, "schema.json")

	require.NoError(t, os.WriteFile(configFile, []byte(`{"name": "OrderFlowers"}`), 0o600))
	require.NoError(t, os.WriteFile(schemaFile, schema, 0o600))

	stdout := &syncBuffer{}
	stderr := &syncBuffer{}

	cmd := NewValidateCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	require.NoError(t, cmd.ParseFlags([]string{
		"--" + flags.EnvironmentConfigPrefix, testEnvPrefix, "--" + flags.NoColor,
		"-c", configFile, "-s", schemaFile, "-w",
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd.SetContext(ctx)

	type result struct {
		code int
		err  error
	}

	results := make(chan result, 1)

	// WHEN
	go func() {
		code, err := runValidation(cmd)
		results <- result{code: code, err: err}
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "missing property 'locales'")
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		if len(stdout.String()) != 0 {
			return true
		}

		_ = os.WriteFile(configFile, valid, 0o600)

		return false
	}, 5*time.Second, 100*time.Millisecond)

	// let the events of the last write settle
	time.Sleep(200 * time.Millisecond)
	cancel()

	// THEN
	select {
	case res := <-results:
		require.NoError(t, res.err)
		assert.Equal(t, ExitValid, res.code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch mode did not terminate")
	}

	assert.Contains(t, stdout.String(), "Bot configuration is valid: "+configFile)
}

func TestRunValidationInWatchModeWithUnwatchableFile(t *testing.T) {
	t.Parallel()

	// GIVEN
	configFile := filepath.Join(t.TempDir(), "missing", "bot.json")

	cmd, stdout, stderr := newTestCommand(t, "-c", configFile, "-s", "test_data/schema.json", "-w")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd.SetContext(ctx)

	// WHEN
	code, err := runValidation(cmd)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, ExitError, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, 1, strings.Count(stderr.String(), "ERROR:"))
	assert.Contains(t, stderr.String(), "ERROR: file not found: "+configFile)
	assert.Contains(t, stderr.String(), "Failed to watch files")
}
