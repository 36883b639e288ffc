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
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lexv2-bot/validate-bot-config/cmd/flags"
	"github.com/lexv2-bot/validate-bot-config/internal/checker"
	"github.com/lexv2-bot/validate-bot-config/internal/config"
	"github.com/lexv2-bot/validate-bot-config/internal/logging"
	"github.com/lexv2-bot/validate-bot-config/internal/report"
	"github.com/lexv2-bot/validate-bot-config/internal/watcher"
)

const (
	ExitValid   = 0
	ExitInvalid = 1
	ExitError   = 2
)

// nolint: gochecknoglobals
var osExit = os.Exit

// NewValidateCommand represents the command validating a bot configuration.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-bot-config",
		Short: "Validates a Lex V2 bot configuration against its JSON schema",
		Long: "Validates a Lex V2 bot configuration against its JSON schema.\n\n" +
			"Exit codes:\n" +
			"  0  the configuration is valid\n" +
			"  1  the configuration violates the schema\n" +
			"  2  usage error, missing or malformed file, invalid schema",
		Example:       "validate-bot-config -c bots/order_flowers.json",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := runValidation(cmd)
			if err != nil {
				return err
			}

			if code != ExitValid {
				osExit(code)
			}

			return nil
		},
	}

	flags.RegisterFlags(cmd)

	return cmd
}

// runValidation returns an error only if the settings are unusable. Failures of the
// validation itself are reported by the renderer and reflected in the exit code.
func runValidation(cmd *cobra.Command) (int, error) {
	envPrefix, _ := cmd.Flags().GetString(flags.EnvironmentConfigPrefix)
	settingsFile, _ := cmd.Flags().GetString(flags.SettingsFile)
	configPath, _ := cmd.Flags().GetString(flags.Config)

	conf, err := config.NewConfiguration(
		config.EnvVarPrefix(envPrefix),
		config.SettingsFile(settingsFile),
		config.Overrides(flags.Overrides(cmd)),
	)
	if err != nil {
		return ExitError, err
	}

	logger := logging.NewLogger(conf.Log, cmd.ErrOrStderr())
	run := &validation{
		chk:      checker.New(conf, logger),
		renderer: report.NewRenderer(conf),
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
		logger:   logger,
	}

	rep := run.check(configPath, conf.SchemaPath)
	if !conf.Watch {
		return exitCode(rep), nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return run.watch(ctx, rep)
}

func exitCode(rep *report.Report) int {
	switch {
	case rep.Valid:
		return ExitValid
	case rep.Error != nil:
		return ExitError
	default:
		return ExitInvalid
	}
}

type validation struct {
	chk      *checker.Checker
	renderer report.Renderer
	stdout   io.Writer
	stderr   io.Writer
	logger   zerolog.Logger
}

func (v *validation) check(configPath, schemaPath string) *report.Report {
	rep := v.chk.Check(configPath, schemaPath)

	if err := v.renderer.Render(rep, v.stdout, v.stderr); err != nil {
		v.logger.Error().Err(err).Msg("Failed writing validation result")
	}

	return rep
}

// watch validates the configuration again on every change of the configuration or the
// schema file until the context is done and returns the exit code of the last validation.
// Failures to set up watching are logged, as the initial result has already been rendered.
func (v *validation) watch(ctx context.Context, initial *report.Report) (int, error) {
	fw, err := watcher.New(v.logger)
	if err != nil {
		v.logger.Error().Err(err).Msg("Failed to watch files")

		return ExitError, nil
	}

	code := exitCode(initial)
	configPath, schemaPath := initial.ConfigPath, initial.SchemaPath

	onChange := watcher.ChangeListenerFunc(func(path string) {
		v.logger.Info().Str("_file", path).Msg("File changed")

		code = exitCode(v.check(configPath, schemaPath))
	})

	for _, path := range []string{configPath, schemaPath} {
		if err = fw.Add(path, onChange); err != nil {
			v.logger.Error().Err(err).Msg("Failed to watch files")

			_ = fw.Stop()

			return ExitError, nil
		}
	}

	fw.Start(ctx)

	v.logger.Info().Msg("Watching for changes")

	<-ctx.Done()

	// the listener runs on the watcher goroutine, which is done once Stop returns
	if err = fw.Stop(); err != nil {
		v.logger.Warn().Err(err).Msg("Failed to stop watching files")
	}

	return code, nil
}
