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

package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lexv2-bot/validate-bot-config/internal/config"
)

func RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(Config, "c", "",
		"Path to the bot configuration file to validate.")
	cmd.Flags().StringP(Schema, "s", "",
		"Path to the JSON schema file.\n"+
			"Defaults to ../modules/lexv2-bot/schema.json relative to\nthe directory of this program.")
	cmd.Flags().String(SettingsFile, "",
		"Path to an optional YAML file holding settings of this program.")
	cmd.Flags().String(EnvironmentConfigPrefix, config.DefaultEnvPrefix,
		"Prefix for the environment variables to consider for\nloading settings from")
	cmd.Flags().StringP(Output, "o", config.OutputText,
		"Output format. One of text or json.")
	cmd.Flags().Bool(AllErrors, false,
		"Report all violations instead of the most relevant one.")
	cmd.Flags().Bool(ExpandEnv, false,
		"Substitute ${VAR} references in the bot configuration with\nthe values of environment variables before validation.")
	cmd.Flags().Bool(AssertFormat, false,
		"Treat the format keyword as an assertion.")
	cmd.Flags().String(MaxFileSize, "16MB",
		"Maximum size of the configuration and schema files.")
	cmd.Flags().BoolP(Watch, "w", false,
		"Validate again whenever the configuration or schema file\nchanges, until interrupted.")
	cmd.Flags().Bool(NoColor, false,
		"Disable colored output.")
	cmd.Flags().String(LogLevel, "error",
		"Log level. One of trace, debug, info, warn, error.")
	cmd.Flags().String(LogFormat, "text",
		"Log format. One of text or gelf.")

	_ = cmd.MarkFlagRequired(Config)
}

// Overrides returns the settings explicitly set on the command line, keyed the way
// config.NewConfiguration expects them. Flags left untouched do not override defaults
// or environment variables.
func Overrides(cmd *cobra.Command) map[string]any {
	overrides := make(map[string]any)

	cmd.Flags().Visit(func(flag *pflag.Flag) {
		key, ok := settingKeys[flag.Name]
		if !ok {
			return
		}

		if flag.Value.Type() == "bool" {
			value, _ := cmd.Flags().GetBool(flag.Name)
			overrides[key] = value
		} else {
			overrides[key] = flag.Value.String()
		}
	})

	return overrides
}
