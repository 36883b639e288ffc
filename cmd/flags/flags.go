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

const (
	Config                  = "config"
	Schema                  = "schema"
	SettingsFile            = "settings"
	EnvironmentConfigPrefix = "env-config-prefix"

	Output       = "output"
	AllErrors    = "all-errors"
	ExpandEnv    = "expand-env"
	AssertFormat = "assert-format"
	MaxFileSize  = "max-file-size"
	Watch        = "watch"
	NoColor      = "no-color"
	LogLevel     = "log-level"
	LogFormat    = "log-format"
)

// settingKeys maps the flags, which can also be set via environment variables, to the keys
// of the settings.
// nolint: gochecknoglobals
var settingKeys = map[string]string{
	Schema:       "schema",
	Output:       "output",
	AllErrors:    "all_errors",
	ExpandEnv:    "expand_env",
	AssertFormat: "assert_format",
	MaxFileSize:  "max_file_size",
	Watch:        "watch",
	NoColor:      "no_color",
	LogLevel:     "log.level",
	LogFormat:    "log.format",
}
