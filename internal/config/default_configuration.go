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

package config

import (
	"os"
	"path/filepath"

	"github.com/inhies/go-bytesize"
	"github.com/rs/zerolog"
)

const (
	DefaultEnvPrefix   = "BOTCFG_"
	defaultMaxFileSize = 16 * bytesize.MB
)

// nolint: gochecknoglobals
var defaultSchemaLocation = filepath.Join("modules", "lexv2-bot", "schema.json")

// DefaultSchemaPath returns the location of the schema shipped with the bot module. The binary
// is expected to live in a directory directly below the repository root, e.g. <repo>/bot.
func DefaultSchemaPath() string {
	exe, err := os.Executable()
	if err != nil {
		return defaultSchemaLocation
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Join(filepath.Dir(filepath.Dir(exe)), defaultSchemaLocation)
}

func defaultConfiguration() Configuration {
	return Configuration{
		SchemaPath:  DefaultSchemaPath(),
		Output:      OutputText,
		MaxFileSize: defaultMaxFileSize,
		Log: LoggingConfig{
			Level:  zerolog.ErrorLevel,
			Format: LogTextFormat,
		},
	}
}
