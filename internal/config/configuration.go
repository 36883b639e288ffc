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
	"github.com/inhies/go-bytesize"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// Configuration holds the settings of the validator itself. The bot configuration being
// validated and its schema are documents, not settings.
type Configuration struct {
	SchemaPath   string            `koanf:"schema"`
	Output       string            `koanf:"output"               validate:"oneof=text json"`
	AllErrors    bool              `koanf:"all_errors"`
	ExpandEnv    bool              `koanf:"expand_env"`
	AssertFormat bool              `koanf:"assert_format"`
	MaxFileSize  bytesize.ByteSize `koanf:"max_file_size,string" validate:"gt=0"`
	Watch        bool              `koanf:"watch"`
	NoColor      bool              `koanf:"no_color"`
	Log          LoggingConfig     `koanf:"log"`
}
