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

package report

import (
	"io"

	"github.com/lexv2-bot/validate-bot-config/internal/config"
)

type Renderer interface {
	// Render writes the report. Results go to stdout, failures to stderr, unless the
	// format is meant to be consumed by other programs.
	Render(rep *Report, stdout, stderr io.Writer) error
}

func NewRenderer(conf config.Configuration) Renderer {
	if conf.Output == config.OutputJSON {
		return &JSONRenderer{AllErrors: conf.AllErrors}
	}

	return &TextRenderer{AllErrors: conf.AllErrors, NoColor: conf.NoColor}
}
