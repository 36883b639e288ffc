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
	"errors"
	"io"

	"github.com/goccy/go-json"

	"github.com/lexv2-bot/validate-bot-config/internal/botcfg"
	"github.com/lexv2-bot/validate-bot-config/internal/x/errorchain"
)

type jsonReport struct {
	Valid      bool                   `json:"valid"`
	Config     string                 `json:"config"`
	Schema     string                 `json:"schema,omitempty"`
	Violations []Violation            `json:"violations,omitempty"`
	Error      *errorchain.ErrorChain `json:"error,omitempty"`
}

// JSONRenderer writes every report as a single JSON object to stdout.
type JSONRenderer struct {
	AllErrors bool
}

func (r *JSONRenderer) Render(rep *Report, stdout, _ io.Writer) error {
	out := jsonReport{
		Valid:      rep.Valid,
		Config:     rep.ConfigPath,
		Schema:     rep.SchemaPath,
		Violations: rep.Selected(r.AllErrors),
	}

	if rep.Error != nil {
		if !errors.As(rep.Error, &out.Error) {
			out.Error = errorchain.New(botcfg.ErrInternal).CausedBy(rep.Error)
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
