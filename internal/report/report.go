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
	"strings"

	"github.com/tidwall/gjson"

	"github.com/lexv2-bot/validate-bot-config/internal/schema"
)

// Violation describes a failed schema constraint in terms of the validated document.
type Violation struct {
	Message string `json:"message"`
	// Path is the dotted path of the offending location, empty for the document root.
	Path string `json:"path"`
	// Pointer is the JSON pointer (RFC 6901) of the offending location.
	Pointer string `json:"pointer"`
	Keyword string `json:"keyword"`
	Value   any    `json:"value,omitempty"`
}

// Report is the outcome of a single validation run.
type Report struct {
	ConfigPath string
	SchemaPath string
	Valid      bool
	// Violations is set if the configuration does not conform to the schema.
	Violations []Violation
	// Best is the most relevant of the Violations.
	Best *Violation
	// Error is set if the validation could not take place.
	Error error
}

// New creates the report from the result of a validation. raw is the content of the
// configuration document and is used to look up offending values.
func New(configPath, schemaPath string, raw []byte, err error) *Report {
	rep := &Report{
		ConfigPath: configPath,
		SchemaPath: schemaPath,
		Valid:      err == nil,
	}

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		rep.Error = err

		return rep
	}

	rep.Violations = make([]Violation, len(verr.Violations))
	for idx, violation := range verr.Violations {
		rep.Violations[idx] = newViolation(violation, raw)
	}

	if len(verr.Violations) != 0 {
		best := newViolation(verr.Best(), raw)
		rep.Best = &best
	}

	return rep
}

// Selected returns either all violations or only the most relevant one.
func (r *Report) Selected(all bool) []Violation {
	if all || r.Best == nil {
		return r.Violations
	}

	return []Violation{*r.Best}
}

func newViolation(violation schema.Violation, raw []byte) Violation {
	return Violation{
		Message: violation.Message,
		Path:    strings.Join(violation.Location, "."),
		Pointer: jsonPointer(violation.Location),
		Keyword: violation.Keyword,
		Value:   lookupValue(raw, violation.Location),
	}
}

// lookupValue returns the offending value. The document itself is never echoed for violations at its root.
func lookupValue(raw []byte, location []string) any {
	if len(raw) == 0 || len(location) == 0 {
		return nil
	}

	segments := make([]string, len(location))
	for idx, segment := range location {
		segments[idx] = escapeGJSON(segment)
	}

	return gjson.GetBytes(raw, strings.Join(segments, ".")).Value()
}

// escapeGJSON escapes every ASCII character of a path segment, which could otherwise be
// taken as part of the gjson path syntax (separators, wildcards, modifiers, queries).
func escapeGJSON(segment string) string {
	var sb strings.Builder

	for _, r := range segment {
		if r < 0x80 && !isAlphaNum(r) && r != '_' && r != '-' {
			sb.WriteByte('\\')
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func jsonPointer(location []string) string {
	var sb strings.Builder

	replacer := strings.NewReplacer("~", "~0", "/", "~1")

	for _, segment := range location {
		sb.WriteByte('/')
		sb.WriteString(replacer.Replace(segment))
	}

	return sb.String()
}
