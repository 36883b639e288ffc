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

package schema

import (
	"errors"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lexv2-bot/validate-bot-config/internal/botcfg"
	"github.com/lexv2-bot/validate-bot-config/internal/document"
	"github.com/lexv2-bot/validate-bot-config/internal/x/errorchain"
)

type opts struct {
	assertFormat bool
}

type Option func(*opts)

// WithFormatAssertion makes the format keyword an assertion instead of an annotation.
func WithFormatAssertion(flag bool) Option {
	return func(o *opts) {
		o.assertFormat = flag
	}
}

type Schema struct {
	compiled *jsonschema.Schema
}

// Compile compiles the given schema document. Documents without a $schema keyword are treated
// as draft 2020-12. The document is registered under its file URL, so relative references to
// other schema files are resolved next to it.
func Compile(doc *document.Document, options ...Option) (*Schema, error) {
	var o opts

	for _, opt := range options {
		opt(&o)
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	compiler.UseRegexpEngine(compileECMARegexp)

	if o.assertFormat {
		compiler.AssertFormat()
	}

	location := fileURL(doc.Path)

	if err := compiler.AddResource(location, doc.Value); err != nil {
		return nil, errorchain.NewWithMessagef(botcfg.ErrSchema,
			"failed to register schema %s", doc.Path).CausedBy(err)
	}

	compiled, err := compiler.Compile(location)
	if err != nil {
		return nil, errorchain.NewWithMessagef(botcfg.ErrSchema,
			"failed to compile schema %s", doc.Path).CausedBy(err)
	}

	return &Schema{compiled: compiled}, nil
}

// Validate evaluates the given document. A document violating the schema results in an error
// matching botcfg.ErrInvalidConfig, which wraps a *ValidationError.
func (s *Schema) Validate(doc *document.Document) error {
	err := s.compiled.Validate(doc.Value)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return errorchain.NewWithMessagef(botcfg.ErrInternal,
			"failed to evaluate %s", doc.Path).CausedBy(err)
	}

	return errorchain.NewWithMessage(botcfg.ErrInvalidConfig, doc.Path).
		CausedBy(&ValidationError{Violations: flatten(verr)})
}

func flatten(verr *jsonschema.ValidationError) []Violation {
	printer := message.NewPrinter(language.English)

	var (
		violations []Violation
		collect    func(err *jsonschema.ValidationError)
	)

	collect = func(err *jsonschema.ValidationError) {
		switch {
		case len(err.Causes) == 0:
			violations = append(violations, newViolation(err, err.ErrorKind.LocalizedString(printer)))
		case isAlternative(err.ErrorKind) && allAt(leaves(err), err.InstanceLocation):
			// none of the alternatives matched the value itself, so all of them are reported
			var reasons []string

			for _, leaf := range leaves(err) {
				if reason := leaf.ErrorKind.LocalizedString(printer); !slices.Contains(reasons, reason) {
					reasons = append(reasons, reason)
				}
			}

			violations = append(violations, newViolation(err,
				err.ErrorKind.LocalizedString(printer)+": "+strings.Join(reasons, "; ")))
		default:
			for _, cause := range err.Causes {
				collect(cause)
			}
		}
	}

	collect(verr)
	slices.SortStableFunc(violations, compareViolations)

	return violations
}

func newViolation(err *jsonschema.ValidationError, msg string) Violation {
	return Violation{
		Message:  msg,
		Keyword:  strings.Join(err.ErrorKind.KeywordPath(), "/"),
		Location: slices.Clone(err.InstanceLocation),
	}
}

func isAlternative(ek jsonschema.ErrorKind) bool {
	switch ek.(type) {
	case *kind.AnyOf, *kind.OneOf:
		return true
	default:
		return false
	}
}

func leaves(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}

	var result []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		result = append(result, leaves(cause)...)
	}

	return result
}

func allAt(errs []*jsonschema.ValidationError, location []string) bool {
	for _, err := range errs {
		if !slices.Equal(err.InstanceLocation, location) {
			return false
		}
	}

	return true
}

func fileURL(path string) string {
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return (&url.URL{Scheme: "file", Path: path}).String()
}
