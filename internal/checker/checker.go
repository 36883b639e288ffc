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

package checker

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lexv2-bot/validate-bot-config/internal/config"
	"github.com/lexv2-bot/validate-bot-config/internal/document"
	"github.com/lexv2-bot/validate-bot-config/internal/report"
	"github.com/lexv2-bot/validate-bot-config/internal/schema"
)

// Checker validates bot configurations against a schema according to the given settings.
type Checker struct {
	conf   config.Configuration
	logger zerolog.Logger
}

func New(conf config.Configuration, logger zerolog.Logger) *Checker {
	return &Checker{conf: conf, logger: logger}
}

// Check validates the configuration file against the schema file. Every failure, including
// the ones preventing the validation, is part of the returned report.
func (c *Checker) Check(configPath, schemaPath string) *report.Report {
	start := time.Now()

	configAbs, err := document.ResolvePath(configPath)
	if err != nil {
		return report.New(configPath, schemaPath, nil, err)
	}

	schemaAbs, err := document.ResolvePath(schemaPath)
	if err != nil {
		return report.New(configAbs, schemaPath, nil, err)
	}

	logger := c.logger.With().Str("_config", configAbs).Str("_schema", schemaAbs).Logger()

	sch, err := c.loadSchema(logger, schemaAbs)
	if err != nil {
		logger.Debug().Err(err).Msg("Loading schema failed")

		return report.New(configAbs, schemaAbs, nil, err)
	}

	doc, err := document.Load(configAbs,
		document.WithMaxSize(c.conf.MaxFileSize),
		document.WithEnvSubstitution(c.conf.ExpandEnv),
	)
	if err != nil {
		logger.Debug().Err(err).Msg("Loading configuration failed")

		return report.New(configAbs, schemaAbs, nil, err)
	}

	err = sch.Validate(doc)

	logger.Debug().
		Bool("_valid", err == nil).
		Dur("_duration", time.Since(start)).
		Msg("Configuration checked")

	return report.New(configAbs, schemaAbs, doc.Raw, err)
}

func (c *Checker) loadSchema(logger zerolog.Logger, path string) (*schema.Schema, error) {
	doc, err := document.Load(path, document.WithMaxSize(c.conf.MaxFileSize))
	if err != nil {
		return nil, err
	}

	start := time.Now()

	sch, err := schema.Compile(doc, schema.WithFormatAssertion(c.conf.AssertFormat))
	if err != nil {
		return nil, err
	}

	logger.Debug().Dur("_duration", time.Since(start)).Msg("Schema compiled")

	return sch, nil
}
