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
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/lexv2-bot/validate-bot-config/internal/botcfg"
	"github.com/lexv2-bot/validate-bot-config/internal/validation"
	"github.com/lexv2-bot/validate-bot-config/internal/x/errorchain"
)

type opts struct {
	envPrefix    string
	settingsFile string
	overrides    map[string]any
}

type Option func(*opts)

func EnvVarPrefix(prefix string) Option {
	return func(o *opts) {
		if len(prefix) != 0 {
			o.envPrefix = prefix
		}
	}
}

// SettingsFile sets the path of a YAML file holding settings. Its values take precedence
// over the defaults, but not over the environment.
func SettingsFile(path string) Option {
	return func(o *opts) {
		o.settingsFile = path
	}
}

// Overrides sets values, which take precedence over the defaults and the environment.
// Keys use the koanf notation, e.g. "log.level".
func Overrides(values map[string]any) Option {
	return func(o *opts) {
		o.overrides = values
	}
}

// NewConfiguration assembles the settings from the defaults, the optional settings file,
// environment variables starting with the configured prefix and the given overrides, in that
// order of precedence.
//
// The underscore "_" in an environment variable serves as hierarchy separator, a double
// underscore "__" stands for a literal one. So BOTCFG_LOG_LEVEL sets "log.level" and
// BOTCFG_ALL__ERRORS sets "all_errors".
func NewConfiguration(options ...Option) (Configuration, error) {
	o := opts{envPrefix: DefaultEnvPrefix}

	for _, opt := range options {
		opt(&o)
	}

	conf := defaultConfiguration()
	parser := koanf.New(".")

	if err := parser.Load(structs.Provider(&conf, "koanf"), nil); err != nil {
		return conf, errorchain.NewWithMessage(botcfg.ErrInternal,
			"failed to load default settings").CausedBy(err)
	}

	if len(o.settingsFile) != 0 {
		if err := loadSettingsFile(parser, o.settingsFile); err != nil {
			return conf, err
		}
	}

	if err := parser.Load(env.Provider(".", env.Opt{
		Prefix:        o.envPrefix,
		TransformFunc: envKeyTransformer(o.envPrefix),
	}), nil); err != nil {
		return conf, errorchain.NewWithMessage(botcfg.ErrArgument,
			"failed to parse environment variables to settings").CausedBy(err)
	}

	if len(o.overrides) != 0 {
		if err := parser.Load(confmap.Provider(o.overrides, "."), nil); err != nil {
			return conf, errorchain.NewWithMessage(botcfg.ErrArgument,
				"failed to apply command line settings").CausedBy(err)
		}
	}

	if err := parser.UnmarshalWithConf("", &conf, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(decodeHooks...),
			Result:           &conf,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return conf, errorchain.NewWithMessage(botcfg.ErrArgument,
			"failed to decode settings").CausedBy(err)
	}

	if err := validation.ValidateStruct(conf); err != nil {
		return conf, errorchain.NewWithMessage(botcfg.ErrArgument,
			"invalid settings").CausedBy(err)
	}

	return conf, nil
}

func loadSettingsFile(parser *koanf.Koanf, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errorchain.NewWithMessagef(botcfg.ErrArgument,
			"failed to read settings file %s", path).CausedBy(err)
	}

	if err = parser.Load(rawbytes.Provider(raw), yaml.Parser()); err != nil {
		return errorchain.NewWithMessagef(botcfg.ErrArgument,
			"failed to parse settings file %s", path).CausedBy(err)
	}

	return nil
}

func envKeyTransformer(prefix string) func(key, val string) (string, any) {
	return func(key, val string) (string, any) {
		tmp := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, prefix)), "__", `\:\`)
		tmp = strings.ReplaceAll(tmp, "_", ".")

		return strings.ReplaceAll(tmp, `\:\`, "_"), val
	}
}
