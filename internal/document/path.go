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

package document

import (
	"os"
	"path/filepath"

	"github.com/lexv2-bot/validate-bot-config/internal/botcfg"
	"github.com/lexv2-bot/validate-bot-config/internal/x/errorchain"
)

// ResolvePath expands a leading ~ to the home directory of the current user and returns
// the absolute, cleaned form of the given path.
func ResolvePath(path string) (string, error) {
	if len(path) == 0 {
		return "", errorchain.NewWithMessage(botcfg.ErrArgument, "no path provided")
	}

	if isTilde(path) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errorchain.NewWithMessagef(botcfg.ErrArgument,
				"failed to expand %s", path).CausedBy(err)
		}

		path = filepath.Join(home, path[1:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errorchain.NewWithMessagef(botcfg.ErrArgument,
			"failed to resolve %s", path).CausedBy(err)
	}

	return abs, nil
}
