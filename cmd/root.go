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

package cmd

import (
	"os"

	"github.com/lexv2-bot/validate-bot-config/cmd/validate"
)

// nolint: gochecknoglobals
var (
	Version = "master"

	// RootCmd validates the bot configuration. The tool has no subcommands.
	RootCmd = validate.NewValidateCommand()
)

// nolint: gochecknoinits
func init() {
	RootCmd.Version = Version
}

// Execute runs the root command. Errors reaching this point are usage errors.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		RootCmd.PrintErrf("ERROR: %v\n", err)
		os.Exit(validate.ExitError)
	}
}
