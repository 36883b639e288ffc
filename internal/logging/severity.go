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

package logging

import "github.com/rs/zerolog"

// severity is the syslog severity used by GELF's "level" field.
type severity int8

const (
	emergency severity = iota
	alert
	critical
	errorSeverity
	warning
	notice
	informational
	debugging
)

func toSeverity(level zerolog.Level) severity {
	switch level {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return debugging
	case zerolog.InfoLevel:
		return informational
	case zerolog.WarnLevel:
		return warning
	case zerolog.ErrorLevel:
		return errorSeverity
	case zerolog.FatalLevel:
		return critical
	case zerolog.PanicLevel:
		return alert
	default:
		return emergency
	}
}
