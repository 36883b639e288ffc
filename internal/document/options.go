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
	"strings"

	"github.com/inhies/go-bytesize"
)

type opts struct {
	maxSize   bytesize.ByteSize
	expandEnv bool
}

type Option func(*opts)

// WithMaxSize limits the size of the file to read. A non positive size disables the limit.
func WithMaxSize(size bytesize.ByteSize) Option {
	return func(o *opts) {
		o.maxSize = size
	}
}

// WithEnvSubstitution enables replacing of ${VAR} references with the values of the
// corresponding environment variables before the document is parsed.
func WithEnvSubstitution(flag bool) Option {
	return func(o *opts) {
		o.expandEnv = flag
	}
}

func isTilde(path string) bool {
	return path == "~" || strings.HasPrefix(path, "~/")
}
