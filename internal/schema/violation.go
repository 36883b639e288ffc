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
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Violation is a single failed constraint.
type Violation struct {
	Message string
	// Keyword is the keyword path of the failed constraint, e.g. "required" or "items/type".
	Keyword string
	// Location holds the segments of the instance location, empty for the document root.
	Location []string
}

// ValidationError lists the violations found while evaluating a document, ordered by their
// location in the document. It is the flattened form of the evaluator's error tree.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))

	for idx, violation := range e.Violations {
		parts[idx] = fmt.Sprintf("at '/%s': %s", strings.Join(violation.Location, "/"), violation.Message)
	}

	return strings.Join(parts, "; ")
}

// Best returns the most relevant violation, which is the one closest to the document root.
// Of equally deep violations the first one in location order wins.
func (e *ValidationError) Best() Violation {
	best := e.Violations[0]

	for _, violation := range e.Violations[1:] {
		if len(violation.Location) < len(best.Location) {
			best = violation
		}
	}

	return best
}

func compareViolations(a, b Violation) int {
	for idx := 0; idx < min(len(a.Location), len(b.Location)); idx++ {
		if res := compareSegments(a.Location[idx], b.Location[idx]); res != 0 {
			return res
		}
	}

	return cmp.Or(
		cmp.Compare(len(a.Location), len(b.Location)),
		strings.Compare(a.Keyword, b.Keyword),
		strings.Compare(a.Message, b.Message),
	)
}

// compareSegments orders array indices numerically and everything else lexically.
func compareSegments(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)

	if aErr == nil && bErr == nil {
		return cmp.Compare(ai, bi)
	}

	return strings.Compare(a, b)
}
