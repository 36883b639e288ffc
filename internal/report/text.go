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
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type TextRenderer struct {
	AllErrors bool
	NoColor   bool
}

func (r *TextRenderer) Render(rep *Report, stdout, stderr io.Writer) error {
	success := r.color(stdout, color.FgGreen)
	failure := r.color(stderr, color.FgRed, color.Bold)

	switch {
	case rep.Valid:
		_, err := success.Fprintf(stdout, "Bot configuration is valid: %s\n", rep.ConfigPath)

		return err
	case rep.Error != nil:
		_, err := failure.Fprintf(stderr, "ERROR: %s\n", rep.Error)

		return err
	}

	if _, err := failure.Fprintln(stderr, "Bot configuration is INVALID:"); err != nil {
		return err
	}

	for _, violation := range rep.Selected(r.AllErrors) {
		if _, err := fmt.Fprintf(stderr, "- Message : %s\n", violation.Message); err != nil {
			return err
		}

		if len(violation.Path) == 0 {
			continue
		}

		if _, err := fmt.Fprintf(stderr, "- At path : %s\n", violation.Path); err != nil {
			return err
		}
	}

	return nil
}

func (r *TextRenderer) color(out io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.NoColor || !isTerminal(out) {
		c.DisableColor()
	}

	return c
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
