/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"io"
	"strings"

	"aichef/internal/domain"
)

// EmptyHistory is shown in place of the list when there are no entries.
const EmptyHistory = "No recipes yet."

// Recipe writes r as a titled block with numbered ingredients and steps.
// Rendering the same recipe twice produces the same output.
func Recipe(w io.Writer, r domain.Recipe) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Name))
	b.WriteByte('\n')
	if r.Description != "" {
		b.WriteString(r.Description)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(headingStyle.Render("Ingredients"))
	b.WriteByte('\n')
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  %s %s\n", numberStyle.Render(bullet), ing.Display())
	}
	b.WriteByte('\n')
	b.WriteString(headingStyle.Render("Instructions"))
	b.WriteByte('\n')
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %s %s\n", numberStyle.Render(fmt.Sprintf("%d.", i+1)), step)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// History writes one entry per recipe: position, name and the truncated
// description. Positions are 1-based and match `history show <n>`.
func History(w io.Writer, items []domain.Recipe) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render(EmptyHistory))
		return err
	}
	var b strings.Builder
	for i, r := range items {
		fmt.Fprintf(&b, "%s %s\n", numberStyle.Render(fmt.Sprintf("%2d.", i+1)), titleStyle.Render(r.Name))
		if s := r.Summary(); s != "" {
			fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(s))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Error writes msg styled as a failure.
func Error(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, errorStyle.Render(msg))
	return err
}
