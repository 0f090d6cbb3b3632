/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"aichef/internal/domain"
)

// Markdown writes r as a Markdown document.
func Markdown(w io.Writer, r domain.Recipe) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n\n", oneLine(r.Name))
	if r.Description != "" {
		fmt.Fprintf(bw, "_%s_\n\n", oneLine(r.Description))
	}
	fmt.Fprintf(bw, "## Ingredients\n\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(bw, "- %s\n", oneLine(ing.Display()))
	}
	fmt.Fprintf(bw, "\n## Instructions\n\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(bw, "%d. %s\n", i+1, oneLine(step))
	}
	return bw.Flush()
}

// MarkdownFile writes r as Markdown to path.
func MarkdownFile(r domain.Recipe, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create markdown: %w", err)
	}
	if err := Markdown(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write markdown: %w", err)
	}
	return f.Close()
}

// oneLine folds line breaks so list items stay on one line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
