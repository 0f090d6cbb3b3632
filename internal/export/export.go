/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export writes a recipe to shareable files: a printable PDF, a PNG
// recipe card or Markdown.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"aichef/internal/domain"
)

// Format names an output format.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatPNG      Format = "png"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "png", "card":
		return FormatPNG, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q (want pdf, png or md)", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Write exports r to outPath in format f.
func Write(f Format, r domain.Recipe, outPath string) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("recipe has no name")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	switch f {
	case FormatPDF:
		return RecipePDF(r, outPath, PDFOptions{})
	case FormatPNG:
		return RecipeCard(r, outPath, PNGOptions{})
	case FormatMarkdown:
		return MarkdownFile(r, outPath)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// FileName derives a file name for r in format f, e.g. "tomato-soup.pdf".
func FileName(r domain.Recipe, f Format) string {
	return Slug(r.Name) + f.Ext()
}

// Slug lower-cases s and keeps letters and digits, joining words with dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "recipe"
	}
	return out
}
