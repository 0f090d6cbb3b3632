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
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"aichef/internal/domain"
)

// PDFOptions controls PDF export behavior.
// Units are millimetres. Built-in Helvetica keeps text vector without embedding;
// characters outside cp1252 are replaced.
type PDFOptions struct {
	PageSize string  // "A4" (default) or "Letter"
	Margin   float64 // default 18mm
}

// RecipePDF writes r as a single-document PDF to outPath.
func RecipePDF(r domain.Recipe, outPath string, opt PDFOptions) error {
	size := opt.PageSize
	if size == "" {
		size = "A4"
	}
	margin := opt.Margin
	if margin <= 0 {
		margin = 18
	}

	pdf := gofpdf.New("P", "mm", size, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.Name, true)
	pdf.SetAuthor("AI Chef", false)
	pdf.AddPage()

	w, _ := pdf.GetPageSize()
	body := w - 2*margin

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(21, 128, 61)
	pdf.MultiCell(body, 10, tr(r.Name), "", "L", false)
	pdf.Ln(2)

	if r.Description != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(75, 85, 99)
		pdf.MultiCell(body, 6, tr(r.Description), "", "L", false)
		pdf.Ln(4)
	}

	section(pdf, tr, body, "Ingredients")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, ing := range r.Ingredients {
		pdf.MultiCell(body, 6, tr("- "+ing.Display()), "", "L", false)
	}
	pdf.Ln(4)

	section(pdf, tr, body, "Instructions")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for i, step := range r.Instructions {
		pdf.MultiCell(body, 6, tr(fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(step))), "", "L", false)
		pdf.Ln(1)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, width float64, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(21, 128, 61)
	pdf.CellFormat(width, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(2)
}
