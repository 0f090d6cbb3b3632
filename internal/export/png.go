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
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"aichef/internal/domain"
)

// PNGOptions controls the recipe card.
// - Width: card width in pixels before scaling, default 480
// - Scale: integer upscale factor applied at the end, default 2
type PNGOptions struct {
	Width int
	Scale int
}

var (
	cardBackground = color.RGBA{R: 16, G: 20, B: 24, A: 255}
	cardAccent     = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	cardText       = color.RGBA{R: 229, G: 231, B: 235, A: 255}
	cardMuted      = color.RGBA{R: 156, G: 163, B: 175, A: 255}
)

const cardPad = 16

type cardLine struct {
	text  string
	col   color.RGBA
	rule  bool
	extra int
}

// RecipeCard renders r as a PNG card with title, description, ingredients and steps.
func RecipeCard(r domain.Recipe, outPath string, opt PNGOptions) error {
	img := drawCard(r, opt)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

func drawCard(r domain.Recipe, opt PNGOptions) image.Image {
	width := opt.Width
	if width <= 0 {
		width = 480
	}
	scale := opt.Scale
	if scale <= 0 {
		scale = 2
	}
	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil() + 2
	maxW := width - 2*cardPad

	var lines []cardLine
	add := func(text string, col color.RGBA, indent string) {
		for i, l := range wrapText(face, text, maxW-font.MeasureString(face, indent).Ceil()) {
			if i > 0 {
				l = strings.Repeat(" ", len(indent)) + l
			} else {
				l = indent + l
			}
			lines = append(lines, cardLine{text: l, col: col})
		}
	}
	add(strings.ToUpper(r.Name), cardAccent, "")
	if r.Description != "" {
		lines = append(lines, cardLine{extra: 4})
		add(r.Description, cardMuted, "")
	}
	lines = append(lines, cardLine{rule: true, extra: 8})
	add("Ingredients", cardAccent, "")
	for _, ing := range r.Ingredients {
		add(ing.Display(), cardText, "- ")
	}
	lines = append(lines, cardLine{rule: true, extra: 8})
	add("Instructions", cardAccent, "")
	for i, step := range r.Instructions {
		add(step, cardText, fmt.Sprintf("%d. ", i+1))
	}

	height := 2 * cardPad
	for _, l := range lines {
		height += lineH + l.extra
	}

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(small, small.Bounds(), &image.Uniform{C: cardBackground}, image.Point{}, xdraw.Src)
	strokeRect(small, 0, 0, width-1, height-1, cardAccent)

	d := &font.Drawer{Dst: small, Face: face}
	y := cardPad
	for _, l := range lines {
		y += l.extra
		if l.rule {
			mid := y + lineH/2
			for x := cardPad; x < width-cardPad; x++ {
				small.SetRGBA(x, mid, cardMuted)
			}
			y += lineH
			continue
		}
		if l.text != "" {
			d.Src = image.NewUniform(l.col)
			d.Dot = fixed.P(cardPad, y+face.Metrics().Ascent.Ceil())
			d.DrawString(l.text)
		}
		y += lineH
	}

	if scale == 1 {
		return small
	}
	big := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	xdraw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return big
}

// wrapText breaks s on spaces so each line fits maxWidth pixels. Words longer
// than a line are split by rune.
func wrapText(face font.Face, s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	cur := ""
	for _, w := range words {
		for font.MeasureString(face, w).Ceil() > maxWidth {
			head, tail := splitToWidth(face, w, maxWidth)
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			out = append(out, head)
			w = tail
		}
		cand := w
		if cur != "" {
			cand = cur + " " + w
		}
		if font.MeasureString(face, cand).Ceil() <= maxWidth {
			cur = cand
			continue
		}
		out = append(out, cur)
		cur = w
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func splitToWidth(face font.Face, w string, maxWidth int) (string, string) {
	runes := []rune(w)
	n := 1
	for n < len(runes) && font.MeasureString(face, string(runes[:n+1])).Ceil() <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}
