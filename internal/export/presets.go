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
	"path/filepath"
	"strings"

	"aichef/internal/domain"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetShare PresetName = "share"
	PresetPrint PresetName = "print"
)

// BatchOptions controls exporting several recipes at once.
//
// Path semantics:
//   - Files are written to OutDir/<format>/<slug>.<ext>.
//   - Recipes with the same slug get a numeric suffix.
type BatchOptions struct {
	Preset  PresetName
	Formats []string // pdf, png, md; empty means preset defaults
	OutDir  string
}

// BatchExport writes every recipe in each requested format and returns the
// paths written.
func BatchExport(recipes []domain.Recipe, opt BatchOptions) ([]string, error) {
	if len(recipes) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}
	if strings.TrimSpace(opt.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	names := opt.Formats
	if len(names) == 0 {
		names = presetDefaultFormats(opt.Preset)
	}
	formats := make([]Format, 0, len(names))
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}

	slugs := uniqueSlugs(recipes)
	var written []string
	for _, f := range formats {
		for i, r := range recipes {
			out := filepath.Join(opt.OutDir, string(f), slugs[i]+f.Ext())
			if err := Write(f, r, out); err != nil {
				return written, fmt.Errorf("%s %q: %w", f, r.Name, err)
			}
			written = append(written, out)
		}
	}
	return written, nil
}

func uniqueSlugs(recipes []domain.Recipe) []string {
	seen := map[string]int{}
	out := make([]string, len(recipes))
	for i, r := range recipes {
		s := Slug(r.Name)
		seen[s]++
		if n := seen[s]; n > 1 {
			s = fmt.Sprintf("%s-%d", s, n)
		}
		out[i] = s
	}
	return out
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetShare:
		return []string{"png", "md"}
	case PresetPrint:
		return []string{"pdf"}
	default:
		return []string{"md"}
	}
}
