/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package domain holds the recipe model shared by the request client,
// the history store and the renderers.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SummaryLength is the number of characters of a description shown in a history entry.
const SummaryLength = 60

// Recipe is a generated recipe. Its JSON form has exactly these four fields;
// anything else the service sends is dropped on decode.
type Recipe struct {
	Name         string       `json:"recipe_name"`
	Description  string       `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
}

// Normalized returns a copy with nil slices replaced by empty ones so the
// persisted form always carries arrays.
func (r Recipe) Normalized() Recipe {
	out := Recipe{Name: r.Name, Description: r.Description}
	out.Ingredients = append(make([]Ingredient, 0, len(r.Ingredients)), r.Ingredients...)
	out.Instructions = append(make([]string, 0, len(r.Instructions)), r.Instructions...)
	return out
}

// Summary returns the description cut to SummaryLength characters, with "..."
// appended when something was cut.
func (r Recipe) Summary() string {
	return Truncate(r.Description, SummaryLength)
}

// Truncate cuts s to n runes and marks the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// IngredientKind tags the two shapes an ingredient can take on the wire.
type IngredientKind int

const (
	// PlainText is a bare JSON string (or any other scalar).
	PlainText IngredientKind = iota
	// Structured is a JSON object or array, e.g. {"name":"flour","quantity":"200g"}.
	Structured
)

// Ingredient is either PlainText or Structured. Structured values keep the
// original JSON so they round-trip through history unchanged.
type Ingredient struct {
	Kind   IngredientKind
	Text   string
	Object json.RawMessage
}

// Text returns a plain text ingredient.
func Text(s string) Ingredient { return Ingredient{Kind: PlainText, Text: s} }

// Object returns a structured ingredient from any JSON-marshalable value.
func Object(v any) (Ingredient, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Ingredient{}, fmt.Errorf("marshal ingredient: %w", err)
	}
	var ing Ingredient
	if err := ing.UnmarshalJSON(b); err != nil {
		return Ingredient{}, err
	}
	return ing, nil
}

// Name returns the object's "name" when it is set to something displayable.
func (i Ingredient) Name() (string, bool) {
	if i.Kind != Structured {
		return "", false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(i.Object, &fields); err != nil {
		return "", false
	}
	raw, ok := fields["name"]
	if !ok {
		return "", false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch n := v.(type) {
	case string:
		return n, n != ""
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), n != 0
	case bool:
		return "true", n
	}
	return "", false
}

// Display is the text shown for the ingredient: the plain text, the object's
// name, or the compact JSON of the object when it has no usable name.
func (i Ingredient) Display() string {
	if i.Kind == PlainText {
		return i.Text
	}
	if n, ok := i.Name(); ok {
		return n
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, i.Object); err != nil {
		return string(i.Object)
	}
	return buf.String()
}

// MarshalJSON writes a string for PlainText and the stored object otherwise.
func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.Kind == Structured && len(i.Object) > 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, i.Object); err != nil {
			return nil, fmt.Errorf("ingredient object: %w", err)
		}
		return buf.Bytes(), nil
	}
	return json.Marshal(i.Text)
}

// UnmarshalJSON accepts strings, objects and arrays. Other scalars are kept
// as their literal text; null becomes an empty string.
func (i *Ingredient) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty ingredient")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*i = Ingredient{Kind: PlainText, Text: s}
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return fmt.Errorf("invalid ingredient object: %w", err)
		}
		*i = Ingredient{Kind: Structured, Object: json.RawMessage(buf.Bytes())}
	default:
		if string(trimmed) == "null" {
			*i = Ingredient{Kind: PlainText}
			return nil
		}
		if !json.Valid(trimmed) {
			return fmt.Errorf("invalid ingredient %q", strings.TrimSpace(string(trimmed)))
		}
		*i = Ingredient{Kind: PlainText, Text: string(trimmed)}
	}
	return nil
}
