/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRecipeDecodeDropsUnknownFields(t *testing.T) {
	in := `{"recipe_name":"Pancakes","description":"Simple pancakes","ingredients":["eggs","flour"],"instructions":["Mix","Cook"],"image_url":"http://x"}`
	var r Recipe
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	if len(m) != 4 {
		t.Fatalf("expected exactly 4 fields, got %v", m)
	}
	if _, ok := m["image_url"]; ok {
		t.Fatalf("image_url should have been dropped")
	}
}

func TestIngredientVariants(t *testing.T) {
	in := `["2 eggs", {"name":"flour","quantity":"200g"}, {"quantity":"1 pinch","item":"salt"}, 3, null, ["a","b"]]`
	var ings []Ingredient
	if err := json.Unmarshal([]byte(in), &ings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []struct {
		kind    IngredientKind
		display string
	}{
		{PlainText, "2 eggs"},
		{Structured, "flour"},
		{Structured, `{"quantity":"1 pinch","item":"salt"}`},
		{PlainText, "3"},
		{PlainText, ""},
		{Structured, `["a","b"]`},
	}
	if len(ings) != len(want) {
		t.Fatalf("got %d ingredients, want %d", len(ings), len(want))
	}
	for i, w := range want {
		if ings[i].Kind != w.kind {
			t.Fatalf("ingredient %d kind = %v, want %v", i, ings[i].Kind, w.kind)
		}
		if got := ings[i].Display(); got != w.display {
			t.Fatalf("ingredient %d display = %q, want %q", i, got, w.display)
		}
	}
}

func TestIngredientEmptyNameFallsBackToJSON(t *testing.T) {
	ing, err := Object(map[string]string{"name": ""})
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if got := ing.Display(); got != `{"name":""}` {
		t.Fatalf("Display = %q", got)
	}
}

func TestIngredientRoundTripKeepsObject(t *testing.T) {
	r := Recipe{
		Name:         "Bread",
		Description:  "Loaf",
		Ingredients:  []Ingredient{Text("water"), mustObject(t, map[string]any{"name": "flour", "grams": 500})},
		Instructions: []string{"Knead", "Bake"},
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `{"grams":500,"name":"flour"}`) {
		t.Fatalf("structured ingredient not preserved: %s", b)
	}
	var got Recipe
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Ingredients[1].Kind != Structured || string(got.Ingredients[1].Object) != string(r.Ingredients[1].Object) {
		t.Fatalf("object changed across round trip: %s vs %s", got.Ingredients[1].Object, r.Ingredients[1].Object)
	}
}

func TestSummaryTruncation(t *testing.T) {
	short := Recipe{Description: "Simple pancakes"}
	if got := short.Summary(); got != "Simple pancakes" {
		t.Fatalf("short summary = %q", got)
	}
	exact := Recipe{Description: strings.Repeat("a", SummaryLength)}
	if got := exact.Summary(); got != exact.Description {
		t.Fatalf("60-char description should not be cut: %q", got)
	}
	long := Recipe{Description: strings.Repeat("é", SummaryLength+5)}
	got := long.Summary()
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long summary should end with ...: %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != SummaryLength {
		t.Fatalf("summary kept %d runes, want %d", n, SummaryLength)
	}
}

func TestNormalizedReplacesNilSlices(t *testing.T) {
	b, err := json.Marshal(Recipe{Name: "Toast"}.Normalized())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"ingredients":[]`) || !strings.Contains(string(b), `"instructions":[]`) {
		t.Fatalf("expected empty arrays, got %s", b)
	}
}

func mustObject(t *testing.T, v any) Ingredient {
	t.Helper()
	ing, err := Object(v)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	return ing
}
