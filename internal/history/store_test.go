/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"aichef/internal/domain"
	"aichef/internal/storage"
)

func recipe(name string) domain.Recipe {
	return domain.Recipe{
		Name:         name,
		Description:  "About " + name,
		Ingredients:  []domain.Ingredient{domain.Text("salt")},
		Instructions: []string{"Cook " + name},
	}
}

func names(rs []domain.Recipe) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestOpenEmptyWhenKeyMissing(t *testing.T) {
	s := Open(storage.NewMemory())
	if s.Len() != 0 {
		t.Fatalf("expected empty history, got %d", s.Len())
	}
}

func TestOpenEmptyWhenContentMalformed(t *testing.T) {
	for _, raw := range []string{"{not json", `{"recipe_name":"x"}`, `"str"`, "null"} {
		kv := storage.NewMemory()
		_ = kv.Set(Key, raw)
		s := Open(kv)
		if s.Len() != 0 {
			t.Fatalf("content %q: expected empty history, got %d", raw, s.Len())
		}
	}
}

func TestAddPrependsAndPersists(t *testing.T) {
	kv := storage.NewMemory()
	s := Open(kv)
	for _, n := range []string{"A", "B", "C"} {
		added, err := s.Add(recipe(n))
		if err != nil || !added {
			t.Fatalf("Add(%s) = %v, %v", n, added, err)
		}
	}
	if diff := cmp.Diff([]string{"C", "B", "A"}, names(s.Items())); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Items(), Open(kv).Items(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("persisted history differs (-mem +disk):\n%s", diff)
	}
}

func TestAddDuplicateNameIsNoop(t *testing.T) {
	kv := storage.NewMemory()
	s := Open(kv)
	if _, err := s.Add(recipe("Pancakes")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	before, _, _ := kv.Get(Key)

	dup := recipe("Pancakes")
	dup.Description = "a different description"
	added, err := s.Add(dup)
	if err != nil || added {
		t.Fatalf("duplicate Add = %v, %v; want false, nil", added, err)
	}
	if s.Len() != 1 {
		t.Fatalf("history length changed: %d", s.Len())
	}
	if got, _ := s.Find("Pancakes"); got.Description != "About Pancakes" {
		t.Fatalf("duplicate was merged: %q", got.Description)
	}
	after, _, _ := kv.Get(Key)
	if before != after {
		t.Fatalf("persisted content changed on duplicate add")
	}
}

func TestAddEvictsOldestBeyondMax(t *testing.T) {
	s := Open(storage.NewMemory())
	for i := 0; i < MaxEntries; i++ {
		if _, err := s.Add(recipe(fmt.Sprintf("R%02d", i))); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if s.Len() != MaxEntries {
		t.Fatalf("len = %d, want %d", s.Len(), MaxEntries)
	}
	if _, err := s.Add(recipe("Newest")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	items := s.Items()
	if len(items) != MaxEntries {
		t.Fatalf("len = %d after 21st add, want %d", len(items), MaxEntries)
	}
	if items[0].Name != "Newest" {
		t.Fatalf("newest should be first, got %s", items[0].Name)
	}
	if _, ok := s.Find("R00"); ok {
		t.Fatalf("oldest entry R00 should have been evicted")
	}
	if items[MaxEntries-1].Name != "R01" {
		t.Fatalf("last entry = %s, want R01", items[MaxEntries-1].Name)
	}
}

func TestPersistedFormHasExactlyFourFields(t *testing.T) {
	kv := storage.NewMemory()
	s := Open(kv)
	var r domain.Recipe
	payload := `{"recipe_name":"Stew","description":"d","ingredients":[{"name":"beef","qty":"1kg"}],"instructions":["Simmer"],"image_url":"x","calories":500}`
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := s.Add(r); err != nil {
		t.Fatalf("Add: %v", err)
	}
	raw, _, _ := kv.Get(Key)
	var arr []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		t.Fatalf("persisted content is not an array of objects: %v", err)
	}
	if len(arr) != 1 || len(arr[0]) != 4 {
		t.Fatalf("expected one entry with 4 fields, got %s", raw)
	}
	if string(arr[0]["ingredients"]) != `[{"name":"beef","qty":"1kg"}]` {
		t.Fatalf("structured ingredient altered: %s", arr[0]["ingredients"])
	}
}

func TestRemoveByIndex(t *testing.T) {
	s := Open(storage.NewMemory())
	for _, n := range []string{"A", "B", "C"} {
		_, _ = s.Add(recipe(n))
	}
	if err := s.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if diff := cmp.Diff([]string{"C", "A"}, names(s.Items())); diff != "" {
		t.Fatalf("after remove (-want +got):\n%s", diff)
	}
	for _, bad := range []int{-1, 2, 10} {
		if err := s.Remove(bad); err == nil {
			t.Fatalf("Remove(%d) should fail", bad)
		}
	}
}

func TestRemoveByNameNotifiesWithRemainingEntries(t *testing.T) {
	s := Open(storage.NewMemory())
	for _, n := range []string{"A", "B", "C"} {
		_, _ = s.Add(recipe(n))
	}
	var rendered []domain.Recipe
	s.Subscribe(func(rs []domain.Recipe) { rendered = rs })

	found, err := s.RemoveByName("B")
	if err != nil || !found {
		t.Fatalf("RemoveByName = %v, %v", found, err)
	}
	if len(rendered) != 2 {
		t.Fatalf("re-render shows %d entries, want 2", len(rendered))
	}
	for _, r := range rendered {
		if r.Name == "B" {
			t.Fatalf("removed entry still rendered")
		}
	}
	if found, _ := s.RemoveByName("missing"); found {
		t.Fatalf("RemoveByName(missing) should report false")
	}
}

func TestClearThenLoadIsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	s := Open(kv)
	_, _ = s.Add(recipe("A"))
	notified := 0
	s.Subscribe(func(rs []domain.Recipe) {
		notified++
		if len(rs) != 0 {
			t.Fatalf("clear should render an empty list, got %d", len(rs))
		}
	})
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}
	if _, ok, _ := kv.Get(Key); ok {
		t.Fatalf("durable key should be removed by Clear")
	}
	if got := s.Load(); len(got) != 0 {
		t.Fatalf("Load after Clear = %d entries", len(got))
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	for _, backend := range []string{storage.BackendMemory, storage.BackendFile, storage.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			kv, err := storage.Open(backend, t.TempDir())
			if err != nil {
				t.Fatalf("open %s: %v", backend, err)
			}
			defer storage.Close(kv)

			s := Open(kv)
			obj, _ := domain.Object(map[string]any{"name": "flour", "grams": 200})
			want := []domain.Recipe{
				{Name: "Pancakes", Description: "Simple pancakes", Ingredients: []domain.Ingredient{domain.Text("eggs"), obj}, Instructions: []string{"Mix", "Cook"}},
				{Name: "Toast", Description: "", Ingredients: nil, Instructions: nil},
			}
			for i := len(want) - 1; i >= 0; i-- {
				if _, err := s.Add(want[i]); err != nil {
					t.Fatalf("Add: %v", err)
				}
			}
			got := Open(kv).Items()
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type failingKV struct{ *storage.Memory }

func (f *failingKV) Set(string, string) error { return errors.New("disk full") }

func TestAddReportsPersistFailure(t *testing.T) {
	kv := &failingKV{Memory: storage.NewMemory()}
	s := Open(kv)
	added, err := s.Add(recipe("A"))
	if !added || err == nil {
		t.Fatalf("Add = %v, %v; want true and a persist error", added, err)
	}
	if s.Len() != 1 {
		t.Fatalf("in-memory history should still hold the entry")
	}
}

func TestOpenEnforcesInvariantsOnStoredList(t *testing.T) {
	stored := []domain.Recipe{recipe("R0")}
	for i := 0; i < 25; i++ {
		stored = append(stored, recipe(fmt.Sprintf("R%d", i)))
	}
	b, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	kv := storage.NewMemory()
	_ = kv.Set(Key, string(b))

	s := Open(kv)
	if s.Len() != MaxEntries {
		t.Fatalf("Len() = %d, want %d", s.Len(), MaxEntries)
	}
	want := make([]string, 0, MaxEntries)
	for i := 0; i < MaxEntries; i++ {
		want = append(want, fmt.Sprintf("R%d", i))
	}
	if diff := cmp.Diff(want, names(s.Items())); diff != "" {
		t.Fatalf("loaded names mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenDropsUnnamedEntries(t *testing.T) {
	kv := storage.NewMemory()
	_ = kv.Set(Key, `[null, {"recipe_name":""}, {"recipe_name":"  "}, {"recipe_name":"Soup","ingredients":["leek"],"instructions":["Boil."]}]`)

	s := Open(kv)
	if diff := cmp.Diff([]string{"Soup"}, names(s.Items())); diff != "" {
		t.Fatalf("loaded names mismatch (-want +got):\n%s", diff)
	}
}
