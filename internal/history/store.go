/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package history keeps the list of previously generated recipes.
//
// The Store owns the list: newest first, unique by recipe name, at most
// MaxEntries long. Every mutation writes the whole list back to the durable
// store under Key and then notifies subscribers so views can re-render.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"aichef/internal/domain"
	applog "aichef/internal/log"
	"aichef/internal/storage"
)

const (
	// Key is the durable storage key holding the JSON array.
	Key = "recipeHistory"
	// MaxEntries bounds the list; the oldest entries are evicted first.
	MaxEntries = 20
)

// Store is the single writer of the persisted history.
type Store struct {
	mu    sync.Mutex
	kv    storage.KV
	items []domain.Recipe
	subs  []func([]domain.Recipe)
	log   *slog.Logger
}

// Open creates a Store over kv and loads the persisted list.
func Open(kv storage.KV) *Store {
	s := &Store{kv: kv, log: applog.WithComponent("history")}
	s.items = s.Load()
	return s
}

// Load reads the persisted list. A missing key or malformed content yields an empty list.
func (s *Store) Load() []domain.Recipe {
	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		s.log.Warn("read history failed", slog.Any("err", err))
		return []domain.Recipe{}
	}
	if !ok {
		return []domain.Recipe{}
	}
	var items []domain.Recipe
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("history content malformed, starting empty", slog.Any("err", err))
		return []domain.Recipe{}
	}
	out := sanitize(items)
	if len(out) != len(items) {
		s.log.Warn("history entries dropped on load", slog.Int("stored", len(items)), slog.Int("kept", len(out)))
	}
	return out
}

// sanitize drops unnamed entries and later duplicates and caps the list, so a
// stored list written by anything else still obeys the Add invariants.
func sanitize(items []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, 0, min(len(items), MaxEntries))
	seen := make(map[string]struct{}, len(items))
	for _, r := range items {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r.Normalized())
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}

// Subscribe registers fn to be called with a copy of the list after each mutation.
func (s *Store) Subscribe(fn func([]domain.Recipe)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Items returns a copy of the current list.
func (s *Store) Items() []domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Recipe(nil), s.items...)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Find returns the entry named name.
func (s *Store) Find(name string) (domain.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(name); i >= 0 {
		return s.items[i], true
	}
	return domain.Recipe{}, false
}

// Add puts r at the front of the list. It returns false without touching
// anything when an entry with the same name already exists.
func (s *Store) Add(r domain.Recipe) (bool, error) {
	s.mu.Lock()
	if s.indexOf(r.Name) >= 0 {
		s.mu.Unlock()
		return false, nil
	}
	next := make([]domain.Recipe, 0, len(s.items)+1)
	next = append(next, r.Normalized())
	next = append(next, s.items...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	s.items = next
	err := s.persistLocked()
	s.mu.Unlock()

	s.log.Debug("recipe added", slog.String("name", r.Name), slog.Int("len", len(next)))
	s.notify()
	return true, err
}

// Remove deletes the entry at index.
func (s *Store) Remove(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.items) {
		n := len(s.items)
		s.mu.Unlock()
		return fmt.Errorf("history index %d out of range [0,%d)", index, n)
	}
	s.removeLocked(index)
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return err
}

// RemoveByName deletes the entry named name. It reports whether one was found.
func (s *Store) RemoveByName(name string) (bool, error) {
	s.mu.Lock()
	i := s.indexOf(name)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.removeLocked(i)
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return true, err
}

// Clear empties the list and deletes the durable key.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.items = []domain.Recipe{}
	err := s.kv.Remove(Key)
	s.mu.Unlock()
	if err != nil {
		err = fmt.Errorf("clear history: %w", err)
	}

	s.log.Info("history cleared")
	s.notify()
	return err
}

func (s *Store) indexOf(name string) int {
	for i, r := range s.items {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(i int) {
	next := make([]domain.Recipe, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	s.items = next
}

func (s *Store) persistLocked() error {
	b, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Set(Key, string(b)); err != nil {
		s.log.Error("persist history failed", slog.Any("err", err))
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

func (s *Store) notify() {
	s.mu.Lock()
	items := append([]domain.Recipe(nil), s.items...)
	subs := slices.Clone(s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(items)
	}
}
