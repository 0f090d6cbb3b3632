//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fyne.io/fyne/v2"

	"aichef/internal/storage"
)

// prefsKV stores values in the Fyne application preferences. An empty
// string is indistinguishable from a missing key, which matches how the
// history store treats both.
type prefsKV struct {
	p fyne.Preferences
}

var _ storage.KV = (*prefsKV)(nil)

func newPrefsKV(p fyne.Preferences) *prefsKV { return &prefsKV{p: p} }

func (k *prefsKV) Get(key string) (string, bool, error) {
	v := k.p.String(key)
	return v, v != "", nil
}

func (k *prefsKV) Set(key, value string) error {
	k.p.SetString(key, value)
	return nil
}

func (k *prefsKV) Remove(key string) error {
	k.p.RemoveValue(key)
	return nil
}
