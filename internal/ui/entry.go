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
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// ingredientsEntry is a multi-line entry where Enter submits and
// Shift+Enter inserts a newline. Shift state is tracked from key down/up
// events since TypedKey does not carry modifiers.
type ingredientsEntry struct {
	widget.Entry
	shift bool
	// onKey reports whether it consumed the key.
	onKey func(name string, shift bool) bool
}

func newIngredientsEntry(onKey func(name string, shift bool) bool) *ingredientsEntry {
	e := &ingredientsEntry{onKey: onKey}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.SetPlaceHolder("e.g. chicken breast, rice, garlic, lemon")
	e.ExtendBaseWidget(e)
	return e
}

func isShift(n fyne.KeyName) bool {
	return n == desktop.KeyShiftLeft || n == desktop.KeyShiftRight
}

func (e *ingredientsEntry) KeyDown(k *fyne.KeyEvent) {
	if isShift(k.Name) {
		e.shift = true
	}
	e.Entry.KeyDown(k)
}

func (e *ingredientsEntry) KeyUp(k *fyne.KeyEvent) {
	if isShift(k.Name) {
		e.shift = false
	}
	e.Entry.KeyUp(k)
}

func (e *ingredientsEntry) TypedKey(k *fyne.KeyEvent) {
	if e.onKey != nil && e.onKey(string(k.Name), e.shift) {
		return
	}
	e.Entry.TypedKey(k)
}
