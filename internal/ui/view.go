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
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"aichef/internal/app"
	"aichef/internal/domain"
	"aichef/internal/render"
)

const sidebarWidth = 270

// recipeView holds the widgets the controller drives.
type recipeView struct {
	entry   *ingredientsEntry
	submit  *widget.Button
	loader  *widget.ProgressBarInfinite
	errText *widget.Label
	errBox  *fyne.Container

	title        *widget.Label
	description  *widget.Label
	ingredients  *fyne.Container
	instructions *fyne.Container
	output       *fyne.Container

	history     []domain.Recipe
	list        *widget.List
	placeholder *widget.Label
	sidebar     *fyne.Container

	ctrl *app.Controller
}

var _ app.View = (*recipeView)(nil)

func newRecipeView() *recipeView {
	v := &recipeView{}
	v.entry = newIngredientsEntry(func(name string, shift bool) bool {
		if v.ctrl == nil {
			return false
		}
		return v.ctrl.HandleKey(name, shift, v.entry.Text)
	})
	v.submit = widget.NewButtonWithIcon("Generate Recipe", theme.MediaPlayIcon(), func() {
		if v.ctrl != nil {
			v.ctrl.Submit(v.entry.Text)
		}
	})
	v.submit.Importance = widget.HighImportance
	v.loader = widget.NewProgressBarInfinite()

	v.errText = widget.NewLabel("")
	v.errText.Importance = widget.DangerImportance
	v.errText.Wrapping = fyne.TextWrapWord
	v.errBox = container.NewVBox(v.errText)

	v.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.description = widget.NewLabel("")
	v.description.Wrapping = fyne.TextWrapWord
	v.ingredients = container.NewVBox()
	v.instructions = container.NewVBox()
	v.output = container.NewVBox(
		v.title,
		v.description,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Ingredients", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		v.ingredients,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Instructions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		v.instructions,
	)

	v.placeholder = widget.NewLabelWithStyle(render.EmptyHistory, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	v.list = widget.NewList(
		func() int { return len(v.history) },
		func() fyne.CanvasObject {
			name := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
			name.Truncation = fyne.TextTruncateEllipsis
			desc := widget.NewLabel("")
			desc.Wrapping = fyne.TextWrapWord
			del := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			del.Importance = widget.LowImportance
			return container.NewBorder(nil, nil, nil, del, container.NewVBox(name, desc))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id < 0 || id >= len(v.history) {
				return
			}
			r := v.history[id]
			row := o.(*fyne.Container)
			text := row.Objects[0].(*fyne.Container)
			text.Objects[0].(*widget.Label).SetText(r.Name)
			text.Objects[1].(*widget.Label).SetText(r.Summary())
			del := row.Objects[1].(*widget.Button)
			name := r.Name
			del.OnTapped = func() {
				if v.ctrl != nil {
					v.ctrl.DeleteHistory(name)
				}
			}
		},
	)
	v.list.OnSelected = func(id widget.ListItemID) {
		if id >= 0 && id < len(v.history) && v.ctrl != nil {
			v.ctrl.SelectHistory(v.history[id].Name)
		}
		v.list.UnselectAll()
	}
	return v
}

func (v *recipeView) SetLoading(on bool) {
	if on {
		v.loader.Show()
		v.loader.Start()
		return
	}
	v.loader.Stop()
	v.loader.Hide()
}

func (v *recipeView) SetSubmitEnabled(on bool) {
	if on {
		v.submit.Enable()
	} else {
		v.submit.Disable()
	}
}

func (v *recipeView) ShowRecipe(r domain.Recipe) {
	v.title.SetText(r.Name)
	v.description.SetText(r.Description)
	v.ingredients.Objects = v.ingredients.Objects[:0]
	for _, ing := range r.Ingredients {
		l := widget.NewLabel("• " + ing.Display())
		l.Wrapping = fyne.TextWrapWord
		v.ingredients.Add(l)
	}
	v.instructions.Objects = v.instructions.Objects[:0]
	for i, step := range r.Instructions {
		l := widget.NewLabel(fmt.Sprintf("%d. %s", i+1, step))
		l.Wrapping = fyne.TextWrapWord
		v.instructions.Add(l)
	}
	v.ingredients.Refresh()
	v.instructions.Refresh()
	v.output.Show()
}

func (v *recipeView) HideRecipe() { v.output.Hide() }

func (v *recipeView) ShowError(msg string) {
	v.errText.SetText(msg)
	v.errBox.Show()
}

func (v *recipeView) HideError() { v.errBox.Hide() }

func (v *recipeView) RenderHistory(items []domain.Recipe) {
	v.history = append(v.history[:0:0], items...)
	if len(v.history) == 0 {
		v.list.Hide()
		v.placeholder.Show()
	} else {
		v.placeholder.Hide()
		v.list.Show()
	}
	v.list.Refresh()
}

func (v *recipeView) SetSidebarVisible(on bool) {
	if v.sidebar == nil {
		return
	}
	if on {
		v.sidebar.Show()
	} else {
		v.sidebar.Hide()
	}
}

// layout assembles the window content: history sidebar on the left, input,
// status and recipe on the right.
func (v *recipeView) layout(onToggle, onClear func()) fyne.CanvasObject {
	clearBtn := widget.NewButtonWithIcon("Clear history", theme.ContentClearIcon(), onClear)
	clearBtn.Importance = widget.LowImportance
	width := canvas.NewRectangle(color.Transparent)
	width.SetMinSize(fyne.NewSize(sidebarWidth, 0))
	v.sidebar = container.NewStack(width, container.NewBorder(
		widget.NewLabelWithStyle("History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		clearBtn, nil, nil,
		container.NewStack(v.placeholder, v.list),
	))
	v.sidebar.Hide()

	toggle := widget.NewButtonWithIcon("", theme.MenuIcon(), onToggle)
	header := container.NewBorder(nil, nil, toggle, nil,
		widget.NewLabelWithStyle("AI Chef", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	input := container.NewBorder(nil, container.NewVBox(v.submit, v.loader), nil, nil, v.entry)
	main := container.NewBorder(
		container.NewVBox(header, input, v.errBox),
		nil, nil, nil,
		container.NewVScroll(v.output),
	)
	return container.NewBorder(nil, nil, v.sidebar, nil, main)
}
