/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"aichef/internal/app"
	"aichef/internal/domain"
	"aichef/internal/render"
)

// cliView renders controller output to the terminal. Recipes go to stdout,
// errors and progress to stderr.
type cliView struct {
	out, errw io.Writer

	// printHistory turns RenderHistory on; the initial render from app.New is
	// never printed.
	printHistory bool
	loading      bool
}

var _ app.View = (*cliView)(nil)

func (v *cliView) SetLoading(on bool) {
	if on && !v.loading && isTerminal(v.errw) {
		fmt.Fprintln(v.errw, "Generating recipe...")
	}
	v.loading = on
}

func (v *cliView) SetSubmitEnabled(bool) {}

func (v *cliView) ShowRecipe(r domain.Recipe) { _ = render.Recipe(v.out, r) }

func (v *cliView) HideRecipe() {}

func (v *cliView) ShowError(msg string) { _ = render.Error(v.errw, msg) }

func (v *cliView) HideError() {}

func (v *cliView) RenderHistory(items []domain.Recipe) {
	if v.printHistory {
		_ = render.History(v.out, items)
	}
}

func (v *cliView) SetSidebarVisible(bool) {}

func isTerminal(x any) bool {
	f, ok := x.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// errNeedsYes is returned when a destructive action would prompt without a terminal.
var errNeedsYes = errors.New("not a terminal: pass --yes to confirm")

// confirmer returns a Confirmer asking on the terminal, or one that always
// agrees when yes is set.
func (e *runtimeEnv) confirmer(yes bool) (app.Confirmer, error) {
	if yes {
		return app.AlwaysConfirm, nil
	}
	if !isTerminal(e.stdin) {
		return nil, errNeedsYes
	}
	return app.ConfirmFunc(func(title, message string, fn func(bool)) {
		ok := false
		err := huh.NewConfirm().
			Title(title).
			Description(message).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&ok).
			Run()
		if err != nil {
			if !errors.Is(err, huh.ErrUserAborted) {
				e.log.Error("confirm prompt", slog.Any("err", err))
			}
			fn(false)
			return
		}
		fn(ok)
	}), nil
}
