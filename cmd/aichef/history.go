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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aichef/internal/app"
	"aichef/internal/domain"
	"aichef/internal/history"
	"aichef/internal/render"
	"aichef/internal/telemetry"
)

func newHistoryCmd(env *runtimeEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show and delete saved recipes",
		Long: `The history holds the 20 most recently generated recipes, newest first.
Entries are addressed by their position in "history list" or by recipe name.`,
	}

	var yes bool

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved recipes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			hist, kv, err := env.openHistory()
			if err != nil {
				return err
			}
			defer env.closeStore(kv)
			return render.History(env.stdout, hist.Items())
		},
	}

	show := &cobra.Command{
		Use:   "show <n|name>",
		Short: "Show a saved recipe without contacting the service",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return env.withController(app.AlwaysConfirm, func(ctrl *app.Controller, hist *history.Store) error {
				r, err := resolveEntry(hist, args[0])
				if err != nil {
					return err
				}
				ctrl.SelectHistory(r.Name)
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:     "delete <n|name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved recipe",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			confirm, err := env.confirmer(yes)
			if err != nil {
				return err
			}
			return env.withController(confirm, func(ctrl *app.Controller, hist *history.Store) error {
				r, err := resolveEntry(hist, args[0])
				if err != nil {
					return err
				}
				ctrl.DeleteHistory(r.Name)
				return nil
			})
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	clr := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved recipe",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			confirm, err := env.confirmer(yes)
			if err != nil {
				return err
			}
			return env.withController(confirm, func(ctrl *app.Controller, _ *history.Store) error {
				ctrl.ClearHistory()
				return nil
			})
		},
	}
	clr.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, show, del, clr)
	return cmd
}

// withController opens the history and runs fn against a controller whose
// view prints every history change.
func (e *runtimeEnv) withController(confirm app.Confirmer, fn func(*app.Controller, *history.Store) error) error {
	hist, kv, err := e.openHistory()
	if err != nil {
		return err
	}
	defer e.closeStore(kv)

	view := &cliView{out: e.stdout, errw: e.stderr}
	ctrl := app.New(app.Deps{
		History: hist,
		View:    view,
		Confirm: confirm,
		Events:  telemetry.Default(),
	})
	view.printHistory = true
	return fn(ctrl, hist)
}

// resolveEntry finds a history entry by 1-based position or by name.
func resolveEntry(hist *history.Store, ref string) (domain.Recipe, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		items := hist.Items()
		if n < 1 || n > len(items) {
			return domain.Recipe{}, fmt.Errorf("no history entry %d (have %d)", n, len(items))
		}
		return items[n-1], nil
	}
	if r, ok := hist.Find(ref); ok {
		return r, nil
	}
	return domain.Recipe{}, fmt.Errorf("no history entry named %q", ref)
}
