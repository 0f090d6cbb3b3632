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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"aichef/internal/app"
	"aichef/internal/backend"
	"aichef/internal/telemetry"
)

func newGenerateCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [ingredients...]",
		Short: "Generate a recipe from a list of ingredients",
		Long: `Generate sends the ingredients to the recipe service and prints the recipe.
Ingredients are taken from the arguments, or from standard input when no
arguments are given. A successful recipe is added to the history.`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(env.stdin)
				if err != nil {
					return fmt.Errorf("read ingredients: %w", err)
				}
				text = string(b)
			}

			hist, kv, err := env.openHistory()
			if err != nil {
				return err
			}
			defer env.closeStore(kv)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			q := app.NewQueue(1)
			view := &cliView{out: env.stdout, errw: env.stderr}
			ctrl := app.New(app.Deps{
				Generator: backend.NewClient(env.cfg.Backend.Endpoint, env.cfg.Backend.Timeout()),
				History:   hist,
				View:      view,
				Post:      q.Post,
				Events:    telemetry.Default(),
				Context:   ctx,
			})
			if ctrl.Submit(text) {
				if err := q.Next(ctx); err != nil {
					return err
				}
				ctrl.Wait()
			}
			if ctrl.State() != app.DisplayingRecipe {
				return silentError{code: 1}
			}
			return nil
		},
	}
}
