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
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"aichef/internal/backend"
	"aichef/internal/config"
	"aichef/internal/ui"
	"aichef/internal/version"
)

const pingTimeout = 5 * time.Second

func newPingCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the recipe service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()

			c := backend.NewClient(env.cfg.Backend.Endpoint, env.cfg.Backend.Timeout())
			msg, err := c.Ping(ctx)
			if err != nil {
				return fmt.Errorf("ping %s: %s", c.Endpoint, backend.Message(err))
			}
			if msg == "" {
				msg = "ok"
			}
			fmt.Fprintln(env.stdout, msg)
			return nil
		},
	}
}

func newConfigCmd(env *runtimeEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				p, err := config.ConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(env.stdout, p)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as YAML",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				cfg := env.cfg
				cfg.History.DataDir = env.dataDir
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				if _, err := env.stdout.Write(data); err != nil {
					return err
				}
				for _, key := range config.OverridableKeys() {
					if name, ok := config.EnvOverrideFor(key); ok {
						fmt.Fprintf(env.stdout, "# %s set by %s\n", key, name)
					}
				}
				return nil
			},
		},
	)
	return cmd
}

func newVersionCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(env.stdout, "AI Chef %s\n", version.String())
		},
	}
}

func newUICmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the desktop window",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return ui.Run(ui.Options{Config: env.cfg, DataDir: env.dataDir})
		},
	}
}
