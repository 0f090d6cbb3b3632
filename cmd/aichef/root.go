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
	"strings"

	"github.com/spf13/cobra"

	"aichef/internal/config"
	"aichef/internal/history"
	applog "aichef/internal/log"
	"aichef/internal/storage"
	"aichef/internal/telemetry"
	"aichef/internal/version"
)

// runtimeEnv is what PersistentPreRunE resolves for every subcommand.
type runtimeEnv struct {
	cfg     config.AppConfig
	dataDir string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	log     *slog.Logger
}

// silentError has already been shown to the user; main only sets the exit code.
type silentError struct{ code int }

func (e silentError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func exitCode(err error) int {
	var se silentError
	if errors.As(err, &se) {
		return se.code
	}
	return 1
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	env := &runtimeEnv{stdin: stdin, stdout: stdout, stderr: stderr}
	var (
		cfgPath  string
		endpoint string
		store    string
		dataDir  string
		logLevel string
	)

	root := &cobra.Command{
		Use:   "aichef",
		Short: "Generate recipes from the ingredients you have",
		Long: `AI Chef sends a list of ingredients to a recipe generation service and
shows the recipe it returns. Recipes are kept in a local history of the
20 most recent ones.

Examples:
  aichef generate eggs, flour, milk
  echo "rice, chicken" | aichef generate
  aichef history list
  aichef ui`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var (
				cfg config.AppConfig
				err error
			)
			if cfgPath != "" {
				cfg, err = config.LoadFrom(cfgPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				fmt.Fprintln(env.stderr, "Warning:", err)
			}
			if endpoint != "" {
				cfg.Backend.Endpoint = endpoint
			}
			if store != "" {
				cfg.History.Store = strings.ToLower(store)
			}
			if dataDir != "" {
				cfg.History.DataDir = dataDir
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			applog.Init(applog.Options{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				AddSource: cfg.Logging.Source,
				File:      cfg.Logging.File,
				Console:   env.stderr,
			})
			tcfg := telemetry.FromEnv()
			tcfg.OptIn = tcfg.OptIn || cfg.General.TelemetryOptIn
			telemetry.SetDefault(telemetry.New(tcfg))

			dir, err := cfg.DataDir()
			if err != nil {
				return err
			}
			env.cfg = cfg
			env.dataDir = dir
			env.log = applog.WithComponent("cli")
			env.log.Debug("start", slog.String("cmd", cmd.CommandPath()), slog.String("data_dir", dir))
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("AI Chef {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "config file (default is the per-user config.yaml)")
	pf.StringVar(&endpoint, "endpoint", "", "recipe service endpoint (overrides config)")
	pf.StringVar(&store, "store", "", "history store: sqlite, file or memory")
	pf.StringVar(&dataDir, "data-dir", "", "directory holding the history store")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newGenerateCmd(env),
		newHistoryCmd(env),
		newExportCmd(env),
		newPingCmd(env),
		newConfigCmd(env),
		newVersionCmd(env),
		newUICmd(env),
	)
	return root
}

// openHistory opens the configured store. Callers close it with storage.Close.
func (e *runtimeEnv) openHistory() (*history.Store, storage.KV, error) {
	if e.cfg.History.Store == config.StorePreferences {
		return nil, nil, errors.New(`the "preferences" history store is only available in the desktop window; use --store sqlite or file`)
	}
	kv, err := storage.Open(e.cfg.History.Store, e.dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open history store: %w", err)
	}
	return history.Open(kv), kv, nil
}

func (e *runtimeEnv) closeStore(kv storage.KV) {
	if err := storage.Close(kv); err != nil {
		e.log.Error("close history store", slog.Any("err", err))
	}
}
