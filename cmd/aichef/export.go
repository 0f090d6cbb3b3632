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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"aichef/internal/export"
)

func newExportCmd(env *runtimeEnv) *cobra.Command {
	var (
		format string
		out    string
		all    bool
		preset string
	)
	cmd := &cobra.Command{
		Use:   "export [n|name]",
		Short: "Export saved recipes as PDF, PNG card or Markdown",
		Long: `Export writes a history entry to a file. With --all every entry is written
to <out>/<format>/<slug>.<ext>, using the formats of --preset unless
--format is given.

Examples:
  aichef export 1 --format pdf --out pancakes.pdf
  aichef export --all --preset share --out ./recipes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("give either one history entry or --all")
			}
			hist, kv, err := env.openHistory()
			if err != nil {
				return err
			}
			defer env.closeStore(kv)

			if all {
				items := hist.Items()
				if len(items) == 0 {
					return fmt.Errorf("history is empty")
				}
				opt := export.BatchOptions{Preset: export.PresetName(preset), OutDir: out}
				if format != "" {
					opt.Formats = strings.Split(format, ",")
				}
				if opt.OutDir == "" {
					opt.OutDir = "."
				}
				written, err := export.BatchExport(items, opt)
				for _, p := range written {
					fmt.Fprintln(env.stdout, p)
				}
				return err
			}

			r, err := resolveEntry(hist, args[0])
			if err != nil {
				return err
			}
			if format == "" {
				format = string(export.FormatPDF)
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = export.FileName(r, f)
			} else if strings.HasSuffix(path, string(filepath.Separator)) {
				path = filepath.Join(path, export.FileName(r, f))
			}
			if err := export.Write(f, r, path); err != nil {
				return err
			}
			fmt.Fprintln(env.stdout, path)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&format, "format", "f", "", "pdf, png or md (comma separated with --all)")
	fl.StringVarP(&out, "out", "o", "", "output file, or directory with --all")
	fl.BoolVar(&all, "all", false, "export every history entry")
	fl.StringVar(&preset, "preset", string(export.PresetShare), "format preset for --all: share or print")
	return cmd
}
