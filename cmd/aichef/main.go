/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Command aichef generates recipes from a list of ingredients, either in a
// desktop window (`aichef ui`) or on the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"aichef/internal/config"
	"aichef/internal/crash"
	"aichef/internal/telemetry"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defer crash.Recover(crashDir())
	defer func() {
		t := telemetry.Default()
		t.Flush(context.Background())
		t.Close()
	}()

	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var se silentError
		if !errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return exitCode(err)
	}
	return 0
}

// crashDir resolves the data dir before flags are parsed so a panic anywhere
// still leaves a report next to the history.
func crashDir() string {
	cfg, _ := config.Load()
	dir, err := cfg.DataDir()
	if err != nil {
		return ""
	}
	return dir
}
