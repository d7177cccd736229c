// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package rmzoo is the command line front end that loads a persisted
// snapshot and answers single-fact or bulk queries against it, the Go
// equivalent of rmzoo.py's -q/-F query modes.
package rmzoo

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rmzoo-go/rmzoo/pkg/cmd/flags"
	"github.com/rmzoo-go/rmzoo/pkg/ingest"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/derive"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/query"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/snapshot"
)

var rootCmd = &cobra.Command{
	Use:   "rmzoo [flags] snapshot_file",
	Short: "Query a persisted reverse-mathematics database.",
	Long:  "Loads a snapshot written by rmupdater and answers a single fact query (-q) or a file of queries (-F).",
	Args:  cobra.ExactArgs(1),
	Run:   run,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// presentationFlags lists the DOT/table rendering options rmzoo.py
// supports that have no renderer in this build: accepted so a corpus's old
// invocation doesn't fail to parse, rejected at run time with a clear
// explanation instead of silently doing nothing.
var presentationFlags = []string{"implications", "nonimplications", "weak", "strong", "reducibility",
	"omega", "primary-only", "form", "conservation", "restrict"}

func init() {
	rootCmd.Flags().StringP("query", "q", "", "show whether FACT is known, and if so, its justification")
	rootCmd.Flags().StringP("query-file", "F", "", "query whether every fact in FILE is known")
	rootCmd.Flags().Bool("force", false, "register a novel conjunction and re-derive before answering")

	rootCmd.Flags().BoolP("implications", "i", false, "display implications between principles")
	rootCmd.Flags().BoolP("nonimplications", "n", false, "display non-implications between principles")
	rootCmd.Flags().BoolP("weak", "w", false, "display weakest non-redundant open implications")
	rootCmd.Flags().BoolP("strong", "s", false, "display strongest non-redundant open implications")
	rootCmd.Flags().StringP("reducibility", "t", "RCA", "display facts relative to REDUCIBILITY")
	rootCmd.Flags().BoolP("omega", "o", false, "display only facts that hold in omega models")
	rootCmd.Flags().BoolP("primary-only", "p", false, "display only facts about primary principles")
	rootCmd.Flags().BoolP("form", "f", false, "indicate syntactic forms of principles")
	rootCmd.Flags().BoolP("conservation", "c", false, "display known conservation results")
	rootCmd.Flags().StringP("restrict", "r", "", "restrict to only the principles in CLASS")
}

func run(cmd *cobra.Command, args []string) {
	if rejected := rejectedPresentationFlag(cmd); rejected != "" {
		fmt.Printf("--%s is a table/DOT rendering option; this build only answers -q/-F queries\n", rejected)
		os.Exit(1)
	}

	queryString := flags.GetString(cmd, "query")
	queryFile := flags.GetString(cmd, "query-file")
	force := flags.GetBool(cmd, "force")

	if queryString == "" && queryFile == "" {
		fmt.Println("one of -q FACT or -F FILE is required")
		os.Exit(1)
	}

	if queryString != "" && queryFile != "" {
		fmt.Println("-q and -F are mutually exclusive")
		os.Exit(1)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	db, err := snapshot.Decode(raw)
	if err != nil {
		var verErr *snapshot.VersionError

		if errors.As(err, &verErr) {
			fmt.Println(verErr)
		} else {
			fmt.Println(err)
		}

		os.Exit(1)
	}

	if queryString != "" {
		os.Exit(runSingleQuery(db, force, queryString))
	}

	os.Exit(runBulkQuery(db, force, queryFile))
}

func runSingleQuery(db *kernel.Database, force bool, q string) int {
	result, err := resolveWithForce(db, force, q)
	if err != nil {
		fmt.Println(err)
		return 1
	}

	if result.Hit {
		fmt.Println(result.Proof)
		return 0
	}

	if result.Contradiction != "" {
		fmt.Println("WARNING: the database is inconsistent")
		fmt.Println(result.Contradiction)
	} else {
		fmt.Println(result.Advice)
	}

	return 1
}

func runBulkQuery(db *kernel.Database, force bool, filename string) int {
	file, err := os.Open(filename)
	if err != nil {
		fmt.Println(err)
		return 1
	}
	defer file.Close()

	failed := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result, err := resolveWithForce(db, force, line)
		if err != nil {
			fmt.Printf("WARNING: %s\n", err)

			failed = true

			continue
		}

		if !result.Hit {
			fmt.Printf("WARNING: unknown: %s\n", line)

			failed = true
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Println(err)
		return 1
	}

	if failed {
		return 1
	}

	return 0
}

// resolveWithForce answers q against db, registering q's conjunctions and
// re-deriving once if the first resolution fails for a reason Resolve's
// advice says --force would fix. Mirrors rmzoo.py's --add-principles path,
// which is the one place a query is allowed to mutate the database.
func resolveWithForce(db *kernel.Database, force bool, q string) (*query.Result, error) {
	a, op, b, err := ingest.ParseQuery(q)
	if err != nil {
		return nil, err
	}

	result, err := query.Resolve(db, a, op, b)
	if err != nil {
		return nil, err
	}

	if result.Hit || !force || !strings.Contains(result.Advice, "--force") {
		return result, nil
	}

	db.Registry.Add(a)
	db.Registry.Add(b)

	if err := derive.Run(db); err != nil {
		return nil, err
	}

	return query.Resolve(db, a, op, b)
}

func rejectedPresentationFlag(cmd *cobra.Command) string {
	for _, name := range presentationFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}

		return name
	}

	return ""
}
