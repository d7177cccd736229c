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

// Package rmupdater is the command line front end that parses a corpus,
// derives its deductive closure, and persists the result: the Go
// equivalent of rmupdater.py's parseDatabase/deriveInferences/databaseDump
// pipeline.
package rmupdater

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rmzoo-go/rmzoo/pkg/cmd/flags"
	"github.com/rmzoo-go/rmzoo/pkg/ingest"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/derive"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/kernel"
	"github.com/rmzoo-go/rmzoo/pkg/zoo/snapshot"
)

var log = logrus.StandardLogger()

var rootCmd = &cobra.Command{
	Use:   "rmupdater [flags] database_file output_file",
	Short: "Parse a reverse-mathematics corpus and persist its deductive closure.",
	Long: "Parses a corpus of facts, form declarations, and primary markers, derives every fact " +
		"implied by the seed (transitive reductions, contrapositives, conservation results), and " +
		"writes the result to output_file as a versioned snapshot.",
	Args: cobra.ExactArgs(2),
	Run:  run,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("quiet", "q", false, "suppress progress messages")
	rootCmd.Flags().BoolP("minimize", "s", false, "find the shortest proof between principles (much slower)")
	rootCmd.Flags().BoolP("verbose", "v", false, "report additional execution information")
}

func run(cmd *cobra.Command, args []string) {
	quiet := flags.GetBool(cmd, "quiet")
	minimize := flags.GetBool(cmd, "minimize")
	verbose := flags.GetBool(cmd, "verbose")

	if quiet && verbose {
		fmt.Println("options --quiet and --verbose are incompatible")
		os.Exit(1)
	}

	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	databaseFile, outputFile := args[0], args[1]

	if _, err := os.Stat(databaseFile); err != nil {
		fmt.Printf("database file %q does not exist\n", databaseFile)
		os.Exit(1)
	}

	db := kernel.New()
	db.Justify.SetMinimizing(minimize)

	if err := ingest.Load(db, databaseFile); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := derive.Run(db); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	encoded, err := snapshot.Encode(db, nil)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputFile, encoded, 0o644); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	log.Infof("wrote %d principles to %s", db.Registry.Len(), outputFile)
}
