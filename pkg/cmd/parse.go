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
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-circom/pkg/circom/ast"
	"github.com/consensys/go-circom/pkg/circom/diag"
	"github.com/consensys/go-circom/pkg/circom/grammar"
	"github.com/consensys/go-circom/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.circom",
	Short: "parse a circuit source file and print its syntax tree.",
	Long:  `Parse a given circuit source file against a given grammar rule, and print the resulting syntax tree.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			settings = getSettings(cmd)
			ruleName = GetString(cmd, "rule")
		)
		//
		rule, ok := grammar.RuleByName(ruleName)
		if !ok {
			fmt.Printf("unknown grammar rule \"%s\"\n", ruleName)
			os.Exit(2)
		}
		//
		file, err := source.ReadFile(args[0])
		if err != nil {
			reportErrors(settings, []*diag.CompileError{diag.NewIOError(args[0], err)})
		}
		//
		log.Debugf("parsing %s as %s", args[0], rule)
		//
		nodes, failure := grammar.Parse(rule, file.Contents())
		if failure != nil {
			reportErrors(settings, []*diag.CompileError{diag.NewParseError(file, failure)})
		}
		//
		if err := ast.Dump(os.Stdout, ast.Materialize(file, nodes)); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().String("rule", grammar.Circuit.String(), "grammar rule to parse against")
}
