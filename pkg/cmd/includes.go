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

	"github.com/consensys/go-circom/pkg/circom/include"
	"github.com/spf13/cobra"
)

var includesCmd = &cobra.Command{
	Use:   "includes [flags] file.circom",
	Short: "resolve the includes of a circuit source file.",
	Long:  `Resolve (transitively) the files included by a given circuit source file, and print the resulting include graph.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			settings = getSettings(cmd)
			context  = include.BuildContext(args[0], settings.Options.Include)
		)
		//
		writeIncludeGraph(context)
		reportErrors(settings, context.Errors)
	},
}

func writeIncludeGraph(context *include.Context) {
	for _, path := range context.Paths() {
		entry := context.Files[path]
		//
		switch entry.State {
		case include.Loaded:
			fmt.Println(path)
			//
			for _, inc := range entry.File.Includes {
				fmt.Printf("  -> %s\n", inc)
			}
		case include.Failed:
			fmt.Printf("%s (failed)\n", path)
		default:
			// Resolution always completes
			panic(fmt.Sprintf("unresolved file %s", path))
		}
	}
}

func init() {
	rootCmd.AddCommand(includesCmd)
}
