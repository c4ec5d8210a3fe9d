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

	"github.com/consensys/go-circom/pkg/circom/symbol"
	"github.com/spf13/cobra"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] [file.circom]",
	Short: "build the symbol table of a circuit.",
	Long: `Build the symbol table of a circuit, starting from a given main file (or that
configured in circom.toml), and print the symbols of every module.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			settings = getSettings(cmd)
			main     = settings.Config.Build.Main
			out      = GetString(cmd, "out")
		)
		//
		if len(args) == 1 {
			main = args[0]
		} else if main == "" {
			fmt.Println("no main file given (and none configured)")
			os.Exit(2)
		}
		//
		ctx := symbol.Build(main, settings.Options)
		//
		writeSummary(symbol.Summarise(ctx))
		//
		if out != "" {
			writeExport(out, ctx)
		}
		//
		reportErrors(settings, ctx.Errors)
	},
}

func writeSummary(summary *symbol.Summary) {
	for i, m := range summary.Modules {
		if i != 0 {
			fmt.Println()
		}
		//
		fmt.Printf("module %s\n", m.Path)
		//
		for _, inc := range m.Includes {
			fmt.Printf("  include %s\n", inc)
		}
		//
		for _, s := range m.Symbols {
			fmt.Printf("  %s %s (line %d)\n", s.Kind, s.Name, s.Line)
		}
	}
}

func writeExport(filename string, ctx symbol.Context) {
	if err := exportSymbols(filename, ctx); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// Write the msgpack summary of a context to a given file, which is closed on
// every path.
func exportSymbols(filename string, ctx symbol.Context) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	//
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	//
	return symbol.Export(file, ctx)
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.Flags().StringP("out", "o", "", "write a msgpack summary of the symbol table to a file")
}
