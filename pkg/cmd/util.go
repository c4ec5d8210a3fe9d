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

	"github.com/consensys/go-circom/pkg/circom/diag"
	"github.com/consensys/go-circom/pkg/circom/symbol"
	"github.com/consensys/go-circom/pkg/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetStringArray gets an expected string array, or exits if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Settings combines the project configuration (if any) with the command-line
// flags, where flags take precedence.
type Settings struct {
	Config  config.Config
	Options symbol.Options
}

// Determine the settings for a given command, or exit if they are invalid.
func getSettings(cmd *cobra.Command) Settings {
	cfg, err := config.Discover(".")
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	applyFlags(cmd, &cfg)
	//
	opts, err := cfg.Options()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return Settings{cfg, opts}
}

// Override configuration values with those given explicitly on the command
// line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("color") {
		cfg.Output.Color = GetString(cmd, "color")
	}
	//
	if cmd.Flags().Changed("prime") {
		cfg.Build.Prime = GetString(cmd, "prime")
	}
	//
	if cmd.Flags().Changed("cycles") {
		cfg.Includes.Cycles = GetString(cmd, "cycles")
	}
	//
	if cmd.Flags().Changed("jobs") {
		cfg.Build.Jobs = int(GetUint(cmd, "jobs"))
	}
	// Command-line libraries are searched first
	cfg.Includes.Paths = append(GetStringArray(cmd, "library"), cfg.Includes.Paths...)
}

// Determine whether or not colour output is enabled.
func (p *Settings) colour() bool {
	switch p.Config.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	//
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Print errors (if any), and exit if there were any.
func reportErrors(settings Settings, errs []*diag.CompileError) {
	if len(errs) == 0 {
		return
	}
	//
	diag.NewPrinter(os.Stdout, settings.colour()).PrintAll(errs)
	// Fail
	os.Exit(4)
}
