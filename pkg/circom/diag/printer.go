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
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer is responsible for writing compilation errors in a human-readable
// form.
type Printer struct {
	out    io.Writer
	header *color.Color
	arrow  *color.Color
}

// NewPrinter constructs a printer for a given writer, where colour determines
// whether or not ANSI colour codes are emitted.
func NewPrinter(out io.Writer, colour bool) *Printer {
	var (
		header = color.New(color.FgRed, color.Bold)
		arrow  = color.New(color.FgBlue, color.Bold)
	)
	//
	if colour {
		header.EnableColor()
		arrow.EnableColor()
	} else {
		header.DisableColor()
		arrow.DisableColor()
	}
	//
	return &Printer{out, header, arrow}
}

// Print a single error.
func (p *Printer) Print(err *CompileError) {
	fmt.Fprintf(p.out, "%s: %s\n", p.header.Sprintf("error[%s]", err.Code), err.Message)
	fmt.Fprintf(p.out, " %s %s\n", p.arrow.Sprint("-->"), err.Location())
	//
	switch info := err.Info.(type) {
	case *ParseFailure:
		fmt.Fprintln(p.out, info.Excerpt)
	case *IOFailure:
		fmt.Fprintf(p.out, "     %v\n", info.Cause)
	case *LogicFailure:
		if info.Excerpt != "" {
			fmt.Fprintln(p.out, info.Excerpt)
		}
	}
}

// PrintAll prints a sequence of errors, in order, separated by blank lines.
func (p *Printer) PrintAll(errs []*CompileError) {
	for i, err := range errs {
		if i != 0 {
			fmt.Fprintln(p.out)
		}
		//
		p.Print(err)
	}
}
